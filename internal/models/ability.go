package models

// Ability is a named atomic permission. Reference data, created at seed time
// from the registry catalog and never mutated afterwards.
type Ability struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:varchar(255)" json:"description"`
}
