package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a platform member. TelegramID is set on first Telegram login; until
// then users are matched by Telegram username.
type User struct {
	ID               uint64         `gorm:"primarykey" json:"id"`
	Name             string         `gorm:"type:varchar(255);not null" json:"name"`
	TelegramUserName string         `gorm:"type:varchar(255);not null" json:"telegram_user_name"`
	TelegramID       *string        `gorm:"type:varchar(64);uniqueIndex" json:"telegram_id,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organisations []UserOnOrg `gorm:"foreignKey:UserID" json:"-"`
	Bookings      []Booking   `gorm:"foreignKey:UserID" json:"-"`
}
