package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes the booking queries depend on.
// AutoMigrate only creates the single-column indexes declared on the models.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Conflict check scans a venue's bookings by interval.
		{"bookings", "idx_bookings_venue_interval", "venue_id, start_time, end_time"},
		// Stacking check looks up neighbors per (venue, org).
		{"bookings", "idx_bookings_venue_org_end", "venue_id, user_org_id, end_time"},
		{"bookings", "idx_bookings_venue_org_start", "venue_id, user_org_id, start_time"},

		// Membership and role resolution joins.
		{"user_on_orgs", "idx_user_on_orgs_user_id", "user_id"},
		{"org_roles", "idx_org_roles_org_id", "org_id"},
		{"role_abilities", "idx_role_abilities_role_id", "role_id"},
		{"venue_admin_roles", "idx_venue_admin_roles_venue_id", "venue_id"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}
		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
