package models

import (
	"gorm.io/gorm"
)

// Migrate runs database migrations. User comes first so the feedback
// foreign key has a target table to reference.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Feedback{},
	)
}
