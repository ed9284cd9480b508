package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AllModels returns all models for migration
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&AuthIdentity{},
		&AuthSession{},
		&CabRide{},
		&Trip{},
		&Outing{},
		&JoinRequest{},
	}
}

// AutoMigrate runs GORM auto-migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}

// ValidID reports whether id has the canonical UUID form used for every
// primary key. Postgres rejects anything else in a uuid comparison.
func ValidID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
