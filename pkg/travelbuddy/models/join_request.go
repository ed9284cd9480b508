package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JoinRequest records a user's intent to join someone else's listing.
// ListingID points into the table named by ListingType.
//
// There is intentionally no unique index over (user_id, listing_type,
// listing_id): duplicates are only prevented by a check before insert.
type JoinRequest struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	JoinedAt    time.Time      `gorm:"autoCreateTime" json:"joined_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	UserID      string         `gorm:"type:uuid;not null;index:idx_join_user" json:"user_id"`
	ListingType ListingType    `gorm:"type:varchar(10);not null;index:idx_join_listing" json:"listing_type"`
	ListingID   string         `gorm:"type:uuid;not null;index:idx_join_listing" json:"listing_id"`
}

// Listing returns the tagged reference this join points at.
func (j JoinRequest) Listing() ListingRef {
	return ListingRef{Type: j.ListingType, ID: j.ListingID}
}

func (j *JoinRequest) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}
