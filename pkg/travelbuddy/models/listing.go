package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListingType tags which table a listing reference points into
type ListingType string

const (
	ListingCab    ListingType = "cab"
	ListingTrip   ListingType = "trip"
	ListingOuting ListingType = "outing"
)

// ListingTypes lists every listing type in dashboard display order.
var ListingTypes = []ListingType{ListingCab, ListingTrip, ListingOuting}

// ParseListingType converts a stored or user-supplied tag into a ListingType.
func ParseListingType(s string) (ListingType, error) {
	switch t := ListingType(s); t {
	case ListingCab, ListingTrip, ListingOuting:
		return t, nil
	}
	return "", fmt.Errorf("unknown listing type %q", s)
}

// ListingRef identifies a listing across the three listing tables.
type ListingRef struct {
	Type ListingType `json:"type"`
	ID   string      `json:"id"`
}

func (r ListingRef) String() string {
	return string(r.Type) + ":" + r.ID
}

// Listing is implemented by CabRide, Trip and Outing.
type Listing interface {
	Ref() ListingRef
	OwnerID() string
}

// RideStatus is the lifecycle state of a cab ride
type RideStatus string

const (
	RideOpen   RideStatus = "open"
	RideClosed RideStatus = "closed"
)

// CabRide is a shared cab to an airport or railway station
type CabRide struct {
	ID           string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy    string         `gorm:"type:uuid;not null;index" json:"created_by"`
	FromLocation string         `gorm:"not null" json:"from_location"`
	ToLocation   string         `gorm:"not null" json:"to_location"`
	Datetime     time.Time      `gorm:"not null;index" json:"datetime"`
	Seats        int            `gorm:"not null;default:1" json:"seats"`
	VehicleType  string         `json:"vehicle_type"`
	Contact      string         `gorm:"not null" json:"contact"`
	Status       RideStatus     `gorm:"type:varchar(10);default:'open';index" json:"status"`
}

func (r CabRide) Ref() ListingRef { return ListingRef{Type: ListingCab, ID: r.ID} }
func (r CabRide) OwnerID() string { return r.CreatedBy }

func (r *CabRide) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = RideOpen
	}
	return nil
}

// Trip is a multi-day journey to a destination within a state and district
type Trip struct {
	ID            string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy     string         `gorm:"type:uuid;not null;index" json:"created_by"`
	State         string         `gorm:"not null" json:"state"`
	District      string         `gorm:"not null" json:"district"`
	Destination   string         `gorm:"not null" json:"destination"`
	PeopleCount   int            `gorm:"not null;default:1" json:"people_count"`
	Accommodation string         `gorm:"not null" json:"accommodation"`
	StartDate     time.Time      `gorm:"not null;index" json:"start_date"`
	ReturnDate    time.Time      `gorm:"not null" json:"return_date"`
}

func (t Trip) Ref() ListingRef { return ListingRef{Type: ListingTrip, ID: t.ID} }
func (t Trip) OwnerID() string { return t.CreatedBy }

func (t *Trip) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Outing is a local activity such as a movie, a trek or a study group
type Outing struct {
	ID           string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy    string         `gorm:"type:uuid;not null;index" json:"created_by"`
	OutingType   string         `gorm:"not null" json:"outing_type"`
	Destination  string         `gorm:"not null" json:"destination"`
	PeopleCount  int            `gorm:"not null;default:1" json:"people_count"`
	MeetingPoint string         `gorm:"not null" json:"meeting_point"`
	Time         time.Time      `gorm:"not null;index" json:"time"`
}

func (o Outing) Ref() ListingRef { return ListingRef{Type: ListingOuting, ID: o.ID} }
func (o Outing) OwnerID() string { return o.CreatedBy }

func (o *Outing) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
