package listings

import (
	"context"
	"strings"
	"time"

	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/models"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/store"
)

// Draft is the user-supplied fields of a new listing.
type Draft interface {
	ListingType() models.ListingType
	insert(ctx context.Context, st store.Store, ownerID string) (models.Listing, error)
}

// Cab ride destinations chosen by kind.
const (
	KindAirport = "airport"
	KindStation = "station"
)

var kindDestinations = map[string]string{
	KindAirport: "Airport",
	KindStation: "Railway Station",
}

// CabRideDraft describes a new cab ride. When Kind is set it decides the
// destination and ToLocation is ignored.
type CabRideDraft struct {
	FromLocation string    `json:"from_location" binding:"required"`
	ToLocation   string    `json:"to_location" binding:"required_without=Kind"`
	Kind         string    `json:"kind" binding:"omitempty,oneof=airport station"`
	Datetime     time.Time `json:"datetime" binding:"required"`
	Seats        int       `json:"seats" binding:"required,min=1"`
	VehicleType  string    `json:"vehicle_type"`
	Contact      string    `json:"contact" binding:"required"`
}

func (d *CabRideDraft) ListingType() models.ListingType { return models.ListingCab }

func (d *CabRideDraft) insert(ctx context.Context, st store.Store, ownerID string) (models.Listing, error) {
	to := strings.TrimSpace(d.ToLocation)
	if dest, ok := kindDestinations[d.Kind]; ok {
		to = dest
	}
	ride := models.CabRide{
		CreatedBy:    ownerID,
		FromLocation: strings.TrimSpace(d.FromLocation),
		ToLocation:   to,
		Datetime:     d.Datetime,
		Seats:        d.Seats,
		VehicleType:  strings.TrimSpace(d.VehicleType),
		Contact:      strings.TrimSpace(d.Contact),
		Status:       models.RideOpen,
	}
	if err := st.Insert(ctx, &ride); err != nil {
		return nil, err
	}
	return ride, nil
}

// TripDraft describes a new trip
type TripDraft struct {
	State         string    `json:"state" binding:"required"`
	District      string    `json:"district" binding:"required"`
	Destination   string    `json:"destination" binding:"required"`
	PeopleCount   int       `json:"people_count" binding:"required,min=1"`
	Accommodation string    `json:"accommodation" binding:"required"`
	StartDate     time.Time `json:"start_date" binding:"required"`
	ReturnDate    time.Time `json:"return_date" binding:"required,gtefield=StartDate"`
}

func (d *TripDraft) ListingType() models.ListingType { return models.ListingTrip }

func (d *TripDraft) insert(ctx context.Context, st store.Store, ownerID string) (models.Listing, error) {
	trip := models.Trip{
		CreatedBy:     ownerID,
		State:         d.State,
		District:      d.District,
		Destination:   strings.TrimSpace(d.Destination),
		PeopleCount:   d.PeopleCount,
		Accommodation: strings.TrimSpace(d.Accommodation),
		StartDate:     d.StartDate,
		ReturnDate:    d.ReturnDate,
	}
	if err := st.Insert(ctx, &trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// OutingDraft describes a new outing
type OutingDraft struct {
	OutingType   string    `json:"outing_type" binding:"required"`
	Destination  string    `json:"destination" binding:"required"`
	PeopleCount  int       `json:"people_count" binding:"required,min=1"`
	MeetingPoint string    `json:"meeting_point" binding:"required"`
	Time         time.Time `json:"time" binding:"required"`
}

func (d *OutingDraft) ListingType() models.ListingType { return models.ListingOuting }

func (d *OutingDraft) insert(ctx context.Context, st store.Store, ownerID string) (models.Listing, error) {
	outing := models.Outing{
		CreatedBy:    ownerID,
		OutingType:   strings.TrimSpace(d.OutingType),
		Destination:  strings.TrimSpace(d.Destination),
		PeopleCount:  d.PeopleCount,
		MeetingPoint: strings.TrimSpace(d.MeetingPoint),
		Time:         d.Time,
	}
	if err := st.Insert(ctx, &outing); err != nil {
		return nil, err
	}
	return outing, nil
}
