package listings

import (
	"context"

	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/models"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/store"
)

// kind describes how one listing table is stored and presented.
type kind struct {
	noun     string
	plural   string
	path     string
	orderBy  string
	model    func() any
	newDraft func() Draft
	fetch    func(ctx context.Context, st store.Store, q store.Query) ([]models.Listing, error)
}

// kinds is the dispatch table resolving a ListingRef to its table.
var kinds = map[models.ListingType]kind{
	models.ListingCab: {
		noun:     "ride",
		plural:   "rides",
		path:     "cab-rides",
		orderBy:  "datetime",
		model:    func() any { return &models.CabRide{} },
		newDraft: func() Draft { return &CabRideDraft{} },
		fetch:    fetch[models.CabRide],
	},
	models.ListingTrip: {
		noun:     "trip",
		plural:   "trips",
		path:     "trips",
		orderBy:  "start_date",
		model:    func() any { return &models.Trip{} },
		newDraft: func() Draft { return &TripDraft{} },
		fetch:    fetch[models.Trip],
	},
	models.ListingOuting: {
		noun:     "outing",
		plural:   "outings",
		path:     "outings",
		orderBy:  "time",
		model:    func() any { return &models.Outing{} },
		newDraft: func() Draft { return &OutingDraft{} },
		fetch:    fetch[models.Outing],
	},
}

func fetch[T models.Listing](ctx context.Context, st store.Store, q store.Query) ([]models.Listing, error) {
	var rows []T
	if err := st.Select(ctx, &rows, q); err != nil {
		return nil, err
	}
	out := make([]models.Listing, len(rows))
	for i, row := range rows {
		out[i] = row
	}
	return out, nil
}

func lookup(t models.ListingType) (kind, error) {
	k, ok := kinds[t]
	if !ok {
		return kind{}, ErrUnknownType
	}
	return k, nil
}

// Path returns the URL segment serving listings of type t.
func Path(t models.ListingType) string {
	return kinds[t].path
}

// Noun returns the singular display noun for t ("ride", "trip", "outing").
func Noun(t models.ListingType) string {
	return kinds[t].noun
}
