// Package listings stores and serves cab rides, trips and outings.
package listings

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/events"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/models"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/store"
)

// Filter narrows a listing query
type Filter struct {
	OwnerID string
	// OpenOnly keeps cab rides whose status is open. Ignored for other types.
	OpenOnly bool
	// Match is applied in memory after the query.
	Match func(models.Listing) bool
}

// Destination returns where a listing is headed.
func Destination(l models.Listing) string {
	switch v := l.(type) {
	case models.CabRide:
		return v.ToLocation
	case models.Trip:
		return v.Destination
	case models.Outing:
		return v.Destination
	}
	return ""
}

// DestinationContains matches listings whose destination contains substr,
// ignoring case.
func DestinationContains(substr string) func(models.Listing) bool {
	substr = strings.ToLower(substr)
	return func(l models.Listing) bool {
		return strings.Contains(strings.ToLower(Destination(l)), substr)
	}
}

// Joinable reports whether userID may be offered a join on l: it is not
// their own listing and, for cab rides, the ride is still open.
func Joinable(l models.Listing, userID string) bool {
	if l.OwnerID() == userID {
		return false
	}
	if ride, ok := l.(models.CabRide); ok {
		return ride.Status == models.RideOpen
	}
	return true
}

// Repository is the per-category listing store
type Repository struct {
	store    store.Store
	events   events.Publisher
	validate *validator.Validate
}

// NewRepository creates a listing repository
func NewRepository(st store.Store, pub events.Publisher) *Repository {
	v := validator.New()
	v.SetTagName("binding")
	return &Repository{store: st, events: pub, validate: v}
}

// List returns listings of type t in their natural order: cab rides by
// datetime, trips by start date, outings by time.
func (r *Repository) List(ctx context.Context, t models.ListingType, f Filter) ([]models.Listing, error) {
	k, err := lookup(t)
	if err != nil {
		return nil, err
	}

	q := store.Query{}
	if f.OwnerID != "" {
		q.Filters = append(q.Filters, store.Eq("created_by", f.OwnerID))
	}
	if f.OpenOnly && t == models.ListingCab {
		q.Filters = append(q.Filters, store.Eq("status", models.RideOpen))
	}

	all, err := k.fetch(ctx, r.store, q.Asc(k.orderBy))
	if err != nil {
		return nil, &OpError{Op: OpFetch, Type: t, Err: err}
	}

	if f.Match == nil {
		return all, nil
	}
	matched := make([]models.Listing, 0, len(all))
	for _, l := range all {
		if f.Match(l) {
			matched = append(matched, l)
		}
	}
	return matched, nil
}

// Get resolves a tagged reference. A missing row, or an ID that cannot
// name one, is ErrNotFound.
func (r *Repository) Get(ctx context.Context, ref models.ListingRef) (models.Listing, error) {
	k, err := lookup(ref.Type)
	if err != nil {
		return nil, err
	}
	if !models.ValidID(ref.ID) {
		return nil, ErrNotFound
	}

	rows, err := k.fetch(ctx, r.store, store.Where(store.Eq("id", ref.ID)).Take(1))
	if err != nil {
		return nil, &OpError{Op: OpFetch, Type: ref.Type, Err: err}
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

// Create validates a draft and stores it as a listing owned by ownerID.
func (r *Repository) Create(ctx context.Context, d Draft, ownerID string) (models.Listing, error) {
	t := d.ListingType()
	if err := r.validate.Struct(d); err != nil {
		return nil, &ValidationError{Err: err}
	}

	l, err := d.insert(ctx, r.store, ownerID)
	if err != nil {
		return nil, &OpError{Op: OpCreate, Type: t, Err: err}
	}

	r.events.Publish(ctx, events.ListingEvent(events.ListingCreated, l.Ref(), ownerID))
	return l, nil
}

// Delete removes a listing. Only its owner may delete it.
func (r *Repository) Delete(ctx context.Context, ref models.ListingRef, requesterID string) error {
	k, err := lookup(ref.Type)
	if err != nil {
		return err
	}

	l, err := r.Get(ctx, ref)
	if err != nil {
		var oerr *OpError
		if errors.As(err, &oerr) {
			oerr.Op = OpDelete
		}
		return err
	}
	if l.OwnerID() != requesterID {
		return ErrNotOwner
	}

	n, err := r.store.Delete(ctx, k.model(), []store.Filter{
		store.Eq("id", ref.ID),
		store.Eq("created_by", requesterID),
	})
	if err != nil {
		return &OpError{Op: OpDelete, Type: ref.Type, Err: err}
	}
	if n == 0 {
		return ErrNotFound
	}

	r.events.Publish(ctx, events.ListingEvent(events.ListingDeleted, ref, requesterID))
	return nil
}

// Close marks an open cab ride closed. Closing a ride that is already
// closed is a no-op.
func (r *Repository) Close(ctx context.Context, rideID string) error {
	if !models.ValidID(rideID) {
		return ErrNotFound
	}
	n, err := r.store.Update(ctx, &models.CabRide{},
		[]store.Filter{store.Eq("id", rideID), store.Eq("status", models.RideOpen)},
		map[string]any{"status": models.RideClosed},
	)
	if err != nil {
		return &OpError{Op: OpClose, Type: models.ListingCab, Err: err}
	}

	if n > 0 {
		ref := models.ListingRef{Type: models.ListingCab, ID: rideID}
		r.events.Publish(ctx, events.ListingEvent(events.ListingClosed, ref, ""))
	}
	return nil
}
