// Package joins records which users have joined which listings and closes
// cab rides once they fill up.
package joins

import (
	"context"
	"errors"
	"log"

	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/capacity"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/events"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/listings"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/models"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/store"
)

// ErrNotFound is returned when a join request does not exist or belongs to
// someone else.
var ErrNotFound = errors.New("join request not found")

// Outcome is the result of a join attempt
type Outcome int

const (
	Failed Outcome = iota
	Accepted
	AlreadyJoined
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case AlreadyJoined:
		return "already_joined"
	}
	return "failed"
}

// Result describes a join attempt. Request is the new row when accepted
// and the existing one when already joined. For cab rides Participants
// counts everyone riding, and Closed is set when this join filled the ride.
type Result struct {
	Outcome      Outcome
	Request      *models.JoinRequest
	Participants int
	Closed       bool
}

// Ledger is the join-request store
type Ledger struct {
	store    store.Store
	listings *listings.Repository
	events   events.Publisher
}

// NewLedger creates a join-request ledger
func NewLedger(st store.Store, repo *listings.Repository, pub events.Publisher) *Ledger {
	return &Ledger{store: st, listings: repo, events: pub}
}

func joinFailed(t models.ListingType, err error) error {
	var oerr *listings.OpError
	if errors.As(err, &oerr) {
		err = oerr.Err
	}
	return &listings.OpError{Op: listings.OpJoin, Type: t, Err: err}
}

// Join adds userID to the listing behind ref.
//
// The duplicate check and the insert are separate round trips with no
// transaction, so two concurrent joins by the same user can both succeed.
// Closed rides and the caller's own listings are not refused here.
func (l *Ledger) Join(ctx context.Context, userID string, ref models.ListingRef) (Result, error) {
	target, err := l.listings.Get(ctx, ref)
	if err != nil {
		if errors.Is(err, listings.ErrNotFound) || errors.Is(err, listings.ErrUnknownType) {
			return Result{Outcome: Failed}, err
		}
		return Result{Outcome: Failed}, joinFailed(ref.Type, err)
	}

	var existing []models.JoinRequest
	err = l.store.Select(ctx, &existing, store.Where(
		store.Eq("user_id", userID),
		store.Eq("listing_type", ref.Type),
		store.Eq("listing_id", ref.ID),
	).Take(1))
	if err != nil {
		return Result{Outcome: Failed}, joinFailed(ref.Type, err)
	}
	if len(existing) > 0 {
		return Result{Outcome: AlreadyJoined, Request: &existing[0]}, nil
	}

	jr := models.JoinRequest{
		UserID:      userID,
		ListingType: ref.Type,
		ListingID:   ref.ID,
	}
	if err := l.store.Insert(ctx, &jr); err != nil {
		return Result{Outcome: Failed}, joinFailed(ref.Type, err)
	}
	l.events.Publish(ctx, events.ListingEvent(events.JoinAccepted, ref, userID))

	result := Result{Outcome: Accepted, Request: &jr}

	ride, ok := target.(models.CabRide)
	if !ok {
		return result, nil
	}

	// The join is recorded; failures while closing only get logged.
	count, err := l.CountFor(ctx, ref)
	if err != nil {
		log.Printf("Failed to count joins for %s: %v", ref, err)
		return result, nil
	}
	result.Participants = capacity.Participants(count)
	if capacity.IsFull(ride.Seats, count) {
		if err := l.listings.Close(ctx, ride.ID); err != nil {
			log.Printf("Failed to close ride %s: %v", ride.ID, err)
			return result, nil
		}
		result.Closed = true
	}
	return result, nil
}

// CountFor returns how many join requests a listing has.
func (l *Ledger) CountFor(ctx context.Context, ref models.ListingRef) (int, error) {
	var rows []models.JoinRequest
	err := l.store.Select(ctx, &rows, store.Where(
		store.Eq("listing_type", ref.Type),
		store.Eq("listing_id", ref.ID),
	))
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// ListFor returns a user's join requests, newest first. Rows tagged with a
// listing type this build does not know are skipped.
func (l *Ledger) ListFor(ctx context.Context, userID string) ([]models.JoinRequest, error) {
	var rows []models.JoinRequest
	err := l.store.Select(ctx, &rows, store.Where(store.Eq("user_id", userID)).Desc("joined_at"))
	if err != nil {
		return nil, err
	}

	known := rows[:0]
	for _, row := range rows {
		if _, err := models.ParseListingType(string(row.ListingType)); err != nil {
			log.Printf("Skipping join request %s: %v", row.ID, err)
			continue
		}
		known = append(known, row)
	}
	return known, nil
}

// Leave deletes one of the requester's join requests. A cab ride closed by
// earlier joins stays closed.
func (l *Ledger) Leave(ctx context.Context, joinID, requesterID string) error {
	if !models.ValidID(joinID) {
		return ErrNotFound
	}

	var rows []models.JoinRequest
	err := l.store.Select(ctx, &rows, store.Where(
		store.Eq("id", joinID),
		store.Eq("user_id", requesterID),
	).Take(1))
	if err != nil {
		return &listings.OpError{Op: listings.OpLeave, Err: err}
	}
	if len(rows) == 0 {
		return ErrNotFound
	}

	n, err := l.store.Delete(ctx, &models.JoinRequest{}, []store.Filter{
		store.Eq("id", joinID),
		store.Eq("user_id", requesterID),
	})
	if err != nil {
		return &listings.OpError{Op: listings.OpLeave, Type: rows[0].ListingType, Err: err}
	}
	if n == 0 {
		return ErrNotFound
	}

	l.events.Publish(ctx, events.ListingEvent(events.JoinLeft, rows[0].Listing(), requesterID))
	return nil
}
