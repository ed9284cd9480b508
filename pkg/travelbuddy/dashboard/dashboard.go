// Package dashboard builds the "my listings" and "my joins" views.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/joins"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/listings"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/models"
	"golang.org/x/sync/errgroup"
)

// ErrLoad wraps any failure while building a view. Views are all or
// nothing.
var ErrLoad = errors.New("failed to load dashboard data")

// resolveLimit caps concurrent listing lookups in MyJoins.
const resolveLimit = 8

// Entry is one of the user's own listings
type Entry struct {
	ID          string             `json:"id"`
	Category    models.ListingType `json:"category"`
	Title       string             `json:"title"`
	Subtitle    string             `json:"subtitle"`
	PrimaryDate time.Time          `json:"primary_date"`
	Status      models.RideStatus  `json:"status,omitempty"`
}

// JoinEntry is a listing the user has joined
type JoinEntry struct {
	JoinID      string             `json:"join_id"`
	ListingID   string             `json:"listing_id"`
	Category    models.ListingType `json:"category"`
	Title       string             `json:"title"`
	Subtitle    string             `json:"subtitle"`
	PrimaryDate time.Time          `json:"primary_date"`
	JoinedAt    time.Time          `json:"joined_at"`
}

// Aggregator assembles dashboard views from listings and the join ledger
type Aggregator struct {
	listings *listings.Repository
	ledger   *joins.Ledger
}

// NewAggregator creates a dashboard aggregator
func NewAggregator(repo *listings.Repository, ledger *joins.Ledger) *Aggregator {
	return &Aggregator{listings: repo, ledger: ledger}
}

func loadFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrLoad, err)
}

// MyListings fetches the user's cab rides, trips and outings concurrently
// and returns them in that order.
func (a *Aggregator) MyListings(ctx context.Context, userID string) ([]Entry, error) {
	results := make([][]models.Listing, len(models.ListingTypes))

	g, gctx := errgroup.WithContext(ctx)
	for i, t := range models.ListingTypes {
		i, t := i, t
		g.Go(func() error {
			found, err := a.listings.List(gctx, t, listings.Filter{OwnerID: userID})
			if err != nil {
				return err
			}
			results[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, loadFailed(err)
	}

	entries := []Entry{}
	for _, found := range results {
		for _, l := range found {
			entries = append(entries, listingEntry(l))
		}
	}
	return entries, nil
}

// MyJoins resolves each of the user's join requests to its listing. Joins
// whose listing no longer exists are left out.
func (a *Aggregator) MyJoins(ctx context.Context, userID string) ([]JoinEntry, error) {
	rows, err := a.ledger.ListFor(ctx, userID)
	if err != nil {
		return nil, loadFailed(err)
	}

	resolved := make([]*JoinEntry, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveLimit)
	for i, jr := range rows {
		i, jr := i, jr
		g.Go(func() error {
			l, err := a.listings.Get(gctx, jr.Listing())
			if errors.Is(err, listings.ErrNotFound) || errors.Is(err, listings.ErrUnknownType) {
				return nil
			}
			if err != nil {
				return err
			}
			entry := joinEntry(jr, l)
			resolved[i] = &entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, loadFailed(err)
	}

	entries := []JoinEntry{}
	for _, e := range resolved {
		if e != nil {
			entries = append(entries, *e)
		}
	}
	return entries, nil
}

func listingEntry(l models.Listing) Entry {
	e := Entry{ID: l.Ref().ID, Category: l.Ref().Type}
	switch v := l.(type) {
	case models.CabRide:
		e.Title = "To " + v.ToLocation
		e.Subtitle = fmt.Sprintf("From %s • %d seats", v.FromLocation, v.Seats)
		e.PrimaryDate = v.Datetime
		e.Status = v.Status
	case models.Trip:
		e.Title = v.Destination
		e.Subtitle = fmt.Sprintf("%s, %s • %d people", v.District, v.State, v.PeopleCount)
		e.PrimaryDate = v.StartDate
	case models.Outing:
		e.Title = v.OutingType + " at " + v.Destination
		e.Subtitle = fmt.Sprintf("Meet at %s • %d people", v.MeetingPoint, v.PeopleCount)
		e.PrimaryDate = v.Time
	}
	return e
}

func joinEntry(jr models.JoinRequest, l models.Listing) JoinEntry {
	e := JoinEntry{
		JoinID:    jr.ID,
		ListingID: jr.ListingID,
		Category:  jr.ListingType,
		JoinedAt:  jr.JoinedAt,
	}
	switch v := l.(type) {
	case models.CabRide:
		e.Title = "Cab to " + v.ToLocation
		e.Subtitle = "From " + v.FromLocation
		e.PrimaryDate = v.Datetime
	case models.Trip:
		e.Title = "Trip to " + v.Destination
		e.Subtitle = v.District + ", " + v.State
		e.PrimaryDate = v.StartDate
	case models.Outing:
		e.Title = v.OutingType + " at " + v.Destination
		e.Subtitle = "Meet at " + v.MeetingPoint
		e.PrimaryDate = v.Time
	}
	return e
}
