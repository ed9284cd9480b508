package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/events"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/joins"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/listings"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/models"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/store"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/store/storemock"
	"go.uber.org/mock/gomock"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	models.AutoMigrate(db)
	return db
}

func newAggregator(st store.Store) (*Aggregator, *listings.Repository, *joins.Ledger) {
	repo := listings.NewRepository(st, events.Discard)
	ledger := joins.NewLedger(st, repo, events.Discard)
	return NewAggregator(repo, ledger), repo, ledger
}

var start = time.Date(2025, 5, 4, 9, 0, 0, 0, time.UTC)

func seed(t *testing.T, repo *listings.Repository, owner string) (ride, trip, outing models.Listing) {
	t.Helper()
	ctx := context.Background()
	var err error

	outing, err = repo.Create(ctx, &listings.OutingDraft{
		OutingType: "Movie", Destination: "PVR", PeopleCount: 5, MeetingPoint: "Main Gate", Time: start,
	}, owner)
	if err != nil {
		t.Fatalf("Failed to create outing: %v", err)
	}
	trip, err = repo.Create(ctx, &listings.TripDraft{
		State: "Kerala", District: "Idukki", Destination: "Munnar", PeopleCount: 4,
		Accommodation: "Resort", StartDate: start, ReturnDate: start.Add(72 * time.Hour),
	}, owner)
	if err != nil {
		t.Fatalf("Failed to create trip: %v", err)
	}
	ride, err = repo.Create(ctx, &listings.CabRideDraft{
		FromLocation: "Men's Hostel", Kind: listings.KindAirport, Datetime: start, Seats: 4, Contact: "1",
	}, owner)
	if err != nil {
		t.Fatalf("Failed to create ride: %v", err)
	}
	return ride, trip, outing
}

func TestMyListings(t *testing.T) {
	agg, repo, _ := newAggregator(store.New(setupTestDB(t)))
	ride, trip, outing := seed(t, repo, "alice")
	seed(t, repo, "bob")

	entries, err := agg.MyListings(context.Background(), "alice")
	if err != nil {
		t.Fatalf("MyListings failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	want := []Entry{
		{ID: ride.Ref().ID, Category: models.ListingCab, Title: "To Airport", Subtitle: "From Men's Hostel • 4 seats", Status: models.RideOpen},
		{ID: trip.Ref().ID, Category: models.ListingTrip, Title: "Munnar", Subtitle: "Idukki, Kerala • 4 people"},
		{ID: outing.Ref().ID, Category: models.ListingOuting, Title: "Movie at PVR", Subtitle: "Meet at Main Gate • 5 people"},
	}
	for i, w := range want {
		got := entries[i]
		if got.ID != w.ID || got.Category != w.Category || got.Title != w.Title || got.Subtitle != w.Subtitle || got.Status != w.Status {
			t.Errorf("Entry %d = %+v, want %+v", i, got, w)
		}
		if !got.PrimaryDate.Equal(start) {
			t.Errorf("Entry %d primary date = %v, want %v", i, got.PrimaryDate, start)
		}
	}
}

func TestMyListingsAfterDelete(t *testing.T) {
	agg, repo, _ := newAggregator(store.New(setupTestDB(t)))
	_, trip, _ := seed(t, repo, "alice")

	if err := repo.Delete(context.Background(), trip.Ref(), "alice"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	entries, _ := agg.MyListings(context.Background(), "alice")
	for _, e := range entries {
		if e.ID == trip.Ref().ID {
			t.Error("Deleted trip still listed")
		}
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 entries, got %d", len(entries))
	}
}

func TestMyJoinsDropsDeletedListings(t *testing.T) {
	agg, repo, ledger := newAggregator(store.New(setupTestDB(t)))
	ctx := context.Background()
	ride, trip, outing := seed(t, repo, "alice")

	for _, l := range []models.Listing{ride, trip, outing} {
		if _, err := ledger.Join(ctx, "bob", l.Ref()); err != nil {
			t.Fatalf("Join failed: %v", err)
		}
	}
	if err := repo.Delete(ctx, trip.Ref(), "alice"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	entries, err := agg.MyJoins(ctx, "bob")
	if err != nil {
		t.Fatalf("MyJoins failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	titles := map[string]string{}
	for _, e := range entries {
		if e.JoinID == "" || e.JoinedAt.IsZero() {
			t.Errorf("Entry missing join details: %+v", e)
		}
		titles[e.Title] = e.Subtitle
	}
	if titles["Cab to Airport"] != "From Men's Hostel" {
		t.Errorf("Unexpected cab entry, got %v", titles)
	}
	if titles["Movie at PVR"] != "Meet at Main Gate" {
		t.Errorf("Unexpected outing entry, got %v", titles)
	}
	if _, ok := titles["Trip to Munnar"]; ok {
		t.Error("Join on deleted trip should be dropped")
	}
}

func TestMyJoinsEmpty(t *testing.T) {
	agg, _, _ := newAggregator(store.New(setupTestDB(t)))

	entries, err := agg.MyJoins(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("MyJoins failed: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("Expected empty, non-nil entries, got %v", entries)
	}
}

func TestMyListingsFailsWhole(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := storemock.NewMockStore(ctrl)

	st.EXPECT().
		Select(gomock.Any(), gomock.AssignableToTypeOf(&[]models.Trip{}), gomock.Any()).
		Return(errors.New("connection reset"))
	st.EXPECT().
		Select(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	agg, _, _ := newAggregator(st)

	entries, err := agg.MyListings(context.Background(), "alice")
	if !errors.Is(err, ErrLoad) {
		t.Errorf("Expected ErrLoad, got %v", err)
	}
	if entries != nil {
		t.Errorf("Expected no partial results, got %v", entries)
	}
}

func TestMyJoinsFailsOnResolveError(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := storemock.NewMockStore(ctrl)

	st.EXPECT().
		Select(gomock.Any(), gomock.AssignableToTypeOf(&[]models.JoinRequest{}), gomock.Any()).
		DoAndReturn(func(_ context.Context, dest any, _ store.Query) error {
			*dest.(*[]models.JoinRequest) = []models.JoinRequest{
				{ID: "j1", UserID: "bob", ListingType: models.ListingOuting, ListingID: "0b6f1c52-3a5e-4f7d-9c1a-2e8d4b7a6f10"},
			}
			return nil
		})
	st.EXPECT().
		Select(gomock.Any(), gomock.AssignableToTypeOf(&[]models.Outing{}), gomock.Any()).
		Return(errors.New("timeout"))

	agg, _, _ := newAggregator(st)

	if _, err := agg.MyJoins(context.Background(), "bob"); !errors.Is(err, ErrLoad) {
		t.Errorf("Expected ErrLoad, got %v", err)
	}
}

func TestEntriesCarryCategory(t *testing.T) {
	for _, v := range []any{
		Entry{ID: "r1", Category: models.ListingCab},
		JoinEntry{JoinID: "j1", ListingID: "r1", Category: models.ListingCab},
	} {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		var fields map[string]any
		json.Unmarshal(b, &fields)

		if fields["category"] != "cab" {
			t.Errorf("Expected category cab in %s", b)
		}
		if _, ok := fields["type"]; ok {
			t.Errorf("Unexpected type key in %s", b)
		}
	}
}
