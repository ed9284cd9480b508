package joins

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/auth"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/events"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/listings"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/models"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/store/storemock"
	"go.uber.org/mock/gomock"
)

func setupTestRouter(t *testing.T, f *fixture) (*gin.Engine, *auth.Service) {
	svc := auth.NewService(f.db, auth.NewTokens("test-secret", time.Hour), f.hub)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	api.Use(auth.AuthMiddleware(svc))
	NewHandler(f.ledger).RegisterRoutes(api)
	return r, svc
}

func getAuthHeader(t *testing.T, svc *auth.Service, email string) (string, string) {
	t.Helper()
	ctx := context.Background()
	svc.SignUp(ctx, email, "password123", "")
	session, err := svc.SignIn(ctx, email, "password123")
	if err != nil {
		t.Fatalf("Failed to sign in: %v", err)
	}
	return "Bearer " + session.Token, session.User.ID
}

func request(router *gin.Engine, method, path, header string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	req.Header.Set("Authorization", header)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestJoinAndLeaveEndpoints(t *testing.T) {
	f := setupFixture(t)
	router, svc := setupTestRouter(t, f)
	_, aliceID := getAuthHeader(t, svc, "alice@vit.ac.in")
	bob, _ := getAuthHeader(t, svc, "bob@vit.ac.in")
	ride := f.createRide(t, aliceID, 3)

	resp := request(router, "POST", "/api/cab-rides/"+ride.ID+"/join", bob)
	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var joined JoinResponse
	json.Unmarshal(resp.Body.Bytes(), &joined)
	if joined.Join.ListingType != models.ListingCab || joined.Closed {
		t.Errorf("Unexpected join response %+v", joined)
	}

	resp = request(router, "POST", "/api/cab-rides/"+ride.ID+"/join", bob)
	if resp.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", resp.Code)
	}

	resp = request(router, "GET", "/api/joins", bob)
	var rows []models.JoinRequest
	json.Unmarshal(resp.Body.Bytes(), &rows)
	if len(rows) != 1 {
		t.Errorf("Expected 1 join, got %d", len(rows))
	}

	resp = request(router, "DELETE", "/api/joins/"+joined.Join.ID, bob)
	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.Code)
	}

	resp = request(router, "DELETE", "/api/joins/"+joined.Join.ID, bob)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}

func TestJoinEndpointNotFound(t *testing.T) {
	f := setupFixture(t)
	router, svc := setupTestRouter(t, f)
	bob, _ := getAuthHeader(t, svc, "bob@vit.ac.in")

	ride := f.createRide(t, "alice", 3)

	// a ride ID under the trips path does not resolve
	resp := request(router, "POST", "/api/trips/"+ride.ID+"/join", bob)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestMalformedIDIsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := storemock.NewMockStore(ctrl)
	repo := listings.NewRepository(st, events.Discard)
	h := NewHandler(NewLedger(st, repo, events.Discard))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api", func(c *gin.Context) {
		c.Set(auth.ContextKeyUserID, "8d0c5f4e-2b7a-4c1d-9e3f-6a5b4c3d2e1f")
		c.Next()
	})
	h.RegisterRoutes(api)

	for _, tc := range []struct{ method, path string }{
		{"POST", "/api/outings/abc/join"},
		{"POST", "/api/cab-rides/1/join"},
		{"DELETE", "/api/joins/abc"},
	} {
		resp := request(r, tc.method, tc.path, "")
		if resp.Code != http.StatusNotFound {
			t.Errorf("%s %s: expected status 404, got %d: %s", tc.method, tc.path, resp.Code, resp.Body.String())
		}
	}
}
