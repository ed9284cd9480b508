package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/auth"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func createTestUser(t *testing.T, db *gorm.DB, email, name string, role models.Role) *models.User {
	user := &models.User{Email: email, Name: name, Role: role}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func createTestRide(t *testing.T, db *gorm.DB, ownerID string, status models.RideStatus) *models.CabRide {
	ride := &models.CabRide{
		CreatedBy:    ownerID,
		FromLocation: "Main Gate",
		ToLocation:   "Airport",
		Datetime:     time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC),
		Seats:        3,
		Contact:      "9999999999",
		Status:       status,
	}
	if err := db.Create(ride).Error; err != nil {
		t.Fatalf("Failed to create test ride: %v", err)
	}
	return ride
}

func asAdmin(userID string, next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(auth.ContextKeyUserID, userID)
		c.Set(auth.ContextKeyRole, string(models.RoleAdmin))
		next(c)
	}
}

func TestListUsers(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter()
	h := NewHandler(db)

	admin := createTestUser(t, db, "admin@vit.ac.in", "Admin User", models.RoleAdmin)
	createTestUser(t, db, "user1@vit.ac.in", "User One", models.RoleUser)
	createTestUser(t, db, "user2@vit.ac.in", "User Two", models.RoleUser)

	r.GET("/admin/users", asAdmin(admin.ID, h.ListUsers))

	req := httptest.NewRequest("GET", "/admin/users", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var users []UserResponse
	if err := json.Unmarshal(w.Body.Bytes(), &users); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(users) != 3 {
		t.Errorf("Expected 3 users, got %d", len(users))
	}
}

func TestListUsersWithSearchAndRole(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter()
	h := NewHandler(db)

	admin := createTestUser(t, db, "admin@vit.ac.in", "Admin User", models.RoleAdmin)
	createTestUser(t, db, "john@vit.ac.in", "John Doe", models.RoleUser)
	createTestUser(t, db, "jane@vit.ac.in", "Jane Doe", models.RoleUser)

	r.GET("/admin/users", asAdmin(admin.ID, h.ListUsers))

	tests := []struct {
		query string
		want  int
	}{
		{"?q=john", 1},
		{"?q=Doe", 2},
		{"?role=admin", 1},
		{"?role=user&q=jane", 1},
		{"?q=nobody", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin/users"+tt.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}

			var users []UserResponse
			json.Unmarshal(w.Body.Bytes(), &users)

			if len(users) != tt.want {
				t.Errorf("Expected %d users, got %d", tt.want, len(users))
			}
		})
	}
}

func TestListUsersCounts(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter()
	h := NewHandler(db)

	admin := createTestUser(t, db, "admin@vit.ac.in", "Admin", models.RoleAdmin)
	user := createTestUser(t, db, "user@vit.ac.in", "Test User", models.RoleUser)

	ride := createTestRide(t, db, user.ID, models.RideOpen)
	db.Create(&models.Outing{
		CreatedBy:    user.ID,
		OutingType:   "Movie",
		Destination:  "PVR",
		PeopleCount:  4,
		MeetingPoint: "Main Gate",
		Time:         time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC),
	})
	db.Create(&models.JoinRequest{UserID: admin.ID, ListingType: models.ListingCab, ListingID: ride.ID})

	r.GET("/admin/users", asAdmin(admin.ID, h.ListUsers))

	req := httptest.NewRequest("GET", "/admin/users", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var users []UserResponse
	json.Unmarshal(w.Body.Bytes(), &users)

	byEmail := make(map[string]UserResponse)
	for _, u := range users {
		byEmail[u.Email] = u
	}

	if got := byEmail[user.Email]; got.ListingCount != 2 || got.JoinCount != 0 {
		t.Errorf("Expected 2 listings and 0 joins for user, got %d and %d", got.ListingCount, got.JoinCount)
	}
	if got := byEmail[admin.Email]; got.ListingCount != 0 || got.JoinCount != 1 {
		t.Errorf("Expected 0 listings and 1 join for admin, got %d and %d", got.ListingCount, got.JoinCount)
	}
	if byEmail[admin.Email].Role != "admin" {
		t.Errorf("Expected admin role, got %s", byEmail[admin.Email].Role)
	}
}

func TestStats(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter()
	h := NewHandler(db)

	admin := createTestUser(t, db, "admin@vit.ac.in", "Admin", models.RoleAdmin)
	user := createTestUser(t, db, "user@vit.ac.in", "User", models.RoleUser)

	open := createTestRide(t, db, user.ID, models.RideOpen)
	createTestRide(t, db, user.ID, models.RideClosed)
	createTestRide(t, db, admin.ID, models.RideClosed)
	db.Create(&models.Trip{
		CreatedBy:     user.ID,
		State:         "Kerala",
		District:      "Idukki",
		Destination:   "Munnar",
		PeopleCount:   4,
		Accommodation: "Homestay",
		StartDate:     time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		ReturnDate:    time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC),
	})
	db.Create(&models.JoinRequest{UserID: admin.ID, ListingType: models.ListingCab, ListingID: open.ID})

	r.GET("/admin/stats", asAdmin(admin.ID, h.Stats))

	req := httptest.NewRequest("GET", "/admin/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var stats StatsResponse
	json.Unmarshal(w.Body.Bytes(), &stats)

	if stats.TotalUsers != 2 {
		t.Errorf("Expected 2 users, got %d", stats.TotalUsers)
	}
	if stats.AdminUsers != 1 {
		t.Errorf("Expected 1 admin, got %d", stats.AdminUsers)
	}
	if stats.OpenRides != 1 || stats.ClosedRides != 2 {
		t.Errorf("Expected 1 open and 2 closed rides, got %d and %d", stats.OpenRides, stats.ClosedRides)
	}
	if stats.TotalTrips != 1 {
		t.Errorf("Expected 1 trip, got %d", stats.TotalTrips)
	}
	if stats.TotalOutings != 0 {
		t.Errorf("Expected 0 outings, got %d", stats.TotalOutings)
	}
	if stats.JoinRequests != 1 {
		t.Errorf("Expected 1 join request, got %d", stats.JoinRequests)
	}
}

func TestDatabaseErrorsAnswer500(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter()
	h := NewHandler(db)

	admin := createTestUser(t, db, "admin@vit.ac.in", "Admin", models.RoleAdmin)
	r.GET("/admin/users", asAdmin(admin.ID, h.ListUsers))
	r.GET("/admin/stats", asAdmin(admin.ID, h.Stats))

	sqlDB, _ := db.DB()
	sqlDB.Close()

	for _, path := range []string{"/admin/users", "/admin/stats"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("%s: expected status 500, got %d: %s", path, w.Code, w.Body.String())
		}
	}
}

func TestListUsersIgnoresDeletedListings(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter()
	h := NewHandler(db)

	admin := createTestUser(t, db, "admin@vit.ac.in", "Admin", models.RoleAdmin)
	user := createTestUser(t, db, "user@vit.ac.in", "User", models.RoleUser)
	createTestRide(t, db, user.ID, models.RideOpen)
	gone := createTestRide(t, db, user.ID, models.RideOpen)
	db.Delete(gone)

	r.GET("/admin/users", asAdmin(admin.ID, h.ListUsers))

	req := httptest.NewRequest("GET", "/admin/users?q=user@", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var users []UserResponse
	json.Unmarshal(w.Body.Bytes(), &users)
	if len(users) != 1 || users[0].ListingCount != 1 {
		t.Errorf("Expected one user with 1 listing, got %+v", users)
	}
}

func TestRoutesRequireAdmin(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter()
	h := NewHandler(db)

	user := createTestUser(t, db, "user@vit.ac.in", "User", models.RoleUser)

	group := r.Group("/admin", func(c *gin.Context) {
		c.Set(auth.ContextKeyUserID, user.ID)
		c.Set(auth.ContextKeyRole, string(user.Role))
		c.Next()
	}, auth.RequireAdmin())
	h.RegisterRoutes(group)

	for _, path := range []string{"/admin/users", "/admin/stats"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("%s: expected status 403, got %d", path, w.Code)
		}
	}
}
