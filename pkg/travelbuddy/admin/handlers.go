package admin

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/models"
	"gorm.io/gorm"
)

// Handler handles admin requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new admin handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// UserResponse represents user data in admin responses
type UserResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	CreatedAt    string `json:"created_at"`
	ListingCount int64  `json:"listing_count"`
	JoinCount    int64  `json:"join_count"`
}

// StatsResponse represents platform statistics
type StatsResponse struct {
	TotalUsers   int64 `json:"total_users"`
	AdminUsers   int64 `json:"admin_users"`
	OpenRides    int64 `json:"open_rides"`
	ClosedRides  int64 `json:"closed_rides"`
	TotalTrips   int64 `json:"total_trips"`
	TotalOutings int64 `json:"total_outings"`
	JoinRequests int64 `json:"join_requests"`
}

// ListUsers godoc
// @Summary      List users
// @Description  Lists every user with listing and join counts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        q     query  string  false  "Search by email or name"
// @Param        role  query  string  false  "Filter by role"
// @Success      200  {array}   UserResponse
// @Failure      403  {object}  map[string]string
// @Router       /admin/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()
	var users []models.User

	query := h.db.WithContext(ctx).Order("created_at DESC")

	if search := c.Query("q"); search != "" {
		query = query.Where("email LIKE ? OR name LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	if err := query.Find(&users).Error; err != nil {
		log.Printf("Failed to fetch users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	ids := make([]string, len(users))
	for i, user := range users {
		ids[i] = user.ID
	}
	listingCounts, joinCounts, err := h.userCounts(ctx, ids)
	if err != nil {
		log.Printf("Failed to count user activity: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = UserResponse{
			ID:           user.ID,
			Email:        user.Email,
			Name:         user.Name,
			Role:         string(user.Role),
			CreatedAt:    user.CreatedAt.Format("2006-01-02T15:04:05Z"),
			ListingCount: listingCounts[user.ID],
			JoinCount:    joinCounts[user.ID],
		}
	}

	c.JSON(http.StatusOK, responses)
}

// Stats godoc
// @Summary      Platform statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatsResponse
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /admin/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	var stats StatsResponse

	counts := []struct {
		dest  *int64
		model any
		where string
		args  []any
	}{
		{&stats.TotalUsers, &models.User{}, "", nil},
		{&stats.AdminUsers, &models.User{}, "role = ?", []any{models.RoleAdmin}},
		{&stats.OpenRides, &models.CabRide{}, "status = ?", []any{models.RideOpen}},
		{&stats.ClosedRides, &models.CabRide{}, "status = ?", []any{models.RideClosed}},
		{&stats.TotalTrips, &models.Trip{}, "", nil},
		{&stats.TotalOutings, &models.Outing{}, "", nil},
		{&stats.JoinRequests, &models.JoinRequest{}, "", nil},
	}

	for _, q := range counts {
		tx := h.db.WithContext(c.Request.Context()).Model(q.model)
		if q.where != "" {
			tx = tx.Where(q.where, q.args...)
		}
		if err := tx.Count(q.dest).Error; err != nil {
			log.Printf("Failed to count %T: %v", q.model, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}
	}

	c.JSON(http.StatusOK, stats)
}

type userCount struct {
	UserID string
	N      int64
}

// countBy counts rows of model per value of column, restricted to ids.
func (h *Handler) countBy(ctx context.Context, model any, column string, ids []string) (map[string]int64, error) {
	var rows []userCount
	err := h.db.WithContext(ctx).Model(model).
		Select(column+" AS user_id, COUNT(*) AS n").
		Where(column+" IN ?", ids).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.UserID] = r.N
	}
	return counts, nil
}

// userCounts returns owned listings and join requests per user, one grouped
// query per table.
func (h *Handler) userCounts(ctx context.Context, ids []string) (listings, joins map[string]int64, err error) {
	listings = make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return listings, map[string]int64{}, nil
	}

	for _, model := range []any{&models.CabRide{}, &models.Trip{}, &models.Outing{}} {
		owned, err := h.countBy(ctx, model, "created_by", ids)
		if err != nil {
			return nil, nil, err
		}
		for id, n := range owned {
			listings[id] += n
		}
	}

	joins, err = h.countBy(ctx, &models.JoinRequest{}, "user_id", ids)
	if err != nil {
		return nil, nil, err
	}
	return listings, joins, nil
}

// RegisterRoutes registers admin routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.Stats)
	rg.GET("/users", h.ListUsers)
}
