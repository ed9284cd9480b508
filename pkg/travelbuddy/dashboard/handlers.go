package dashboard

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/auth"
)

// Handler serves the dashboard views
type Handler struct {
	agg *Aggregator
}

// NewHandler creates a new dashboard handler
func NewHandler(agg *Aggregator) *Handler {
	return &Handler{agg: agg}
}

// MyListings returns the caller's listings
// @Summary My listings
// @Description The caller's cab rides, trips and outings, in that order
// @Tags dashboard
// @Produce json
// @Success 200 {array} Entry
// @Failure 500 {object} map[string]string "Failed to load dashboard data"
// @Security BearerAuth
// @Router /dashboard/listings [get]
func (h *Handler) MyListings(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	entries, err := h.agg.MyListings(c.Request.Context(), userID)
	if err != nil {
		log.Printf("dashboard listings for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard data"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// MyJoins returns the listings the caller has joined
// @Summary My joins
// @Tags dashboard
// @Produce json
// @Success 200 {array} JoinEntry
// @Failure 500 {object} map[string]string "Failed to load dashboard data"
// @Security BearerAuth
// @Router /dashboard/joins [get]
func (h *Handler) MyJoins(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	entries, err := h.agg.MyJoins(c.Request.Context(), userID)
	if err != nil {
		log.Printf("dashboard joins for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard data"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// RegisterRoutes registers dashboard routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/listings", h.MyListings)
	rg.GET("/joins", h.MyJoins)
}
