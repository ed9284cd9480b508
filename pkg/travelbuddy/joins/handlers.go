package joins

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/auth"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/listings"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/models"
)

// Handler handles join and leave requests
type Handler struct {
	ledger *Ledger
}

// NewHandler creates a new joins handler
func NewHandler(ledger *Ledger) *Handler {
	return &Handler{ledger: ledger}
}

// JoinResponse is returned for an accepted join
type JoinResponse struct {
	Message      string             `json:"message"`
	Join         models.JoinRequest `json:"join"`
	Participants int                `json:"participants,omitempty"`
	Closed       bool               `json:"closed"`
}

// Join adds the caller to a listing
// @Summary Join a listing
// @Description Records a join request. Joining a cab ride that reaches its seat count closes it.
// @Tags joins
// @Produce json
// @Param id path string true "Listing ID"
// @Success 201 {object} JoinResponse
// @Failure 404 {object} map[string]string "Listing not found"
// @Failure 409 {object} map[string]string "Already joined"
// @Security BearerAuth
// @Router /cab-rides/{id}/join [post]
// @Router /trips/{id}/join [post]
// @Router /outings/{id}/join [post]
func (h *Handler) Join(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	t := listings.TypeFrom(c)
	ref := models.ListingRef{Type: t, ID: c.Param("id")}

	result, err := h.ledger.Join(c.Request.Context(), userID, ref)
	if err != nil {
		listings.RespondError(c, err)
		return
	}

	if result.Outcome == AlreadyJoined {
		c.JSON(http.StatusConflict, gin.H{"error": "You've already joined this " + listings.Noun(t) + "!"})
		return
	}

	c.JSON(http.StatusCreated, JoinResponse{
		Message:      "You're in!",
		Join:         *result.Request,
		Participants: result.Participants,
		Closed:       result.Closed,
	})
}

// Leave removes one of the caller's join requests
// @Summary Leave a listing
// @Tags joins
// @Produce json
// @Param id path string true "Join request ID"
// @Success 200 {object} map[string]string "Left"
// @Failure 404 {object} map[string]string "Join request not found"
// @Security BearerAuth
// @Router /joins/{id} [delete]
func (h *Handler) Leave(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	if err := h.ledger.Leave(c.Request.Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Join request not found"})
			return
		}
		log.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left successfully"})
}

// List returns the caller's join requests
// @Summary List my join requests
// @Tags joins
// @Produce json
// @Success 200 {array} models.JoinRequest
// @Security BearerAuth
// @Router /joins [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	rows, err := h.ledger.ListFor(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Failed to list joins for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch joins"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// RegisterRoutes registers join routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	for _, t := range models.ListingTypes {
		listings.Group(rg, t).POST("/:id/join", h.Join)
	}
	rg.GET("/joins", h.List)
	rg.DELETE("/joins/:id", h.Leave)
}
