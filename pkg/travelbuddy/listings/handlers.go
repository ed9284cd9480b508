package listings

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/auth"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/models"
)

const contextKeyType = "listing_type"

// Handler handles listing requests for every category
type Handler struct {
	repo *Repository
}

// NewHandler creates a new listings handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// ListingResponse wraps a listing with what the caller may do with it
type ListingResponse struct {
	Type     models.ListingType `json:"type"`
	Joinable bool               `json:"joinable"`
	Listing  models.Listing     `json:"listing" swaggertype:"object"`
}

func toResponse(l models.Listing, userID string) ListingResponse {
	return ListingResponse{
		Type:     l.Ref().Type,
		Joinable: Joinable(l, userID),
		Listing:  l,
	}
}

// TypeFrom returns the listing type of a request routed through Group.
func TypeFrom(c *gin.Context) models.ListingType {
	return c.MustGet(contextKeyType).(models.ListingType)
}

// List returns listings of one category
// @Summary List listings
// @Description Cab rides are ordered by datetime, trips by start date and outings by time. Cab rides default to open rides only.
// @Tags listings
// @Produce json
// @Param mine query bool false "Only the caller's listings"
// @Param all query bool false "Include closed cab rides"
// @Param kind query string false "Cab ride destination kind" Enums(airport, station)
// @Success 200 {array} ListingResponse
// @Failure 500 {object} map[string]string "Failed to fetch"
// @Security BearerAuth
// @Router /cab-rides [get]
// @Router /trips [get]
// @Router /outings [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	t := TypeFrom(c)
	mine := c.Query("mine") == "true"

	filter := Filter{
		OpenOnly: !mine && c.Query("all") != "true",
	}
	if mine {
		filter.OwnerID = userID
	}
	if t == models.ListingCab {
		switch kind := c.Query("kind"); kind {
		case "":
		case KindAirport, KindStation:
			filter.Match = DestinationContains(kind)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be airport or station"})
			return
		}
	}

	found, err := h.repo.List(c.Request.Context(), t, filter)
	if err != nil {
		RespondError(c, err)
		return
	}

	responses := make([]ListingResponse, len(found))
	for i, l := range found {
		responses[i] = toResponse(l, userID)
	}
	c.JSON(http.StatusOK, responses)
}

// Create posts a new listing
// @Summary Create a listing
// @Tags listings
// @Accept json
// @Produce json
// @Param request body CabRideDraft true "Listing details (CabRideDraft, TripDraft or OutingDraft)"
// @Success 201 {object} ListingResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 500 {object} map[string]string "Failed to create"
// @Security BearerAuth
// @Router /cab-rides [post]
// @Router /trips [post]
// @Router /outings [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	k, err := lookup(TypeFrom(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	draft := k.newDraft()
	if err := c.ShouldBindJSON(draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	l, err := h.repo.Create(c.Request.Context(), draft, userID)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toResponse(l, userID))
}

// Get returns one listing
// @Summary Get a listing
// @Tags listings
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} ListingResponse
// @Failure 404 {object} map[string]string "Listing not found"
// @Security BearerAuth
// @Router /cab-rides/{id} [get]
// @Router /trips/{id} [get]
// @Router /outings/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	ref := models.ListingRef{Type: TypeFrom(c), ID: c.Param("id")}

	l, err := h.repo.Get(c.Request.Context(), ref)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(l, userID))
}

// Delete removes one of the caller's listings
// @Summary Delete a listing
// @Tags listings
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} map[string]string "Listing deleted"
// @Failure 403 {object} map[string]string "Not the owner"
// @Failure 404 {object} map[string]string "Listing not found"
// @Security BearerAuth
// @Router /cab-rides/{id} [delete]
// @Router /trips/{id} [delete]
// @Router /outings/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	ref := models.ListingRef{Type: TypeFrom(c), ID: c.Param("id")}

	if err := h.repo.Delete(c.Request.Context(), ref, userID); err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted"})
}

// Group returns the router group serving listings of type t, tagging each
// request with the type.
func Group(rg *gin.RouterGroup, t models.ListingType) *gin.RouterGroup {
	g := rg.Group("/" + Path(t))
	g.Use(func(c *gin.Context) {
		c.Set(contextKeyType, t)
		c.Next()
	})
	return g
}

// RegisterRoutes registers listing routes for every category
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	for _, t := range models.ListingTypes {
		g := Group(rg, t)
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/:id", h.Get)
		g.DELETE("/:id", h.Delete)
	}
}
