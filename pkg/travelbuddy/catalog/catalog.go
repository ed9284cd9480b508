// Package catalog serves the fixed suggestion lists used when creating
// trips and outings.
package catalog

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

// OutingTypes are the suggested outing categories. Outing types are free-form;
// this list only seeds the form.
var OutingTypes = []string{
	"Movie", "Restaurant", "Shopping", "Adventure Sports", "Trekking",
	"Beach", "Museum", "Concert", "Gaming", "Study Group", "Other",
}

// State is a state or union territory with its districts
type State struct {
	Name      string   `json:"name"`
	Districts []string `json:"districts"`
}

// States returns every state sorted by name.
func States() []State {
	names := make([]string, 0, len(stateDistricts))
	for name := range stateDistricts {
		names = append(names, name)
	}
	sort.Strings(names)

	states := make([]State, len(names))
	for i, name := range names {
		states[i] = State{Name: name, Districts: Districts(name)}
	}
	return states
}

// Districts returns the districts of a state, or nil if the state is unknown.
func Districts(state string) []string {
	districts, ok := stateDistricts[state]
	if !ok {
		return nil
	}
	return append([]string(nil), districts...)
}

// Handler serves the catalog
type Handler struct{}

// NewHandler creates a new catalog handler
func NewHandler() *Handler {
	return &Handler{}
}

// ListOutingTypes returns the suggested outing categories
// @Summary List outing types
// @Tags catalog
// @Produce json
// @Success 200 {array} string
// @Router /catalog/outing-types [get]
func (h *Handler) ListOutingTypes(c *gin.Context) {
	c.JSON(http.StatusOK, OutingTypes)
}

// ListStates returns states with their districts
// @Summary List states and districts
// @Tags catalog
// @Produce json
// @Success 200 {array} State
// @Router /catalog/states [get]
func (h *Handler) ListStates(c *gin.Context) {
	c.JSON(http.StatusOK, States())
}

// GetState returns the districts of a single state
// @Summary Get a state's districts
// @Tags catalog
// @Produce json
// @Param name path string true "State name"
// @Success 200 {object} State
// @Failure 404 {object} map[string]string "State not found"
// @Router /catalog/states/{name} [get]
func (h *Handler) GetState(c *gin.Context) {
	name := c.Param("name")
	districts := Districts(name)
	if districts == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "State not found"})
		return
	}
	c.JSON(http.StatusOK, State{Name: name, Districts: districts})
}

// RegisterRoutes registers catalog routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/outing-types", h.ListOutingTypes)
	rg.GET("/states", h.ListStates)
	rg.GET("/states/:name", h.GetState)
}
