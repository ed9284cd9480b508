package listings

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/models"
)

var (
	ErrNotFound    = errors.New("listing not found")
	ErrNotOwner    = errors.New("listing belongs to another user")
	ErrUnknownType = errors.New("unknown listing type")
)

// ValidationError reports a draft that failed validation
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Op names a failed listing operation
type Op string

const (
	OpFetch  Op = "fetch"
	OpCreate Op = "create"
	OpDelete Op = "delete"
	OpClose  Op = "close"
	OpJoin   Op = "join"
	OpLeave  Op = "leave"
)

// OpError is a storage failure during a listing operation. Message is the
// text shown to users.
type OpError struct {
	Op   Op
	Type models.ListingType
	Err  error
}

func (e *OpError) Error() string {
	return e.Message() + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Message returns the user-facing description of the failure.
func (e *OpError) Message() string {
	k := kinds[e.Type]
	switch e.Op {
	case OpFetch:
		return "Failed to fetch " + k.plural
	case OpCreate:
		return "Failed to create " + k.noun
	case OpJoin:
		return "Failed to join " + k.noun
	case OpDelete:
		return "Failed to delete listing"
	case OpLeave:
		return "Failed to leave"
	}
	return "Failed to " + string(e.Op) + " " + k.noun
}

// RespondError writes the JSON error matching err.
func RespondError(c *gin.Context, err error) {
	var verr *ValidationError
	var oerr *OpError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, ErrUnknownType):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown listing type"})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own listings"})
	case errors.As(err, &oerr):
		log.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": oerr.Message()})
	default:
		log.Printf("unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
