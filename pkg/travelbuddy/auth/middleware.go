package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/models"
)

const (
	// ContextKeyUserID is the key for user ID in gin context
	ContextKeyUserID = "user_id"
	// ContextKeyRole is the key for the user's role in gin context
	ContextKeyRole = "role"
	// ContextKeySession is the key for the resolved session in gin context
	ContextKeySession = "session"
)

var errMissingHeader = errors.New("authorization header required")

// BearerToken extracts the token from an "Authorization: Bearer" header
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingHeader
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", ErrInvalidToken
	}
	return parts[1], nil
}

// abortUnauthorized writes the 401 response matching err.
func abortUnauthorized(c *gin.Context, err error) {
	msg := "Invalid token"
	switch {
	case errors.Is(err, errMissingHeader):
		msg = "Authorization header required"
	case errors.Is(err, ErrExpiredToken):
		msg = "Token has expired"
	case errors.Is(err, ErrNoSession):
		msg = "Session has ended"
	}
	c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
	c.Abort()
}

// AuthMiddleware resolves the bearer token to a live session once per
// request and stores the user in the gin context.
func AuthMiddleware(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		session, err := svc.CurrentSession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrExpiredToken) || errors.Is(err, ErrNoSession) {
				abortUnauthorized(c, err)
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, session.User.ID)
		c.Set(ContextKeyRole, string(session.User.Role))
		c.Set(ContextKeySession, session)

		c.Next()
	}
}

// RequireAdmin middleware checks if the user has the admin role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextKeyRole)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		if role != string(models.RoleAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserID returns the user ID from the gin context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		return "", false
	}
	return userID.(string), true
}

// GetSession returns the session resolved by AuthMiddleware
func GetSession(c *gin.Context) (*Session, bool) {
	session, exists := c.Get(ContextKeySession)
	if !exists {
		return nil, false
	}
	return session.(*Session), true
}
