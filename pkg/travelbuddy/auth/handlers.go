package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler handles authentication requests
type Handler struct {
	svc *Service
}

// NewHandler creates a new auth handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// SignUpRequest represents the sign-up request body
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
}

// SignInRequest represents the sign-in request body
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignUp handles account creation
// @Summary Create an account
// @Description Create an email/password account. Sign in afterwards to get a token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignUpRequest true "Account details"
// @Success 201 {object} map[string]string "Account created"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 409 {object} map[string]string "Email already registered"
// @Router /auth/signup [post]
func (h *Handler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, err := h.svc.SignUp(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		case errors.Is(err, ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("sign up failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created. Please sign in.",
		"user_id": identity.ID,
	})
}

// SignIn handles sign-in
// @Summary Sign in
// @Description Verify credentials and open a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignInRequest true "Credentials"
// @Success 200 {object} Session
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/signin [post]
func (h *Handler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		log.Printf("sign in failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		return
	}

	c.JSON(http.StatusOK, session)
}

// SignOut revokes the caller's session
// @Summary Sign out
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Signed out"
// @Failure 401 {object} map[string]string "Invalid token"
// @Security BearerAuth
// @Router /auth/signout [post]
func (h *Handler) SignOut(c *gin.Context) {
	token, err := BearerToken(c.GetHeader("Authorization"))
	if err != nil {
		abortUnauthorized(c, err)
		return
	}

	if err := h.svc.SignOut(c.Request.Context(), token); err != nil {
		if errors.Is(err, ErrInvalidToken) {
			abortUnauthorized(c, err)
			return
		}
		log.Printf("sign out failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signed out successfully"})
}

// CurrentSession returns the caller's session
// @Summary Get current session
// @Tags auth
// @Produce json
// @Success 200 {object} Session
// @Failure 401 {object} map[string]string "Not signed in"
// @Security BearerAuth
// @Router /auth/session [get]
func (h *Handler) CurrentSession(c *gin.Context) {
	session, ok := GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// RegisterRoutes registers auth routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/signup", h.SignUp)
	rg.POST("/signin", h.SignIn)
	rg.POST("/signout", h.SignOut)
	rg.GET("/session", AuthMiddleware(h.svc), h.CurrentSession)
}
