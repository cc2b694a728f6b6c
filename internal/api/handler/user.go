package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jamhof/recipebox/internal/api/auth"
	"github.com/jamhof/recipebox/internal/api/models"
	"github.com/jamhof/recipebox/internal/database"
)

// UserHandler serves the registration, token and profile endpoints.
type UserHandler struct {
	*Handler
	auth *auth.Service
}

// NewUser creates a user handler on top of the shared handler state.
func NewUser(h *Handler, authService *auth.Service) *UserHandler {
	return &UserHandler{Handler: h, auth: authService}
}

func (h *UserHandler) checkPasswordLength(password string) error {
	minLen := h.config.Auth.MinPasswordLength
	if len(password) < minLen {
		return fmt.Errorf("%w: password must be at least %d characters", database.ErrValidation, minLen)
	}
	return nil
}

// Register creates a new user account.
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.checkPasswordLength(req.Password); err != nil {
		respondError(c, err)
		return
	}

	user, err := h.db.CreateUser(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ToUserResponse(user, h.config))
}

// CreateToken verifies credentials and returns the user's API token.
// Bad credentials yield a 400, matching the registration-style input error.
func (h *UserHandler) CreateToken(c *gin.Context) {
	var req models.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	key, err := h.auth.IssueToken(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, database.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unable to authenticate with provided credentials"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{Token: key})
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, models.ToUserResponse(user, h.config))
}

// UpdateMe applies a partial update to the authenticated user's own profile.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user := currentUser(c)

	var req models.UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Password != nil {
		if err := h.checkPasswordLength(*req.Password); err != nil {
			respondError(c, err)
			return
		}
	}

	updated, err := h.db.UpdateUser(c.Request.Context(), user.ID, database.UserUpdate{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToUserResponse(updated, h.config))
}

// MeNotAllowed rejects unsupported methods on the profile endpoint.
func (h *UserHandler) MeNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
}
