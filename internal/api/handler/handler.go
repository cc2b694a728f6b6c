package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jamhof/recipebox/internal/config"
	"github.com/jamhof/recipebox/internal/database"
	"github.com/jamhof/recipebox/internal/storage"
)

type Handler struct {
	db     database.DB
	store  *storage.Store
	config *config.Config
}

func New(db database.DB, store *storage.Store, cfg *config.Config) *Handler {
	return &Handler{
		db:     db,
		store:  store,
		config: cfg,
	}
}

// currentUser returns the authenticated user placed in the context by the
// auth middleware.
func currentUser(c *gin.Context) *database.User {
	return c.MustGet("user").(*database.User)
}

func parseUintParam(param string) (uint, error) {
	id, err := strconv.ParseUint(param, 10, 0)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parseIDList parses a comma-separated ID list query value like "1,2,3".
// An empty value yields nil, meaning no filter.
func parseIDList(value string) ([]uint, error) {
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := parseUintParam(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// respondError maps database errors to their HTTP form. Validation failures
// carry their message; anything unexpected stays opaque.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// Health is a liveness endpoint.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
