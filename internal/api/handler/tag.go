package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jamhof/recipebox/internal/api/models"
)

// assignedOnly reports whether the "assigned_only" filter was requested.
func assignedOnly(c *gin.Context) bool {
	v := c.Query("assigned_only")
	return v == "1" || v == "true"
}

// ListTags returns the user's tags, optionally restricted to tags assigned
// to at least one recipe.
func (h *Handler) ListTags(c *gin.Context) {
	user := currentUser(c)

	tags, err := h.db.ListTags(c.Request.Context(), user.ID, assignedOnly(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToTagResponses(tags))
}

// CreateTag creates a tag owned by the requesting user. Any owner value in
// the request body is ignored.
func (h *Handler) CreateTag(c *gin.Context) {
	user := currentUser(c)

	var req models.CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	tag, err := h.db.CreateTag(c.Request.Context(), user.ID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ToTagResponse(*tag))
}
