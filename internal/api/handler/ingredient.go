package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jamhof/recipebox/internal/api/models"
)

// ListIngredients returns the user's ingredients, optionally restricted to
// ingredients used by at least one recipe.
func (h *Handler) ListIngredients(c *gin.Context) {
	user := currentUser(c)

	ingredients, err := h.db.ListIngredients(c.Request.Context(), user.ID, assignedOnly(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToIngredientResponses(ingredients))
}

// CreateIngredient creates an ingredient owned by the requesting user.
func (h *Handler) CreateIngredient(c *gin.Context) {
	user := currentUser(c)

	var req models.CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ingredient, err := h.db.CreateIngredient(c.Request.Context(), user.ID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ToIngredientResponse(*ingredient))
}
