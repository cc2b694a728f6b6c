package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/jamhof/recipebox/internal/api/models"
	"github.com/jamhof/recipebox/internal/database"
	"github.com/jamhof/recipebox/internal/storage"
)

// ListRecipes returns the user's recipes, newest first, optionally filtered
// by comma-separated tag and ingredient ID lists.
func (h *Handler) ListRecipes(c *gin.Context) {
	user := currentUser(c)

	tagIDs, err := parseIDList(c.Query("tags"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tags filter"})
		return
	}
	ingredientIDs, err := parseIDList(c.Query("ingredients"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredients filter"})
		return
	}

	recipes, err := h.db.ListRecipes(c.Request.Context(), user.ID, database.RecipeFilter{
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToRecipeSummaries(recipes, h.config))
}

// GetRecipe returns the detail shape of one of the user's recipes.
func (h *Handler) GetRecipe(c *gin.Context) {
	user := currentUser(c)

	recipeID, err := parseUintParam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	recipe, err := h.db.GetRecipe(c.Request.Context(), user.ID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToRecipeDetail(recipe, h.config))
}

// CreateRecipe creates a recipe owned by the requesting user. Tags and
// ingredients are passed as ID lists of existing records.
func (h *Handler) CreateRecipe(c *gin.Context) {
	user := currentUser(c)

	var req models.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.TimeMinutes == nil || req.Price == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "time_minutes and price are required"})
		return
	}

	recipe, err := h.db.CreateRecipe(c.Request.Context(), user.ID, database.RecipeParams{
		Title:         req.Title,
		TimeMinutes:   *req.TimeMinutes,
		Price:         *req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ToRecipeDetail(recipe, h.config))
}

// UpdateRecipe handles both full (PUT) and partial (PATCH) updates. A full
// update requires all required scalar fields and clears association sets that
// are absent from the payload; a partial update leaves omitted fields alone.
func (h *Handler) UpdateRecipe(c *gin.Context) {
	user := currentUser(c)
	partial := c.Request.Method == http.MethodPatch

	recipeID, err := parseUintParam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var req models.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if !partial {
		if req.Title == nil || req.TimeMinutes == nil || req.Price == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title, time_minutes and price are required"})
			return
		}
		// Full update replaces the association sets even when omitted.
		if req.Tags == nil {
			req.Tags = &[]uint{}
		}
		if req.Ingredients == nil {
			req.Ingredients = &[]uint{}
		}
		if req.Link == nil {
			empty := ""
			req.Link = &empty
		}
	}

	recipe, err := h.db.UpdateRecipe(c.Request.Context(), user.ID, recipeID, database.RecipeUpdate{
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToRecipeDetail(recipe, h.config))
}

// DeleteRecipe removes one of the user's recipes and cleans up its stored
// image, if any.
func (h *Handler) DeleteRecipe(c *gin.Context) {
	user := currentUser(c)

	recipeID, err := parseUintParam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	recipe, err := h.db.DeleteRecipe(c.Request.Context(), user.ID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.store.Remove(recipe.Image)

	c.Status(http.StatusNoContent)
}

// UploadRecipeImage stores a multipart "image" upload for one of the user's
// recipes. A payload that does not decode as an image is rejected and the
// previous image, if any, stays untouched.
func (h *Handler) UploadRecipeImage(c *gin.Context) {
	user := currentUser(c)

	recipeID, err := parseUintParam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	// Check ownership before touching the payload so a foreign recipe ID
	// yields a 404, not a validation error.
	if _, err := h.db.GetRecipe(c.Request.Context(), user.ID, recipeID); err != nil {
		respondError(c, err)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if maxSize := h.config.Uploads.MaxImageSize; maxSize > 0 && fileHeader.Size > maxSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("image exceeds maximum size of %d bytes", maxSize)})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image file"})
		return
	}
	defer file.Close() //nolint: errcheck

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image file"})
		return
	}

	imagePath, err := h.store.SaveRecipeImage(data, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotImage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payload is not a valid image"})
			return
		}
		log.Error("failed to save recipe image", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	recipe, err := h.db.SetRecipeImage(c.Request.Context(), user.ID, recipeID, imagePath)
	if err != nil {
		h.store.Remove(imagePath)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ToRecipeImageResponse(recipe, h.config))
}
