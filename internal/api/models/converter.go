package models

import (
	"github.com/jamhof/recipebox/internal/config"
	"github.com/jamhof/recipebox/internal/database"
	"github.com/jamhof/recipebox/internal/gravatar"
	"github.com/samber/lo"
)

// mediaURL builds the absolute URL for a stored file path.
func mediaURL(cfg *config.Config, relPath string) string {
	if relPath == "" {
		return ""
	}
	return cfg.ServerURL + "/media/" + relPath
}

// ToUserResponse converts a database.User to its API shape.
func ToUserResponse(u *database.User, cfg *config.Config) UserResponse {
	return UserResponse{
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: gravatar.GenerateURL(u.Email, cfg.Gravatar),
	}
}

// ToTagResponse converts a database.Tag to its API shape.
func ToTagResponse(t database.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name}
}

// ToTagResponses converts a slice of tags.
func ToTagResponses(tags []database.Tag) []TagResponse {
	return lo.Map(tags, func(t database.Tag, _ int) TagResponse { return ToTagResponse(t) })
}

// ToIngredientResponse converts a database.Ingredient to its API shape.
func ToIngredientResponse(i database.Ingredient) IngredientResponse {
	return IngredientResponse{ID: i.ID, Name: i.Name}
}

// ToIngredientResponses converts a slice of ingredients.
func ToIngredientResponses(ingredients []database.Ingredient) []IngredientResponse {
	return lo.Map(ingredients, func(i database.Ingredient, _ int) IngredientResponse { return ToIngredientResponse(i) })
}

// ToRecipeSummary converts a recipe to its list shape with association IDs.
func ToRecipeSummary(r database.Recipe, cfg *config.Config) RecipeSummary {
	return RecipeSummary{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Tags:        lo.Map(r.Tags, func(t database.Tag, _ int) uint { return t.ID }),
		Ingredients: lo.Map(r.Ingredients, func(i database.Ingredient, _ int) uint { return i.ID }),
		Image:       mediaURL(cfg, r.Image),
	}
}

// ToRecipeSummaries converts a slice of recipes to list shapes.
func ToRecipeSummaries(recipes []database.Recipe, cfg *config.Config) []RecipeSummary {
	return lo.Map(recipes, func(r database.Recipe, _ int) RecipeSummary { return ToRecipeSummary(r, cfg) })
}

// ToRecipeDetail converts a recipe to its detail shape with nested associations.
func ToRecipeDetail(r *database.Recipe, cfg *config.Config) RecipeDetail {
	return RecipeDetail{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Tags:        ToTagResponses(r.Tags),
		Ingredients: ToIngredientResponses(r.Ingredients),
		Image:       mediaURL(cfg, r.Image),
	}
}

// ToRecipeImageResponse converts a recipe to the image upload response shape.
func ToRecipeImageResponse(r *database.Recipe, cfg *config.Config) RecipeImageResponse {
	return RecipeImageResponse{ID: r.ID, Image: mediaURL(cfg, r.Image)}
}
