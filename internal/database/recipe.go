package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Recipe is the aggregate root: scalar fields plus many-to-many tag and
// ingredient sets. The schema does not force associated tags or ingredients
// to share the recipe's owner; visibility is enforced at input validation.
type Recipe struct {
	gorm.Model
	UserID      uint            `gorm:"not null;index"`
	Title       string          `gorm:"not null"`
	TimeMinutes int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Link        string
	// Image is the storage-relative path of the uploaded image, empty when unset.
	Image       string
	Tags        []Tag        `gorm:"many2many:recipe_tags;"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;"`
}

// RecipeFilter restricts a listing. An empty ID list means no restriction on
// that relation; a non-empty list keeps recipes whose set intersects it.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeParams carries the fields for a recipe creation.
type RecipeParams struct {
	Title         string
	TimeMinutes   int
	Price         decimal.Decimal
	Link          string
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeUpdate describes a recipe update. Nil scalar fields are left
// untouched. A nil ID slice leaves the association alone; a non-nil slice
// replaces it, so an empty slice clears it.
type RecipeUpdate struct {
	Title         *string
	TimeMinutes   *int
	Price         *decimal.Decimal
	Link          *string
	TagIDs        *[]uint
	IngredientIDs *[]uint
}

// maxPrice is the upper bound implied by the decimal(5,2) column.
var maxPrice = decimal.RequireFromString("999.99")

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() || price.GreaterThan(maxPrice) {
		return fmt.Errorf("%w: price must be between 0.00 and 999.99", ErrValidation)
	}
	if price.Exponent() < -2 {
		return fmt.Errorf("%w: price must have at most two decimal places", ErrValidation)
	}
	return nil
}

// ListRecipes returns the user's recipes, newest first. ID list filters are
// applied through join-table subqueries, so a recipe matching several IDs of
// one list still appears once.
func (c *Client) ListRecipes(ctx context.Context, userID uint, filter RecipeFilter) ([]Recipe, error) {
	tx := c.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("user_id = ?", userID)

	if len(filter.TagIDs) > 0 {
		tx = tx.Where("id IN (SELECT recipe_id FROM recipe_tags WHERE tag_id IN ?)", filter.TagIDs)
	}
	if len(filter.IngredientIDs) > 0 {
		tx = tx.Where("id IN (SELECT recipe_id FROM recipe_ingredients WHERE ingredient_id IN ?)", filter.IngredientIDs)
	}

	var recipes []Recipe
	if err := tx.Order("id DESC").Find(&recipes).Error; err != nil {
		log.Error("failed to list recipes", "error", err)
		return nil, err
	}
	return recipes, nil
}

// GetRecipe returns one of the user's recipes with its associations loaded.
// A recipe owned by someone else yields the same ErrNotFound as a missing one.
func (c *Client) GetRecipe(ctx context.Context, userID, recipeID uint) (*Recipe, error) {
	var recipe Recipe
	err := c.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("user_id = ?", userID).
		First(&recipe, recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get recipe", "error", err)
		return nil, err
	}
	return &recipe, nil
}

// CreateRecipe creates a recipe owned by the given user. Tag and ingredient
// IDs must resolve within the user's visibility.
func (c *Client) CreateRecipe(ctx context.Context, userID uint, params RecipeParams) (*Recipe, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if params.TimeMinutes < 0 {
		return nil, fmt.Errorf("%w: time_minutes must not be negative", ErrValidation)
	}
	if err := validatePrice(params.Price); err != nil {
		return nil, err
	}

	tags, err := c.getTagsByIDs(ctx, userID, params.TagIDs)
	if err != nil {
		return nil, err
	}
	ingredients, err := c.getIngredientsByIDs(ctx, userID, params.IngredientIDs)
	if err != nil {
		return nil, err
	}

	recipe := Recipe{
		UserID:      userID,
		Title:       params.Title,
		TimeMinutes: params.TimeMinutes,
		Price:       params.Price,
		Link:        params.Link,
		Tags:        tags,
		Ingredients: ingredients,
	}
	if err := c.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		log.Error("failed to create recipe", "error", err)
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe applies an update to one of the user's recipes and returns the
// refreshed record. All validation and ID resolution happens before the first
// write, and the writes run in a single transaction, so a rejected update
// leaves the record untouched.
func (c *Client) UpdateRecipe(ctx context.Context, userID, recipeID uint, update RecipeUpdate) (*Recipe, error) {
	recipe, err := c.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
		}
		updates["title"] = *update.Title
	}
	if update.TimeMinutes != nil {
		if *update.TimeMinutes < 0 {
			return nil, fmt.Errorf("%w: time_minutes must not be negative", ErrValidation)
		}
		updates["time_minutes"] = *update.TimeMinutes
	}
	if update.Price != nil {
		if err := validatePrice(*update.Price); err != nil {
			return nil, err
		}
		updates["price"] = *update.Price
	}
	if update.Link != nil {
		updates["link"] = *update.Link
	}

	var tags []Tag
	if update.TagIDs != nil {
		if tags, err = c.getTagsByIDs(ctx, userID, *update.TagIDs); err != nil {
			return nil, err
		}
	}
	var ingredients []Ingredient
	if update.IngredientIDs != nil {
		if ingredients, err = c.getIngredientsByIDs(ctx, userID, *update.IngredientIDs); err != nil {
			return nil, err
		}
	}

	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(recipe).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update recipe: %w", err)
			}
		}
		if update.TagIDs != nil {
			if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
				return fmt.Errorf("failed to replace recipe tags: %w", err)
			}
		}
		if update.IngredientIDs != nil {
			if err := tx.Model(recipe).Association("Ingredients").Replace(ingredients); err != nil {
				return fmt.Errorf("failed to replace recipe ingredients: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to update recipe", "error", err)
		return nil, err
	}

	return c.GetRecipe(ctx, userID, recipeID)
}

// DeleteRecipe removes one of the user's recipes together with its join rows.
// Referenced tags and ingredients survive. The deleted record is returned so
// the caller can clean up the stored image file.
func (c *Client) DeleteRecipe(ctx context.Context, userID, recipeID uint) (*Recipe, error) {
	recipe, err := c.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	if err := c.db.WithContext(ctx).Select(clause.Associations).Delete(recipe).Error; err != nil {
		log.Error("failed to delete recipe", "error", err)
		return nil, err
	}
	return recipe, nil
}

// SetRecipeImage stores the generated image path on one of the user's recipes.
func (c *Client) SetRecipeImage(ctx context.Context, userID, recipeID uint, imagePath string) (*Recipe, error) {
	recipe, err := c.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	if err := c.db.WithContext(ctx).Model(recipe).Update("image", imagePath).Error; err != nil {
		log.Error("failed to set recipe image", "error", err)
		return nil, err
	}
	recipe.Image = imagePath
	return recipe, nil
}
