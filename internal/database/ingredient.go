package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// Ingredient is a user-scoped recipe component. It shares the Tag contract
// but is a distinct entity with its own table and join relation.
type Ingredient struct {
	gorm.Model
	Name   string `gorm:"not null"`
	UserID uint   `gorm:"not null;index"`
}

// ListIngredients returns the user's ingredients ordered by name, descending.
// When assignedOnly is set, only ingredients used by at least one recipe are
// returned, each at most once.
func (c *Client) ListIngredients(ctx context.Context, userID uint, assignedOnly bool) ([]Ingredient, error) {
	tx := c.db.WithContext(ctx).Where("user_id = ?", userID)
	if assignedOnly {
		tx = tx.Where("id IN (SELECT DISTINCT ingredient_id FROM recipe_ingredients)")
	}

	var ingredients []Ingredient
	if err := tx.Order("name DESC").Find(&ingredients).Error; err != nil {
		log.Error("failed to list ingredients", "error", err)
		return nil, err
	}
	return ingredients, nil
}

// CreateIngredient creates an ingredient owned by the given user.
func (c *Client) CreateIngredient(ctx context.Context, userID uint, name string) (*Ingredient, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
	}

	ingredient := Ingredient{Name: name, UserID: userID}
	if err := c.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		log.Error("failed to create ingredient", "error", err)
		return nil, err
	}
	return &ingredient, nil
}

func (c *Client) getIngredientsByIDs(ctx context.Context, userID uint, ids []uint) ([]Ingredient, error) {
	if len(ids) == 0 {
		return []Ingredient{}, nil
	}

	var ingredients []Ingredient
	err := c.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Find(&ingredients).Error
	if err != nil {
		log.Error("failed to resolve ingredients", "error", err)
		return nil, err
	}
	if len(ingredients) != len(uniqueIDs(ids)) {
		return nil, fmt.Errorf("%w: unknown ingredient id", ErrValidation)
	}
	return ingredients, nil
}
