package database

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, c *Client, email string) *User {
	t.Helper()

	user, err := c.CreateUser(context.Background(), email, "", "pass1234")
	require.NoError(t, err)
	return user
}

func createTestRecipe(t *testing.T, c *Client, userID uint, title string, tagIDs, ingredientIDs []uint) *Recipe {
	t.Helper()

	recipe, err := c.CreateRecipe(context.Background(), userID, RecipeParams{
		Title:         title,
		TimeMinutes:   10,
		Price:         decimal.RequireFromString("5.00"),
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})
	require.NoError(t, err)
	return recipe
}

func TestCreateTag(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := createTestUser(t, c, "test@example.com")

	tag, err := c.CreateTag(ctx, user.ID, "Vegan")
	require.NoError(t, err)
	assert.Equal(t, "Vegan", tag.Name)
	assert.Equal(t, user.ID, tag.UserID)
}

func TestCreateTagEmptyName(t *testing.T) {
	c := newTestClient(t)
	user := createTestUser(t, c, "test@example.com")

	_, err := c.CreateTag(context.Background(), user.ID, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateTagDuplicateNamesAllowed(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := createTestUser(t, c, "test@example.com")
	other := createTestUser(t, c, "other@example.com")

	first, err := c.CreateTag(ctx, user.ID, "Vegan")
	require.NoError(t, err)
	second, err := c.CreateTag(ctx, user.ID, "Vegan")
	require.NoError(t, err)
	third, err := c.CreateTag(ctx, other.ID, "Vegan")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, second.ID, third.ID)
}

func TestListTagsScopedToUser(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := createTestUser(t, c, "test@example.com")
	other := createTestUser(t, c, "other@example.com")

	_, err := c.CreateTag(ctx, user.ID, "Dessert")
	require.NoError(t, err)
	_, err = c.CreateTag(ctx, other.ID, "Fruity")
	require.NoError(t, err)

	tags, err := c.ListTags(ctx, user.ID, false)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "Dessert", tags[0].Name)
}

func TestListTagsOrderedByNameDescending(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := createTestUser(t, c, "test@example.com")

	for _, name := range []string{"Breakfast", "Vegan", "Dessert"} {
		_, err := c.CreateTag(ctx, user.ID, name)
		require.NoError(t, err)
	}

	tags, err := c.ListTags(ctx, user.ID, false)
	require.NoError(t, err)

	names := lo.Map(tags, func(tag Tag, _ int) string { return tag.Name })
	assert.Equal(t, []string{"Vegan", "Dessert", "Breakfast"}, names)
}

func TestListTagsAssignedOnly(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := createTestUser(t, c, "test@example.com")

	assigned, err := c.CreateTag(ctx, user.ID, "Breakfast")
	require.NoError(t, err)
	_, err = c.CreateTag(ctx, user.ID, "Lunch")
	require.NoError(t, err)

	createTestRecipe(t, c, user.ID, "Pancakes", []uint{assigned.ID}, nil)

	tags, err := c.ListTags(ctx, user.ID, true)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, assigned.ID, tags[0].ID)
}

func TestListTagsAssignedOnlyUnique(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := createTestUser(t, c, "test@example.com")

	tag, err := c.CreateTag(ctx, user.ID, "Breakfast")
	require.NoError(t, err)

	// Two recipes share the tag; it must still be listed once
	createTestRecipe(t, c, user.ID, "Pancakes", []uint{tag.ID}, nil)
	createTestRecipe(t, c, user.ID, "Porridge", []uint{tag.ID}, nil)

	tags, err := c.ListTags(ctx, user.ID, true)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}
