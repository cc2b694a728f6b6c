package database

import "context"

// DB defines the persistence operations used by the API layer.
// Every read and write that touches user-owned records takes the owning
// user ID as its first data argument and is scoped to it.
type DB interface {
	// Users
	CreateUser(ctx context.Context, email, name, password string) (*User, error)
	CreateSuperuser(ctx context.Context, email, password string) (*User, error)
	AuthenticateUser(ctx context.Context, email, password string) (*User, error)
	GetUserByID(ctx context.Context, id uint) (*User, error)
	UpdateUser(ctx context.Context, userID uint, update UserUpdate) (*User, error)

	// Tokens
	GetOrCreateToken(ctx context.Context, userID uint) (*AuthToken, error)
	GetUserByTokenKey(ctx context.Context, key string) (*User, error)

	// Tags
	ListTags(ctx context.Context, userID uint, assignedOnly bool) ([]Tag, error)
	CreateTag(ctx context.Context, userID uint, name string) (*Tag, error)

	// Ingredients
	ListIngredients(ctx context.Context, userID uint, assignedOnly bool) ([]Ingredient, error)
	CreateIngredient(ctx context.Context, userID uint, name string) (*Ingredient, error)

	// Recipes
	ListRecipes(ctx context.Context, userID uint, filter RecipeFilter) ([]Recipe, error)
	GetRecipe(ctx context.Context, userID, recipeID uint) (*Recipe, error)
	CreateRecipe(ctx context.Context, userID uint, params RecipeParams) (*Recipe, error)
	UpdateRecipe(ctx context.Context, userID, recipeID uint, update RecipeUpdate) (*Recipe, error)
	DeleteRecipe(ctx context.Context, userID, recipeID uint) (*Recipe, error)
	SetRecipeImage(ctx context.Context, userID, recipeID uint, imagePath string) (*Recipe, error)
}
