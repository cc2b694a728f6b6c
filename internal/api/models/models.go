package models

import "github.com/shopspring/decimal"

// UserResponse is the profile shape returned by the user endpoints.
// The password hash is never part of any response.
type UserResponse struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// TokenResponse carries a freshly issued or reused API token.
type TokenResponse struct {
	Token string `json:"token"`
}

// TagResponse is the serialized form of a tag.
type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// IngredientResponse is the serialized form of an ingredient.
type IngredientResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// RecipeSummary is the list shape of a recipe: associations appear as ID sets.
type RecipeSummary struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       decimal.Decimal `json:"price"`
	Link        string          `json:"link"`
	Tags        []uint          `json:"tags"`
	Ingredients []uint          `json:"ingredients"`
	Image       string          `json:"image,omitempty"`
}

// RecipeDetail is the detail shape of a recipe: associations are nested.
type RecipeDetail struct {
	ID          uint                 `json:"id"`
	Title       string               `json:"title"`
	TimeMinutes int                  `json:"time_minutes"`
	Price       decimal.Decimal      `json:"price"`
	Link        string               `json:"link"`
	Tags        []TagResponse        `json:"tags"`
	Ingredients []IngredientResponse `json:"ingredients"`
	Image       string               `json:"image,omitempty"`
}

// RecipeImageResponse is returned by the image upload endpoint.
type RecipeImageResponse struct {
	ID    uint   `json:"id"`
	Image string `json:"image"`
}

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// TokenRequest is the payload for token issuance.
type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateMeRequest is the partial-update payload for the profile endpoint.
type UpdateMeRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// CreateLabelRequest is the payload for tag and ingredient creation.
type CreateLabelRequest struct {
	Name string `json:"name"`
}

// CreateRecipeRequest is the payload for recipe creation. Price and
// time_minutes are required; decimal prices may be sent as JSON strings.
type CreateRecipeRequest struct {
	Title       string           `json:"title"`
	TimeMinutes *int             `json:"time_minutes"`
	Price       *decimal.Decimal `json:"price"`
	Link        string           `json:"link"`
	Tags        []uint           `json:"tags"`
	Ingredients []uint           `json:"ingredients"`
}

// UpdateRecipeRequest is the payload for recipe updates. Every field is
// optional so the handler can distinguish omitted fields from zero values;
// PUT and PATCH differ only in how the handler treats omissions.
type UpdateRecipeRequest struct {
	Title       *string          `json:"title"`
	TimeMinutes *int             `json:"time_minutes"`
	Price       *decimal.Decimal `json:"price"`
	Link        *string          `json:"link"`
	Tags        *[]uint          `json:"tags"`
	Ingredients *[]uint          `json:"ingredients"`
}
