package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User represents an account in the database.
// The email address is the identity key and is normalized to lowercase at
// creation time. The password column always holds a bcrypt hash, never a
// plaintext value.
type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null"`
	Name        string
	Password    string `gorm:"not null"`
	IsActive    bool   `gorm:"default:true"`
	IsStaff     bool
	IsSuperuser bool
	Tags        []Tag        `gorm:"constraint:OnDelete:CASCADE;"`
	Ingredients []Ingredient `gorm:"constraint:OnDelete:CASCADE;"`
	Recipes     []Recipe     `gorm:"constraint:OnDelete:CASCADE;"`
}

// UserUpdate describes a partial user update. Nil fields are left untouched.
type UserUpdate struct {
	Name     *string
	Password *string
}

// NormalizeEmail lowercases an email address so lookups and the uniqueness
// constraint are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CreateUser creates a new active user with a normalized email and a hashed
// password.
func (c *Client) CreateUser(ctx context.Context, email, name, password string) (*User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: email must not be empty", ErrValidation)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := User{
		Email:    NormalizeEmail(email),
		Name:     name,
		Password: hash,
		IsActive: true,
	}
	if err := c.db.WithContext(ctx).Create(&user).Error; err != nil {
		log.Error("failed to create user", "error", err)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email already registered", ErrValidation)
		}
		return nil, err
	}
	return &user, nil
}

// CreateSuperuser creates a user with staff and superuser flags set.
func (c *Client) CreateSuperuser(ctx context.Context, email, password string) (*User, error) {
	user, err := c.CreateUser(ctx, email, "", password)
	if err != nil {
		return nil, err
	}

	result := c.db.WithContext(ctx).Model(user).
		Updates(map[string]any{"is_staff": true, "is_superuser": true})
	if result.Error != nil {
		log.Error("failed to promote superuser", "error", result.Error)
		return nil, result.Error
	}
	user.IsStaff = true
	user.IsSuperuser = true
	return user, nil
}

// AuthenticateUser looks up an active user by normalized email and verifies
// the password against the stored hash.
func (c *Client) AuthenticateUser(ctx context.Context, email, password string) (*User, error) {
	var user User
	err := c.db.WithContext(ctx).
		Where("email = ? AND is_active = ?", NormalizeEmail(email), true).
		First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("failed to look up user", "error", err)
			return nil, err
		}
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (c *Client) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get user by ID", "error", err)
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a partial update to the user's own profile. A supplied
// password is re-hashed before it is stored.
func (c *Client) UpdateUser(ctx context.Context, userID uint, update UserUpdate) (*User, error) {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Password != nil {
		hash, err := hashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hash
	}

	if len(updates) > 0 {
		result := c.db.WithContext(ctx).Model(&User{}).
			Where("id = ?", userID).
			Updates(updates)
		if result.Error != nil {
			log.Error("failed to update user", "error", result.Error)
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}

	return c.GetUserByID(ctx, userID)
}
