package database

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// AuthToken is an opaque API token. Each user holds at most one token,
// created on demand at login and reused afterwards.
type AuthToken struct {
	gorm.Model
	Key    string `gorm:"uniqueIndex;not null"`
	UserID uint   `gorm:"uniqueIndex;not null"`
	User   User
}

// generateTokenKey returns a random 40-character hex key.
func generateTokenKey() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// GetOrCreateToken returns the user's existing token, creating one if needed.
func (c *Client) GetOrCreateToken(ctx context.Context, userID uint) (*AuthToken, error) {
	var token AuthToken
	err := c.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error
	if err == nil {
		return &token, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("failed to look up auth token", "error", err)
		return nil, err
	}

	key, err := generateTokenKey()
	if err != nil {
		return nil, err
	}
	token = AuthToken{Key: key, UserID: userID}
	if err := c.db.WithContext(ctx).Create(&token).Error; err != nil {
		log.Error("failed to create auth token", "error", err)
		return nil, err
	}
	return &token, nil
}

// GetUserByTokenKey resolves a token key to its active user.
func (c *Client) GetUserByTokenKey(ctx context.Context, key string) (*User, error) {
	var token AuthToken
	err := c.db.WithContext(ctx).Preload("User").Where("key = ?", key).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to resolve auth token", "error", err)
		return nil, err
	}
	if !token.User.IsActive {
		return nil, ErrNotFound
	}
	return &token.User, nil
}
