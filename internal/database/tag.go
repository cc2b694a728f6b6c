package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// Tag is a user-scoped recipe label. Names are free text and deliberately
// carry no uniqueness constraint: the same name may exist for several users
// or even several times for one user.
type Tag struct {
	gorm.Model
	Name   string `gorm:"not null"`
	UserID uint   `gorm:"not null;index"`
}

// ListTags returns the user's tags ordered by name, descending. When
// assignedOnly is set, only tags attached to at least one recipe are
// returned, each at most once.
func (c *Client) ListTags(ctx context.Context, userID uint, assignedOnly bool) ([]Tag, error) {
	tx := c.db.WithContext(ctx).Where("user_id = ?", userID)
	if assignedOnly {
		tx = tx.Where("id IN (SELECT DISTINCT tag_id FROM recipe_tags)")
	}

	var tags []Tag
	if err := tx.Order("name DESC").Find(&tags).Error; err != nil {
		log.Error("failed to list tags", "error", err)
		return nil, err
	}
	return tags, nil
}

// CreateTag creates a tag owned by the given user. The owner is always the
// requesting user, regardless of what the caller put in the request body.
func (c *Client) CreateTag(ctx context.Context, userID uint, name string) (*Tag, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
	}

	tag := Tag{Name: name, UserID: userID}
	if err := c.db.WithContext(ctx).Create(&tag).Error; err != nil {
		log.Error("failed to create tag", "error", err)
		return nil, err
	}
	return &tag, nil
}

// getTagsByIDs resolves tag IDs within the user's visibility. An ID that does
// not resolve is a validation error, not a silent omission.
func (c *Client) getTagsByIDs(ctx context.Context, userID uint, ids []uint) ([]Tag, error) {
	if len(ids) == 0 {
		return []Tag{}, nil
	}

	var tags []Tag
	err := c.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Find(&tags).Error
	if err != nil {
		log.Error("failed to resolve tags", "error", err)
		return nil, err
	}
	if len(tags) != len(uniqueIDs(ids)) {
		return nil, fmt.Errorf("%w: unknown tag id", ErrValidation)
	}
	return tags, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
