package auth

import (
	"context"
	"time"

	"github.com/jamhof/recipebox/internal/database"
	"github.com/patrickmn/go-cache"
)

// Service issues API tokens and resolves them to users. Token lookups are
// cached for a short TTL so every request does not pay the token join.
type Service struct {
	db    database.DB
	cache *cache.Cache
}

// NewService creates an auth service backed by the given database.
func NewService(db database.DB, cacheTTL time.Duration) *Service {
	return &Service{
		db:    db,
		cache: cache.New(cacheTTL, 2*cacheTTL),
	}
}

// IssueToken verifies the credentials and returns the user's token key,
// creating the token on first login.
func (s *Service) IssueToken(ctx context.Context, email, password string) (string, error) {
	user, err := s.db.AuthenticateUser(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := s.db.GetOrCreateToken(ctx, user.ID)
	if err != nil {
		return "", err
	}
	return token.Key, nil
}

// ResolveToken maps a token key to its user. The key-to-user-ID mapping is
// cached; the user record itself is always read fresh so profile updates and
// deactivations take effect immediately.
func (s *Service) ResolveToken(ctx context.Context, key string) (*database.User, error) {
	if cached, found := s.cache.Get(key); found {
		if userID, ok := cached.(uint); ok {
			user, err := s.db.GetUserByID(ctx, userID)
			if err == nil && user.IsActive {
				return user, nil
			}
			s.cache.Delete(key)
			return nil, database.ErrNotFound
		}
	}

	user, err := s.db.GetUserByTokenKey(ctx, key)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, user.ID, cache.DefaultExpiration)
	return user, nil
}
