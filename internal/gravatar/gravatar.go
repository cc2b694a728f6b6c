package gravatar

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"strings"

	"github.com/jamhof/recipebox/internal/config"
)

// GenerateURL generates a Gravatar URL for the given email address using the
// provided configuration. Returns an empty string if Gravatar is disabled or
// the email is empty.
func GenerateURL(email string, cfg *config.GravatarConfig) string {
	if cfg == nil || !cfg.Enabled || email == "" {
		return ""
	}
	email = strings.TrimSpace(strings.ToLower(email))

	hash := sha256.Sum256([]byte(email))
	baseURL := fmt.Sprintf("https://www.gravatar.com/avatar/%x", hash)

	params := url.Values{}
	if cfg.DefaultImage != "" {
		params.Add("d", cfg.DefaultImage)
	}
	if cfg.Rating != "" {
		params.Add("r", cfg.Rating)
	}
	if cfg.Size > 0 {
		params.Add("s", fmt.Sprintf("%d", cfg.Size))
	}

	if len(params) > 0 {
		baseURL = baseURL + "?" + params.Encode()
	}
	return baseURL
}
