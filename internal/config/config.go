package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Config holds the configuration for the recipebox server and its dependencies.
type Config struct {
	// Listen is the address the recipebox server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// ServerURL is the base URL of the recipebox server, used to build absolute media URLs.
	ServerURL string `yaml:"server_url" mapstructure:"server_url"`
	// Database holds the database configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// Auth holds the authentication configuration.
	Auth *AuthConfig `yaml:"auth" mapstructure:"auth"`
	// Uploads holds the file upload configuration.
	Uploads *UploadsConfig `yaml:"uploads" mapstructure:"uploads"`
	// Gravatar holds the configuration for Gravatar profile pictures.
	Gravatar *GravatarConfig `yaml:"gravatar" mapstructure:"gravatar"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	// Path is the path to the sqlite database file.
	Path string `yaml:"path" mapstructure:"path"`
}

// AuthConfig holds the authentication configuration.
type AuthConfig struct {
	// MinPasswordLength is the minimum accepted password length at registration.
	MinPasswordLength int `yaml:"min_password_length" mapstructure:"min_password_length"`
	// TokenCacheTTL is the number of seconds a resolved token may be served from cache.
	TokenCacheTTL int `yaml:"token_cache_ttl" mapstructure:"token_cache_ttl"`
}

// UploadsConfig holds the file upload configuration.
type UploadsConfig struct {
	// Dir is the root directory for uploaded files.
	Dir string `yaml:"dir" mapstructure:"dir"`
	// MaxImageSize is the maximum accepted image upload size in bytes.
	MaxImageSize int64 `yaml:"max_image_size" mapstructure:"max_image_size"`
}

// GravatarConfig holds the configuration for Gravatar profile pictures.
type GravatarConfig struct {
	// Enabled indicates whether Gravatar support is enabled.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// DefaultImage is the default image to use when no Gravatar is found.
	// Valid values: "404", "mp", "identicon", "monsterid", "wavatar", "retro", "robohash", "blank"
	DefaultImage string `yaml:"default_image" mapstructure:"default_image"`
	// Rating is the maximum rating for Gravatar images.
	// Valid values: "g", "pg", "r", "x"
	Rating string `yaml:"rating" mapstructure:"rating"`
	// Size is the size of the Gravatar image in pixels (1-2048).
	Size int `yaml:"size" mapstructure:"size"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("RECIPEBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var configFileFound bool
	if path != "" {
		// Use specific config file
		v.SetConfigFile(path)
	} else {
		// Search for config in common locations
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.recipebox")
		v.AddConfigPath("/etc/recipebox")
	}

	if err := v.ReadInConfig(); err != nil {
		// If no config file is found, use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileFound = true
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if configFileFound {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with RECIPEBOX_ prefix will override config file values")
	}

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:8000")
	v.SetDefault("server_url", "http://localhost:8000")

	// Database defaults
	v.SetDefault("database.path", "./data/recipebox.db")

	// Auth defaults
	v.SetDefault("auth.min_password_length", 5)
	v.SetDefault("auth.token_cache_ttl", 60)

	// Upload defaults
	v.SetDefault("uploads.dir", "./data/uploads")
	v.SetDefault("uploads.max_image_size", 10<<20) // 10 MiB

	// Gravatar defaults
	v.SetDefault("gravatar.enabled", false)
	v.SetDefault("gravatar.default_image", "robohash")
	v.SetDefault("gravatar.rating", "g")
	v.SetDefault("gravatar.size", 80)
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing recipebox config")
	}

	if c.Database == nil || c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	if c.Uploads == nil || c.Uploads.Dir == "" {
		return fmt.Errorf("uploads directory is required")
	}

	if c.Auth == nil {
		return fmt.Errorf("missing auth config")
	}
	if c.Auth.MinPasswordLength < 1 {
		return fmt.Errorf("auth min password length must be at least 1")
	}
	if c.Auth.TokenCacheTTL < 0 {
		return fmt.Errorf("auth token cache ttl must not be negative")
	}

	return nil
}
