package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/ansuz/pkg/sectionnav"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Content ContentConfig     `yaml:"content"`
	Search  SearchConfig      `yaml:"search"`
	Nav     NavConfig         `yaml:"nav"`
	Auth    AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Content.Validate(); err != nil {
		return err
	}
	if err := c.Search.Validate(); err != nil {
		return err
	}
	if err := c.Nav.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns the HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// ContentConfig holds the path to the markdown content directory.
type ContentConfig struct {
	Path string `yaml:"path"`
	// IncludeDrafts allows listing requests to opt into draft posts.
	IncludeDrafts bool `yaml:"include_drafts"`
}

// Validate validates the content configuration.
func (c *ContentConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SearchConfig tunes the fuzzy search stage.
type SearchConfig struct {
	// MinScore is the similarity floor in (0, 1]; lower is looser.
	MinScore float64 `yaml:"min_score"`
}

// Validate validates the search configuration.
func (c *SearchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MinScore, validation.Required, validation.Min(0.0), validation.Max(1.0)),
	)
}

// NavConfig tunes the section navigation state machine.
type NavConfig struct {
	// HeaderOffset is the fixed header height subtracted from click-scroll
	// targets, in CSS pixels.
	HeaderOffset float64 `yaml:"header_offset"`
	// ScrollThrottleMS is the minimum spacing between scroll evaluations.
	ScrollThrottleMS int `yaml:"scroll_throttle_ms"`
}

// Validate validates the navigation configuration.
func (c *NavConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ScrollThrottleMS, validation.Min(0)),
	)
}

// SectionNav converts the settings into a navigator configuration. UI
// clients read the same values from GET /api/nav so their navigators agree
// with the server configuration.
func (c *NavConfig) SectionNav() sectionnav.Config {
	return sectionnav.Config{
		HeaderOffset: c.HeaderOffset,
		Throttle:     time.Duration(c.ScrollThrottleMS) * time.Millisecond,
	}
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Content: ContentConfig{
			Path: "./posts",
		},
		Search: SearchConfig{
			MinScore: 0.7,
		},
		Nav: NavConfig{
			HeaderOffset:     80,
			ScrollThrottleMS: 150,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
