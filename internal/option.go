package internal

import "fmt"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config     *Config
	contentDir string
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithContentDir overrides the configured content directory, typically from
// the --content flag. An empty path leaves the configuration untouched.
func WithContentDir(path string) Option {
	return func(a *application) {
		a.contentDir = path
	}
}

// resolveConfig applies overrides on top of the loaded configuration.
func (a *application) resolveConfig() (*Config, error) {
	if a.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if a.contentDir != "" {
		a.config.Content.Path = a.contentDir
	}
	return a.config, nil
}
