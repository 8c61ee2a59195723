// Package config loads the kit's configuration from YAML, .env files, and
// environment variables, in increasing order of precedence.
package config

import (
	"fmt"

	"github.com/mkarakas/authkit/logger"
	"github.com/mkarakas/authkit/middleware"
	"github.com/mkarakas/authkit/provider"
	"github.com/mkarakas/authkit/session"
)

// Config is the root configuration for the auth kit.
type Config struct {
	// Provider holds the identity provider settings.
	Provider provider.Config `yaml:"provider" mapstructure:"provider"`

	// Middleware holds the routing surface options.
	Middleware middleware.Options `yaml:"middleware" mapstructure:"middleware"`

	// Session holds the cookie settings.
	Session session.CookieConfig `yaml:"session" mapstructure:"session"`

	// Log holds the logging settings.
	Log logger.Config `yaml:"log" mapstructure:"log"`
}

// ApplyDefaults fills in zero-value fields across all sections.
func (c *Config) ApplyDefaults() {
	c.Provider.ApplyDefaults()
	c.Middleware.ApplyDefaults()
	c.Session.ApplyDefaults()
	c.Log.ApplyDefaults()
}

// Validate checks required fields across all sections.
func (c *Config) Validate() error {
	if err := c.Provider.Validate(); err != nil {
		return fmt.Errorf("provider: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}
