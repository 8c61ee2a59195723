package provider

import (
	"time"

	"github.com/mkarakas/authkit/validation"
)

// Default requested scopes for the authorization request.
var DefaultScopes = []string{"openid", "email", "profile"}

// Config holds the identity provider settings.
// Loadable from env/YAML via mapstructure tags.
type Config struct {
	// Domain is the provider's base URL (e.g. "https://id.example.com").
	Domain string `yaml:"domain" mapstructure:"domain" validate:"required,url"`

	// ClientID is the OAuth2 client id.
	ClientID string `yaml:"client_id" mapstructure:"client_id" validate:"required"`

	// ClientSecret is the OAuth2 client secret.
	ClientSecret string `yaml:"client_secret" mapstructure:"client_secret" validate:"required"`

	// RedirectURI is the OAuth2 callback URL registered with the provider.
	RedirectURI string `yaml:"redirect_uri" mapstructure:"redirect_uri" validate:"required,url"`

	// Scopes are the OAuth2 scopes to request (default: openid email profile).
	Scopes []string `yaml:"scopes" mapstructure:"scopes"`

	// Timeout bounds every outbound call to the provider (default: 10s).
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if len(c.Scopes) == 0 {
		c.Scopes = DefaultScopes
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	return validation.Struct(c)
}
