package session

import "net/http"

// Default cookie names for the two session credentials.
const (
	DefaultAccessTokenCookie = "authkit.access-token"
	DefaultIDTokenCookie     = "authkit.id-token"
)

// CookieConfig configures how session cookies are written.
type CookieConfig struct {
	// AccessTokenName is the access-token cookie name.
	AccessTokenName string `yaml:"access_token_name" mapstructure:"access_token_name"`

	// IDTokenName is the identity-token cookie name.
	IDTokenName string `yaml:"id_token_name" mapstructure:"id_token_name"`

	// Path scopes the cookies (default "/").
	Path string `yaml:"path" mapstructure:"path"`
}

// ApplyDefaults fills in zero-value fields.
func (c *CookieConfig) ApplyDefaults() {
	if c.AccessTokenName == "" {
		c.AccessTokenName = DefaultAccessTokenCookie
	}
	if c.IDTokenName == "" {
		c.IDTokenName = DefaultIDTokenCookie
	}
	if c.Path == "" {
		c.Path = "/"
	}
}

// Tokens are the two cookie-backed credentials. Absent cookies yield empty
// fields — reading never fails.
type Tokens struct {
	AccessToken string
	IDToken     string
}

// Store reads and writes the session cookies.
type Store struct {
	cfg CookieConfig
}

// NewStore creates a cookie store with the given configuration.
func NewStore(cfg CookieConfig) *Store {
	cfg.ApplyDefaults()
	return &Store{cfg: cfg}
}

// Read extracts both tokens from the request's cookies.
func (s *Store) Read(r *http.Request) Tokens {
	var t Tokens
	if c, err := r.Cookie(s.cfg.AccessTokenName); err == nil {
		t.AccessToken = c.Value
	}
	if c, err := r.Cookie(s.cfg.IDTokenName); err == nil {
		t.IDToken = c.Value
	}
	return t
}

// Write sets both session cookies. The cookies are invisible to page scripts,
// require a secure transport channel, and are sent only for same-site
// navigations — the provider's callback must land on this site before the
// cookies are expected to be present.
func (s *Store) Write(w http.ResponseWriter, accessToken, idToken string) {
	http.SetCookie(w, s.newCookie(s.cfg.AccessTokenName, accessToken, 0))
	http.SetCookie(w, s.newCookie(s.cfg.IDTokenName, idToken, 0))
}

// Clear removes both session cookies.
func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, s.newCookie(s.cfg.AccessTokenName, "", -1))
	http.SetCookie(w, s.newCookie(s.cfg.IDTokenName, "", -1))
}

func (s *Store) newCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     s.cfg.Path,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}
