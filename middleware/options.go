package middleware

// Options configures the auth middleware's routing surface.
type Options struct {
	// PublicRoutes are paths served unauthenticated, with no side effects.
	// Matching is exact-string and case-sensitive.
	PublicRoutes []string `yaml:"public_routes" mapstructure:"public_routes"`

	// UnauthenticatedRedirectPath, when set, is where unauthenticated requests
	// to protected paths are redirected instead of initiating login.
	UnauthenticatedRedirectPath string `yaml:"unauthenticated_redirect_path" mapstructure:"unauthenticated_redirect_path"`

	// BasePath is the prefix under which the reserved routes (login, logout,
	// oauth/callback) live. Default "/".
	BasePath string `yaml:"base_path" mapstructure:"base_path"`

	// LoggedInRedirectPath is where a fresh login lands. Default "/".
	LoggedInRedirectPath string `yaml:"logged_in_redirect_path" mapstructure:"logged_in_redirect_path"`

	// LoggedOutRedirectPath is where logout lands. Default "/".
	LoggedOutRedirectPath string `yaml:"logged_out_redirect_path" mapstructure:"logged_out_redirect_path"`
}

// ApplyDefaults fills in zero-value fields.
func (o *Options) ApplyDefaults() {
	if o.BasePath == "" {
		o.BasePath = "/"
	}
	if o.LoggedInRedirectPath == "" {
		o.LoggedInRedirectPath = "/"
	}
	if o.LoggedOutRedirectPath == "" {
		o.LoggedOutRedirectPath = "/"
	}
}
