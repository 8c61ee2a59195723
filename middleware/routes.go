package middleware

// Route identifies which handler a request path dispatches to. Keeping this
// an enumerated variant (rather than a path→handler map) makes the dispatch
// switch exhaustiveness-checkable.
type Route int

const (
	// RouteOther is any path outside the reserved auth routes.
	RouteOther Route = iota
	// RouteLogin initiates the authorization-code flow.
	RouteLogin
	// RouteLogout clears the session cookies.
	RouteLogout
	// RouteCallback completes the authorization-code flow.
	RouteCallback
)

// Reserved sub-paths under the configured base path.
const (
	loginSubPath    = "login"
	logoutSubPath   = "logout"
	callbackSubPath = "oauth/callback"
)

// route classifies a request path by exact, case-sensitive comparison against
// the reserved routes.
func (m *Middleware) route(path string) Route {
	switch path {
	case m.opts.BasePath + loginSubPath:
		return RouteLogin
	case m.opts.BasePath + logoutSubPath:
		return RouteLogout
	case m.opts.BasePath + callbackSubPath:
		return RouteCallback
	default:
		return RouteOther
	}
}

// isPublic reports whether the path is in the configured allow-list.
func (m *Middleware) isPublic(path string) bool {
	for _, route := range m.opts.PublicRoutes {
		if route == path {
			return true
		}
	}
	return false
}
