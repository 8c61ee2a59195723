// Package middleware implements the request-handling state machine that
// decides, per incoming request, whether to serve it, redirect to login,
// redirect to logout, or run the OAuth callback exchange.
//
// The decision order is: public route → reserved route → authenticated
// pass-through → unauthenticated redirect → login initiation. Authenticated
// requests reach the next handler with the session attached to the request
// context (see the session package).
package middleware

import (
	"net/http"
	"net/url"

	"github.com/mkarakas/authkit/logger"
	"github.com/mkarakas/authkit/provider"
	"github.com/mkarakas/authkit/session"
)

// Middleware is the auth middleware / route dispatcher.
type Middleware struct {
	provider *provider.Client
	store    *session.Store
	opts     Options
	log      *logger.Logger
}

// New creates the middleware. A nil logger falls back to the default.
func New(p *provider.Client, store *session.Store, opts Options, log *logger.Logger) *Middleware {
	opts.ApplyDefaults()
	if log == nil {
		log = logger.NewDefault("authkit")
	}
	return &Middleware{
		provider: p,
		store:    store,
		opts:     opts,
		log:      log.WithComponent("middleware"),
	}
}

// Handler wraps the application handler with the auth state machine. This is
// the standard Go middleware signature, so it composes with any http.Handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		m.log.Debug("dispatch", logger.Fields(logger.FieldPath, path))

		if m.isPublic(path) {
			m.log.Info("public route, skipping auth check", logger.Fields(logger.FieldPath, path))
			next.ServeHTTP(w, r)
			return
		}

		switch m.route(path) {
		case RouteLogin:
			m.handleLogin(w, r)
		case RouteLogout:
			m.handleLogout(w, r)
		case RouteCallback:
			m.handleCallback(w, r)
		case RouteOther:
			m.dispatchProtected(w, r, next)
		}
	})
}

// dispatchProtected handles paths outside the reserved routes: authenticated
// requests pass through with the session in context, unauthenticated ones are
// redirected or bounced into login initiation.
func (m *Middleware) dispatchProtected(w http.ResponseWriter, r *http.Request, next http.Handler) {
	sess := m.store.Auth(r)
	if sess.Authenticated() {
		next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), sess)))
		return
	}

	if m.opts.UnauthenticatedRedirectPath != "" {
		target := requestURL(r)
		target.Path = m.opts.UnauthenticatedRedirectPath
		target.RawQuery = ""
		http.Redirect(w, r, target.String(), http.StatusTemporaryRedirect)
		return
	}

	m.handleLogin(w, r)
}

// requestURL reconstructs the absolute URL of the incoming request.
func requestURL(r *http.Request) *url.URL {
	u := *r.URL
	u.Host = r.Host
	if r.TLS != nil {
		u.Scheme = "https"
	} else {
		u.Scheme = "http"
	}
	return &u
}
