// Package authkit wires the kit's pieces together: the provider client, the
// cookie-backed session store, the auth middleware, and per-session access
// control caches.
//
//	cfg, err := config.Load()
//	kit, err := authkit.New(cfg)
//	http.ListenAndServe(":8080", kit.Middleware.Handler(app))
//
// Inside a protected handler:
//
//	sess := session.MustFromContext(r.Context())
//	ok, err := kit.AccessControl(sess).HasPermission(r.Context(), "generate-image")
package authkit

import (
	"github.com/mkarakas/authkit/accesscontrol"
	"github.com/mkarakas/authkit/config"
	"github.com/mkarakas/authkit/logger"
	"github.com/mkarakas/authkit/middleware"
	"github.com/mkarakas/authkit/provider"
	"github.com/mkarakas/authkit/session"
)

// Kit bundles the configured components.
type Kit struct {
	// Provider is the outbound OAuth2 client.
	Provider *provider.Client

	// Sessions reads and writes the cookie-backed session credentials.
	Sessions *session.Store

	// Middleware is the request-handling state machine.
	Middleware *middleware.Middleware

	// Log is the kit's root logger.
	Log *logger.Logger
}

// New builds a Kit from configuration.
func New(cfg *config.Config) (*Kit, error) {
	log := logger.New(&cfg.Log, "authkit")

	p, err := provider.New(cfg.Provider, log)
	if err != nil {
		return nil, err
	}

	store := session.NewStore(cfg.Session)

	return &Kit{
		Provider:   p,
		Sessions:   store,
		Middleware: middleware.New(p, store, cfg.Middleware, log),
		Log:        log,
	}, nil
}

// AccessControl returns an entitlement cache for the given session's
// principal. The cache is scoped to that principal; construct one per session
// and do not share it across concurrent principals.
func (k *Kit) AccessControl(s *session.Session) *accesscontrol.Cache {
	return accesscontrol.NewCache(k.Provider.API(s.AccessToken))
}
