// Package session derives the per-request authenticated state from the two
// cookie-backed credentials.
//
// A Session exists only for the lifetime of a single request. It is recomputed
// from cookies on every request and never cached server-side.
package session

import (
	"net/http"

	"github.com/mkarakas/authkit/claims"
)

// Session is the authenticated-state view exposed to application code.
// A nil User means the request is unauthenticated.
type Session struct {
	User        *claims.User
	AccessToken string
	IDToken     string
}

// Authenticated reports whether the session carries a usable identity.
func (s *Session) Authenticated() bool {
	return s != nil && s.User != nil
}

// Auth computes the session for the given request. Both cookies must be
// present and the identity token must decode; a missing cookie or an unusable
// token yields an unauthenticated session rather than an error.
func (s *Store) Auth(r *http.Request) *Session {
	tokens := s.Read(r)
	if tokens.AccessToken == "" || tokens.IDToken == "" {
		return &Session{}
	}

	decoded, err := claims.Decode(tokens.IDToken)
	if err != nil {
		// Undecodable identity token: treat as unauthenticated.
		return &Session{}
	}

	return &Session{
		User:        decoded.User(),
		AccessToken: tokens.AccessToken,
		IDToken:     tokens.IDToken,
	}
}
