package middleware

import (
	"net/http"

	"github.com/mkarakas/authkit/errors"
	"github.com/mkarakas/authkit/logger"
	"github.com/mkarakas/authkit/oauthstate"
)

// handleLogin initiates the Authorization Code flow: it redirects the user
// agent to the provider's authorize endpoint, carrying the post-login landing
// URL in the state parameter.
func (m *Middleware) handleLogin(w http.ResponseWriter, r *http.Request) {
	origin := requestURL(r)
	origin.Path = m.opts.LoggedInRedirectPath
	origin.RawQuery = ""

	authorizationURL, err := m.provider.AuthorizationURL(oauthstate.State{Origin: origin.String()})
	if err != nil {
		m.log.Error("failed to build authorization url", logger.Fields(logger.FieldError, err.Error()))
		errors.WriteJSON(w, err)
		return
	}

	http.Redirect(w, r, authorizationURL, http.StatusTemporaryRedirect)
}

// handleCallback completes the flow: it validates the callback parameters,
// exchanges the authorization code for tokens, sets both session cookies, and
// redirects to the state's origin URL. Every failure surfaces as a JSON error
// body — never a redirect, never a cookie write — so a broken login cannot
// bounce the user agent into a redirect loop.
func (m *Middleware) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	code := q.Get("code")
	if code == "" {
		errors.WriteJSON(w, errors.MissingOAuthParameter("code"))
		return
	}

	rawState := q.Get("state")
	if rawState == "" {
		errors.WriteJSON(w, errors.MissingOAuthParameter("state"))
		return
	}

	state, err := oauthstate.Decode(rawState)
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}

	result, err := m.provider.Exchange(r.Context(), code)
	if err != nil {
		m.log.Error("failed to exchange code for token", logger.Fields(logger.FieldError, err.Error()))
		errors.WriteJSON(w, err)
		return
	}

	m.store.Write(w, result.AccessToken, result.IDToken)
	http.Redirect(w, r, state.Origin, http.StatusTemporaryRedirect)
}

// handleLogout clears both session cookies and redirects to the configured
// logged-out path.
func (m *Middleware) handleLogout(w http.ResponseWriter, r *http.Request) {
	target := requestURL(r)
	target.Path = m.opts.LoggedOutRedirectPath
	target.RawQuery = ""

	m.store.Clear(w)
	http.Redirect(w, r, target.String(), http.StatusTemporaryRedirect)
}
