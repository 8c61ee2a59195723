package middleware_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/mkarakas/authkit/errors"
	"github.com/mkarakas/authkit/middleware"
	"github.com/mkarakas/authkit/oauthstate"
	"github.com/mkarakas/authkit/provider"
	"github.com/mkarakas/authkit/session"
)

func newProvider(t *testing.T, domain string) *provider.Client {
	t.Helper()
	p, err := provider.New(provider.Config{
		Domain:       domain,
		ClientID:     "client-abc",
		ClientSecret: "secret-xyz",
		RedirectURI:  "https://app.example.com/oauth/callback",
	}, nil)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func newMiddleware(t *testing.T, domain string, opts middleware.Options) (*middleware.Middleware, *session.Store) {
	t.Helper()
	store := session.NewStore(session.CookieConfig{})
	return middleware.New(newProvider(t, domain), store, opts, nil), store
}

func testIDToken(t *testing.T) string {
	t.Helper()
	payload, err := json.Marshal(map[string]any{"sub": "user-1", "id": "user-1", "email": "u@example.com"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

// passthrough records whether the wrapped application handler ran.
type passthrough struct {
	called  bool
	session *session.Session
}

func (p *passthrough) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.called = true
		p.session, _ = session.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestPublicRoute_PassesThrough(t *testing.T) {
	mw, _ := newMiddleware(t, "https://id.example.com", middleware.Options{
		PublicRoutes: []string{"/health"},
	})
	next := &passthrough{}

	rr := httptest.NewRecorder()
	mw.Handler(next.handler()).ServeHTTP(rr, httptest.NewRequest("GET", "http://app.example.com/health", http.NoBody))

	if !next.called {
		t.Fatal("expected pass-through to application handler")
	}
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Error("public route must not touch cookies")
	}
	if next.session != nil {
		t.Error("public route must not attach a session")
	}
}

func TestLogin_RedirectsToAuthorizationURL(t *testing.T) {
	mw, _ := newMiddleware(t, "https://id.example.com", middleware.Options{BasePath: "/auth/"})

	rr := httptest.NewRecorder()
	mw.Handler(nil).ServeHTTP(rr, httptest.NewRequest("GET", "http://app.example.com/auth/login", http.NoBody))

	if rr.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307, got %d", rr.Code)
	}

	loc, err := url.Parse(rr.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	if loc.Host != "id.example.com" || loc.Path != "/oauth/authorize" {
		t.Errorf("unexpected redirect target: %s", loc)
	}

	q := loc.Query()
	if q.Get("response_type") != "code" || q.Get("client_id") != "client-abc" {
		t.Errorf("unexpected query: %v", q)
	}
	state, err := oauthstate.Decode(q.Get("state"))
	if err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Origin != "http://app.example.com/" {
		t.Errorf("unexpected state origin: %s", state.Origin)
	}
}

func TestCallback_Success(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/oauth/token" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"AT","id_token":"IT"}`))
	}))
	defer tokenSrv.Close()

	mw, _ := newMiddleware(t, tokenSrv.URL, middleware.Options{})

	state := oauthstate.Encode(oauthstate.State{Origin: "http://app.example.com/dashboard"})
	req := httptest.NewRequest("GET", "http://app.example.com/oauth/callback?code=abc&state="+state, http.NoBody)
	rr := httptest.NewRecorder()
	mw.Handler(nil).ServeHTTP(rr, req)

	if rr.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307, got %d (body: %s)", rr.Code, rr.Body.String())
	}
	if loc := rr.Header().Get("Location"); loc != "http://app.example.com/dashboard" {
		t.Errorf("expected redirect to state origin, got %s", loc)
	}

	cookies := map[string]string{}
	for _, c := range rr.Result().Cookies() {
		cookies[c.Name] = c.Value
	}
	if cookies[session.DefaultAccessTokenCookie] != "AT" {
		t.Errorf("access token cookie not set: %v", cookies)
	}
	if cookies[session.DefaultIDTokenCookie] != "IT" {
		t.Errorf("id token cookie not set: %v", cookies)
	}
}

func TestCallback_ExchangeFailure(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("invalid client"))
	}))
	defer tokenSrv.Close()

	mw, _ := newMiddleware(t, tokenSrv.URL, middleware.Options{})

	state := oauthstate.Encode(oauthstate.State{Origin: "http://app.example.com/"})
	req := httptest.NewRequest("GET", "http://app.example.com/oauth/callback?code=abc&state="+state, http.NoBody)
	rr := httptest.NewRecorder()
	mw.Handler(nil).ServeHTTP(rr, req)

	if rr.Code == http.StatusTemporaryRedirect {
		t.Fatal("exchange failure must not redirect")
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Error("exchange failure must not set cookies")
	}

	var resp errors.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected JSON error body: %v", err)
	}
	if resp.Error.Code != errors.ErrCodeUpstreamExchangeFailed {
		t.Errorf("expected UPSTREAM_EXCHANGE_FAILED, got %s", resp.Error.Code)
	}
	if resp.Error.Details["status"] != float64(401) {
		t.Errorf("expected upstream status 401 in body, got %v", resp.Error.Details["status"])
	}
	if resp.Error.Details["data"] != "invalid client" {
		t.Errorf("expected raw upstream text in body, got %v", resp.Error.Details["data"])
	}
}

func TestCallback_MissingParameters(t *testing.T) {
	mw, _ := newMiddleware(t, "https://id.example.com", middleware.Options{})

	tests := []struct {
		name   string
		target string
		param  string
	}{
		{"missing code", "http://app.example.com/oauth/callback?state=abc", "code"},
		{"missing state", "http://app.example.com/oauth/callback?code=abc", "state"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			mw.Handler(nil).ServeHTTP(rr, httptest.NewRequest("GET", tt.target, http.NoBody))

			if rr.Code == http.StatusTemporaryRedirect {
				t.Fatal("missing parameter must not redirect")
			}
			var resp errors.ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("expected JSON error body: %v", err)
			}
			if resp.Error.Code != errors.ErrCodeMissingOAuthParameter {
				t.Errorf("expected MISSING_OAUTH_PARAMETER, got %s", resp.Error.Code)
			}
			if resp.Error.Details["parameter"] != tt.param {
				t.Errorf("expected parameter %q, got %v", tt.param, resp.Error.Details["parameter"])
			}
		})
	}
}

func TestCallback_MalformedState(t *testing.T) {
	mw, _ := newMiddleware(t, "https://id.example.com", middleware.Options{})

	req := httptest.NewRequest("GET", "http://app.example.com/oauth/callback?code=abc&state=!!!", http.NoBody)
	rr := httptest.NewRecorder()
	mw.Handler(nil).ServeHTTP(rr, req)

	var resp errors.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected JSON error body: %v", err)
	}
	if resp.Error.Code != errors.ErrCodeMalformedState {
		t.Errorf("expected MALFORMED_STATE, got %s", resp.Error.Code)
	}
}

func TestLogout_ClearsCookiesAndRedirects(t *testing.T) {
	mw, _ := newMiddleware(t, "https://id.example.com", middleware.Options{
		LoggedOutRedirectPath: "/goodbye",
	})

	rr := httptest.NewRecorder()
	mw.Handler(nil).ServeHTTP(rr, httptest.NewRequest("GET", "http://app.example.com/logout", http.NoBody))

	if rr.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "http://app.example.com/goodbye" {
		t.Errorf("unexpected redirect target: %s", loc)
	}

	cleared := 0
	for _, c := range rr.Result().Cookies() {
		if c.MaxAge < 0 && c.Value == "" {
			cleared++
		}
	}
	if cleared != 2 {
		t.Errorf("expected both cookies removed, got %d", cleared)
	}
}

func TestLogout_DefaultsToRoot(t *testing.T) {
	mw, _ := newMiddleware(t, "https://id.example.com", middleware.Options{})

	rr := httptest.NewRecorder()
	mw.Handler(nil).ServeHTTP(rr, httptest.NewRequest("GET", "http://app.example.com/logout", http.NoBody))

	if loc := rr.Header().Get("Location"); loc != "http://app.example.com/" {
		t.Errorf("expected redirect to root, got %s", loc)
	}
}

func TestProtected_AuthenticatedPassesThroughWithSession(t *testing.T) {
	mw, _ := newMiddleware(t, "https://id.example.com", middleware.Options{})
	next := &passthrough{}

	req := httptest.NewRequest("GET", "http://app.example.com/dashboard", http.NoBody)
	req.AddCookie(&http.Cookie{Name: session.DefaultAccessTokenCookie, Value: "AT"})
	req.AddCookie(&http.Cookie{Name: session.DefaultIDTokenCookie, Value: testIDToken(t)})

	rr := httptest.NewRecorder()
	mw.Handler(next.handler()).ServeHTTP(rr, req)

	if !next.called {
		t.Fatal("expected pass-through to application handler")
	}
	if next.session == nil || !next.session.Authenticated() {
		t.Fatal("expected session attached to request context")
	}
	if next.session.User.ID != "user-1" {
		t.Errorf("unexpected user: %+v", next.session.User)
	}
}

func TestProtected_UnauthenticatedInitiatesLogin(t *testing.T) {
	mw, _ := newMiddleware(t, "https://id.example.com", middleware.Options{})
	next := &passthrough{}

	rr := httptest.NewRecorder()
	mw.Handler(next.handler()).ServeHTTP(rr, httptest.NewRequest("GET", "http://app.example.com/dashboard", http.NoBody))

	if next.called {
		t.Fatal("unauthenticated request must not reach the application")
	}
	if rr.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307, got %d", rr.Code)
	}
	loc, err := url.Parse(rr.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	if loc.Path != "/oauth/authorize" {
		t.Errorf("expected login initiation, got %s", loc)
	}
}

func TestProtected_UnauthenticatedRedirectConfigured(t *testing.T) {
	mw, _ := newMiddleware(t, "https://id.example.com", middleware.Options{
		UnauthenticatedRedirectPath: "/welcome",
	})

	rr := httptest.NewRecorder()
	mw.Handler(nil).ServeHTTP(rr, httptest.NewRequest("GET", "http://app.example.com/dashboard", http.NoBody))

	if rr.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "http://app.example.com/welcome" {
		t.Errorf("unexpected redirect target: %s", loc)
	}
}

func TestProtected_MalformedIDTokenTreatedAsUnauthenticated(t *testing.T) {
	mw, _ := newMiddleware(t, "https://id.example.com", middleware.Options{
		UnauthenticatedRedirectPath: "/welcome",
	})

	req := httptest.NewRequest("GET", "http://app.example.com/dashboard", http.NoBody)
	req.AddCookie(&http.Cookie{Name: session.DefaultAccessTokenCookie, Value: "AT"})
	req.AddCookie(&http.Cookie{Name: session.DefaultIDTokenCookie, Value: "garbage"})

	rr := httptest.NewRecorder()
	mw.Handler(nil).ServeHTTP(rr, req)

	if loc := rr.Header().Get("Location"); !strings.HasSuffix(loc, "/welcome") {
		t.Errorf("expected unauthenticated redirect, got %s", loc)
	}
}

func TestRouteMatching_ExactAndCaseSensitive(t *testing.T) {
	mw, _ := newMiddleware(t, "https://id.example.com", middleware.Options{
		UnauthenticatedRedirectPath: "/welcome",
		BasePath:                    "/auth/",
	})

	// Near-miss paths must fall through to the protected branch, not the
	// reserved handlers.
	for _, path := range []string{"/auth/Login", "/auth/login/", "/AUTH/login", "/auth/loginx"} {
		rr := httptest.NewRecorder()
		mw.Handler(nil).ServeHTTP(rr, httptest.NewRequest("GET", "http://app.example.com"+path, http.NoBody))

		if loc := rr.Header().Get("Location"); loc != "http://app.example.com/welcome" {
			t.Errorf("path %s: expected fall-through to unauthenticated redirect, got %s", path, loc)
		}
	}
}
