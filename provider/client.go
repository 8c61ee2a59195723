// Package provider implements the outbound OAuth2 client for the identity
// provider: authorization URL construction, authorization-code exchange, and
// bearer-authenticated API fetches.
//
// The authorization URL carries the client secret as a query parameter because
// the provider's protocol variant requires it. The secret is therefore visible
// to the user agent and to referrer logs; a provider supporting secret-free
// authorization requests should get the secret only in the server-to-server
// exchange.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mkarakas/authkit/errors"
	"github.com/mkarakas/authkit/logger"
	"github.com/mkarakas/authkit/oauthstate"
	"github.com/mkarakas/authkit/version"
)

// Provider endpoint paths.
const (
	authorizePath = "/oauth/authorize"
	tokenPath     = "/api/oauth/token"
)

// TokenResult holds the tokens returned from a successful code exchange.
type TokenResult struct {
	// AccessToken authorizes calls to protected provider APIs.
	AccessToken string `json:"access_token"`

	// IDToken is the raw identity token JWT string.
	IDToken string `json:"id_token"`
}

// Client talks to the identity provider.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *logger.Logger
}

// New creates a provider client. The configured timeout bounds every call.
func New(cfg Config, log *logger.Logger) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("provider: %w", err)
	}
	if log == nil {
		log = logger.NewDefault("authkit")
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log.WithComponent("provider"),
	}, nil
}

// Config returns the client's resolved configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// AuthorizationURL builds the browser-redirect URL that initiates the
// Authorization Code flow, embedding the encoded state.
func (c *Client) AuthorizationURL(state oauthstate.State) (string, error) {
	u, err := url.Parse(c.cfg.Domain)
	if err != nil {
		return "", errors.Validation("invalid provider domain").WithCause(err)
	}
	u.Path = authorizePath

	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", c.cfg.ClientID)
	q.Set("client_secret", c.cfg.ClientSecret)
	q.Set("redirect_uri", c.cfg.RedirectURI)
	q.Set("state", oauthstate.Encode(state))
	q.Set("scope", strings.Join(c.cfg.Scopes, " "))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Exchange trades an authorization code for tokens via a server-to-server
// form-encoded POST to the provider's token endpoint. A non-success status
// surfaces as an UPSTREAM_EXCHANGE_FAILED error carrying the provider's
// status and raw response text.
func (c *Client) Exchange(ctx context.Context, code string) (*TokenResult, error) {
	form := url.Values{}
	form.Set("code", code)
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("redirect_uri", c.cfg.RedirectURI)
	form.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Domain+tokenPath,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Internal(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.New(errors.ErrCodeUpstreamExchangeFailed,
			"Token endpoint unreachable.", http.StatusBadGateway).WithCause(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.New(errors.ErrCodeUpstreamExchangeFailed,
			"Failed to read token endpoint response.", http.StatusBadGateway).WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Error("code exchange failed", logger.Fields(
			logger.FieldStatus, resp.StatusCode,
			logger.FieldOperation, "exchange",
		))
		return nil, errors.UpstreamExchangeFailed(resp.StatusCode, string(body))
	}

	var result TokenResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, errors.New(errors.ErrCodeUpstreamExchangeFailed,
			"Token endpoint returned an unparseable body.", http.StatusBadGateway).WithCause(err)
	}

	return &result, nil
}

// API returns a client for the provider's protected API, authenticated as the
// principal holding the given access token.
func (c *Client) API(accessToken string) *APIClient {
	return &APIClient{client: c, accessToken: accessToken}
}

// APIClient performs bearer-authenticated JSON fetches against the provider
// API on behalf of one principal.
type APIClient struct {
	client      *Client
	accessToken string
}

// GetJSON fetches the given provider API path and decodes the JSON response
// into out. Transport failures and non-success statuses surface as
// UPSTREAM_FETCH_FAILED errors; out is untouched on error.
func (a *APIClient) GetJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.client.cfg.Domain+path, http.NoBody)
	if err != nil {
		return errors.Internal(err)
	}
	req.Header.Set("Authorization", "Bearer "+a.accessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := a.client.httpClient.Do(req)
	if err != nil {
		return errors.UpstreamFetchFailed(path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return errors.UpstreamFetchFailed(path,
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.UpstreamFetchFailed(path, fmt.Errorf("decode response: %w", err))
	}

	return nil
}
