// Package oauthstate encodes the opaque value carried through the OAuth2
// redirect round-trip as the `state` query parameter.
//
// The codec is reversible, not tamper-proof: the encoded value carries no
// signature or session binding, so a user agent able to rewrite the `state`
// parameter can choose the post-login landing URL. Deployments that need to
// close that door should bind the state to the session on emission and verify
// the binding on receipt.
package oauthstate

import (
	"encoding/base64"
	"net/url"

	"github.com/mkarakas/authkit/errors"
)

// State is the value that must survive the provider round-trip unmodified.
type State struct {
	// Origin is the URL to return the user to after login completes.
	Origin string
}

// Encode flattens the state into form-encoded pairs, then applies URL-safe
// base64 so the result can sit in a query parameter without escaping.
func Encode(s State) string {
	v := url.Values{}
	v.Set("origin", s.Origin)
	return base64.RawURLEncoding.EncodeToString([]byte(v.Encode()))
}

// Decode reverses Encode. Undecodable input yields a MALFORMED_STATE error.
func Decode(raw string) (State, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return State{}, errors.MalformedState(err)
	}
	v, err := url.ParseQuery(string(decoded))
	if err != nil {
		return State{}, errors.MalformedState(err)
	}
	return State{Origin: v.Get("origin")}, nil
}
