// Package claims decodes identity token claims without contacting the network.
//
// Decode does NOT verify the token's signature — it only parses the payload
// segment. The identity provider's tokens are trusted here because they arrive
// through an HttpOnly, Secure, SameSite=Strict cookie that this kit itself
// issued after a server-to-server code exchange. A deployment that cannot rely
// on that channel must verify signatures against the provider's signing key
// before trusting the decoded claims.
package claims

import (
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/mkarakas/authkit/errors"
)

// IdentityClaims is the decoded payload of an identity token.
// Immutable once decoded; derived solely from the token string.
type IdentityClaims struct {
	gojwt.RegisteredClaims

	// ID is the provider's user identifier.
	ID string `json:"id"`

	// Email is the user's email address.
	Email string `json:"email"`

	// Name is the user's display name (may be empty).
	Name string `json:"name"`

	// PictureURL points at the user's avatar (may be empty).
	PictureURL string `json:"picture_url"`

	// IsVerified indicates whether the provider has verified the user.
	IsVerified bool `json:"is_verified"`

	// StripeID is the user's external billing identifier (may be empty).
	StripeID string `json:"stripe_id"`

	// CreatedAt is when the provider-side user record was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the provider-side user record was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// User is the application-facing view of an authenticated principal.
type User struct {
	ID         string
	Email      string
	Name       string
	PictureURL string
	IsVerified bool
	StripeID   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// User converts the decoded claims into the application-facing view.
func (c *IdentityClaims) User() *User {
	return &User{
		ID:         c.ID,
		Email:      c.Email,
		Name:       c.Name,
		PictureURL: c.PictureURL,
		IsVerified: c.IsVerified,
		StripeID:   c.StripeID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// Decode parses the payload segment of a three-segment compact token into
// IdentityClaims. It fails only on structural malformation (wrong segment
// count, invalid base64, invalid JSON payload) with a MALFORMED_TOKEN error.
// Semantically invalid claims — an expired exp, for instance — decode fine;
// expiry enforcement belongs to the caller, not the decoder.
func Decode(token string) (*IdentityClaims, error) {
	decoded := &IdentityClaims{}
	parser := gojwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, decoded); err != nil {
		return nil, errors.MalformedToken(err)
	}
	return decoded, nil
}
