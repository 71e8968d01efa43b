package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	"github.com/golang-jwt/jwt/v4"
)

// Claims are the fields the backend puts in its HS256 login tokens.
type Claims struct {
	UserID   models.ID `json:"user_id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	jwt.RegisteredClaims
}

// ExpiredAt reports whether the token has an exp claim at or before now.
// Tokens without exp never expire here; the backend still decides.
func (c *Claims) ExpiredAt(now time.Time) bool {
	return c.ExpiresAt != nil && !now.Before(c.ExpiresAt.Time)
}

// ParseClaims decodes a token without checking its signature. The BFF does
// not hold the backend secret by default, so it only reads exp and the
// user fields.
func ParseClaims(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	return claims, nil
}

// Verifier checks token signatures when the backend secret is shared with
// the BFF.
type Verifier struct {
	secret []byte
}

// NewVerifier returns nil for an empty secret. A nil Verifier only decodes.
func NewVerifier(secret string) *Verifier {
	if secret == "" {
		return nil
	}
	return &Verifier{secret: []byte(secret)}
}

// ErrTokenExpired is returned for tokens past their exp claim.
var ErrTokenExpired = errors.New("token expired")

// Verify parses token and checks its HMAC signature and expiry. On a nil
// Verifier only the expiry is checked.
func (v *Verifier) Verify(token string, now time.Time) (*Claims, error) {
	if v == nil {
		claims, err := ParseClaims(token)
		if err != nil {
			return nil, err
		}
		if claims.ExpiredAt(now) {
			return nil, ErrTokenExpired
		}
		return claims, nil
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
