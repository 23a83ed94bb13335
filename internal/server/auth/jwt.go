// Package auth signs and verifies the bearer tokens carried by every
// authenticated request, and decides which roles may run which operation.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/joggingtracker/internal/common"
	"github.com/dmitrijs2005/joggingtracker/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the claims bundle embedded in a token: name, jti, sub and one
// role entry per held role, plus iss/aud/exp/iat.
type Claims struct {
	Name  string   `json:"name"`
	Roles []string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenCodec issues and decodes HS256 tokens with a fixed key, issuer and
// audience. It is immutable after construction and safe for concurrent use.
type TokenCodec struct {
	key      []byte
	issuer   string
	audience string
	validity time.Duration
	now      func() time.Time
}

// NewTokenCodec fails with common.ErrSigningKeyMissing when key is empty.
func NewTokenCodec(key []byte, issuer, audience string, validity time.Duration) (*TokenCodec, error) {
	if len(key) == 0 {
		return nil, common.ErrSigningKeyMissing
	}
	if validity <= 0 {
		return nil, fmt.Errorf("token validity must be positive, got %s", validity)
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &TokenCodec{key: k, issuer: issuer, audience: audience, validity: validity, now: time.Now}, nil
}

// WithClock returns a copy of c that reads time from now.
func (c *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	cp := *c
	cp.now = now
	return &cp
}

// Validity is the lifetime given to issued tokens.
func (c *TokenCodec) Validity() time.Duration { return c.validity }

// Issue signs a new token for user carrying roles.
func (c *TokenCodec) Issue(user *models.User, roles []models.Role) (string, error) {
	issuedAt := c.now()
	claims := Claims{
		Name:  user.UserName,
		Roles: models.RoleNames(roles),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.validity)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(c.key)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Parse verifies signature, algorithm, issuer, audience and expiry.
// Expired tokens yield common.ErrTokenExpired, anything else that fails
// common.ErrInvalidToken.
func (c *TokenCodec) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return c.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
