package auth

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/joggingtracker/internal/common"
	"github.com/dmitrijs2005/joggingtracker/internal/server/models"
	"github.com/dmitrijs2005/joggingtracker/internal/result"
)

// Principal is the authenticated caller as asserted by a verified token.
type Principal struct {
	UserID    string
	UserName  string
	Roles     []models.Role
	TokenID   string
	ExpiresAt time.Time
}

const (
	msgUnauthenticated = "invalid credentials"
	msgForbidden       = "not authorized"
)

// Gate is the only place that reads identity and role claims out of a
// token. It trusts the signature and does not consult the identity store.
type Gate struct {
	codec *TokenCodec
}

func NewGate(codec *TokenCodec) *Gate {
	return &Gate{codec: codec}
}

// ParseBearer strips the "Bearer " prefix from an Authorization header value.
func ParseBearer(header string) (string, bool) {
	if len(header) < len(common.BearerPrefix) || !strings.EqualFold(header[:len(common.BearerPrefix)], common.BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(common.BearerPrefix):])
	return token, token != ""
}

// Authenticate decodes token into a Principal.
func (g *Gate) Authenticate(token string) (*Principal, error) {
	if token == "" {
		return nil, common.ErrInvalidToken
	}
	claims, err := g.codec.Parse(token)
	if err != nil {
		return nil, err
	}
	p := &Principal{
		UserID:   claims.Subject,
		UserName: claims.Name,
		Roles:    models.ParseRoles(claims.Roles),
		TokenID:  claims.ID,
	}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return p, nil
}

// UserID returns the subject of token, or "" for absent, malformed,
// expired or otherwise unverifiable tokens.
func (g *Gate) UserID(token string) string {
	p, err := g.Authenticate(token)
	if err != nil {
		return ""
	}
	return p.UserID
}

// Authorize accepts the request iff token is valid and at least one held
// role is in required. An empty required set admits any valid token.
func (g *Gate) Authorize(token string, required []models.Role) result.Result[*Principal] {
	p, err := g.Authenticate(token)
	if err != nil {
		return result.Failure[*Principal](result.KindUnauthenticated, msgUnauthenticated)
	}
	if len(required) > 0 && !models.AnyOf(p.Roles, required) {
		return result.Failure[*Principal](result.KindForbidden, msgForbidden)
	}
	return result.Success(p)
}

// AuthorizeOperation is Authorize with the required roles looked up in the
// operation matrix. Unknown operations are denied.
func (g *Gate) AuthorizeOperation(token string, op Operation) result.Result[*Principal] {
	required, ok := op.RequiredRoles()
	if !ok {
		return result.Failure[*Principal](result.KindForbidden, msgForbidden)
	}
	return g.Authorize(token, required)
}
