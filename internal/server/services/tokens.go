package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/joggingtracker/internal/common"
	"github.com/dmitrijs2005/joggingtracker/internal/logging"
	"github.com/dmitrijs2005/joggingtracker/internal/result"
	"github.com/dmitrijs2005/joggingtracker/internal/server/auth"
)

// SessionSink receives the session artifacts a transport should hand back to
// the caller, such as an expired cookie on logout.
type SessionSink interface {
	SetCookie(ctx context.Context, cookie *http.Cookie) error
}

// TokenService logs users in with a username and password and hands out
// signed bearer tokens. Tokens are stateless: logout does not revoke them.
type TokenService struct {
	directory  *IdentityDirectory
	codec      *auth.TokenCodec
	cookieName string
	logger     logging.Logger
}

func NewTokenService(dir *IdentityDirectory, codec *auth.TokenCodec, cookieName string, logger logging.Logger) *TokenService {
	return &TokenService{
		directory:  dir,
		codec:      codec,
		cookieName: cookieName,
		logger:     logger.With("module", "tokens"),
	}
}

// Validity is the lifetime of issued tokens.
func (s *TokenService) Validity() time.Duration {
	return s.codec.Validity()
}

// Login returns a signed token and true, or "" and false. An unknown user
// and a wrong password are indistinguishable to the caller.
func (s *TokenService) Login(ctx context.Context, userName, password string) (string, bool) {
	user, err := s.directory.FindByUserName(ctx, userName)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "user lookup failed", "error", err)
		}
		// burn the same time as a real comparison
		s.directory.VerifyPassword(nil, password)
		return "", false
	}
	if !s.directory.VerifyPassword(user, password) {
		s.logger.Info(ctx, "login rejected", "user_id", user.ID)
		return "", false
	}

	roles, err := s.directory.Roles(ctx, user.ID)
	if err != nil {
		s.logger.Error(ctx, "role lookup failed", "user_id", user.ID, "error", err)
		return "", false
	}

	token, err := s.codec.Issue(user, roles)
	if err != nil {
		s.logger.Error(ctx, "token signing failed", "user_id", user.ID, "error", err)
		return "", false
	}
	s.logger.Info(ctx, "login", "user_id", user.ID)
	return token, true
}

// Logout clears the session cookie through sink. The bearer token itself
// stays valid until it expires.
func (s *TokenService) Logout(ctx context.Context, sink SessionSink) result.Result[result.Empty] {
	if sink == nil {
		return result.Done()
	}
	cookie := &http.Cookie{Name: s.cookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true}
	if err := sink.SetCookie(ctx, cookie); err != nil {
		s.logger.Warn(ctx, "clearing session cookie failed", "error", err)
	}
	return result.Done()
}
