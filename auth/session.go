package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	"go.uber.org/zap"
)

// DefaultKey is the session key used when the context names none, as in
// the single-user CLI.
const DefaultKey = "default"

type keyCtx struct{}

// WithKey scopes session operations on ctx to one session key.
func WithKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, keyCtx{}, key)
}

// KeyFromContext returns the session key carried by ctx, if any.
func KeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(keyCtx{}).(string)
	return key, ok && key != ""
}

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

// Session is the auth gate: it stores the token after login, hands it to
// the API client, and drops it on logout or on any 401.
type Session struct {
	store    TokenStore
	logger   *zap.Logger
	now      func() time.Time
	onForced []func(ctx context.Context)
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// OnForcedLogout registers a hook run after a 401 cleared the session.
func OnForcedLogout(fn func(ctx context.Context)) SessionOption {
	return func(s *Session) { s.onForced = append(s.onForced, fn) }
}

func NewSession(store TokenStore, logger *zap.Logger, opts ...SessionOption) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{store: store, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) key(ctx context.Context) string {
	if key, ok := KeyFromContext(ctx); ok {
		return key
	}
	return DefaultKey
}

// Login authenticates and stores the returned token and user.
func (s *Session) Login(ctx context.Context, authn Authenticator, username, password string) (*models.LoginResponse, error) {
	resp, err := authn.Login(ctx, &models.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, errors.New("login response carried no token")
	}
	if err := s.store.Set(ctx, s.key(ctx), &Record{Token: resp.Token, User: resp.User}); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}
	return resp, nil
}

// Logout forgets the stored token.
func (s *Session) Logout(ctx context.Context) error {
	return s.store.Delete(ctx, s.key(ctx))
}

// Current returns the stored record if its token is still valid. Expired
// records are removed.
func (s *Session) Current(ctx context.Context) (*Record, error) {
	key := s.key(ctx)
	rec, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	claims, err := ParseClaims(rec.Token)
	if err == nil && claims.ExpiredAt(s.now()) {
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to drop expired session", zap.Error(err))
		}
		return nil, ErrNoToken
	}
	return rec, nil
}

// Token implements clients.TokenSource. A missing or expired token yields
// "" so the request goes out unauthenticated and the backend answers 401.
func (s *Session) Token(ctx context.Context) (string, error) {
	rec, err := s.Current(ctx)
	if errors.Is(err, ErrNoToken) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return rec.Token, nil
}

// HandleUnauthorized clears the session after the backend rejected its
// token. It is meant to be installed as the API client's 401 hook.
func (s *Session) HandleUnauthorized(ctx context.Context) {
	key := s.key(ctx)
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Error("forced logout failed", zap.String("session", key), zap.Error(err))
	} else {
		s.logger.Info("session cleared after 401", zap.String("session", key))
	}
	for _, fn := range s.onForced {
		fn(ctx)
	}
}
