package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/auth"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/clients"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LoginResult is a successful BFF login. SessionID goes into the session
// cookie; the backend token stays server-side.
type LoginResult struct {
	SessionID string      `json:"-"`
	User      models.User `json:"user"`
}

// SessionStatus reports whether the caller's session is still usable.
type SessionStatus struct {
	Authenticated bool         `json:"authenticated"`
	User          *models.User `json:"user,omitempty"`
}

// SessionService issues and ends BFF sessions on top of auth.Session.
type SessionService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*LoginResult, *ServiceError)
	Logout(ctx context.Context, sessionID string) *ServiceError
	Status(ctx context.Context, sessionID string) *SessionStatus
}

type sessionServiceImpl struct {
	session *auth.Session
	authn   auth.Authenticator
	logger  *zap.Logger
}

// NewSessionService creates a new SessionService.
func NewSessionService(session *auth.Session, authn auth.Authenticator, logger *zap.Logger) SessionService {
	return &sessionServiceImpl{session: session, authn: authn, logger: logger}
}

func (s *sessionServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*LoginResult, *ServiceError) {
	if err := validate.Struct(req); err != nil {
		return nil, &ServiceError{StatusCode: http.StatusUnprocessableEntity, Message: "Enter your username and password"}
	}

	sid := uuid.NewString()
	resp, err := s.session.Login(auth.WithKey(ctx, sid), s.authn, req.Username, req.Password)
	if err != nil {
		var apiErr *clients.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
			s.logger.Info("login rejected", zap.String("username", req.Username), zap.Int("status", apiErr.StatusCode))
			return nil, &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid username or password"}
		}
		s.logger.Error("login failed", zap.String("username", req.Username), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusBadGateway, Message: "Login is unavailable, please try again"}
	}

	s.logger.Info("user logged in", zap.String("username", resp.User.Username))
	return &LoginResult{SessionID: sid, User: resp.User}, nil
}

func (s *sessionServiceImpl) Logout(ctx context.Context, sessionID string) *ServiceError {
	if sessionID == "" {
		return nil
	}
	if err := s.session.Logout(auth.WithKey(ctx, sessionID)); err != nil {
		s.logger.Error("logout failed", zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to log out"}
	}
	return nil
}

func (s *sessionServiceImpl) Status(ctx context.Context, sessionID string) *SessionStatus {
	if sessionID == "" {
		return &SessionStatus{}
	}
	rec, err := s.session.Current(auth.WithKey(ctx, sessionID))
	if err != nil {
		if !errors.Is(err, auth.ErrNoToken) {
			s.logger.Warn("session lookup failed", zap.Error(err))
		}
		return &SessionStatus{}
	}
	user := rec.User
	return &SessionStatus{Authenticated: true, User: &user}
}
