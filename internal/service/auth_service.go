package service

import (
	"context"
	"errors"
	"fmt"

	"gvnatural/internal/backend"
	"gvnatural/internal/domain"
	"gvnatural/internal/repository"

	"go.uber.org/zap"
)

// ErrIncompleteAuth means the backend answered a login flow without both a
// token and a profile. Either alone is useless, so nothing is stored.
var ErrIncompleteAuth = errors.New("backend returned incomplete credentials")

// AuthService drives the customer-realm login flows. The backend issues and
// owns the tokens; this service only stores what comes back, bound to the
// browser session.
type AuthService struct {
	auth   *backend.AuthAPI
	creds  *repository.CredentialRepository
	logger *zap.Logger
}

func NewAuthService(auth *backend.AuthAPI, creds *repository.CredentialRepository, logger *zap.Logger) *AuthService {
	return &AuthService{auth: auth, creds: creds, logger: logger}
}

// Register creates an account. When the backend logs the user straight in
// (token plus profile in the response) the session is authenticated
// immediately; otherwise the caller proceeds to a login flow.
func (s *AuthService) Register(ctx context.Context, sessionID string, req backend.RegisterRequest) (*domain.User, error) {
	resp, err := s.auth.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken != "" && resp.User != nil {
		if err := s.storeAuth(ctx, sessionID, resp.AccessToken, resp.User); err != nil {
			return nil, err
		}
	}
	return resp.User, nil
}

func (s *AuthService) Login(ctx context.Context, sessionID string, req backend.LoginRequest) (*domain.User, error) {
	resp, err := s.auth.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" || resp.User == nil {
		return nil, ErrIncompleteAuth
	}
	if err := s.storeAuth(ctx, sessionID, resp.AccessToken, resp.User); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// SendOTP asks the backend to text a code. The resend cooldown is enforced
// at the route level by the rate limiter.
func (s *AuthService) SendOTP(ctx context.Context, phone string) error {
	return s.auth.SendOTP(ctx, phone)
}

func (s *AuthService) VerifyOTP(ctx context.Context, sessionID string, req backend.VerifyOTPRequest) (*domain.User, error) {
	resp, err := s.auth.VerifyOTP(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" || resp.User == nil {
		return nil, ErrIncompleteAuth
	}
	if err := s.storeAuth(ctx, sessionID, resp.AccessToken, resp.User); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Logout drops the customer realm's stored credentials. The admin realm is
// untouched.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.creds.ClearAuth(ctx, sessionID)
}

// Profile returns the stored customer profile, if the session holds one.
func (s *AuthService) Profile(ctx context.Context, sessionID string) (*domain.User, bool, error) {
	var user domain.User
	ok, err := s.creds.Profile(ctx, sessionID, &user)
	if err != nil || !ok {
		return nil, false, err
	}
	return &user, true, nil
}

func (s *AuthService) storeAuth(ctx context.Context, sessionID, token string, user *domain.User) error {
	if err := s.creds.SetAuth(ctx, sessionID, token, user); err != nil {
		s.logger.Error("Failed to store customer credentials", zap.Error(err))
		return fmt.Errorf("failed to store credentials: %w", err)
	}
	return nil
}
