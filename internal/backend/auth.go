package backend

import (
	"context"

	"gvnatural/internal/domain"
)

// AuthResponse is the backend's login/verify payload. user is set for the
// customer flows, admin for the admin login.
type AuthResponse struct {
	AccessToken string        `json:"access_token"`
	User        *domain.User  `json:"user,omitempty"`
	Admin       *domain.Admin `json:"admin,omitempty"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password,omitempty"`
}

type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password,omitempty"`
}

type SendOTPRequest struct {
	Phone string `json:"phone"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
	Name  string `json:"name,omitempty"`
}

// AuthAPI wraps the customer-realm authentication endpoints. Token issuance
// itself is owned by the backend; the gateway just stores what comes back.
type AuthAPI struct {
	c *Client
}

func NewAuthAPI(c *Client) *AuthAPI {
	return &AuthAPI{c: c}
}

func (api *AuthAPI) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := api.c.post(ctx, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (api *AuthAPI) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := api.c.post(ctx, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendOTP asks the backend to text a one-time password to the phone.
func (api *AuthAPI) SendOTP(ctx context.Context, phone string) error {
	return api.c.post(ctx, "/auth/send-otp", SendOTPRequest{Phone: phone}, nil)
}

func (api *AuthAPI) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := api.c.post(ctx, "/auth/verify-otp", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
