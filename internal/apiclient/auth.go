package apiclient

import (
	"context"

	"github.com/handsoff/console/internal/models"
)

type AuthAPI struct {
	r *requester
}

// Login exchanges credentials for a token. POST /auth/login
func (a *AuthAPI) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := a.r.post(ctx, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout invalidates the token on the backend. POST /auth/logout
func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.r.post(ctx, "/auth/logout", nil, nil)
}

// CurrentUser returns the token's user. GET /auth/user
func (a *AuthAPI) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := a.r.get(ctx, "/auth/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
