package backend

import (
	"context"
	"net/http"

	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/models"
)

type userEnvelope struct {
	User models.User `json:"user"`
}

type userListEnvelope struct {
	Users []models.User `json:"users"`
}

// Login exchanges credentials for an access token. The token is kept on
// the client for subsequent requests.
func (c *Client) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse

	if err := c.do(ctx, http.MethodPost, "/users/login", req, &resp); err != nil {
		return nil, err
	}

	c.SetAccessToken(resp.AccessToken)
	return &resp, nil
}

// Logout invalidates the backend session and drops the local token
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodGet, "/users/logout", nil, nil)

	// The local session ends regardless of the backend's answer
	c.SetAccessToken("")
	return err
}

// Signup registers a new account. Accounts stay unusable until an
// existing admin verifies them.
func (c *Client) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	var env userEnvelope

	if err := c.do(ctx, http.MethodPost, "/users/signup", req, &env); err != nil {
		return nil, err
	}

	return &env.User, nil
}

// GetProfile fetches the logged-in user's profile
func (c *Client) GetProfile(ctx context.Context) (*models.User, error) {
	var env userEnvelope

	if err := c.do(ctx, http.MethodGet, "/users/profile", nil, &env); err != nil {
		return nil, err
	}

	return &env.User, nil
}

// GetAllUsers fetches every account
func (c *Client) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var env userListEnvelope

	if err := c.do(ctx, http.MethodGet, "/users/all", nil, &env); err != nil {
		return nil, err
	}

	return env.Users, nil
}

// VerifyUser marks an account as admin verified
func (c *Client) VerifyUser(ctx context.Context, userID string) error {
	body := map[string]bool{"adminVerified": true}

	return c.do(ctx, http.MethodPatch, "/users/"+userID+"/adminverify", body, nil)
}

// DeleteUser removes an account
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+userID, nil, nil)
}

// ResetPassword triggers a password reset email for the account
func (c *Client) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	return c.do(ctx, http.MethodPost, "/users/reset-password", req, nil)
}
