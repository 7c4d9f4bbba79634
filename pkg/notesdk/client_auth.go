package notesdk

import (
	"context"
	"net/http"
	"net/url"
)

// SignUp registers a new account. On success the session cookie lands in
// the client's jar, so the caller is logged in immediately.
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (*UserResponse, error) {
	var user UserResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/sign-up", req, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and refreshes the session cookie.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*UserResponse, error) {
	var user UserResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", req, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout clears the session cookie.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil, http.StatusOK)
}

// CheckAuth reports whether the current session is valid.
func (c *Client) CheckAuth(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/api/auth/check-auth", nil, nil, http.StatusOK)
}

// GetUser returns the account behind the current session.
func (c *Client) GetUser(ctx context.Context) (*UserResponse, error) {
	var user UserResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/get-user", nil, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyEmail submits the mailed verification code.
func (c *Client) VerifyEmail(ctx context.Context, code string) (*UserResponse, error) {
	var user UserResponse
	req := VerifyEmailRequest{Code: code}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/verify-email", req, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// ForgotPassword requests a password reset link for the given email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	req := ForgotPasswordRequest{Email: email}
	return c.doJSON(ctx, http.MethodPost, "/api/auth/forgot-password", req, nil, http.StatusOK)
}

// ResetPassword completes the reset flow with the token from the mailed link.
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	req := ResetPasswordRequest{Password: password}
	path := "/api/auth/reset-password/" + url.PathEscape(token)
	return c.doJSON(ctx, http.MethodPost, path, req, nil, http.StatusOK)
}
