package backend

import (
	"context"
	"net/http"

	"storefront/internal/domain"
)

// AuthResult is returned by login and registration
type AuthResult struct {
	AccessToken string      `json:"access_token"` // Bearer token
	TokenType   string      `json:"token_type"`   // Always "bearer"
	User        domain.User `json:"user"`         // Resolved profile
}

// Login exchanges credentials for a token and profile
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	var res AuthResult
	err := c.do(ctx, http.MethodPost, "/login", nil, nil, domain.Credentials{Email: email, Password: password}, &res)
	return res, err
}

// Register creates an account and logs it in
func (c *Client) Register(ctx context.Context, reg domain.Registration) (AuthResult, error) {
	var res AuthResult
	err := c.do(ctx, http.MethodPost, "/register", nil, nil, reg, &res)
	return res, err
}

// Me resolves the profile behind cred
func (c *Client) Me(ctx context.Context, cred Credentials) (domain.User, error) {
	var u domain.User
	err := c.do(ctx, http.MethodGet, "/me", nil, cred, nil, &u)
	return u, err
}
