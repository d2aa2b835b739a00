package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"pressroom/internal/models"
)

// Register submits the extended registration form. The returned account has
// status pending until an admin reviews it.
func (c *Client) Register(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/auth/register", in, &user); err != nil {
		return nil, err
	}
	if err := validateUser(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates with email and password. The API rejects pending
// accounts with a message distinct from bad credentials; that message is
// carried through in the returned AuthorizationError.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	body := map[string]string{"email": email, "password": password}

	var user models.User
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &user); err != nil {
		return nil, err
	}
	if err := validateUser(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// PendingUsers lists accounts awaiting review. The API authorizes by the
// acting admin's email.
func (c *Client) PendingUsers(ctx context.Context, adminEmail string) ([]models.User, error) {
	params := url.Values{"adminEmail": {adminEmail}}

	var users []models.User
	if err := c.do(ctx, http.MethodGet, queryPath("/auth/pending-users", params), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ReviewUser approves or rejects a pending registration.
func (c *Client) ReviewUser(ctx context.Context, userID int64, action models.ReviewAction, adminEmail string) error {
	body := map[string]any{
		"userId":     userID,
		"action":     string(action),
		"adminEmail": adminEmail,
	}
	return c.do(ctx, http.MethodPost, "/auth/approve-user", body, nil)
}

// validateUser rejects response bodies that decoded but lack the identity
// fields the session and the permission predicates depend on.
func validateUser(u *models.User) error {
	if u.ID <= 0 || u.Email == "" {
		return &ValidationError{Message: "The server returned an unexpected response."}
	}
	return nil
}
