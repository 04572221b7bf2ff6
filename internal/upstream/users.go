package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gazetadovale/newsdesk/internal/models"
)

// ErrBadCredentials is returned when login is rejected.
var ErrBadCredentials = errors.New("upstream: invalid credentials")

// ListUsers fetches every admin user.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	return fetchCollection[models.User](ctx, c, "/users")
}

// CreateUser creates an admin user and returns the server copy.
func (c *Client) CreateUser(ctx context.Context, user *models.NewUser) (*models.User, error) {
	var created models.User
	if err := c.doJSON(ctx, http.MethodPost, "/users", user, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteUser removes an admin user.
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil)
}

// Login exchanges credentials for an upstream token. The API answers
// {"token": ...} on success and {"error": ...} otherwise.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (string, error) {
	var result struct {
		Token string `json:"token"`
		Error string `json:"error"`
	}

	err := c.doJSON(ctx, http.MethodPost, "/users/login", creds, &result)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return "", ErrBadCredentials
		}
		return "", err
	}

	if result.Token == "" {
		if result.Error != "" {
			return "", fmt.Errorf("%w: %s", ErrBadCredentials, result.Error)
		}
		return "", ErrBadCredentials
	}
	return result.Token, nil
}
