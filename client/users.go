package client

import (
	"context"
	"fmt"
	"net/url"

	"tsc-access-portal/models"
)

// Me fetches the calling user's profile and role.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, "/users/me/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// MySystems lists the caller's currently active system grants, derived
// server-side from their finalized request history.
func (c *Client) MySystems(ctx context.Context) ([]models.ActiveSystem, error) {
	var systems []models.ActiveSystem
	if err := c.get(ctx, "/users/my_systems/", nil, &systems); err != nil {
		return nil, err
	}
	return systems, nil
}

// UserQuery filters the admin user listing.
type UserQuery struct {
	Role   string
	Search string
	// PageURL, when set, is a cursor from a previous page and overrides
	// the other fields.
	PageURL string
}

// ListUsers pages through users. Non-admin callers only ever get themselves
// back; the restriction is enforced server-side.
func (c *Client) ListUsers(ctx context.Context, q UserQuery) (*Page[models.User], error) {
	if q.PageURL != "" {
		return getPage[models.User](ctx, c, q.PageURL, nil)
	}
	query := url.Values{}
	if q.Role != "" {
		query.Set("role", q.Role)
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	return getPage[models.User](ctx, c, "/users/", query)
}

// CreateUser provisions a user with role assignment (admin only).
func (c *Client) CreateUser(ctx context.Context, input models.UserInput) (*models.User, error) {
	var user models.User
	if err := c.send(ctx, "POST", "/users/", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser partially updates a user and their role assignment.
func (c *Client) UpdateUser(ctx context.Context, id int, input models.UserInput) (*models.User, error) {
	var user models.User
	if err := c.send(ctx, "PATCH", fmt.Sprintf("/users/%d/", id), input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user account.
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.send(ctx, "DELETE", fmt.Sprintf("/users/%d/", id), nil, nil)
}
