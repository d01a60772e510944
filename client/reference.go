package client

import (
	"context"
	"fmt"

	"tsc-access-portal/models"
)

// Directorates lists the directorate reference data.
func (c *Client) Directorates(ctx context.Context) ([]models.Directorate, error) {
	var out []models.Directorate
	if err := c.get(ctx, "/directorates/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AvailableSystems fetches the system catalog.
func (c *Client) AvailableSystems(ctx context.Context) ([]models.SystemChoice, error) {
	var out []models.SystemChoice
	if err := c.get(ctx, "/systems/available/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ActiveAssignments pages the global registry of granted systems, used by
// super admins to revoke rights. pageURL may be a cursor; empty fetches the
// first page.
func (c *Client) ActiveAssignments(ctx context.Context, pageURL string) (*Page[models.ActiveAssignment], error) {
	path := pageURL
	if path == "" {
		path = "/systems/active_assignments/"
	}
	return getPage[models.ActiveAssignment](ctx, c, path, nil)
}

// Revoke immediately revokes a granted system entry. The comment is
// mandatory; callers validate it before reaching here.
func (c *Client) Revoke(ctx context.Context, systemEntryID int, comment string) error {
	path := fmt.Sprintf("/systems/%d/revoke/", systemEntryID)
	return c.send(ctx, "POST", path, map[string]string{"comment": comment}, nil)
}
