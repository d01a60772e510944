package client

import (
	"context"

	"tsc-access-portal/models"
)

// ListMyRequests pages the caller's own requests, newest first. pageURL may
// be a cursor from a previous envelope; empty fetches the first page.
func (c *Client) ListMyRequests(ctx context.Context, pageURL string) (*Page[models.AccessRequest], error) {
	path := pageURL
	if path == "" {
		path = "/requests/"
	}
	return getPage[models.AccessRequest](ctx, c, path, nil)
}

// CreateRequest submits a new access request on behalf of the caller.
func (c *Client) CreateRequest(ctx context.Context, input models.NewRequestInput) (*models.AccessRequest, error) {
	var created models.AccessRequest
	if err := c.send(ctx, "POST", "/requests/", input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
