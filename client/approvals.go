package client

import (
	"context"
	"fmt"
	"net/url"

	"tsc-access-portal/models"
	"tsc-access-portal/workflow"
)

// ApprovalQuery filters the role-scoped approval listing. Dates are
// YYYY-MM-DD and only applied when both ends are set, matching the backend.
type ApprovalQuery struct {
	Tab       string
	Search    string
	StartDate string
	EndDate   string
	// PageURL, when set, is a cursor from a previous page and overrides
	// the other fields.
	PageURL string
}

// ListApprovals pages the requests visible to the caller's role.
func (c *Client) ListApprovals(ctx context.Context, q ApprovalQuery) (*Page[models.AccessRequest], error) {
	if q.PageURL != "" {
		return getPage[models.AccessRequest](ctx, c, q.PageURL, nil)
	}
	query := url.Values{}
	if q.Tab != "" {
		query.Set("tab", q.Tab)
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.StartDate != "" && q.EndDate != "" {
		query.Set("start_date", q.StartDate)
		query.Set("end_date", q.EndDate)
	}
	return getPage[models.AccessRequest](ctx, c, "/approvals/", query)
}

// Stats fetches the aggregate dashboard counters for the caller's role.
func (c *Client) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := c.get(ctx, "/approvals/stats/", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Decide submits a validated decision command. This is the sole mutation
// entrypoint for workflow decisions; callers re-fetch the full view
// afterwards instead of patching local state.
func (c *Client) Decide(ctx context.Context, cmd *workflow.DecisionCommand) error {
	path := fmt.Sprintf("/approvals/%d/decide/", cmd.RequestID)
	return c.send(ctx, "POST", path, cmd, nil)
}
