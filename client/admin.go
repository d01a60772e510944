package client

import (
	"context"
	"fmt"

	"tsc-access-portal/models"
)

// SecurityPolicies lists the feature-flag style security policies.
func (c *Client) SecurityPolicies(ctx context.Context) (*Page[models.SecurityPolicy], error) {
	return getPage[models.SecurityPolicy](ctx, c, "/security-policies/", nil)
}

// UpdateSecurityPolicy toggles a policy on or off.
func (c *Client) UpdateSecurityPolicy(ctx context.Context, id int, enabled bool) (*models.SecurityPolicy, error) {
	var policy models.SecurityPolicy
	payload := map[string]bool{"is_enabled": enabled}
	if err := c.send(ctx, "PATCH", fmt.Sprintf("/security-policies/%d/", id), payload, &policy); err != nil {
		return nil, err
	}
	return &policy, nil
}

// GlobalSettings lists the configuration rows visible to the caller.
func (c *Client) GlobalSettings(ctx context.Context) (*Page[models.GlobalSetting], error) {
	return getPage[models.GlobalSetting](ctx, c, "/global-settings/", nil)
}

// UpdateGlobalSetting writes a setting value.
func (c *Client) UpdateGlobalSetting(ctx context.Context, id int, value string) (*models.GlobalSetting, error) {
	var setting models.GlobalSetting
	payload := map[string]string{"value": value}
	if err := c.send(ctx, "PATCH", fmt.Sprintf("/global-settings/%d/", id), payload, &setting); err != nil {
		return nil, err
	}
	return &setting, nil
}

// AuditLogs pages the audit trail, newest first. pageURL may be a cursor;
// empty fetches the first page.
func (c *Client) AuditLogs(ctx context.Context, pageURL string) (*Page[models.AuditLog], error) {
	path := pageURL
	if path == "" {
		path = "/audit-logs/"
	}
	return getPage[models.AuditLog](ctx, c, path, nil)
}
