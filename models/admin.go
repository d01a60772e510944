package models

import "time"

// DashboardStats is the read-only aggregate from GET /approvals/stats/.
// The backend computes these; clients only render and poll them.
type DashboardStats struct {
	PendingSystems  int `json:"pending_systems"`
	OverdueRequests int `json:"overdue_requests"`
	ReviewedToday   int `json:"reviewed_today"`
	TotalHistory    int `json:"total_history"`
	ApprovedHistory int `json:"approved_history"`
	RejectedHistory int `json:"rejected_history"`

	// Super-admin only.
	ActiveUsers int            `json:"active_users,omitempty"`
	ActiveRoles map[string]int `json:"active_roles,omitempty"`
}

// AuditLog is one row of the audit trail (GET /audit-logs/).
type AuditLog struct {
	ID        int       `json:"id"`
	UserName  string    `json:"user_name"`
	UserTSCNo string    `json:"user_tsc_no,omitempty"`
	Role      string    `json:"role,omitempty"`
	Action    string    `json:"action"`
	Target    string    `json:"target,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	Status    string    `json:"status,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// SecurityPolicy is a feature-flag style policy (GET/PATCH /security-policies/).
type SecurityPolicy struct {
	ID          int    `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsEnabled   bool   `json:"is_enabled"`
}

// GlobalSetting is a key/value configuration row (GET/PATCH /global-settings/).
type GlobalSetting struct {
	ID       int    `json:"id"`
	Key      string `json:"key"`
	Label    string `json:"label,omitempty"`
	Value    string `json:"value"`
	Group    string `json:"group,omitempty"`
	IsPublic bool   `json:"is_public"`
}
