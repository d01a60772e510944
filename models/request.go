package models

import "time"

// Overall request status values reported by the backend.
const (
	RequestPendingHOD  = "pending_hod"
	RequestRejectedHOD = "rejected_hod"
	RequestPendingICT  = "pending_ict"
	RequestRejectedICT = "rejected_ict"
	RequestApproved    = "approved"
	RequestRevoked     = "revoked"
)

// Per-stage process status values.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusRevoked   = "revoked"
	StatusSentAdmin = "sent_admin"
)

// Request types.
const (
	RequestTypeNew        = "new"
	RequestTypeModify     = "modify"
	RequestTypeDeactivate = "deactivate"
)

// RequestedSystem is one system targeted by an access request. It carries
// three independent stage statuses plus display fields the backend derives;
// the derived fields may be absent when the record comes from an older
// endpoint, in which case the workflow engine recomputes them.
type RequestedSystem struct {
	ID            int    `json:"id"`
	System        string `json:"system"`
	SystemDisplay string `json:"system_display,omitempty"`
	LevelOfAccess string `json:"level_of_access,omitempty"`

	HODStatus       string     `json:"hod_status"`
	HODComment      string     `json:"hod_comment,omitempty"`
	HODDecisionDate *time.Time `json:"hod_decision_date,omitempty"`

	ICTStatus       string     `json:"ict_status"`
	ICTComment      string     `json:"ict_comment,omitempty"`
	ICTDecisionDate *time.Time `json:"ict_decision_date,omitempty"`

	SysAdminStatus       string     `json:"sysadmin_status"`
	SysAdminComment      string     `json:"sysadmin_comment,omitempty"`
	SysAdminDecisionDate *time.Time `json:"sysadmin_decision_date,omitempty"`

	// Derived display attributes computed by the backend serializer.
	CurrentStage    string `json:"current_stage,omitempty"`
	DaysOpen        *int   `json:"days_open,omitempty"`
	IsOverdue       *bool  `json:"is_overdue,omitempty"`
	PendingApprover string `json:"pending_approver,omitempty"`
}

// AccessRequest is a staff access request with its requested systems.
// A request always has at least one requested system.
type AccessRequest struct {
	ID               int               `json:"id"`
	TSCNo            string            `json:"tsc_no"`
	RequesterName    string            `json:"requester_name"`
	RequesterEmail   string            `json:"requester_email"`
	Designation      string            `json:"designation"`
	Directorate      int               `json:"directorate,omitempty"`
	DirectorateName  string            `json:"directorate_name,omitempty"`
	RequestType      string            `json:"request_type"`
	Status           string            `json:"status"`
	SubmittedAt      time.Time         `json:"submitted_at"`
	RequestedSystems []RequestedSystem `json:"requested_systems"`
}

// NewRequestedSystem is the submission shape for one system in a new request.
type NewRequestedSystem struct {
	System        string `json:"system"`
	LevelOfAccess string `json:"level_of_access,omitempty"`
}

// NewRequestInput is the POST /requests/ payload.
type NewRequestInput struct {
	TSCNo            string               `json:"tsc_no"`
	Email            string               `json:"email"`
	Designation      string               `json:"designation"`
	Directorate      int                  `json:"directorate"`
	RequestType      string               `json:"request_type"`
	RequestedSystems []NewRequestedSystem `json:"requested_systems"`
}
