package models

import "time"

// SystemChoice is one entry of the system catalog (GET /systems/available/).
type SystemChoice struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SystemCatalog mirrors the backend's system choices. Codes are stable;
// names are display-only.
var SystemCatalog = []SystemChoice{
	{"1", "Active Directory"},
	{"2", "CRM"},
	{"3", "EDMS"},
	{"4", "Email"},
	{"5", "Help Desk"},
	{"6", "HRMIS"},
	{"7", "IDEA"},
	{"8", "IFMIS"},
	{"9", "Knowledge Base"},
	{"10", "Services"},
	{"11", "Teachers Online"},
	{"12", "TeamMate"},
	{"13", "TPAD"},
	{"14", "TPAY"},
	{"15", "Pydio"},
}

// SystemName resolves a system code to its display name. Unknown codes are
// returned as-is so stale catalog data still renders.
func SystemName(code string) string {
	for _, c := range SystemCatalog {
		if c.ID == code {
			return c.Name
		}
	}
	return code
}

// ActiveSystem is one currently held grant (GET /users/my_systems/).
type ActiveSystem struct {
	System        string     `json:"system"`
	SystemDisplay string     `json:"system_display"`
	GrantedDate   *time.Time `json:"granted_date,omitempty"`
	RequestID     int        `json:"request_id"`
}

// ActiveAssignment is one row of the global grant registry used by super
// admins to revoke rights (GET /systems/active_assignments/).
type ActiveAssignment struct {
	ID          int        `json:"id"`        // parent request id
	SystemID    int        `json:"system_id"` // requested-system row id, target of revocation
	SystemName  string     `json:"system_name"`
	SystemCode  string     `json:"system_code"`
	UserName    string     `json:"user_name"`
	TSCNo       string     `json:"tsc_no"`
	GrantedDate *time.Time `json:"granted_date,omitempty"`
	Directorate string     `json:"directorate,omitempty"`
}
