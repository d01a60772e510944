package models

// Role values assigned via UserRole on the backend.
const (
	RoleStaff      = "staff"
	RoleHOD        = "hod"
	RoleICT        = "ict"
	RoleSysAdmin   = "sys_admin"
	RoleSuperAdmin = "super_admin"
)

// User is the profile returned by GET /users/me/ and the user management
// endpoints.
type User struct {
	ID                 int    `json:"id"`
	TSCNo              string `json:"tsc_no"`
	FullName           string `json:"full_name"`
	Email              string `json:"email"`
	Directorate        int    `json:"directorate,omitempty"`
	DirectorateName    string `json:"directorate_name,omitempty"`
	IsActive           bool   `json:"is_active"`
	Role               string `json:"role,omitempty"`
	SystemAssigned     string `json:"system_assigned,omitempty"`
	SystemAssignedName string `json:"system_assigned_name,omitempty"`
}

// UserInput is the admin create/update payload (POST/PATCH /users/).
type UserInput struct {
	TSCNo          string `json:"tsc_no"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	IsActive       *bool  `json:"is_active,omitempty"`
	DirectorateID  *int   `json:"directorate_id,omitempty"`
	Role           string `json:"role,omitempty"`
	SystemAssigned string `json:"system_assigned,omitempty"`
}

// Directorate is a reference-data row (GET /directorates/).
type Directorate struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	HODEmail string `json:"hod_email,omitempty"`
}
