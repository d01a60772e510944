package workflow

import (
	"errors"
	"fmt"
	"strings"

	"tsc-access-portal/models"
)

// Decision actions.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// ValidationError is a local input error. It is raised before any network
// call; callers surface it inline and never send the decision.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err is a local validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// DecisionCommand is the shaped payload for POST /approvals/{id}/decide/.
type DecisionCommand struct {
	RequestID int    `json:"-"`
	SystemID  int    `json:"system_id"`
	Action    string `json:"action"`
	Comment   string `json:"comment"`
}

var defaultApproveComments = map[string]string{
	models.RoleHOD:        "Approved by HOD",
	models.RoleICT:        "Approved by ICT",
	models.RoleSysAdmin:   "Access granted",
	models.RoleSuperAdmin: "Approved",
}

// ValidateDecision checks and shapes a decision before submission.
//
// Rejections require a non-blank comment; approvals get a role-specific
// default when none is supplied. Super-admin actions are annotated with the
// stage being acted on behalf of. The viewer must be allowed to act on the
// system at its current stage.
func (e *Engine) ValidateDecision(v Viewer, requestID int, sys models.RequestedSystem, action, comment string) (*DecisionCommand, error) {
	if action != ActionApprove && action != ActionReject {
		return nil, &ValidationError{Field: "action", Message: fmt.Sprintf("unknown action %q", action)}
	}

	comment = strings.TrimSpace(comment)
	if action == ActionReject && comment == "" {
		return nil, &ValidationError{Field: "comment", Message: "a comment is required when rejecting"}
	}

	if !e.CanAct(v, sys) {
		return nil, &ValidationError{Field: "system_id", Message: "system is not actionable at its current stage"}
	}

	if comment == "" {
		comment = defaultApproveComments[v.Role]
		if comment == "" {
			comment = "Approved"
		}
	}

	if v.Role == models.RoleSuperAdmin {
		if stage, _, _ := pendingStage(sys); stage != StageNone {
			comment = fmt.Sprintf("[Super Admin acting as %s] %s", stage.RoleName(), comment)
		}
	}

	return &DecisionCommand{
		RequestID: requestID,
		SystemID:  sys.ID,
		Action:    action,
		Comment:   comment,
	}, nil
}
