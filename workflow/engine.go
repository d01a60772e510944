package workflow

import "time"

// DefaultOverdueAfter is how long a system may sit at one pending stage
// before it counts as overdue. Override via config, not here.
const DefaultOverdueAfter = 3 * 24 * time.Hour

// Stage identifies one step of the approval pipeline.
type Stage int

const (
	StageNone Stage = iota
	StageHOD
	StageICT
	StageSysAdmin
)

// RoleName returns the approver role acting at this stage.
func (s Stage) RoleName() string {
	switch s {
	case StageHOD:
		return "HOD"
	case StageICT:
		return "ICT"
	case StageSysAdmin:
		return "System Admin"
	}
	return ""
}

// Stage labels shown on every dashboard. These match the backend serializer
// verbatim so backend-derived and locally computed values never diverge.
const (
	LabelRevoked  = "Revoked"
	LabelActive   = "Active"
	LabelRejected = "Rejected"
	LabelStage1   = "Stage 1: HOD"
	LabelStage2   = "Stage 2: ICT"
	LabelStage3   = "Stage 3: System Admin"
	LabelUnknown  = "Unknown"
)

// Engine evaluates the request/approval workflow rules: stage classification,
// overdue derivation, role visibility and decision shaping. All methods are
// pure functions of their inputs plus the injected clock.
type Engine struct {
	// OverdueAfter is the pending-stage age threshold.
	OverdueAfter time.Duration

	// Now supplies the current time; injected so overdue computation is
	// testable without real timers.
	Now func() time.Time
}

// NewEngine builds an engine. A non-positive overdueAfter falls back to the
// default threshold.
func NewEngine(overdueAfter time.Duration) *Engine {
	if overdueAfter <= 0 {
		overdueAfter = DefaultOverdueAfter
	}
	return &Engine{
		OverdueAfter: overdueAfter,
		Now:          time.Now,
	}
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}
