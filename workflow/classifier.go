package workflow

import (
	"time"

	"tsc-access-portal/models"
)

// Classification is the derived display state of one requested system.
type Classification struct {
	// CurrentStage is the dashboard label, e.g. "Stage 2: ICT" or "Active".
	CurrentStage string
	// PendingStage is the stage still awaiting a decision; StageNone once
	// the system is terminal.
	PendingStage Stage
	// DaysOpen is the whole days elapsed since the pending stage's
	// reference timestamp. Zero for terminal systems.
	DaysOpen int
	// IsOverdue reports whether the pending stage has aged past the
	// engine threshold. Always false for terminal systems.
	IsOverdue bool
	// PendingApprover is a human label for who must act next, "-" when
	// nobody does.
	PendingApprover string
}

// Terminal reports whether no further decision is expected.
func (c Classification) Terminal() bool {
	return c.PendingStage == StageNone
}

// Classify derives the current stage and overdue state of a requested system
// from its three stage statuses. submittedAt is the parent request's
// submission time, the reference point for stage 1 aging.
//
// Stages are scanned in fixed order HOD -> ICT -> SysAdmin: a rejection at
// any stage short-circuits to "Rejected" and later stages are ignored. All
// three approved means the grant is active. Otherwise the first pending
// stage wins.
func (e *Engine) Classify(sys models.RequestedSystem, submittedAt time.Time) Classification {
	if sys.SysAdminStatus == models.StatusRevoked {
		return Classification{CurrentStage: LabelRevoked, PendingApprover: "-"}
	}

	statuses := [3]string{sys.HODStatus, sys.ICTStatus, sys.SysAdminStatus}
	for _, st := range statuses {
		if st == models.StatusRejected {
			return Classification{CurrentStage: LabelRejected, PendingApprover: "-"}
		}
	}

	if sys.SysAdminStatus == models.StatusApproved {
		return Classification{CurrentStage: LabelActive, PendingApprover: "-"}
	}

	stage, label, approver := pendingStage(sys)
	if stage == StageNone {
		// Statuses the scan does not recognise, e.g. a half-migrated row.
		return Classification{CurrentStage: LabelUnknown, PendingApprover: "-"}
	}

	ref := e.stageReference(sys, stage, submittedAt)
	elapsed := e.now().Sub(ref)
	days := int(elapsed / (24 * time.Hour))
	if days < 0 {
		days = 0
	}

	return Classification{
		CurrentStage:    label,
		PendingStage:    stage,
		DaysOpen:        days,
		IsOverdue:       elapsed > e.OverdueAfter,
		PendingApprover: approver,
	}
}

func pendingStage(sys models.RequestedSystem) (Stage, string, string) {
	switch {
	case sys.HODStatus == models.StatusPending:
		return StageHOD, LabelStage1, "Directorate HOD"
	case sys.ICTStatus == models.StatusPending:
		return StageICT, LabelStage2, "ICT Director"
	case sys.SysAdminStatus == models.StatusPending:
		return StageSysAdmin, LabelStage3, "System Administrator"
	}
	return StageNone, "", ""
}

// stageReference picks the timestamp a pending stage ages from: submission
// for stage 1, the prior stage's decision date for stages 2 and 3. Missing
// decision dates fall back to the submission time.
func (e *Engine) stageReference(sys models.RequestedSystem, stage Stage, submittedAt time.Time) time.Time {
	switch stage {
	case StageICT:
		if sys.HODDecisionDate != nil {
			return *sys.HODDecisionDate
		}
	case StageSysAdmin:
		if sys.ICTDecisionDate != nil {
			return *sys.ICTDecisionDate
		}
	}
	return submittedAt
}

// Resolve returns the display state for a system, preferring the
// backend-derived fields when the serializer included them. The local
// classifier is the fallback, not a second source of truth.
func (e *Engine) Resolve(sys models.RequestedSystem, submittedAt time.Time) Classification {
	local := e.Classify(sys, submittedAt)
	if sys.CurrentStage == "" {
		return local
	}

	resolved := local
	resolved.CurrentStage = sys.CurrentStage
	if sys.DaysOpen != nil {
		resolved.DaysOpen = *sys.DaysOpen
	}
	if sys.IsOverdue != nil {
		resolved.IsOverdue = *sys.IsOverdue
	}
	if sys.PendingApprover != "" {
		resolved.PendingApprover = sys.PendingApprover
	}
	return resolved
}
