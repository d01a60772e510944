package workflow

import "tsc-access-portal/models"

// Dashboard tabs.
const (
	TabPending = "pending"
	TabHistory = "history"
	TabManage  = "manage"
	TabAll     = "all"
)

// Viewer is the acting identity a dashboard filters for.
type Viewer struct {
	Role           string
	AssignedSystem string
}

// VisibleSystems returns the requested systems within req that the viewer's
// role may see on the given tab, preserving their original order.
//
// HOD and ICT see a system once the pipeline has reached their stage, split
// by whether their own stage is still pending (pending tab) or already
// decided (history tab). A sys_admin is additionally fenced to their
// assigned system; an unassigned sys_admin sees nothing. A super_admin sees
// everything, split only by whether any decision is still outstanding.
func (e *Engine) VisibleSystems(v Viewer, tab string, req models.AccessRequest) []models.RequestedSystem {
	var out []models.RequestedSystem
	for _, sys := range req.RequestedSystems {
		if e.systemVisible(v, tab, sys) {
			out = append(out, sys)
		}
	}
	return out
}

func (e *Engine) systemVisible(v Viewer, tab string, sys models.RequestedSystem) bool {
	switch v.Role {
	case models.RoleHOD:
		return stageMatchesTab(tab, sys.HODStatus)

	case models.RoleICT:
		if sys.HODStatus != models.StatusApproved {
			return false
		}
		return stageMatchesTab(tab, sys.ICTStatus)

	case models.RoleSysAdmin:
		if v.AssignedSystem == "" || sys.System != v.AssignedSystem {
			return false
		}
		if tab == TabPending && sys.ICTStatus != models.StatusApproved {
			return false
		}
		return stageMatchesTab(tab, sys.SysAdminStatus)

	case models.RoleSuperAdmin:
		switch tab {
		case TabPending:
			return !e.terminal(sys)
		case TabHistory:
			return e.terminal(sys)
		default: // manage, all
			return true
		}
	}
	return false
}

func stageMatchesTab(tab, ownStatus string) bool {
	switch tab {
	case TabPending:
		return ownStatus == models.StatusPending
	case TabHistory:
		return ownStatus != models.StatusPending
	default: // manage, all
		return true
	}
}

// terminal reports whether no further decision is expected on the system.
// A rejection at any stage counts: it freezes the later stages at pending,
// so scanning for the first pending status alone would misread a rejected
// system as still awaiting action.
func (e *Engine) terminal(sys models.RequestedSystem) bool {
	if sys.SysAdminStatus == models.StatusRevoked {
		return true
	}
	for _, st := range [3]string{sys.HODStatus, sys.ICTStatus, sys.SysAdminStatus} {
		if st == models.StatusRejected {
			return true
		}
	}
	stage, _, _ := pendingStage(sys)
	return stage == StageNone
}

// FilterRequests applies VisibleSystems across a request list. Requests whose
// filtered system list comes out empty are dropped entirely so no dashboard
// renders an empty row.
func (e *Engine) FilterRequests(v Viewer, tab string, reqs []models.AccessRequest) []models.AccessRequest {
	var out []models.AccessRequest
	for _, req := range reqs {
		visible := e.VisibleSystems(v, tab, req)
		if len(visible) == 0 {
			continue
		}
		filtered := req
		filtered.RequestedSystems = visible
		out = append(out, filtered)
	}
	return out
}

// CanAct reports whether the viewer may submit a decision on the system
// right now, i.e. whether it sits in their pending tab.
func (e *Engine) CanAct(v Viewer, sys models.RequestedSystem) bool {
	return e.systemVisible(v, TabPending, sys)
}
