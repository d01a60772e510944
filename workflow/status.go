package workflow

import "tsc-access-portal/models"

// AggregateStatus derives the overall request status label from the per-system
// stage statuses, mirroring the backend's sync logic: any HOD-pending system
// keeps the whole request at pending_hod; with no HOD approvals at all the
// request is rejected_hod; an HOD-approved system still awaiting ICT means
// pending_ict; after that, at least one ICT approval makes the request
// approved, otherwise rejected_ict.
func AggregateStatus(req models.AccessRequest) string {
	var (
		hodPending  bool
		hodApproved bool
		ictPending  bool
		ictApproved bool
	)
	for _, sys := range req.RequestedSystems {
		switch sys.HODStatus {
		case models.StatusPending:
			hodPending = true
		case models.StatusApproved:
			hodApproved = true
			if sys.ICTStatus == models.StatusPending {
				ictPending = true
			}
		}
		if sys.ICTStatus == models.StatusApproved {
			ictApproved = true
		}
	}

	switch {
	case hodPending:
		return models.RequestPendingHOD
	case !hodApproved:
		return models.RequestRejectedHOD
	case ictPending:
		return models.RequestPendingICT
	case ictApproved:
		return models.RequestApproved
	default:
		return models.RequestRejectedICT
	}
}

// EffectiveStatus prefers the backend's status label and falls back to the
// local aggregation when the field is absent.
func EffectiveStatus(req models.AccessRequest) string {
	if req.Status != "" {
		return req.Status
	}
	return AggregateStatus(req)
}
