package workflow

import "tsc-access-portal/models"

// AvailableSystems computes which catalog systems may be selected on a new
// request form, given the requester's currently held system codes.
//
// Deactivation can only target held systems. Modification offers the systems
// not yet held, treated as adding access. A "new" request by someone who
// already holds systems behaves exactly like modify; only a requester with
// zero holdings gets the full catalog. That new/modify conflation is carried
// over deliberately, see DESIGN.md.
func AvailableSystems(requestType string, held []string, catalog []models.SystemChoice) []models.SystemChoice {
	heldSet := make(map[string]struct{}, len(held))
	for _, code := range held {
		heldSet[code] = struct{}{}
	}

	keep := func(code string) bool {
		_, has := heldSet[code]
		switch requestType {
		case models.RequestTypeDeactivate:
			return has
		case models.RequestTypeModify:
			return !has
		default: // new
			if len(heldSet) == 0 {
				return true
			}
			return !has
		}
	}

	var out []models.SystemChoice
	for _, choice := range catalog {
		if keep(choice.ID) {
			out = append(out, choice)
		}
	}
	return out
}
