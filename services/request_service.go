package services

import (
	"context"
	"log"
	"strings"
	"sync"

	"tsc-access-portal/client"
	"tsc-access-portal/models"
	"tsc-access-portal/session"
	"tsc-access-portal/utils"
	"tsc-access-portal/workflow"
)

var validRequestTypes = map[string]bool{
	models.RequestTypeNew:        true,
	models.RequestTypeModify:     true,
	models.RequestTypeDeactivate: true,
}

// RequestService backs the staff view: listing own requests, building the
// new-request form and submitting it, plus the admin revocation flow.
type RequestService struct {
	sess *session.Session

	mu      sync.Mutex
	catalog []models.SystemChoice
}

// NewRequestService builds a request service for the session.
func NewRequestService(sess *session.Session) *RequestService {
	return &RequestService{sess: sess}
}

// MyRequests pages the caller's own requests. pageURL may be a pagination
// cursor; empty fetches the first page.
func (s *RequestService) MyRequests(ctx context.Context, pageURL string) (*client.Page[models.AccessRequest], error) {
	page, err := s.sess.API().ListMyRequests(ctx, pageURL)
	if err != nil {
		s.sess.HandleError(err)
		return nil, err
	}
	return page, nil
}

// Catalog returns the system catalog, fetched once per service and cached.
// When the backend is unreachable the built-in catalog stands in so the
// form still renders; system codes are stable.
func (s *RequestService) Catalog(ctx context.Context) []models.SystemChoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.catalog != nil {
		return s.catalog
	}

	catalog, err := s.sess.API().AvailableSystems(ctx)
	if err != nil {
		s.sess.HandleError(err)
		log.Printf("system catalog fetch failed, using built-in catalog: %v", err)
		return models.SystemCatalog
	}
	s.catalog = catalog
	return catalog
}

// SelectableSystems computes which systems the caller may pick for the
// given request type, based on their current active grants.
func (s *RequestService) SelectableSystems(ctx context.Context, requestType string) ([]models.SystemChoice, error) {
	mine, err := s.sess.API().MySystems(ctx)
	if err != nil {
		s.sess.HandleError(err)
		return nil, err
	}
	held := make([]string, 0, len(mine))
	for _, sys := range mine {
		held = append(held, sys.System)
	}
	return workflow.AvailableSystems(requestType, held, s.Catalog(ctx)), nil
}

// Submit validates and sends a new access request. Validation failures are
// workflow.ValidationError and never reach the network.
func (s *RequestService) Submit(ctx context.Context, input models.NewRequestInput) (*models.AccessRequest, error) {
	input.TSCNo = utils.SanitizeInput(input.TSCNo)
	input.Email = utils.SanitizeInput(input.Email)
	input.Designation = utils.SanitizeInput(input.Designation)

	if !utils.ValidateTSCNo(input.TSCNo) {
		return nil, &workflow.ValidationError{Field: "tsc_no", Message: "a valid TSC number is required"}
	}
	if !utils.ValidateEmail(input.Email) {
		return nil, &workflow.ValidationError{Field: "email", Message: "a valid email address is required"}
	}
	if input.Designation == "" {
		return nil, &workflow.ValidationError{Field: "designation", Message: "designation is required"}
	}
	if input.Directorate <= 0 {
		return nil, &workflow.ValidationError{Field: "directorate", Message: "directorate is required"}
	}
	if !validRequestTypes[input.RequestType] {
		return nil, &workflow.ValidationError{Field: "request_type", Message: "unknown request type"}
	}
	if len(input.RequestedSystems) == 0 {
		return nil, &workflow.ValidationError{Field: "requested_systems", Message: "select at least one system"}
	}

	selectable, err := s.SelectableSystems(ctx, input.RequestType)
	if err != nil {
		return nil, err
	}
	allowed := make(map[string]bool, len(selectable))
	for _, choice := range selectable {
		allowed[choice.ID] = true
	}
	for _, sys := range input.RequestedSystems {
		if !allowed[sys.System] {
			return nil, &workflow.ValidationError{
				Field:   "requested_systems",
				Message: "system " + models.SystemName(sys.System) + " is not selectable for this request type",
			}
		}
	}

	created, err := s.sess.API().CreateRequest(ctx, input)
	if err != nil {
		s.sess.HandleError(err)
		return nil, err
	}
	return created, nil
}

// ActiveAssignments pages the global grant registry (super admin revoke view).
func (s *RequestService) ActiveAssignments(ctx context.Context, pageURL string) (*client.Page[models.ActiveAssignment], error) {
	page, err := s.sess.API().ActiveAssignments(ctx, pageURL)
	if err != nil {
		s.sess.HandleError(err)
		return nil, err
	}
	return page, nil
}

// Revoke immediately revokes one granted system. The comment is mandatory;
// a sys_admin may only revoke grants of their assigned system.
func (s *RequestService) Revoke(ctx context.Context, assignment models.ActiveAssignment, comment string) error {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return &workflow.ValidationError{Field: "comment", Message: "a comment is required when revoking access"}
	}

	viewer := s.sess.Viewer()
	switch viewer.Role {
	case models.RoleSuperAdmin:
	case models.RoleSysAdmin:
		if viewer.AssignedSystem == "" || assignment.SystemCode != viewer.AssignedSystem {
			return &workflow.ValidationError{Field: "system_id", Message: "cannot revoke access to another system"}
		}
	default:
		return &workflow.ValidationError{Field: "role", Message: "role may not revoke access"}
	}

	if err := s.sess.API().Revoke(ctx, assignment.SystemID, comment); err != nil {
		s.sess.HandleError(err)
		return err
	}
	return nil
}
