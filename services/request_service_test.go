package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"tsc-access-portal/models"
	"tsc-access-portal/workflow"
)

func staffBackend() *fakeBackend {
	return newFakeBackend(models.User{ID: 3, TSCNo: "445566", Role: models.RoleStaff})
}

func TestSelectableSystemsPerRequestType(t *testing.T) {
	backend := staffBackend()
	defer backend.close()
	backend.mySystems = []models.ActiveSystem{
		{System: "4", SystemDisplay: "Email"},
		{System: "6", SystemDisplay: "HRMIS"},
	}

	svc := NewRequestService(backend.login(t, nil))
	ctx := context.Background()

	deactivate, err := svc.SelectableSystems(ctx, models.RequestTypeDeactivate)
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if len(deactivate) != 2 || deactivate[0].ID != "4" || deactivate[1].ID != "6" {
		t.Fatalf("deactivate should offer only held systems, got %+v", deactivate)
	}

	modify, err := svc.SelectableSystems(ctx, models.RequestTypeModify)
	if err != nil {
		t.Fatalf("modify: %v", err)
	}
	if len(modify) != len(models.SystemCatalog)-2 {
		t.Fatalf("modify should exclude held systems, got %d entries", len(modify))
	}
	for _, choice := range modify {
		if choice.ID == "4" || choice.ID == "6" {
			t.Fatalf("held system %s offered for modify", choice.ID)
		}
	}
}

func TestCatalogFallsBackWhenUnreachable(t *testing.T) {
	backend := staffBackend()
	defer backend.close()
	backend.catalogStatus = http.StatusServiceUnavailable

	svc := NewRequestService(backend.login(t, nil))
	catalog := svc.Catalog(context.Background())
	if len(catalog) != len(models.SystemCatalog) {
		t.Fatalf("expected the built-in catalog, got %d entries", len(catalog))
	}
}

func TestSubmitValidatesBeforeTheNetwork(t *testing.T) {
	backend := staffBackend()
	defer backend.close()

	svc := NewRequestService(backend.login(t, nil))
	ctx := context.Background()

	valid := models.NewRequestInput{
		TSCNo:       "445566",
		Email:       "jane@tsc.go.ke",
		Designation: "Records Officer",
		Directorate: 2,
		RequestType: models.RequestTypeNew,
		RequestedSystems: []models.NewRequestedSystem{
			{System: "6", LevelOfAccess: "user"},
		},
	}

	cases := []struct {
		name   string
		mutate func(*models.NewRequestInput)
		field  string
	}{
		{"missing tsc no", func(in *models.NewRequestInput) { in.TSCNo = "" }, "tsc_no"},
		{"bad email", func(in *models.NewRequestInput) { in.Email = "not-an-email" }, "email"},
		{"missing designation", func(in *models.NewRequestInput) { in.Designation = "  " }, "designation"},
		{"missing directorate", func(in *models.NewRequestInput) { in.Directorate = 0 }, "directorate"},
		{"unknown request type", func(in *models.NewRequestInput) { in.RequestType = "renew" }, "request_type"},
		{"no systems", func(in *models.NewRequestInput) { in.RequestedSystems = nil }, "requested_systems"},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			input.RequestedSystems = append([]models.NewRequestedSystem(nil), valid.RequestedSystems...)
			tt.mutate(&input)

			_, err := svc.Submit(ctx, input)
			var ve *workflow.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected a validation error, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("field=%q, want %q", ve.Field, tt.field)
			}
		})
	}

	backend.mu.Lock()
	defer backend.mu.Unlock()
	if backend.createCalls != 0 {
		t.Fatalf("invalid input reached the backend %d times", backend.createCalls)
	}
}

func TestSubmitRejectsUnselectableSystem(t *testing.T) {
	backend := staffBackend()
	defer backend.close()
	backend.mySystems = []models.ActiveSystem{{System: "6", SystemDisplay: "HRMIS"}}

	svc := NewRequestService(backend.login(t, nil))
	_, err := svc.Submit(context.Background(), models.NewRequestInput{
		TSCNo:       "445566",
		Email:       "jane@tsc.go.ke",
		Designation: "Records Officer",
		Directorate: 2,
		RequestType: models.RequestTypeModify,
		RequestedSystems: []models.NewRequestedSystem{
			// Modify may only target systems not currently held.
			{System: "6"},
		},
	})
	var ve *workflow.ValidationError
	if !errors.As(err, &ve) || ve.Field != "requested_systems" {
		t.Fatalf("expected a requested_systems validation error, got %v", err)
	}
}

func TestSubmitHappyPath(t *testing.T) {
	backend := staffBackend()
	defer backend.close()

	svc := NewRequestService(backend.login(t, nil))
	created, err := svc.Submit(context.Background(), models.NewRequestInput{
		TSCNo:       "  445566  ",
		Email:       "jane@tsc.go.ke",
		Designation: "Records Officer",
		Directorate: 2,
		RequestType: models.RequestTypeNew,
		RequestedSystems: []models.NewRequestedSystem{
			{System: "6", LevelOfAccess: "user"},
			{System: "13"},
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.ID != 77 {
		t.Fatalf("created id=%d", created.ID)
	}

	backend.mu.Lock()
	defer backend.mu.Unlock()
	if backend.createCalls != 1 {
		t.Fatalf("createCalls=%d", backend.createCalls)
	}
	if backend.lastCreate["tsc_no"] != "445566" {
		t.Errorf("tsc_no not trimmed: %q", backend.lastCreate["tsc_no"])
	}
}

func TestRevokeRoleRules(t *testing.T) {
	grant := models.ActiveAssignment{ID: 5, SystemID: 31, SystemCode: "6", SystemName: "HRMIS"}

	cases := []struct {
		name    string
		user    models.User
		comment string
		wantErr bool
		field   string
	}{
		{
			name:    "super admin revokes anything",
			user:    models.User{ID: 1, TSCNo: "1", Role: models.RoleSuperAdmin},
			comment: "Separation",
		},
		{
			name:    "sys admin revokes own system",
			user:    models.User{ID: 2, TSCNo: "2", Role: models.RoleSysAdmin, SystemAssigned: "6"},
			comment: "Separation",
		},
		{
			name:    "sys admin cannot revoke another system",
			user:    models.User{ID: 3, TSCNo: "3", Role: models.RoleSysAdmin, SystemAssigned: "4"},
			comment: "Separation",
			wantErr: true,
			field:   "system_id",
		},
		{
			name:    "staff cannot revoke",
			user:    models.User{ID: 4, TSCNo: "4", Role: models.RoleStaff},
			comment: "Separation",
			wantErr: true,
			field:   "role",
		},
		{
			name:    "comment is mandatory",
			user:    models.User{ID: 1, TSCNo: "1", Role: models.RoleSuperAdmin},
			comment: "  ",
			wantErr: true,
			field:   "comment",
		},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			backend := newFakeBackend(tt.user)
			defer backend.close()

			svc := NewRequestService(backend.login(t, nil))
			err := svc.Revoke(context.Background(), grant, tt.comment)

			if tt.wantErr {
				var ve *workflow.ValidationError
				if !errors.As(err, &ve) || ve.Field != tt.field {
					t.Fatalf("expected %s validation error, got %v", tt.field, err)
				}
				backend.mu.Lock()
				defer backend.mu.Unlock()
				if backend.revokeCalls != 0 {
					t.Fatal("refused revocation reached the backend")
				}
				return
			}

			if err != nil {
				t.Fatalf("revoke: %v", err)
			}
			backend.mu.Lock()
			defer backend.mu.Unlock()
			if backend.lastRevoke != "/systems/31/revoke/" {
				t.Errorf("revoke path %q", backend.lastRevoke)
			}
			if backend.lastComment != "Separation" {
				t.Errorf("comment %q", backend.lastComment)
			}
		})
	}
}

func TestMyRequestsPagesOwnHistory(t *testing.T) {
	backend := staffBackend()
	defer backend.close()
	backend.requests = []models.AccessRequest{{ID: 5, TSCNo: "445566", Status: models.RequestApproved}}

	svc := NewRequestService(backend.login(t, nil))
	page, err := svc.MyRequests(context.Background(), "")
	if err != nil {
		t.Fatalf("my requests: %v", err)
	}
	if page.Count != 1 || page.Results[0].ID != 5 {
		t.Fatalf("page misparsed: %+v", page)
	}
}
