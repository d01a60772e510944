// Package session holds the authenticated context a dashboard runs under.
// It replaces the ad-hoc shared token of the original portal with an
// explicit object passed to the fetch and workflow layers.
package session

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"tsc-access-portal/client"
	"tsc-access-portal/models"
	"tsc-access-portal/workflow"
)

// Session is an authenticated user context. It is safe for concurrent use
// by the polling services.
type Session struct {
	api  *client.Client
	user *models.User

	// id correlates this session's log lines across services.
	id string

	mu        sync.Mutex
	ended     bool
	onExpired func()
}

// Login authenticates against the backend, installs the token on the client
// and loads the caller's profile. onExpired runs exactly once if any later
// call comes back 401.
func Login(ctx context.Context, api *client.Client, tscNo, password string, onExpired func()) (*Session, error) {
	if _, err := api.Login(ctx, tscNo, password); err != nil {
		return nil, err
	}
	user, err := api.Me(ctx)
	if err != nil {
		api.SetToken("")
		return nil, err
	}
	return &Session{
		api:       api,
		user:      user,
		id:        uuid.NewString(),
		onExpired: onExpired,
	}, nil
}

// ID is the session correlation id.
func (s *Session) ID() string { return s.id }

// API returns the authenticated client.
func (s *Session) API() *client.Client { return s.api }

// User returns the logged-in profile.
func (s *Session) User() *models.User { return s.user }

// Viewer is the workflow identity of this session.
func (s *Session) Viewer() workflow.Viewer {
	return workflow.Viewer{
		Role:           s.user.Role,
		AssignedSystem: s.user.SystemAssigned,
	}
}

// HandleError routes an API error through the session's teardown policy:
// a 401 ends the session once, clears the token and fires onExpired. Other
// errors pass through untouched for the caller to surface.
func (s *Session) HandleError(err error) {
	if err == nil || !client.IsAuthError(err) {
		return
	}
	s.mu.Lock()
	alreadyEnded := s.ended
	s.ended = true
	s.mu.Unlock()
	if alreadyEnded {
		return
	}

	log.Printf("session %s: token expired, tearing down", s.id)
	s.api.SetToken("")
	if s.onExpired != nil {
		s.onExpired()
	}
}

// Ended reports whether the session has been torn down.
func (s *Session) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

// Logout invalidates the token server-side and marks the session ended
// without firing the expiry handler.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.ended = true
	s.mu.Unlock()
	return s.api.Logout(ctx)
}
