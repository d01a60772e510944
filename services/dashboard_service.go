package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"tsc-access-portal/client"
	"tsc-access-portal/models"
	"tsc-access-portal/session"
	"tsc-access-portal/workflow"
)

// ErrDecisionInFlight blocks a duplicate submission while a decision for the
// same system id is still outstanding. Other systems stay actionable.
var ErrDecisionInFlight = errors.New("a decision for this system is already in flight")

// SystemView pairs a requested system with its resolved workflow state.
type SystemView struct {
	System models.RequestedSystem
	State  workflow.Classification
}

// RequestView is one dashboard row: the request with only the systems the
// viewer may see, each classified.
type RequestView struct {
	Request models.AccessRequest
	Status  string
	Systems []SystemView
}

// View is an immutable snapshot of a dashboard's current data.
type View struct {
	Requests    []RequestView
	Stats       *models.DashboardStats
	Count       int
	Page        int
	NextURL     string
	PrevURL     string
	RefreshedAt time.Time
}

// DashboardService drives one role dashboard: it polls the approval listing
// and stats on a fixed interval, classifies and filters every row through
// the workflow engine, and submits decisions. A superseded in-flight fetch
// is aborted via context cancellation so a stale response can never
// overwrite fresher state.
type DashboardService struct {
	sess     *session.Session
	engine   *workflow.Engine
	clock    Clock
	interval time.Duration

	mu        sync.Mutex
	tab       string
	search    string
	startDate string
	endDate   string
	pageURL   string

	seq         int
	cancelFetch context.CancelFunc
	view        View
	firstLoaded bool
	inflight    map[int]struct{}

	pollCount  int
	errorCount int
	lastPollAt time.Time
	lastError  string
}

// NewDashboard builds a dashboard service for the session's role. interval
// is the poll cadence; clock may be nil for real time.
func NewDashboard(sess *session.Session, engine *workflow.Engine, clock Clock, interval time.Duration) *DashboardService {
	if clock == nil {
		clock = RealClock
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &DashboardService{
		sess:     sess,
		engine:   engine,
		clock:    clock,
		interval: interval,
		tab:      workflow.TabPending,
		inflight: make(map[int]struct{}),
	}
}

// Run performs the blocking initial load and then polls until ctx is done.
// Background poll failures are logged and swallowed; only the initial load
// error and auth teardown stop the loop.
func (s *DashboardService) Run(ctx context.Context) error {
	if err := s.refresh(ctx, false); err != nil {
		return fmt.Errorf("initial dashboard load: %w", err)
	}

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
			if s.sess.Ended() {
				return nil
			}
			s.refresh(ctx, true)
		}
	}
}

// Refresh forces an immediate foreground reload of the listing and stats.
func (s *DashboardService) Refresh(ctx context.Context) error {
	return s.refresh(ctx, false)
}

// SetTab switches the active tab and reloads. Any in-flight fetch for the
// old tab is aborted, not merely ignored.
func (s *DashboardService) SetTab(ctx context.Context, tab string) error {
	s.mu.Lock()
	s.tab = tab
	s.pageURL = ""
	s.mu.Unlock()
	return s.refresh(ctx, false)
}

// SetSearch applies a search term and reloads from the first page.
func (s *DashboardService) SetSearch(ctx context.Context, term string) error {
	s.mu.Lock()
	s.search = term
	s.pageURL = ""
	s.mu.Unlock()
	return s.refresh(ctx, false)
}

// SetDateRange applies a submitted-at range (YYYY-MM-DD, both ends or
// neither) and reloads from the first page.
func (s *DashboardService) SetDateRange(ctx context.Context, start, end string) error {
	s.mu.Lock()
	s.startDate = start
	s.endDate = end
	s.pageURL = ""
	s.mu.Unlock()
	return s.refresh(ctx, false)
}

// OpenPage follows a pagination cursor verbatim. An empty cursor is a no-op,
// matching a disabled pager button.
func (s *DashboardService) OpenPage(ctx context.Context, cursor string) error {
	if cursor == "" {
		return nil
	}
	s.mu.Lock()
	s.pageURL = cursor
	s.mu.Unlock()
	return s.refresh(ctx, false)
}

// refresh fetches the listing and stats, then rebuilds the view. background
// refreshes never surface errors and never flip the first-load state; they
// only log. A refresh that has been superseded by a newer one discards its
// result entirely.
func (s *DashboardService) refresh(ctx context.Context, background bool) error {
	s.mu.Lock()
	if s.sess.Ended() {
		s.mu.Unlock()
		return nil
	}
	s.seq++
	seq := s.seq
	if s.cancelFetch != nil {
		s.cancelFetch()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	s.cancelFetch = cancel
	query := client.ApprovalQuery{
		Tab:       s.tab,
		Search:    s.search,
		StartDate: s.startDate,
		EndDate:   s.endDate,
		PageURL:   s.pageURL,
	}
	s.mu.Unlock()

	pollID := uuid.NewString()
	api := s.sess.API()

	page, err := api.ListApprovals(fetchCtx, query)
	var stats *models.DashboardStats
	if err == nil {
		stats, err = api.Stats(fetchCtx)
	}
	cancel()

	s.mu.Lock()
	if seq != s.seq {
		// Superseded by a newer refresh; whatever came back is stale.
		s.mu.Unlock()
		return nil
	}
	s.cancelFetch = nil
	s.pollCount++
	s.lastPollAt = s.clock.Now()

	if err != nil {
		if client.IsCanceled(err) {
			s.mu.Unlock()
			return nil
		}
		s.errorCount++
		s.lastError = err.Error()
		s.mu.Unlock()

		s.sess.HandleError(err)
		if background {
			log.Printf("dashboard poll %s: background refresh failed: %v", pollID, err)
			return nil
		}
		return err
	}

	s.view = s.buildView(query, page, stats)
	s.firstLoaded = true
	s.lastError = ""
	s.mu.Unlock()
	return nil
}

// buildView filters and classifies one fetched page. Callers hold s.mu.
func (s *DashboardService) buildView(query client.ApprovalQuery, page *client.Page[models.AccessRequest], stats *models.DashboardStats) View {
	viewer := s.sess.Viewer()

	view := View{
		Stats:       stats,
		Count:       page.Count,
		Page:        1,
		RefreshedAt: s.clock.Now(),
	}
	if query.PageURL != "" {
		view.Page = client.PageNumber(query.PageURL)
	}
	if page.Next != nil {
		view.NextURL = *page.Next
	}
	if page.Previous != nil {
		view.PrevURL = *page.Previous
	}

	for _, req := range s.engine.FilterRequests(viewer, query.Tab, page.Results) {
		row := RequestView{
			Request: req,
			Status:  workflow.EffectiveStatus(req),
		}
		for _, sys := range req.RequestedSystems {
			row.Systems = append(row.Systems, SystemView{
				System: sys,
				State:  s.engine.Resolve(sys, req.SubmittedAt),
			})
		}
		view.Requests = append(view.Requests, row)
	}
	return view
}

// Decide validates and submits a decision for one system, then re-fetches
// the full view; the backend owns every aggregate, so nothing is patched
// locally. A second submission for the same system id is rejected while the
// first is outstanding.
func (s *DashboardService) Decide(ctx context.Context, requestID, systemID int, action, comment string) error {
	s.mu.Lock()
	if _, busy := s.inflight[systemID]; busy {
		s.mu.Unlock()
		return ErrDecisionInFlight
	}

	sys, found := s.findSystem(requestID, systemID)
	if !found {
		s.mu.Unlock()
		return &workflow.ValidationError{Field: "system_id", Message: "system is not part of the current view"}
	}

	cmd, err := s.engine.ValidateDecision(s.sess.Viewer(), requestID, sys, action, comment)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	s.inflight[systemID] = struct{}{}
	s.mu.Unlock()

	err = s.sess.API().Decide(ctx, cmd)

	s.mu.Lock()
	delete(s.inflight, systemID)
	s.mu.Unlock()

	if err != nil {
		s.sess.HandleError(err)
		return err
	}
	return s.refresh(ctx, false)
}

// findSystem locates a system in the current view. Callers hold s.mu.
func (s *DashboardService) findSystem(requestID, systemID int) (models.RequestedSystem, bool) {
	for _, row := range s.view.Requests {
		if row.Request.ID != requestID {
			continue
		}
		for _, sv := range row.Systems {
			if sv.System.ID == systemID {
				return sv.System, true
			}
		}
	}
	return models.RequestedSystem{}, false
}

// DecisionInFlight reports whether a decision for the system id is
// outstanding, e.g. to disable just that row's buttons.
func (s *DashboardService) DecisionInFlight(systemID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, busy := s.inflight[systemID]
	return busy
}

// Loading reports whether the blocking first load is still in progress.
// Background refreshes never flip this back.
func (s *DashboardService) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.firstLoaded
}

// Snapshot returns a copy of the current view.
func (s *DashboardService) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := s.view
	view.Requests = append([]RequestView(nil), s.view.Requests...)
	return view
}

// Name identifies this service on the ops monitor.
func (s *DashboardService) Name() string {
	return "dashboard:" + s.sess.User().Role
}

// Health reports poll counters for the ops monitor.
func (s *DashboardService) Health() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	inflight := make([]int, 0, len(s.inflight))
	for id := range s.inflight {
		inflight = append(inflight, id)
	}
	return map[string]any{
		"tab":          s.tab,
		"poll_count":   s.pollCount,
		"error_count":  s.errorCount,
		"last_poll_at": s.lastPollAt,
		"last_error":   s.lastError,
		"first_loaded": s.firstLoaded,
		"in_flight":    inflight,
		"session_id":   s.sess.ID(),
	}
}
