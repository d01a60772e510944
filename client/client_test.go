package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tsc-access-portal/workflow"
)

func TestDoSendsTokenHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := New(server.URL, time.Second)
	c.SetToken("abc123")

	var out map[string]any
	if err := c.get(context.Background(), "/users/me/", nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Token abc123" {
		t.Fatalf("Authorization=%q, want Token abc123", gotAuth)
	}
}

func TestDoClassifiesErrors(t *testing.T) {
	status := http.StatusOK
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(`{"error":"nope"}`))
	}))
	defer server.Close()

	c := New(server.URL, time.Second)

	status = http.StatusUnauthorized
	err := c.get(context.Background(), "/approvals/", nil, nil)
	if !IsAuthError(err) {
		t.Fatalf("401 should be an auth error, got %v", err)
	}
	if IsTransient(err) {
		t.Fatal("auth errors are not transient")
	}

	status = http.StatusBadGateway
	err = c.get(context.Background(), "/approvals/", nil, nil)
	if !IsTransient(err) {
		t.Fatalf("502 should be transient, got %v", err)
	}

	status = http.StatusBadRequest
	err = c.get(context.Background(), "/approvals/", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 400 {
		t.Fatalf("400 should be an APIError, got %v", err)
	}
	if IsTransient(err) {
		t.Fatal("a 400 is not transient")
	}
}

func TestDoCanceledContextIsNotAFailure(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	c := New(server.URL, 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- c.get(ctx, "/approvals/", nil, nil)
	}()

	<-started
	cancel()

	err := <-errCh
	if !IsCanceled(err) {
		t.Fatalf("expected canceled, got %v", err)
	}
	if IsTransient(err) {
		t.Fatal("a canceled request must not look transient")
	}
}

func TestPaginationFollowsCursorVerbatim(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.RequestURI())
		json.NewEncoder(w).Encode(map[string]any{
			"count": 3, "next": nil, "previous": nil,
			"results": []map[string]any{{"id": 3}},
		})
	}))
	defer server.Close()

	c := New(server.URL, time.Second)
	cursor := server.URL + "/approvals/?page=2&tab=pending"

	page, err := getPage[map[string]any](context.Background(), c, cursor, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Count != 3 || len(page.Results) != 1 {
		t.Fatalf("envelope misparsed: %+v", page)
	}
	if len(paths) != 1 || paths[0] != "/approvals/?page=2&tab=pending" {
		t.Fatalf("cursor not followed verbatim: %v", paths)
	}
}

// A backend behind a path prefix may hand out root-relative cursors; those
// must resolve against the host, while plain endpoint paths keep joining
// onto the base URL.
func TestRootRelativeCursorResolvesAgainstHost(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.RequestURI())
		json.NewEncoder(w).Encode(map[string]any{
			"count": 0, "next": nil, "previous": nil, "results": []any{},
		})
	}))
	defer server.Close()

	c := New(server.URL+"/api", time.Second)
	ctx := context.Background()

	if _, err := getPage[map[string]any](ctx, c, "/api/approvals/?page=2", nil); err != nil {
		t.Fatalf("cursor fetch: %v", err)
	}
	if _, err := getPage[map[string]any](ctx, c, "/approvals/", nil); err != nil {
		t.Fatalf("endpoint fetch: %v", err)
	}

	want := []string{"/api/approvals/?page=2", "/api/approvals/"}
	if len(paths) != 2 || paths[0] != want[0] || paths[1] != want[1] {
		t.Fatalf("requested %v, want %v", paths, want)
	}
}

func TestPageNumber(t *testing.T) {
	cases := []struct {
		cursor string
		want   int
	}{
		{"http://api/approvals/?page=4&tab=pending", 4},
		{"http://api/approvals/?tab=pending", 1},
		{"/approvals/?page=2", 2},
		{"", 1},
		{"http://api/approvals/?page=zero", 1},
	}
	for _, tt := range cases {
		if got := PageNumber(tt.cursor); got != tt.want {
			t.Errorf("PageNumber(%q)=%d, want %d", tt.cursor, got, tt.want)
		}
	}
}

func TestDecidePostsShapedCommand(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer server.Close()

	c := New(server.URL, time.Second)
	cmd := &workflow.DecisionCommand{
		RequestID: 42,
		SystemID:  7,
		Action:    workflow.ActionReject,
		Comment:   "Duplicate of REQ-40",
	}
	if err := c.Decide(context.Background(), cmd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/approvals/42/decide/" {
		t.Fatalf("path=%q", gotPath)
	}
	if gotBody["system_id"] != float64(7) || gotBody["action"] != "reject" || gotBody["comment"] != "Duplicate of REQ-40" {
		t.Fatalf("body=%v", gotBody)
	}
	if _, present := gotBody["request_id"]; present {
		t.Fatal("request id belongs in the path, not the body")
	}
}

func TestLoginInstallsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/token/" {
			t.Errorf("path=%q", r.URL.Path)
		}
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["username"] != "334455" || creds["password"] != "hunter2" {
			t.Errorf("credentials misshapen: %v", creds)
		}
		json.NewEncoder(w).Encode(map[string]any{"token": "tok-1", "user_id": 9, "role": "ict"})
	}))
	defer server.Close()

	c := New(server.URL, time.Second)
	result, err := c.Login(context.Background(), "334455", "hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Role != "ict" || c.Token() != "tok-1" {
		t.Fatalf("login result %+v, token %q", result, c.Token())
	}
}
