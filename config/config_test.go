package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"API_BASE_URL", "REQUEST_TIMEOUT_SECONDS", "POLL_INTERVAL_SECONDS",
		"OVERDUE_THRESHOLD_DAYS", "PAGE_SIZE", "MONITOR_PORT", "MONITOR_LOG_TOKEN",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.APIBaseURL != "http://localhost:8000/api" {
		t.Errorf("APIBaseURL=%q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout=%v", cfg.RequestTimeout)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Errorf("PollInterval=%v", cfg.PollInterval)
	}
	if cfg.OverdueAfter != 3*24*time.Hour {
		t.Errorf("OverdueAfter=%v", cfg.OverdueAfter)
	}
	if cfg.PageSize != 10 {
		t.Errorf("PageSize=%d", cfg.PageSize)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://portal.tsc.go.ke/api")
	t.Setenv("POLL_INTERVAL_SECONDS", "15")
	t.Setenv("OVERDUE_THRESHOLD_DAYS", "5")
	t.Setenv("MONITOR_PORT", "9090")

	cfg := Load()
	if cfg.APIBaseURL != "https://portal.tsc.go.ke/api" {
		t.Errorf("APIBaseURL=%q", cfg.APIBaseURL)
	}
	if cfg.PollInterval != 15*time.Second {
		t.Errorf("PollInterval=%v", cfg.PollInterval)
	}
	if cfg.OverdueAfter != 5*24*time.Hour {
		t.Errorf("OverdueAfter=%v", cfg.OverdueAfter)
	}
	if cfg.MonitorPort != "9090" {
		t.Errorf("MonitorPort=%q", cfg.MonitorPort)
	}
}

func TestLoadIgnoresGarbageNumbers(t *testing.T) {
	t.Setenv("POLL_INTERVAL_SECONDS", "soon")
	t.Setenv("OVERDUE_THRESHOLD_DAYS", "-2")

	cfg := Load()
	if cfg.PollInterval != 5*time.Second {
		t.Errorf("PollInterval=%v, want the default", cfg.PollInterval)
	}
	if cfg.OverdueAfter != 3*24*time.Hour {
		t.Errorf("OverdueAfter=%v, want the default", cfg.OverdueAfter)
	}
}
