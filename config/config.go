package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries the portal's runtime settings. The overdue threshold and
// poll interval are deliberately configuration, not literals.
type Config struct {
	APIBaseURL      string
	RequestTimeout  time.Duration
	PollInterval    time.Duration
	OverdueAfter    time.Duration
	PageSize        int
	MonitorPort     string
	MonitorLogToken string
}

// Load reads configuration from the environment, applying defaults for
// anything unset. Call godotenv.Load first if a .env file is in play.
func Load() Config {
	return Config{
		APIBaseURL:      readString("API_BASE_URL", "http://localhost:8000/api"),
		RequestTimeout:  readDurationSeconds("REQUEST_TIMEOUT_SECONDS", 30),
		PollInterval:    readDurationSeconds("POLL_INTERVAL_SECONDS", 5),
		OverdueAfter:    time.Duration(readPositiveInt("OVERDUE_THRESHOLD_DAYS", 3)) * 24 * time.Hour,
		PageSize:        readPositiveInt("PAGE_SIZE", 10),
		MonitorPort:     os.Getenv("MONITOR_PORT"),
		MonitorLogToken: os.Getenv("MONITOR_LOG_TOKEN"),
	}
}

func readString(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readPositiveInt(key string, fallback int) int {
	value := readInt(key, fallback)
	if value <= 0 {
		return fallback
	}
	return value
}

func readDurationSeconds(key string, fallback int) time.Duration {
	value := readInt(key, fallback)
	if value <= 0 {
		value = fallback
	}
	return time.Duration(value) * time.Second
}
