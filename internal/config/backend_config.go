package config

import (
	"time"
)

const (
	apiBaseURLVar     = "API_BASE_URL"
	requestTimeoutVar = "REQUEST_TIMEOUT"

	// Timeouts beyond this classify as network failures long before a user
	// gives up on the screen.
	defaultRequestTimeout = 8 * time.Second
)

type BackendConfig interface {
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
}

type Backend struct{}

var _ BackendConfig = Backend{}

// GetAPIBaseURL returns the base URL of the marketplace auth backend
// (e.g. "https://api.harvestly.example.com")
func (Backend) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:8080")
}

// GetRequestTimeout returns the bound applied to every backend call.
func (Backend) GetRequestTimeout() time.Duration {
	value := GetEnv(requestTimeoutVar, "")
	if value == "" {
		return defaultRequestTimeout
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultRequestTimeout
	}
	return d
}
