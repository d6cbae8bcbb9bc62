package models

import "time"

// HealthCheckResponse is returned by the health endpoint
type HealthCheckResponse struct {
	Alive   bool          `json:"alive"`
	Backend BackendStatus `json:"backend"`
}

// BackendStatus is the last result of probing the backend REST API
type BackendStatus struct {
	Reachable   bool      `json:"reachable"`
	LastChecked time.Time `json:"lastChecked,omitempty"`
	LastError   string    `json:"lastError,omitempty"`
}
