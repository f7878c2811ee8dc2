package core

import (
	"context"
	"net/http"
)

// HealthStatus reports the API's overall health.
type HealthStatus struct {
	// Status is "healthy", "degraded", or "unhealthy".
	Status    string         `json:"status"`
	Timestamp string         `json:"timestamp"`
	Uptime    float64        `json:"uptime"`
	Services  *ServiceStatus `json:"services,omitempty"`
}

// Healthy reports whether the API considers itself fully operational.
func (h *HealthStatus) Healthy() bool {
	return h.Status == "healthy"
}

// ServiceStatus reports each backend dependency individually. Only present
// in detailed health checks.
type ServiceStatus struct {
	Database  bool  `json:"database"`
	Redis     *bool `json:"redis,omitempty"`
	Providers bool  `json:"providers"`
}

// HealthCheck fetches the API's basic health.
func (c *Client) HealthCheck(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.send(ctx, http.MethodGet, "/health", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// DetailedHealthCheck fetches health including per-service status.
func (c *Client) DetailedHealthCheck(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.send(ctx, http.MethodGet, "/health?detailed=true", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
