package notesdk

import (
	"context"
	"net/http"
)

// Livez checks the liveness probe.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", nil, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// Readyz checks the readiness probe, which also pings the database.
func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/readyz", nil, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}
