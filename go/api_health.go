package billingserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// HealthAPI reports process and dependency health.
type HealthAPI struct {
	checks  map[string]HealthCheck
	timeout time.Duration
}

// NewHealthAPI creates a HealthAPI running checks with a shared timeout.
func NewHealthAPI(checks map[string]HealthCheck) HealthAPI {
	return HealthAPI{checks: checks, timeout: 2 * time.Second}
}

// Get /healthz
func (api *HealthAPI) Healthz(c *gin.Context) {
	timeout := api.timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(api.checks))
	for name, check := range api.checks {
		if err := check(ctx); err != nil {
			status = http.StatusServiceUnavailable
			results[name] = err.Error()
			continue
		}
		results[name] = "ok"
	}
	body := gin.H{"status": "ok", "checks": results}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	c.JSON(status, body)
}
