package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/notekeep/internal/notes/store"
	"github.com/aussiebroadwan/notekeep/pkg/httpx"
	"github.com/aussiebroadwan/notekeep/pkg/notesdk"
)

// ReadyzHandler is the readiness probe. It degrades to 503 when the
// database cannot be reached.
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &notesdk.HealthChecks{Database: "ok"}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := notesdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
