package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/notekeep/pkg/httpx"
	"github.com/aussiebroadwan/notekeep/pkg/notesdk"
)

// LivezHandler is the liveness probe. It answers 200 whenever the process
// is up, regardless of dependency health.
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := notesdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		}
		httpx.WriteJSON(w, http.StatusOK, response)
	}
}
