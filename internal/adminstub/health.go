package adminstub

import (
	"net/http"
	"time"

	"github.com/marmos91/fedctl/internal/adminstub/store"
	"github.com/marmos91/fedctl/internal/cli/health"
)

type healthHandler struct {
	store     *store.GORMStore
	version   string
	startedAt time.Time
	now       func() time.Time
}

func (h *healthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	uptime := h.now().Sub(h.startedAt)
	resp := health.Response{
		Status:    "healthy",
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Data: health.Data{
			Service:   "fedstub",
			Version:   h.version,
			StartedAt: h.startedAt.UTC().Format(time.RFC3339),
			Uptime:    uptime.Round(time.Second).String(),
			UptimeSec: int64(uptime.Seconds()),
		},
	}

	status := http.StatusOK
	if err := h.store.Healthcheck(r.Context()); err != nil {
		resp.Status = "unhealthy"
		resp.Error = err.Error()
		status = http.StatusServiceUnavailable
	} else if names, err := h.store.RealmNames(r.Context()); err == nil {
		resp.Data.Realms = len(names)
	}
	writeJSON(w, status, resp)
}
