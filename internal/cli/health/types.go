// Package health is the health check payload shared by the stub admin
// server and fedctl.
package health

// Response is the body of GET /health.
type Response struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Data      Data   `json:"data"`
	Error     string `json:"error,omitempty"`
}

// Data describes the running service.
type Data struct {
	Service   string `json:"service"`
	Version   string `json:"version,omitempty"`
	StartedAt string `json:"started_at"`
	Uptime    string `json:"uptime"`
	UptimeSec int64  `json:"uptime_sec"`
	Realms    int    `json:"realms"`
}

// Healthy reports whether the server answered with status "healthy".
func (r Response) Healthy() bool {
	return r.Status == "healthy"
}
