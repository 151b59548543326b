package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnhealthy is returned when the server answers but reports a problem.
var ErrUnhealthy = errors.New("server is unhealthy")

// Fetch queries baseURL/health. An unhealthy answer returns the decoded
// response together with ErrUnhealthy.
func Fetch(ctx context.Context, client *http.Client, baseURL string) (*Response, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build health request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	defer resp.Body.Close()

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("invalid health response (HTTP %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || !out.Healthy() {
		return &out, fmt.Errorf("%w: %s", ErrUnhealthy, out.Error)
	}
	return &out, nil
}
