package adminstub

import (
	"encoding/json"
	"net/http"

	"github.com/marmos91/fedctl/internal/logger"
)

// errorBody mirrors the admin API's error representation.
type errorBody struct {
	ErrorMessage string `json:"errorMessage"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("Failed to encode response", logger.Err(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{ErrorMessage: msg})
}

func badRequest(w http.ResponseWriter, msg string) { writeError(w, http.StatusBadRequest, msg) }
func notFound(w http.ResponseWriter, msg string)   { writeError(w, http.StatusNotFound, msg) }
func conflict(w http.ResponseWriter, msg string)   { writeError(w, http.StatusConflict, msg) }

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	logger.ErrorCtx(r.Context(), "Stub request failed", logger.Method(r.Method), logger.Path(r.URL.Path), logger.Err(err))
	writeError(w, http.StatusInternalServerError, "unknown_error")
}

// created answers a POST with 201 and the new resource's Location.
func created(w http.ResponseWriter, r *http.Request, id string) {
	w.Header().Set("Location", requestURL(r)+"/"+id)
	w.WriteHeader(http.StatusCreated)
}

func noContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// decodeJSONBody decodes the request body into v, answering 400 on failure.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, "Invalid request body")
		return false
	}
	return true
}

func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.Path
}
