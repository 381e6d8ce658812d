package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rzbill/stockd/pkg/apperr"
)

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeJSON writes a JSON response with the given data.
func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

// writeAppError maps a domain error to its HTTP status.
func writeAppError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindInvalidArgument:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	}
	writeError(w, status, err.Error())
}

// parseLimit parses a limit string. Returns 0 for empty or invalid values.
func parseLimit(limitStr string) int {
	if limitStr == "" {
		return 0
	}
	if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
		return limit
	}
	return 0
}

// parseOffset parses an offset string. Returns 0 for empty or invalid values.
func parseOffset(offsetStr string) int {
	if offsetStr == "" {
		return 0
	}
	if off, err := strconv.Atoi(offsetStr); err == nil && off > 0 {
		return off
	}
	return 0
}

// parseThreshold parses a threshold query value. Returns 0 for empty or
// invalid values, which callers treat as "use the default".
func parseThreshold(s string) int64 {
	if s == "" {
		return 0
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil && v > 0 {
		return v
	}
	return 0
}
