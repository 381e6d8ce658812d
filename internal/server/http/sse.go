package httpserver

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rzbill/stockd/internal/alert"
	"github.com/rzbill/stockd/internal/inventory"
)

// sseSink adapts an HTTP response into an alert sink, formatting each
// event as an SSE data frame.
type sseSink struct {
	w http.ResponseWriter
	r *http.Request
}

func (s sseSink) Send(ev alert.Event) error {
	b, _ := json.Marshal(ev)
	if _, err := s.w.Write([]byte("data: ")); err != nil {
		return err
	}
	if _, err := s.w.Write(b); err != nil {
		return err
	}
	if _, err := s.w.Write([]byte("\n\n")); err != nil {
		return err
	}
	return nil
}

func (s sseSink) Context() context.Context {
	return s.r.Context()
}

func (s sseSink) Flush() error {
	if f, ok := s.w.(http.Flusher); ok {
		f.Flush()
	}
	return nil
}

// handleSubscribeSSE streams low-stock alerts. Query parameters:
// threshold (defaults to the service threshold) and filter (optional CEL
// expression over product_id, name, quantity, message).
func (s *Server) handleSubscribeSSE(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	threshold := parseThreshold(q.Get("threshold"))
	filter := q.Get("filter")
	if err := inventory.ValidateFilter(filter); err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	sink := sseSink{w: w, r: r}
	// Headers are already out; on error the best we can do is end the stream.
	_ = s.rt.Inventory().ServeAlerts(r.Context(), threshold, filter, sink)
}
