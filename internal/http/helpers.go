package http

import (
	"net/http"
	"sort"
	"strings"

	"finboard/internal/core"
	applog "finboard/internal/log"
)

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// orEmpty keeps list responses encoding as [] rather than null.
func orEmpty[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}

func sortBillsByName(bills []core.RecurringBill) []core.RecurringBill {
	out := make([]core.RecurringBill, len(bills))
	copy(out, bills)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// fail logs err when it maps to a server error and writes the response.
func fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	resp := ResponseForError(err)
	logger := applog.FromContext(r.Context())
	if resp.StatusCode() >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), msg, applog.FieldError, err, applog.FieldPath, r.URL.Path)
	} else {
		logger.DebugContext(r.Context(), msg, applog.FieldError, err)
	}
	_ = resp.Write(w)
}

// changed records a successful mutation. Cached reports are dropped and the
// recomputer rebuilds before the response goes out, so the caller's next
// read sees the change.
func (s *Server) changed(r *http.Request, op, entity, id string) {
	s.reports.Purge()
	logger := applog.FromContext(r.Context())
	applog.NewStructuredLogger(logger).LogLedgerChange(r.Context(), op, entity, id)

	if s.recomputer == nil {
		return
	}
	if _, err := s.recomputer.Recompute(r.Context()); err != nil {
		s.viewsStale.Store(true)
		logger.WarnContext(r.Context(), "Failed to recompute views after write",
			applog.FieldError, err,
			applog.FieldEntity, entity,
			applog.FieldID, id)
		return
	}
	s.viewsStale.Store(false)
}
