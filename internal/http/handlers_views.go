package http

import (
	"net/http"

	"finboard/internal/dashboard"
	"finboard/internal/datekey"
	"finboard/internal/watch"
)

func (s *Server) snapshot(r *http.Request) (dashboard.Snapshot, error) {
	return watch.LoadSnapshot(r.Context(), s.repos)
}

// latest returns the recomputer's newest result when one is available and
// no write has been left out of it.
func (s *Server) latest() (watch.Result, bool) {
	if s.recomputer == nil || s.viewsStale.Load() {
		return watch.Result{}, false
	}
	return s.recomputer.Latest()
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	today := s.today()
	if res, ok := s.latest(); ok && res.Today.Equal(today) {
		_ = NewJSONResponse().Data(res.Dashboard).Write(w)
		return
	}

	snap, err := s.snapshot(r)
	if err != nil {
		fail(w, r, "Failed to load dashboard data", err)
		return
	}
	_ = NewJSONResponse().Data(dashboard.BuildDashboard(snap, today, s.opts)).Write(w)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	rng, err := ParseRange(r.URL.Query(), s.today())
	if err != nil {
		_ = BadRequestError(err.Error()).Write(w)
		return
	}

	if res, ok := s.latest(); ok && res.HasReport && sameRange(res.Range, rng) {
		_ = NewJSONResponse().Data(res.Report).Write(w)
		return
	}

	key := rng.Start.String() + ".." + rng.End.String()
	if rep, ok := s.reports.Get(key); ok {
		_ = NewJSONResponse().Data(rep).Write(w)
		return
	}

	snap, err := s.snapshot(r)
	if err != nil {
		fail(w, r, "Failed to load report data", err)
		return
	}
	rep, ok := dashboard.BuildReport(snap, rng, s.opts)
	if !ok {
		_ = BadRequestError("invalid range").Write(w)
		return
	}
	s.reports.Set(key, rep)
	_ = NewJSONResponse().Data(rep).Write(w)
}

func sameRange(a, b datekey.Range) bool {
	return a.Start.Equal(b.Start) && a.End.Equal(b.End)
}
