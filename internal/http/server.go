package http

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"finboard/internal/cache"
	"finboard/internal/dashboard"
	"finboard/internal/datekey"
	applog "finboard/internal/log"
	"finboard/internal/middleware/ratelimit"
	"finboard/internal/middleware/security"
	"finboard/internal/middleware/trace"
	"finboard/internal/ports"
	"finboard/internal/services"
	"finboard/internal/watch"
)

// Deps are the collaborators the API serves from.
type Deps struct {
	Repos   ports.Repositories
	Ledger  *services.Ledger
	Options dashboard.Options
	// Recomputer is optional. When set, dashboard and report requests that
	// match its latest result are answered from it, and every API write
	// recomputes before responding.
	Recomputer *watch.Recomputer
	Logger     *applog.Logger
	RateLimit  ratelimit.Config
}

type Server struct {
	http.Server
	repos      ports.Repositories
	ledger     *services.Ledger
	opts       dashboard.Options
	recomputer *watch.Recomputer
	logger     *applog.Logger
	// viewsStale is set when a write could not be folded into the
	// recomputer's result; reads then rebuild from the repositories.
	viewsStale atomic.Bool

	reports *cache.LRUCache[dashboard.Report]
	caches  *cache.Manager

	limiter  *ratelimit.Limiter
	detector *security.Detector
	tracer   *trace.Middleware

	today        func() datekey.Day
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run http.Server.
func NewServer(addr string, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = applog.FromContext(context.Background())
	}
	logger = logger.WithComponent(applog.ComponentHTTP)

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		repos:      deps.Repos,
		ledger:     deps.Ledger,
		opts:       deps.Options,
		recomputer: deps.Recomputer,
		logger:     logger,
		reports:    cache.NewLRUCache[dashboard.Report](100, 5*time.Minute),
		caches:     cache.NewManager(),
		limiter:    ratelimit.NewLimiter(deps.RateLimit),
		detector:   security.NewDetector(),
		today:      datekey.Today,
	}
	s.tracer = trace.NewMiddleware(s.detector.ExtractClientIP, logger)

	s.caches.Register(s.reports)
	s.caches.InvalidateOn(s.repos.Categories, s.repos.CategoryTypes, s.repos.Transactions, s.repos.Bills)
	s.caches.StartCleanup(10 * time.Minute)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)

	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/reports", s.handleReport)

	mux.HandleFunc("GET /api/category-types", s.handleListCategoryTypes)
	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleCreateCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", s.handleDeleteCategory)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /api/bills", s.handleListBills)
	mux.HandleFunc("POST /api/bills", s.handleCreateBill)
	mux.HandleFunc("PATCH /api/bills/{id}", s.handleUpdateBill)
	mux.HandleFunc("DELETE /api/bills/{id}", s.handleDeleteBill)
	mux.HandleFunc("GET /api/bills/{id}/occurrences", s.handleBillOccurrences)

	var h http.Handler = mux
	h = s.limiter.Middleware(s.detector.ExtractClientIP, onRateLimited)(h)
	h = s.detector.Middleware(h)
	h = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(h)
	h = s.tracer.Middleware(h)
	s.Handler = h

	return s
}

// Shutdown stops background cleanup and gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.caches.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// Metrics reports request counters.
type Metrics struct {
	Requests           int64       `json:"requests"`
	AvgResponseMicros  int64       `json:"avgResponseMicros"`
	RateLimited        int64       `json:"rateLimited"`
	SuspiciousRequests int64       `json:"suspiciousRequests"`
	ReportCache        cache.Stats `json:"reportCache"`
}

func (s *Server) Metrics() Metrics {
	tm := s.tracer.GetMetrics()
	return Metrics{
		Requests:           tm.TotalRequests,
		AvgResponseMicros:  tm.AverageResponseTime,
		RateLimited:        s.limiter.GetMetrics().TotalHits,
		SuspiciousRequests: s.detector.GetMetrics().SuspiciousRequests,
		ReportCache:        s.reports.Stats(),
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = NewJSONResponse().Data(map[string]string{"status": "ok"}).Write(w)
}

func onRateLimited(w http.ResponseWriter, r *http.Request) {
	applog.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
		applog.FieldMethod, r.Method,
		applog.FieldPath, r.URL.Path)
	_ = ErrorResponse(http.StatusTooManyRequests, "rate limit exceeded, try again later").Write(w)
}
