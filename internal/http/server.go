// Package http serves the dashboard page and its JSON API.
package http

import (
	"context"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"lifeos/internal/cache"
	"lifeos/internal/core"
	"lifeos/internal/dashboard"
	"lifeos/internal/log"
	"lifeos/internal/middleware/ratelimit"
	"lifeos/internal/middleware/security"
	"lifeos/internal/middleware/trace"
	appweb "lifeos/web"
)

type (
	// Pusher sends the bundle to the remote save endpoint.
	Pusher interface {
		Push(ctx context.Context, b core.Bundle) error
	}

	// SyncRequester queues an asynchronous remote save.
	SyncRequester interface {
		RequestSync(ctx context.Context) (int64, error)
	}
)

// Deps are the collaborators of the server. Only Session is required.
type Deps struct {
	Session *dashboard.Session
	Pusher  Pusher
	Sync    SyncRequester
	// Ready reports whether the persistence backend is reachable.
	Ready     func(ctx context.Context) error
	Logger    *log.Logger
	RateLimit ratelimit.Config
	ViewTTL   time.Duration
}

// Server wraps http.Server with the dashboard dependencies.
type Server struct {
	http.Server

	session   *dashboard.Session
	pusher    Pusher
	syncer    SyncRequester
	ready     func(ctx context.Context) error
	templates *template.Template

	views    *cache.LRUCache[dashboard.View]
	cacheMgr *cache.Manager

	logger   *log.Logger
	events   *log.StructuredLogger
	limiter  *ratelimit.Limiter
	tracer   *trace.Middleware
	detector *security.Detector

	metrics      serverMetrics
	shutdownOnce sync.Once
}

type serverMetrics struct {
	started     time.Time
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
	saves       atomic.Int64
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, deps Deps) (*Server, error) {
	if deps.Session == nil {
		return nil, errors.New("http server needs a session")
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.NewForLevel("info", log.ComponentHTTP)
	}
	ttl := deps.ViewTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		session:   deps.Session,
		pusher:    deps.Pusher,
		syncer:    deps.Sync,
		ready:     deps.Ready,
		templates: t,
		views:     cache.NewLRUCache[dashboard.View](16, ttl),
		cacheMgr:  cache.NewManager(logger.WithComponent(log.ComponentCache)),
		logger:    logger,
		events:    log.NewStructuredLogger(logger),
		limiter:   ratelimit.NewLimiter(deps.RateLimit),
		detector:  security.NewDetector(),
	}
	s.metrics.started = time.Now()
	s.tracer = trace.NewMiddleware(logger.WithComponent(log.ComponentTrace), s.detector.ClientIP)
	s.cacheMgr.Register(s.views)
	s.cacheMgr.StartCleanup(10 * time.Minute)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	api := http.NewServeMux()
	api.HandleFunc("GET /api/state", s.handleState)
	api.HandleFunc("GET /api/view", s.handleView)
	api.HandleFunc("POST /api/save", s.handleSave)

	api.HandleFunc("GET /api/tasks", s.handleListTasks)
	api.HandleFunc("POST /api/tasks", s.handleCreateTask)
	api.HandleFunc("POST /api/tasks/clear-completed", s.handleClearCompleted)
	api.HandleFunc("POST /api/tasks/{id}/toggle", s.handleToggleTask)
	api.HandleFunc("DELETE /api/tasks/{id}", s.handleDeleteTask)

	api.HandleFunc("GET /api/transactions", s.handleListTransactions)
	api.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	api.HandleFunc("GET /api/balance", s.handleBalance)

	api.HandleFunc("GET /api/habit", s.handleHabit)
	api.HandleFunc("POST /api/habit/mark", s.handleMarkToday)
	api.HandleFunc("POST /api/habit/mark-day", s.handleMarkDay)
	api.HandleFunc("POST /api/habit/reset", s.handleResetStreak)

	limited := s.limiter.Middleware(s.detector.ClientIP, ratelimit.Mutating, s.onRateLimit)
	mux.Handle("/api/", security.NoStore(limited(api)))

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	var h http.Handler = mux
	h = headers.Middleware(h)
	h = s.detector.Middleware(s.logger.WithComponent(log.ComponentSecurity))(h)
	h = s.tracer.Middleware(h)
	return h
}

func (s *Server) onRateLimit(w http.ResponseWriter, r *http.Request) {
	s.logger.WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldRequestID, trace.GetRequestID(r.Context()),
		log.FieldClientIP, s.detector.ClientIP(r),
		log.FieldMethod, r.Method,
		log.FieldPath, r.URL.Path)
	w.Header().Set("Retry-After", "60")
	NewJSONResponse().
		Status(http.StatusTooManyRequests).
		Body(errorBody{Error: "rate limit exceeded, try again later"}).
		Write(w)
}

// currentView returns the presentation model, cached per day and state version.
func (s *Server) currentView() dashboard.View {
	key := viewKey(s.session.Now(), s.session.Version())
	if v, ok := s.views.Get(key); ok {
		s.metrics.cacheHits.Add(1)
		return v
	}
	s.metrics.cacheMisses.Add(1)
	v := s.session.View()
	s.views.Set(key, v)
	return v
}

// invalidate drops cached views after a mutation.
func (s *Server) invalidate(ctx context.Context) {
	if n := s.views.Purge(); n > 0 {
		s.logger.DebugContext(ctx, "View cache invalidated", "entries_removed", n)
	}
}

// Shutdown stops background goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.cacheMgr.Stop()
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}
