package http

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"lifeos/internal/log"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Body(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.metrics.started).Round(time.Second).String(),
	}).Write(w)
}

// handleReady checks templates and the persistence backend.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status, httpStatus = "not_ready", http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	switch {
	case s.ready == nil:
		checks["storage"] = "not_configured"
	default:
		if err := s.ready(ctx); err != nil {
			checks["storage"] = fmt.Sprintf("failed: %v", err)
			status, httpStatus = "not_ready", http.StatusServiceUnavailable
		} else {
			checks["storage"] = "ok"
		}
	}

	checks["cache"] = map[string]any{"view_entries": s.views.Size()}
	checks["rate_limiter"] = map[string]any{"active_clients": s.limiter.ActiveClients()}

	NewJSONResponse().Status(httpStatus).Body(map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	}).Write(w)
}

// handleMetrics writes counters in Prometheus text format.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	traceMetrics := s.tracer.GetMetrics()
	limitMetrics := s.limiter.GetMetrics()

	var b bytes.Buffer
	counter := func(name, help string, v int64) {
		fmt.Fprintf(&b, "# HELP %s %s\n# TYPE %s counter\n%s %d\n\n", name, help, name, name, v)
	}
	gauge := func(name, help string, v int64) {
		fmt.Fprintf(&b, "# HELP %s %s\n# TYPE %s gauge\n%s %d\n\n", name, help, name, name, v)
	}

	counter("http_requests_total", "Total number of HTTP requests", traceMetrics.TotalRequests)
	counter("view_cache_hits_total", "View cache hits", s.metrics.cacheHits.Load())
	counter("view_cache_misses_total", "View cache misses", s.metrics.cacheMisses.Load())
	counter("remote_saves_total", "Remote saves requested", s.metrics.saves.Load())
	counter("rate_limit_hits_total", "Requests rejected by the rate limiter", limitMetrics.TotalHits)
	counter("suspicious_requests_total", "Requests flagged as probes", s.detector.SuspiciousCount())
	gauge("view_cache_entries", "Cached views", int64(s.views.Size()))
	gauge("active_rate_limit_clients", "Tracked rate limit clients", limitMetrics.ClientCount)
	gauge("state_version", "Dashboard state version", int64(s.session.Version()))
	gauge("uptime_seconds", "Process uptime in seconds", int64(time.Since(s.metrics.started).Seconds()))

	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	_, _ = w.Write(b.Bytes())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "dashboard.html", s.currentView()); err != nil {
		s.events.LogError(r.Context(), "Dashboard template execution failed", err,
			log.ComponentTemplate, log.OpRender, log.LogFields{"template": "dashboard.html"})
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Body(s.session.Snapshot()).Write(w)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Body(s.currentView()).Write(w)
}

// handleSave pushes the bundle to the remote endpoint. With the sync pipeline
// configured the save is queued instead and answered with 202.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch {
	case s.syncer != nil:
		version, err := s.syncer.RequestSync(ctx)
		if err != nil {
			s.events.LogError(ctx, "Sync request failed", err, log.ComponentAMQP, log.OpSync, log.NewFields())
			ErrorResponse(http.StatusBadGateway, "could not queue remote save").Write(w)
			return
		}
		s.metrics.saves.Add(1)
		NewJSONResponse().Status(http.StatusAccepted).
			Body(map[string]any{"status": "queued", "version": version}).Write(w)

	case s.pusher != nil:
		if err := s.pusher.Push(ctx, s.session.Snapshot()); err != nil {
			s.events.LogError(ctx, "Remote save failed", err, log.ComponentBackup, log.OpSave, log.NewFields())
			ErrorResponse(http.StatusBadGateway, "remote save failed").Write(w)
			return
		}
		s.metrics.saves.Add(1)
		log.FromContext(ctx).InfoContext(ctx, "Bundle saved remotely", log.FieldOperation, log.OpSave)
		NewJSONResponse().Body(map[string]string{"status": "saved"}).Write(w)

	default:
		ErrorResponse(http.StatusServiceUnavailable, "remote save is not configured").Write(w)
	}
}
