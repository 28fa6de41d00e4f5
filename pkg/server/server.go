package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/initializr/pkg/errors"
	"github.com/matzehuels/initializr/pkg/metadata"
	"github.com/matzehuels/initializr/pkg/project"
	"github.com/matzehuels/initializr/pkg/refresh"
	"github.com/matzehuels/initializr/pkg/render"
)

const maxRequestBytes = 1 << 20

// Options configures a Server.
type Options struct {
	// Scheduler, when set, receives refresh requests asynchronously.
	// Otherwise POST /refresh refreshes the provider synchronously.
	Scheduler *refresh.Scheduler

	// Gatherer serves /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	Logger *log.Logger
}

// Server handles HTTP requests against the catalog published by a
// provider.
type Server struct {
	provider  *refresh.Provider
	converter *project.Converter
	scheduler *refresh.Scheduler
	gatherer  prometheus.Gatherer
	logger    *log.Logger
}

// New creates a server reading catalogs from p.
func New(p *refresh.Provider, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	return &Server{
		provider:  p,
		converter: project.NewConverter(opts.Logger),
		scheduler: opts.Scheduler,
		gatherer:  opts.Gatherer,
		logger:    opts.Logger,
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/metadata", s.handleMetadata)
	r.Get("/graph", s.handleGraph)
	r.Post("/describe", s.handleDescribe)
	r.Post("/refresh", s.handleRefresh)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, metadata.Document(s.provider.Get()))
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	dot := render.ToDOT(s.provider.Get(), render.Options{
		Dependencies: r.URL.Query().Get("dependencies") == "true",
	})
	if r.URL.Query().Get("format") != "svg" {
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
		w.Write([]byte(dot))
		return
	}
	svg, err := render.RenderSVG(dot)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "cannot render graph"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(svg)
}

func (s *Server) handleDescribe(w http.ResponseWriter, r *http.Request) {
	var req project.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid project request: %v", err))
		return
	}

	d, err := s.converter.Convert(r.Context(), &req, s.provider.Get())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

type refreshResponse struct {
	Status     string `json:"status"`
	Platforms  int    `json:"platforms,omitempty"`
	Frameworks int    `json:"frameworks,omitempty"`
	Error      string `json:"error,omitempty"`
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if s.scheduler != nil {
		s.scheduler.Trigger()
		writeJSON(w, http.StatusAccepted, refreshResponse{Status: "scheduled"})
		return
	}

	c, err := s.provider.Refresh(r.Context())
	resp := refreshResponse{
		Status:     "refreshed",
		Platforms:  c.PlatformVersions.Len(),
		Frameworks: c.FrameworkVersions.Len(),
	}
	if err != nil {
		resp.Status = "stale"
		resp.Error = errors.UserMessage(err)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
