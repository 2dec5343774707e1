package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sunset/pkg/deprecation"
	"github.com/matzehuels/sunset/pkg/errors"
	"github.com/matzehuels/sunset/pkg/report"
)

const shutdownTimeout = 5 * time.Second

// serveOpts holds flags for the serve command.
type serveOpts struct {
	addr string
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve deprecation reports over HTTP",
		Long: `Serve exposes the resolved manifest as a JSON API:

  GET /healthz                       liveness probe
  GET /api/packages                  per-package record counts
  GET /api/packages/{name}           full report for one package
  GET /api/packages/{name}/records   records, filterable with ?states=

The server runs until interrupted and drains in-flight requests on
shutdown.

Examples:
  sunset serve
  sunset serve --addr :8413
  curl localhost:8080/api/packages/acme-api/records?states=expired`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")

	return cmd
}

// runServe resolves the project once and serves reports from the resolved
// registry until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	spinner := newSpinnerWithContext(ctx, "Resolving package versions...")
	spinner.Start()
	p, err := c.openProject(ctx)
	if err != nil {
		spinner.StopWithError("Failed to load project")
		return err
	}
	defer p.Close()
	spinner.Stop()
	prog.done(fmt.Sprintf("Resolved %d packages", len(p.registry.Deprecators())))

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newAPIHandler(logger, p.registry),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving deprecation reports", "addr", opts.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// apiServer serves deprecation reports from a resolved registry.
type apiServer struct {
	logger   *log.Logger
	registry *deprecation.Registry
}

// newAPIHandler wires the API routes. Split from runServe so tests can mount
// it on an httptest server.
func newAPIHandler(logger *log.Logger, reg *deprecation.Registry) http.Handler {
	s := &apiServer{logger: logger, registry: reg}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Route("/api/packages", func(r chi.Router) {
		r.Get("/", s.handlePackages)
		r.Get("/{name}", s.handlePackage)
		r.Get("/{name}/records", s.handleRecords)
	})

	return r
}

type ctxRequestID struct{}

// requestID tags every request with an id, honoring one supplied by the
// caller.
func (s *apiServer) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxRequestID{}, id)))
	})
}

// logRequests logs one line per request with status and timing.
func (s *apiServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		id, _ := r.Context().Value(ctxRequestID{}).(string)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", id,
		)
	})
}

// packageSummary is one entry of the package index.
type packageSummary struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Pending int    `json:"pending"`
	Active  int    `json:"active"`
	Expired int    `json:"expired"`
}

func (s *apiServer) handlePackages(w http.ResponseWriter, _ *http.Request) {
	deps := s.registry.Deprecators()
	summaries := make([]packageSummary, 0, len(deps))
	for _, d := range deps {
		pending, active, expired := countStates(d)
		summaries = append(summaries, packageSummary{
			Name:    d.Name(),
			Version: d.Version().String(),
			Pending: pending,
			Active:  active,
			Expired: expired,
		})
	}
	s.writeJSON(w, http.StatusOK, summaries)
}

func (s *apiServer) handlePackage(w http.ResponseWriter, r *http.Request) {
	d, ok := s.registry.Get(chi.URLParam(r, "name"))
	if !ok {
		s.writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeNotFound, "package %q is not tracked", chi.URLParam(r, "name")))
		return
	}
	s.writeJSON(w, http.StatusOK, report.Build(d, report.All()))
}

func (s *apiServer) handleRecords(w http.ResponseWriter, r *http.Request) {
	filter, err := report.ParseStates(r.URL.Query().Get("states"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	d, ok := s.registry.Get(chi.URLParam(r, "name"))
	if !ok {
		s.writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeNotFound, "package %q is not tracked", chi.URLParam(r, "name")))
		return
	}
	rep := report.Build(d, filter)
	if rep.Rows == nil {
		rep.Rows = []report.Row{}
	}
	s.writeJSON(w, http.StatusOK, rep.Rows)
}

// apiError is the JSON error envelope.
type apiError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := report.WriteJSON(v, w); err != nil {
		s.logger.Error("write response", "error", err)
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, apiError{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}
