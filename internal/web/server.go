// Package web implements the flowgraph HTTP server.
//
// The server mirrors the classic layout of the tool: source editor on one
// side, rendered diagram plus metric tiles on the other. It is also the
// failure boundary for the whole parse-or-render pipeline: any error raised
// below is caught in a handler and reported as a readable message, never a
// crash (see handleAnalyze).
package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/flowgraph/pkg/pipeline"
	"github.com/matzehuels/flowgraph/pkg/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// defaultSource pre-fills the editor so the landing page shows a working
// example instead of an empty form.
const defaultSource = `x = 10
if x > 100:
    print("Huge")
elif x > 50:
    print("Big")
elif x > 10:
    print("Medium")
else:
    print("Small")

print("Done")`

// Server holds the chi router, the pipeline runner, and the analysis store.
type Server struct {
	router *chi.Mux
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	tmpl   *template.Template
}

// NewServer creates a Server with all routes configured and templates
// parsed. The store may be nil, which disables the save/load API.
func NewServer(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		runner: runner,
		store:  st,
		logger: logger,
		tmpl:   template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/analyze", s.handleAnalyze)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.handleAPIAnalyze)
		if s.store != nil {
			r.Post("/analyses", s.handleSaveAnalysis)
			r.Get("/analyses", s.handleListAnalyses)
			r.Get("/analyses/{id}", s.handleGetAnalysis)
			r.Delete("/analyses/{id}", s.handleDeleteAnalysis)
		}
	})

	s.router = r
	return s
}

// Handler returns the root http.Handler for the server.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully with a short drain window.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
