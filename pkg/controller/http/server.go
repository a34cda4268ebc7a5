package http

import (
	"context"
	"io/fs"
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/smartcomment/frontend"
	"github.com/secmon-lab/smartcomment/pkg/domain/model"
	"github.com/secmon-lab/smartcomment/pkg/usecase"
)

// SubmissionUseCase runs the meeting note pipeline
type SubmissionUseCase interface {
	Submit(ctx context.Context, form *model.SubmissionForm) (*usecase.SubmitResult, error)
}

// SearchUseCase runs a single web search
type SearchUseCase interface {
	Search(ctx context.Context, query string) (*model.SearchResult, error)
}

// HealthUseCase reports configuration and connectivity
type HealthUseCase interface {
	Check(ctx context.Context, verbose bool) *usecase.HealthReport
}

type Server struct {
	router     *chi.Mux
	submission SubmissionUseCase
	search     SearchUseCase
	health     HealthUseCase
	sentry     bool
}

type Options func(*Server)

func WithSubmission(uc SubmissionUseCase) Options {
	return func(s *Server) {
		s.submission = uc
	}
}

func WithSearch(uc SearchUseCase) Options {
	return func(s *Server) {
		s.search = uc
	}
}

func WithHealth(uc HealthUseCase) Options {
	return func(s *Server) {
		s.health = uc
	}
}

// WithSentry attaches a Sentry hub to every request. sentry.Init must have been called.
func WithSentry(enabled bool) Options {
	return func(s *Server) {
		s.sentry = enabled
	}
}

// WithUseCases wires every endpoint from a UseCases bundle
func WithUseCases(uc *usecase.UseCases) Options {
	return func(s *Server) {
		s.submission = uc.Submission
		s.search = uc.Search
		s.health = uc.Health
	}
}

func New(opts ...Options) (*Server, error) {
	r := chi.NewRouter()

	s := &Server{
		router: r,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.submission == nil || s.search == nil || s.health == nil {
		return nil, goerr.New("submission, search and health use cases are required")
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	if s.sentry && sentry.CurrentHub().Client() != nil {
		r.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	}

	submit := submitHandler(s.submission)
	searchClient := searchHandler(s.search)

	r.Route("/api", func(r chi.Router) {
		r.Post("/submit-form", submit)
		r.Post("/search-client", searchClient)
		r.Get("/test", healthHandler(s.health, true))
	})

	r.Post("/submit", submit)
	r.Post("/search-client", searchClient)
	r.Get("/health", healthHandler(s.health, false))
	r.Get("/status", statusHandler)
	r.Get("/form", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusFound)
	})

	// Static form (catch-all, must be last)
	staticFS, err := fs.Sub(frontend.StaticFiles, "dist")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to bind dist dir for static")
	}

	r.Get("/*", staticHandler(staticFS))

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// staticHandler serves files from staticFS and falls back to index.html
func staticHandler(staticFS fs.FS) http.HandlerFunc {
	fileServer := http.FileServer(http.FS(staticFS))

	return func(w http.ResponseWriter, r *http.Request) {
		urlPath := strings.TrimPrefix(r.URL.Path, "/")

		if urlPath == "" {
			http.ServeFileFS(w, r, staticFS, "index.html")
			return
		}

		if _, err := fs.Stat(staticFS, urlPath); err != nil {
			http.ServeFileFS(w, r, staticFS, "index.html")
			return
		}

		fileServer.ServeHTTP(w, r)
	}
}
