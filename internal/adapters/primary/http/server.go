package http

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/sioXD/GitLab-TimeTool/internal/core/app"
)

const (
	readTimeout = 10 * time.Second
	// Building the tree means walking every epic page by page, so writes
	// get a long deadline.
	writeTimeout = 120 * time.Second
	idleTimeout  = 120 * time.Second
)

//go:embed templates/index.html
var indexTemplate string

// Server represents the dashboard HTTP server.
type Server struct {
	server         *http.Server
	app            *app.App
	tmpl           *template.Template
	repositoryName string
}

// NewServer creates a new HTTP server.
func NewServer(addr string, appInstance *app.App, repositoryName string) *Server {
	mux := http.NewServeMux()

	s := &Server{
		server: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
		app:            appInstance,
		tmpl:           template.Must(template.New("index").Parse(indexTemplate)),
		repositoryName: repositoryName,
	}

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/data", s.handleData)
	mux.HandleFunc("/api/categories", s.handleCategories)
	mux.HandleFunc("/api/tree", s.handleTree)
	mux.HandleFunc("/healthz", s.handleHealth)

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	log.Printf("Starting server on %s", s.server.Addr)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
