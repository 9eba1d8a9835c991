// Package web serves the console's views over HTTP on a local address.
// Every view path passes the access rules first; a refused navigation is
// answered with a redirect to the path the rules choose.
package web

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/me/civicflow/internal/access"
	"github.com/me/civicflow/internal/console"
	"github.com/me/civicflow/internal/logging"
)

// Server is the local web console.
type Server struct {
	router  chi.Router
	console *console.Console
	logger  *slog.Logger
}

// New creates a Server with all routes registered.
func New(c *console.Console, logger *slog.Logger) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		console: c,
		logger:  logging.OrDiscard(logger).With("component", "web"),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	r.NotFound(s.handleNotFound)

	r.Get("/healthz", s.handleHealth)
	r.Post("/logout", s.handleLogout)
	r.Get("/nav", s.handleNav)

	// Views. Each request is a navigation to its path.
	r.Group(func(r chi.Router) {
		r.Use(s.accessMiddleware)

		r.Get(access.PathLogin, s.handleLoginView)
		r.Post(access.PathLogin, s.handleLogin)

		r.Get(access.PathRoot, s.handleDashboard)
		r.Get(access.PathDashboard, s.handleDashboard)
		r.Get(access.PathAnalytics, s.handleAnalytics)

		r.Route("/reports/{view}", func(r chi.Router) {
			r.Get("/", s.handleReports)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleReport)
				r.Put("/status", s.handleReportStatus)
				r.Post("/assign", s.handleReportAssign)
				r.Get("/export", s.handleReportExport)
			})
		})

		r.Route(access.PathDepartments, func(r chi.Router) {
			r.Get("/", s.handleDepartments)
			r.Post("/", s.handleCreateDepartment)
			r.Get("/{id}", s.handleDepartment)
			r.Get("/{id}/reports/{reportID}", s.handleDepartmentReport)
		})

		r.Route(access.PathOperators, func(r chi.Router) {
			r.Get("/", s.handleOperators)
			r.Post("/", s.handleCreateOperator)
			r.Get("/{id}", s.handleOperator)
			r.Get("/{id}/reports/{reportID}", s.handleOperatorReport)
		})

		r.Get(access.PathSettings, s.handleSettings)
		r.Put(access.PathSettings, s.handleUpdateSettings)
		r.Get(access.PathNotifications, s.handleNotifications)
	})
}
