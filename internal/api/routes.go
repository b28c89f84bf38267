package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/pandaschool/internal/errors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(corsMiddleware(s.CORSOrigin))
	r.Use(timeoutMiddleware(requestTimeout))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errors.NewNotFoundError("route", r.URL.Path))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/ready", s.handleReady)
		r.Post("/signup", s.handleSignup)
		r.Post("/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Post("/child-profile", s.handleSaveChild)
			r.Post("/progress", s.handleSaveProgress)
			r.Get("/user-data", s.handleUserData)
			r.Get("/summary", s.handleSummary)
		})
	})
	return r
}
