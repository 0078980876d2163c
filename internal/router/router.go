// Package router sets up all HTTP routes and middleware chains for the
// SectionPress server. It organizes routes into the JSON API and the
// public site group.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sectionpress/internal/handlers"
	"sectionpress/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(api *handlers.API, public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check.
	r.Get("/health", healthHandler)

	// JSON API.
	r.Route("/api", func(r chi.Router) {
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", api.ListPosts)
			r.Post("/", api.CreatePost)
			r.Get("/slug/{slug}", api.GetPostBySlug)
			r.Get("/{id}", api.GetPost)
			r.Put("/{id}", api.UpdatePost)
			r.Delete("/{id}", api.DeletePost)
		})

		r.Route("/sections", func(r chi.Router) {
			r.Get("/{id}", api.GetSection)
			r.Put("/{id}", api.UpdateSection)
			r.Delete("/{id}", api.DeleteSection)
		})
	})

	// Public site.
	r.Get("/", public.Home)
	r.Get("/blog", public.Home)
	r.Get("/blog/{slug}", public.Post)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
