// Package router wires the badge API routes and middleware chain.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"badgepress/internal/handlers"
	"badgepress/internal/middleware"
	"badgepress/internal/qr"
)

// New creates the configured Chi router with all routes wired up.
func New(badges *handlers.Badges, themes *handlers.Themes, formats *handlers.Formats) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", healthHandler)

	// Public scan-to-verify endpoint; the path is baked into issued
	// QR codes and must not move.
	r.Get(qr.VerificationPath, badges.Verify)

	r.Route("/api/crachas", func(r chi.Router) {
		r.Get("/configuration", badges.Configuration)

		r.Route("/themes", func(r chi.Router) {
			r.Get("/", themes.List)
			r.Post("/", themes.Create)
			r.Get("/{id}", themes.Get)
			r.Put("/{id}", themes.Update)
			r.Delete("/{id}", themes.Delete)
		})

		r.Route("/formats", func(r chi.Router) {
			r.Get("/", formats.List)
			r.Post("/", formats.Create)
			r.Get("/{id}", formats.Get)
			r.Put("/{id}", formats.Update)
			r.Delete("/{id}", formats.Delete)
		})

		r.Post("/generate", badges.Generate)
		r.Get("/preview/{funcionarioID}", badges.Preview)
		r.Get("/qr/{funcionarioID}", badges.VerificationQR)
		r.Post("/lote", badges.Batch)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
