package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/hasselx/heypage/pkg/middleware"
)

// SetupAPIRoutes mounts the private dashboard surface. Passing a nil
// session middleware skips authentication, which tests rely on.
func SetupAPIRoutes(r *chi.Mux, handler *Handler, session *middleware.SessionMiddleware) {
	r.Use(middleware.CorrelationID)
	r.Get("/health", handler.HealthCheck)
	r.Route("/v1", func(r chi.Router) {
		if session != nil {
			r.Use(session.Authenticate)
		}
		r.Get("/profile", handler.GetProfile)
		r.Patch("/profile", handler.UpdateProfile)
		r.Get("/links", handler.ListLinks)
		r.Post("/links", handler.CreateLink)
		r.Patch("/links/{id}", handler.UpdateLink)
		r.Delete("/links/{id}", handler.DeleteLink)
		r.Post("/links/{id}/archive", handler.ArchiveLink)
		r.Post("/links/{id}/unarchive", handler.UnarchiveLink)
		r.Get("/preview", handler.Preview)
	})
}

// SetupPublicRoutes mounts the read-only pages. The username segment is the
// whole address; /about is the only suffix.
func SetupPublicRoutes(r *chi.Mux, handler *PublicHandler) {
	r.Use(middleware.CorrelationID)
	r.Get("/health", handler.HealthCheck)
	r.Get("/{username}", handler.ProfilePage)
	r.Get("/{username}/about", handler.AboutPage)
}
