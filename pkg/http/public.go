package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hasselx/heypage/pkg/cache"
	"github.com/hasselx/heypage/pkg/logging"
	"github.com/hasselx/heypage/pkg/service"
	"github.com/hasselx/heypage/pkg/store"
	"github.com/hasselx/heypage/pkg/view"
)

// PublicHandler serves the read-only pages at /{username} and
// /{username}/about. Both are computed from the resolver and the active
// link subset; archived rows never reach this handler.
type PublicHandler struct {
	profiles *service.ProfileService
	pages    cache.PageCacheInterface
	ttl      time.Duration
	logger   *logging.Logger
}

func NewPublicHandler(profiles *service.ProfileService, pages cache.PageCacheInterface, ttl time.Duration, logger *logging.Logger) *PublicHandler {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PublicHandler{profiles: profiles, pages: pages, ttl: ttl, logger: logger}
}

func (h *PublicHandler) ProfilePage(w http.ResponseWriter, r *http.Request) {
	username := service.NormalizeUsername(chi.URLParam(r, "username"))

	if cached, err := h.pages.GetProfilePage(r.Context(), username); err == nil && cached != nil {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	profile, links, ok := h.resolve(w, r, username, "profile")
	if !ok {
		return
	}

	page := view.NewProfilePage(profile, links)
	h.pages.SetProfilePage(r.Context(), username, &page, h.ttl)
	respondJSON(w, http.StatusOK, page)
}

func (h *PublicHandler) AboutPage(w http.ResponseWriter, r *http.Request) {
	username := service.NormalizeUsername(chi.URLParam(r, "username"))

	if cached, err := h.pages.GetAboutPage(r.Context(), username); err == nil && cached != nil {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	profile, links, ok := h.resolve(w, r, username, "about")
	if !ok {
		return
	}

	page := view.NewAboutPage(profile, links)
	h.pages.SetAboutPage(r.Context(), username, &page, h.ttl)
	respondJSON(w, http.StatusOK, page)
}

func (h *PublicHandler) resolve(w http.ResponseWriter, r *http.Request, username, pageName string) (*store.Profile, []store.Link, bool) {
	p, err := h.profiles.Resolve(r.Context(), username)
	if err != nil {
		var nferr *service.NotFoundError
		if errors.As(err, &nferr) {
			h.logger.LogPageView(r.Context(), pageName, username, false)
			http.Error(w, "not found", http.StatusNotFound)
			return nil, nil, false
		}
		// IntegrityError and store failures are internal, never a 404.
		h.logger.Error(r.Context(), "resolve failed", "username", username, "error", err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, nil, false
	}

	l, err := h.profiles.PublicLinks(r.Context(), p.ID)
	if err != nil {
		h.logger.Error(r.Context(), "link listing failed", "username", username, "error", err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, nil, false
	}

	h.logger.LogPageView(r.Context(), pageName, username, true)
	return p, l, true
}

func (h *PublicHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
