package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hasselx/heypage/pkg/cache"
	"github.com/hasselx/heypage/pkg/logging"
	"github.com/hasselx/heypage/pkg/middleware"
	"github.com/hasselx/heypage/pkg/service"
	"github.com/hasselx/heypage/pkg/store"
	"github.com/hasselx/heypage/pkg/view"
)

// Handler serves the private dashboard API. Each mutating request loads the
// owner's link set, runs one two-phase mutation through it and drops the
// owner's cached public pages.
type Handler struct {
	profiles *service.ProfileService
	links    store.LinkStore
	pages    cache.PageCacheInterface
	logger   *logging.Logger
}

func NewHandler(profiles *service.ProfileService, links store.LinkStore, pages cache.PageCacheInterface, logger *logging.Logger) *Handler {
	return &Handler{profiles: profiles, links: links, pages: pages, logger: logger}
}

func (h *Handler) manager(r *http.Request) (*service.LinkManager, error) {
	ownerID := middleware.GetOwnerIDFromContext(r.Context())
	if ownerID == uuid.Nil {
		return nil, errors.New("owner not in context")
	}
	return service.LoadLinkManager(r.Context(), h.links, h.logger, ownerID)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerIDFromContext(r.Context())
	profile, err := h.profiles.Get(r.Context(), ownerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	ownerID := middleware.GetOwnerIDFromContext(r.Context())
	profile, err := h.profiles.UpdateProfile(r.Context(), ownerID, &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.invalidatePages(r, profile.Username)
	respondJSON(w, http.StatusOK, profile)
}

func (h *Handler) ListLinks(w http.ResponseWriter, r *http.Request) {
	m, err := h.manager(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"links":    m.Links(),
		"active":   m.Active(),
		"archived": m.Archived(),
	})
}

func (h *Handler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var req service.CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	m, err := h.manager(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	link, err := m.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.invalidateOwnerPages(r)
	respondJSON(w, http.StatusCreated, link)
}

func (h *Handler) UpdateLink(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid link id", http.StatusBadRequest)
		return
	}

	var req service.UpdateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	m, err := h.manager(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	link, err := m.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.invalidateOwnerPages(r)
	respondJSON(w, http.StatusOK, link)
}

func (h *Handler) ArchiveLink(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, true)
}

func (h *Handler) UnarchiveLink(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, false)
}

func (h *Handler) setArchived(w http.ResponseWriter, r *http.Request, archived bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid link id", http.StatusBadRequest)
		return
	}

	m, err := h.manager(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var link *store.Link
	if archived {
		link, err = m.Archive(r.Context(), id)
	} else {
		link, err = m.Unarchive(r.Context(), id)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.invalidateOwnerPages(r)
	respondJSON(w, http.StatusOK, link)
}

func (h *Handler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid link id", http.StatusBadRequest)
		return
	}

	m, err := h.manager(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := m.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.invalidateOwnerPages(r)
	w.WriteHeader(http.StatusNoContent)
}

// Preview renders the owner's public page through the same code path the
// public server uses, archived links excluded.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerIDFromContext(r.Context())
	profile, err := h.profiles.Get(r.Context(), ownerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	links, err := h.profiles.PublicLinks(r.Context(), ownerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	page := view.NewProfilePage(profile, links)
	respondJSON(w, http.StatusOK, page)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) invalidateOwnerPages(r *http.Request) {
	ownerID := middleware.GetOwnerIDFromContext(r.Context())
	profile, err := h.profiles.Get(r.Context(), ownerID)
	if err != nil {
		h.logger.Warn(r.Context(), "page cache invalidation skipped", "error", err.Error())
		return
	}
	h.invalidatePages(r, profile.Username)
}

func (h *Handler) invalidatePages(r *http.Request, username string) {
	normalized := service.NormalizeUsername(username)
	if err := h.pages.Invalidate(r.Context(), normalized); err != nil {
		// Stale pages age out with the TTL, so a failed invalidation is
		// logged and the mutation still succeeds.
		h.logger.Warn(r.Context(), "page cache invalidation failed", "username", normalized, "error", err.Error())
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	var nferr *service.NotFoundError
	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	case errors.As(err, &nferr):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		h.logger.Error(r.Context(), "request failed", "error", err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
