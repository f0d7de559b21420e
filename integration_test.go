package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpHandlers "github.com/hasselx/heypage/pkg/http"
	"github.com/hasselx/heypage/pkg/logging"
	"github.com/hasselx/heypage/pkg/middleware"
	"github.com/hasselx/heypage/pkg/service"
	"github.com/hasselx/heypage/pkg/store"
	"github.com/hasselx/heypage/pkg/view"
)

// Mock implementations for testing

type mockLinkStore struct {
	links map[uuid.UUID]*store.Link
}

func newMockLinkStore() *mockLinkStore {
	return &mockLinkStore{links: make(map[uuid.UUID]*store.Link)}
}

func (m *mockLinkStore) list(userID uuid.UUID, activeOnly bool) []store.Link {
	var out []store.Link
	for _, l := range m.links {
		if l.UserID != userID || (activeOnly && l.IsArchived) {
			continue
		}
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func (m *mockLinkStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]store.Link, error) {
	return m.list(userID, false), nil
}

func (m *mockLinkStore) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]store.Link, error) {
	return m.list(userID, true), nil
}

func (m *mockLinkStore) Insert(ctx context.Context, link *store.Link) error {
	link.ID = uuid.New()
	link.CreatedAt = time.Now()
	cp := *link
	m.links[link.ID] = &cp
	return nil
}

func (m *mockLinkStore) Update(ctx context.Context, link *store.Link) error {
	existing, ok := m.links[link.ID]
	if !ok || existing.UserID != link.UserID {
		return store.ErrNotFound
	}
	cp := *link
	cp.Position = existing.Position
	m.links[link.ID] = &cp
	return nil
}

func (m *mockLinkStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	existing, ok := m.links[id]
	if !ok || existing.UserID != userID {
		return store.ErrNotFound
	}
	delete(m.links, id)
	return nil
}

type mockProfileStore struct {
	profiles []store.Profile
}

func (m *mockProfileStore) GetByUsername(ctx context.Context, normalized string) ([]store.Profile, error) {
	var out []store.Profile
	for _, p := range m.profiles {
		if service.NormalizeUsername(p.Username) == normalized {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*store.Profile, error) {
	for i := range m.profiles {
		if m.profiles[i].ID == id {
			cp := m.profiles[i]
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *mockProfileStore) Update(ctx context.Context, profile *store.Profile) error {
	for i := range m.profiles {
		if m.profiles[i].ID == profile.ID {
			m.profiles[i] = *profile
			return nil
		}
	}
	return store.ErrNotFound
}

type mockPageCache struct{}

func (m *mockPageCache) GetProfilePage(ctx context.Context, username string) (*view.ProfilePage, error) {
	return nil, nil // Always cache miss for simplicity
}

func (m *mockPageCache) SetProfilePage(ctx context.Context, username string, page *view.ProfilePage, ttl time.Duration) error {
	return nil
}

func (m *mockPageCache) GetAboutPage(ctx context.Context, username string) (*view.AboutPage, error) {
	return nil, nil
}

func (m *mockPageCache) SetAboutPage(ctx context.Context, username string, page *view.AboutPage, ttl time.Duration) error {
	return nil
}

func (m *mockPageCache) Invalidate(ctx context.Context, username string) error {
	return nil
}

var sessionSecret = []byte("integration-secret")

func signSession(t *testing.T, ownerID uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": ownerID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(sessionSecret)
	require.NoError(t, err)
	return signed
}

func TestDashboardToPublicPageFlow(t *testing.T) {
	ownerID := uuid.New()
	linkStore := newMockLinkStore()
	profileStore := &mockProfileStore{profiles: []store.Profile{
		{ID: ownerID, Username: "Alice", DisplayName: "Alice", Bio: "hi"},
	}}
	logger := logging.NewLogger(logging.LevelError)
	profileService := service.NewProfileService(profileStore, linkStore, logger)

	session := middleware.NewSessionMiddleware(middleware.SessionConfig{Secret: sessionSecret})
	handler := httpHandlers.NewHandler(profileService, linkStore, &mockPageCache{}, logger)
	api := chi.NewRouter()
	httpHandlers.SetupAPIRoutes(api, handler, session)

	publicHandler := httpHandlers.NewPublicHandler(profileService, &mockPageCache{}, time.Minute, logger)
	public := chi.NewRouter()
	httpHandlers.SetupPublicRoutes(public, publicHandler)

	bearer := "Bearer " + signSession(t, ownerID)

	apiCall := func(method, path string, body interface{}, authorized bool) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		if authorized {
			req.Header.Set("Authorization", bearer)
		}
		w := httptest.NewRecorder()
		api.ServeHTTP(w, req)
		return w
	}

	// Unauthenticated requests never reach a handler
	w := apiCall("GET", "/v1/links", nil, false)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Build a small link set
	created := make([]store.Link, 0, 3)
	for _, tc := range []struct{ title, url, category string }{
		{"Side project", "https://other.example.com", "Other"},
		{"Portfolio", "https://alice.dev", "Featured"},
		{"Mastodon", "https://social.example.com/@alice", "Social Media"},
	} {
		w := apiCall("POST", "/v1/links", map[string]string{
			"title": tc.title, "url": tc.url, "category": tc.category,
		}, true)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var link store.Link
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &link))
		created = append(created, link)
	}
	assert.Equal(t, 2, created[2].Position)

	// Archive the social link
	w = apiCall("POST", "/v1/links/"+created[2].ID.String()+"/archive", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	// Public page: case-insensitive handle, archived hidden, fixed order
	req := httptest.NewRequest("GET", "/aLiCe", nil)
	rec := httptest.NewRecorder()
	public.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var page view.ProfilePage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 2, page.LinkCount)
	require.Len(t, page.Sections, 2)
	assert.Equal(t, "Featured", page.Sections[0].Category)
	assert.Equal(t, "Other", page.Sections[1].Category)
	assert.Equal(t, "alice.dev", page.Sections[0].Links[0].Hostname)

	// About variant keeps encounter order under the hero
	req = httptest.NewRequest("GET", "/alice/about", nil)
	rec = httptest.NewRecorder()
	public.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var about view.AboutPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &about))
	require.Len(t, about.Featured, 1)
	assert.Equal(t, "Portfolio", about.Featured[0].Title)
	require.Len(t, about.Sections, 1)
	assert.Equal(t, "Other", about.Sections[0].Category)

	// Unarchive brings the link back to the public page
	w = apiCall("POST", "/v1/links/"+created[2].ID.String()+"/unarchive", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	rec = httptest.NewRecorder()
	public.ServeHTTP(rec, httptest.NewRequest("GET", "/alice", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 3, page.LinkCount)

	// Unknown handles are a plain 404
	rec = httptest.NewRecorder()
	public.ServeHTTP(rec, httptest.NewRequest("GET", "/nobody", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
