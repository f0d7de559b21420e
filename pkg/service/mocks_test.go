package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/hasselx/heypage/pkg/store"
)

// Mock implementations for testing

type mockLinkStore struct {
	links    map[uuid.UUID]*store.Link
	failWith error
	calls    int
}

func newMockLinkStore() *mockLinkStore {
	return &mockLinkStore{links: make(map[uuid.UUID]*store.Link)}
}

func (m *mockLinkStore) list(userID uuid.UUID, activeOnly bool) []store.Link {
	var out []store.Link
	for _, l := range m.links {
		if l.UserID != userID {
			continue
		}
		if activeOnly && l.IsArchived {
			continue
		}
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func (m *mockLinkStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]store.Link, error) {
	m.calls++
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.list(userID, false), nil
}

func (m *mockLinkStore) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]store.Link, error) {
	m.calls++
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.list(userID, true), nil
}

func (m *mockLinkStore) Insert(ctx context.Context, link *store.Link) error {
	m.calls++
	if m.failWith != nil {
		return m.failWith
	}
	link.ID = uuid.New()
	link.CreatedAt = time.Now()
	cp := *link
	m.links[link.ID] = &cp
	return nil
}

func (m *mockLinkStore) Update(ctx context.Context, link *store.Link) error {
	m.calls++
	if m.failWith != nil {
		return m.failWith
	}
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
	m.calls++
	if m.failWith != nil {
		return m.failWith
	}
	existing, ok := m.links[id]
	if !ok || existing.UserID != userID {
		return store.ErrNotFound
	}
	delete(m.links, id)
	return nil
}

type mockProfileStore struct {
	profiles []store.Profile
	failWith error
}

func (m *mockProfileStore) GetByUsername(ctx context.Context, normalized string) ([]store.Profile, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []store.Profile
	for _, p := range m.profiles {
		if NormalizeUsername(p.Username) == normalized {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*store.Profile, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for i := range m.profiles {
		if m.profiles[i].ID == id {
			cp := m.profiles[i]
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *mockProfileStore) Update(ctx context.Context, profile *store.Profile) error {
	if m.failWith != nil {
		return m.failWith
	}
	for i := range m.profiles {
		if m.profiles[i].ID == profile.ID {
			m.profiles[i] = *profile
			return nil
		}
	}
	return store.ErrNotFound
}
