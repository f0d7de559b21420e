package service

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/hasselx/heypage/pkg/logging"
	"github.com/hasselx/heypage/pkg/store"
)

// LinkManager owns one user's link set for the duration of an editing
// session. Every mutation is two-phase: the store call goes out first and
// the local set is only touched after the store acknowledged. A failed call
// leaves the local set exactly as it was; nothing retries.
type LinkManager struct {
	store  store.LinkStore
	logger *logging.Logger
	userID uuid.UUID
	links  []store.Link
}

// LoadLinkManager reads the user's full link set, archived included, and
// wraps it in a manager.
func LoadLinkManager(ctx context.Context, st store.LinkStore, logger *logging.Logger, userID uuid.UUID) (*LinkManager, error) {
	links, err := st.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return NewLinkManager(st, logger, userID, links), nil
}

// NewLinkManager wraps an already loaded link set.
func NewLinkManager(st store.LinkStore, logger *logging.Logger, userID uuid.UUID, links []store.Link) *LinkManager {
	return &LinkManager{store: st, logger: logger, userID: userID, links: links}
}

type CreateLinkRequest struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
	Notes    string `json:"notes"`
}

type UpdateLinkRequest struct {
	Title      *string `json:"title,omitempty"`
	URL        *string `json:"url,omitempty"`
	Category   *string `json:"category,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	IsArchived *bool   `json:"is_archived,omitempty"`
}

// Create validates the fields, assigns the next position and inserts.
// The position is the current count of the user's links, active and
// archived alike; deletes leave gaps that are never compacted, so counts
// and positions drift apart over time and that is fine.
func (m *LinkManager) Create(ctx context.Context, req *CreateLinkRequest) (*store.Link, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if err := validateLinkURL(req.URL); err != nil {
		return nil, err
	}
	category := req.Category
	if category == "" {
		category = "Featured"
	}
	if !store.KnownCategory(category) {
		return nil, &ValidationError{Field: "category", Reason: "unknown category"}
	}

	link := store.Link{
		UserID:   m.userID,
		Title:    req.Title,
		URL:      req.URL,
		Category: category,
		Notes:    req.Notes,
		Position: len(m.links),
	}
	if err := m.store.Insert(ctx, &link); err != nil {
		return nil, err
	}
	m.links = append(m.links, link)
	m.logger.LogLinkOperation(ctx, "create", link.ID.String(), true)
	return &link, nil
}

// Update edits a link in place. Position is never touched.
func (m *LinkManager) Update(ctx context.Context, id uuid.UUID, req *UpdateLinkRequest) (*store.Link, error) {
	i := m.index(id)
	if i < 0 {
		return nil, &NotFoundError{Kind: "link", Key: id.String()}
	}

	merged := m.links[i]
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
		}
		merged.Title = *req.Title
	}
	if req.URL != nil {
		if err := validateLinkURL(*req.URL); err != nil {
			return nil, err
		}
		merged.URL = *req.URL
	}
	if req.Category != nil {
		if !store.KnownCategory(*req.Category) {
			return nil, &ValidationError{Field: "category", Reason: "unknown category"}
		}
		merged.Category = *req.Category
	}
	if req.Notes != nil {
		merged.Notes = *req.Notes
	}
	if req.IsArchived != nil {
		merged.IsArchived = *req.IsArchived
	}

	if err := m.store.Update(ctx, &merged); err != nil {
		return nil, m.mapStoreErr(id, err)
	}
	m.links[i] = merged
	m.logger.LogLinkOperation(ctx, "update", id.String(), true)
	return &merged, nil
}

// Archive hides a link from public views. Archiving an archived link is a
// no-op.
func (m *LinkManager) Archive(ctx context.Context, id uuid.UUID) (*store.Link, error) {
	return m.setArchived(ctx, id, true, "archive")
}

// Unarchive restores an archived link. Unarchiving an active link is a
// no-op.
func (m *LinkManager) Unarchive(ctx context.Context, id uuid.UUID) (*store.Link, error) {
	return m.setArchived(ctx, id, false, "unarchive")
}

func (m *LinkManager) setArchived(ctx context.Context, id uuid.UUID, archived bool, op string) (*store.Link, error) {
	i := m.index(id)
	if i < 0 {
		return nil, &NotFoundError{Kind: "link", Key: id.String()}
	}
	if m.links[i].IsArchived == archived {
		return &m.links[i], nil
	}

	merged := m.links[i]
	merged.IsArchived = archived
	if err := m.store.Update(ctx, &merged); err != nil {
		return nil, m.mapStoreErr(id, err)
	}
	m.links[i] = merged
	m.logger.LogLinkOperation(ctx, op, id.String(), true)
	return &merged, nil
}

// Delete removes a link permanently. Sibling positions keep their values.
func (m *LinkManager) Delete(ctx context.Context, id uuid.UUID) error {
	i := m.index(id)
	if i < 0 {
		return &NotFoundError{Kind: "link", Key: id.String()}
	}
	if err := m.store.Delete(ctx, id, m.userID); err != nil {
		return m.mapStoreErr(id, err)
	}
	m.links = append(m.links[:i], m.links[i+1:]...)
	m.logger.LogLinkOperation(ctx, "delete", id.String(), true)
	return nil
}

// Links returns the local visible set, position order preserved.
func (m *LinkManager) Links() []store.Link { return m.links }

// Active returns the publicly visible partition.
func (m *LinkManager) Active() []store.Link { return m.partition(false) }

// Archived returns the hidden partition.
func (m *LinkManager) Archived() []store.Link { return m.partition(true) }

func (m *LinkManager) partition(archived bool) []store.Link {
	var out []store.Link
	for _, l := range m.links {
		if l.IsArchived == archived {
			out = append(out, l)
		}
	}
	return out
}

func (m *LinkManager) index(id uuid.UUID) int {
	for i, l := range m.links {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (m *LinkManager) mapStoreErr(id uuid.UUID, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Kind: "link", Key: id.String()}
	}
	return err
}

func validateLinkURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return &ValidationError{Field: "url", Reason: "must not be empty"}
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return &ValidationError{Field: "url", Reason: "must be an absolute URL"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{Field: "url", Reason: "only http and https are allowed"}
	}
	return nil
}
