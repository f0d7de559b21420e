package store

import (
	"context"

	"github.com/google/uuid"
)

// ProfileStore is the typed client for the profiles collection.
type ProfileStore interface {
	// GetByUsername returns every row whose username matches the already
	// lowercased handle. The resolver decides what more than one row means.
	GetByUsername(ctx context.Context, normalized string) ([]Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	Update(ctx context.Context, profile *Profile) error
}

// LinkStore is the typed client for the links collection. Update and Delete
// are scoped by owner in the filter, so a foreign id behaves like a missing
// one.
type LinkStore interface {
	// ListByUser returns all of a user's links, archived included, ordered
	// by position ascending.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Link, error)
	// ListActiveByUser returns only is_archived = false rows, ordered by
	// position ascending. Public surfaces read through this and nothing else.
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]Link, error)
	// Insert persists a new link and fills in the store-assigned id and
	// creation time.
	Insert(ctx context.Context, link *Link) error
	Update(ctx context.Context, link *Link) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
