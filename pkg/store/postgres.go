package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresProfileStore struct {
	pool *pgxpool.Pool
}

func NewPostgresProfileStore(pool *pgxpool.Pool) *PostgresProfileStore {
	return &PostgresProfileStore{pool: pool}
}

func (s *PostgresProfileStore) GetByUsername(ctx context.Context, normalized string) ([]Profile, error) {
	query := `SELECT id, username, display_name, bio, avatar_url FROM profiles WHERE lower(username) = $1`
	rows, err := s.pool.Query(ctx, query, normalized)
	if err != nil {
		return nil, wrap("profiles.select", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.Username, &p.DisplayName, &p.Bio, &p.AvatarURL); err != nil {
			return nil, wrap("profiles.scan", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("profiles.select", err)
	}
	return profiles, nil
}

func (s *PostgresProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	query := `SELECT id, username, display_name, bio, avatar_url FROM profiles WHERE id = $1`
	row := s.pool.QueryRow(ctx, query, id)
	var p Profile
	err := row.Scan(&p.ID, &p.Username, &p.DisplayName, &p.Bio, &p.AvatarURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, wrap("profiles.select", err)
	}
	return &p, nil
}

func (s *PostgresProfileStore) Update(ctx context.Context, profile *Profile) error {
	query := `UPDATE profiles SET display_name = $2, bio = $3, avatar_url = $4 WHERE id = $1`
	tag, err := s.pool.Exec(ctx, query, profile.ID, profile.DisplayName, profile.Bio, profile.AvatarURL)
	if err != nil {
		return wrap("profiles.update", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type PostgresLinkStore struct {
	pool *pgxpool.Pool
}

func NewPostgresLinkStore(pool *pgxpool.Pool) *PostgresLinkStore {
	return &PostgresLinkStore{pool: pool}
}

const linkColumns = `id, user_id, title, url, category, notes, is_archived, position, created_at`

func (s *PostgresLinkStore) listQuery(ctx context.Context, query string, userID uuid.UUID) ([]Link, error) {
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, wrap("links.select", err)
	}
	defer rows.Close()

	var links []Link
	for rows.Next() {
		var l Link
		if err := rows.Scan(&l.ID, &l.UserID, &l.Title, &l.URL, &l.Category, &l.Notes, &l.IsArchived, &l.Position, &l.CreatedAt); err != nil {
			return nil, wrap("links.scan", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("links.select", err)
	}
	return links, nil
}

func (s *PostgresLinkStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE user_id = $1 ORDER BY position ASC`
	return s.listQuery(ctx, query, userID)
}

func (s *PostgresLinkStore) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE user_id = $1 AND is_archived = false ORDER BY position ASC`
	return s.listQuery(ctx, query, userID)
}

func (s *PostgresLinkStore) Insert(ctx context.Context, link *Link) error {
	query := `INSERT INTO links (user_id, title, url, category, notes, is_archived, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`
	row := s.pool.QueryRow(ctx, query, link.UserID, link.Title, link.URL, link.Category, link.Notes, link.IsArchived, link.Position)
	if err := row.Scan(&link.ID, &link.CreatedAt); err != nil {
		return wrap("links.insert", err)
	}
	return nil
}

// Update rewrites the mutable fields of a link. Position is deliberately not
// in the SET list: edits and archive toggles never move a link.
func (s *PostgresLinkStore) Update(ctx context.Context, link *Link) error {
	query := `UPDATE links SET title = $3, url = $4, category = $5, notes = $6, is_archived = $7
		WHERE id = $1 AND user_id = $2`
	tag, err := s.pool.Exec(ctx, query, link.ID, link.UserID, link.Title, link.URL, link.Category, link.Notes, link.IsArchived)
	if err != nil {
		return wrap("links.update", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresLinkStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM links WHERE id = $1 AND user_id = $2`
	tag, err := s.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return wrap("links.delete", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
