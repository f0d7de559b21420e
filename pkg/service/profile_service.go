package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/hasselx/heypage/pkg/logging"
	"github.com/hasselx/heypage/pkg/store"
)

// ProfileService resolves public handles and edits the owner's profile.
type ProfileService struct {
	profiles store.ProfileStore
	links    store.LinkStore
	logger   *logging.Logger
}

func NewProfileService(profiles store.ProfileStore, links store.LinkStore, logger *logging.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, links: links, logger: logger}
}

// NormalizeUsername lowercases a handle for lookup. Storage keeps the
// original casing.
func NormalizeUsername(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// Resolve maps a public handle to its profile. Zero rows is a miss; more
// than one row means the uniqueness invariant on usernames is broken and is
// reported as such rather than picking a winner.
func (s *ProfileService) Resolve(ctx context.Context, usernameInput string) (*store.Profile, error) {
	normalized := NormalizeUsername(usernameInput)
	rows, err := s.profiles.GetByUsername(ctx, normalized)
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, &NotFoundError{Kind: "profile", Key: normalized}
	case 1:
		return &rows[0], nil
	default:
		s.logger.Error(ctx, "duplicate username rows", "username", normalized, "count", len(rows))
		return nil, &IntegrityError{Detail: "multiple profiles for username " + normalized}
	}
}

// PublicLinks is the only read path public surfaces use: active rows only,
// position ascending. Archived links never leave this boundary, not even
// for the owner previewing their own page.
func (s *ProfileService) PublicLinks(ctx context.Context, userID uuid.UUID) ([]store.Link, error) {
	return s.links.ListActiveByUser(ctx, userID)
}

// Get loads the owner's profile by id.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*store.Profile, error) {
	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Kind: "profile", Key: userID.String()}
		}
		return nil, err
	}
	return p, nil
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

// UpdateProfile edits display attributes. The avatar file itself lives in
// external upload storage; only the resulting URL is recorded here.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*store.Profile, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		p.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		p.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		if *req.AvatarURL != "" {
			if err := validateLinkURL(*req.AvatarURL); err != nil {
				return nil, &ValidationError{Field: "avatar_url", Reason: "must be an absolute URL"}
			}
		}
		p.AvatarURL = *req.AvatarURL
	}

	if err := s.profiles.Update(ctx, p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Kind: "profile", Key: userID.String()}
		}
		return nil, err
	}
	s.logger.Info(ctx, "profile updated", "user_id", userID.String())
	return p, nil
}
