package store

import (
	"time"

	"github.com/google/uuid"
)

// Profile is a row in the profiles collection. Usernames are stored
// case-preserving and compared case-insensitively.
type Profile struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Username    string    `json:"username" db:"username"`
	DisplayName string    `json:"display_name" db:"display_name"`
	Bio         string    `json:"bio" db:"bio"`
	AvatarURL   string    `json:"avatar_url" db:"avatar_url"`
}

// Link is a row in the links collection. Position is an ordering key, not
// an index: deletes leave gaps and nothing renumbers them.
type Link struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	Title      string    `json:"title" db:"title"`
	URL        string    `json:"url" db:"url"`
	Category   string    `json:"category" db:"category"`
	Notes      string    `json:"notes,omitempty" db:"notes"`
	IsArchived bool      `json:"is_archived" db:"is_archived"`
	Position   int       `json:"position" db:"position"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Categories is the closed set the management form offers. Reads are
// permissive: rows can carry any category string.
var Categories = []string{
	"Featured",
	"Big Projects",
	"Hobby",
	"Development Stage",
	"Professional",
	"Social Media",
	"Other",
}

func KnownCategory(c string) bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}
