package view

import "github.com/hasselx/heypage/pkg/store"

// ProfileHeader is the shared top block of both public pages.
type ProfileHeader struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

func newHeader(p *store.Profile) ProfileHeader {
	return ProfileHeader{
		Username:    p.Username,
		DisplayName: p.DisplayName,
		Bio:         p.Bio,
		AvatarURL:   p.AvatarURL,
	}
}

// ProfilePage is the flat public page at /{username}.
type ProfilePage struct {
	Profile   ProfileHeader `json:"profile"`
	Sections  []Section     `json:"sections"`
	LinkCount int           `json:"link_count"`
}

// AboutPage is the /{username}/about variant.
type AboutPage struct {
	Profile   ProfileHeader `json:"profile"`
	Featured  []Link        `json:"featured,omitempty"`
	Sections  []Section     `json:"sections"`
	LinkCount int           `json:"link_count"`
}

// NewProfilePage assembles the public profile view from a profile and its
// active, position-ordered links.
func NewProfilePage(p *store.Profile, links []store.Link) ProfilePage {
	return ProfilePage{
		Profile:   newHeader(p),
		Sections:  ProfileSections(GroupLinks(links)),
		LinkCount: len(links),
	}
}

// NewAboutPage assembles the about view from the same inputs.
func NewAboutPage(p *store.Profile, links []store.Link) AboutPage {
	layout := AboutSections(GroupLinks(links))
	return AboutPage{
		Profile:   newHeader(p),
		Featured:  layout.Featured,
		Sections:  layout.Sections,
		LinkCount: len(links),
	}
}
