package view

import (
	"net/url"

	"github.com/hasselx/heypage/pkg/store"
)

// Link is the rendered shape of a link: same data plus the hostname derived
// from the URL.
type Link struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Hostname string `json:"hostname"`
	Category string `json:"category"`
	Notes    string `json:"notes,omitempty"`
}

func newLink(l store.Link) Link {
	return Link{
		ID:       l.ID.String(),
		Title:    l.Title,
		URL:      l.URL,
		Hostname: hostname(l.URL),
		Category: l.Category,
		Notes:    l.Notes,
	}
}

func hostname(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// Section is one category's ordered links.
type Section struct {
	Category string `json:"category"`
	Links    []Link `json:"links"`
}

// Grouped partitions a position-ordered link sequence by category,
// preserving relative order within each category and remembering the order
// categories were first seen in.
type Grouped struct {
	byCategory map[string][]Link
	order      []string
}

func GroupLinks(links []store.Link) *Grouped {
	g := &Grouped{byCategory: make(map[string][]Link)}
	for _, l := range links {
		if _, seen := g.byCategory[l.Category]; !seen {
			g.order = append(g.order, l.Category)
		}
		g.byCategory[l.Category] = append(g.byCategory[l.Category], newLink(l))
	}
	return g
}

// Categories returns the labels in first-seen order.
func (g *Grouped) Categories() []string { return g.order }

// Links returns one category's links, nil when absent.
func (g *Grouped) Links(category string) []Link { return g.byCategory[category] }

// Has reports whether the category holds any links.
func (g *Grouped) Has(category string) bool { return len(g.byCategory[category]) > 0 }

// profileCategoryOrder is the fixed taxonomy of the flat profile page.
// Categories outside this list do not render there.
var profileCategoryOrder = []string{
	"Featured",
	"Big Projects",
	"Professional",
	"Development Stage",
	"Hobby",
	"Social Media",
	"Other",
}

// ProfileSections applies the stability-prioritized policy: fixed category
// order, empty categories omitted, labels outside the taxonomy dropped.
func ProfileSections(g *Grouped) []Section {
	var sections []Section
	for _, cat := range profileCategoryOrder {
		if !g.Has(cat) {
			continue
		}
		sections = append(sections, Section{Category: cat, Links: g.Links(cat)})
	}
	return sections
}

// AboutLayout is the completeness-prioritized policy of the about page:
// Featured becomes the hero block and every remaining category, known or
// not, follows in first-seen order.
type AboutLayout struct {
	Featured []Link    `json:"featured,omitempty"`
	Sections []Section `json:"sections"`
}

func AboutSections(g *Grouped) AboutLayout {
	layout := AboutLayout{Featured: g.Links("Featured")}
	for _, cat := range g.Categories() {
		if cat == "Featured" {
			continue
		}
		layout.Sections = append(layout.Sections, Section{Category: cat, Links: g.Links(cat)})
	}
	return layout
}
