package view

// Selection tracks which category, if any, is expanded on the public
// profile page. At most one is open; toggling the open one closes it.
// It must be rebuilt against fresh grouping output whenever the link set
// changes, never carried over blindly.
type Selection struct {
	expanded string
	open     bool
}

// Toggle expands the category, or collapses it when it is already the
// expanded one.
func (s *Selection) Toggle(category string) {
	if s.open && s.expanded == category {
		s.expanded = ""
		s.open = false
		return
	}
	s.expanded = category
	s.open = true
}

// Expanded returns the open category, if any.
func (s *Selection) Expanded() (string, bool) {
	if !s.open {
		return "", false
	}
	return s.expanded, true
}

// Reconcile drops a stale expansion whose category no longer has any
// active links.
func (s *Selection) Reconcile(g *Grouped) {
	if s.open && !g.Has(s.expanded) {
		s.expanded = ""
		s.open = false
	}
}
