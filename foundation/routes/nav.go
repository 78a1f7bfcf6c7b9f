package routes

import (
	"fmt"
)

// NavRef selects a route for a navigation menu. Name overrides the route
// label. Expand adds the visible children of a branch after the branch
// itself.
type NavRef struct {
	Key    string `yaml:"key" json:"key"`
	Name   string `yaml:"name,omitempty" json:"name,omitempty"`
	Expand bool   `yaml:"expand,omitempty" json:"expand,omitempty"`
}

// NavItem is a navigation menu entry. Route is the path pattern; callers
// substitute the current params when rendering the link.
type NavItem struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Route string `json:"route"`
	Icon  string `json:"icon,omitempty"`
}

// Href returns the concrete link of the item for the specified params.
func (ni NavItem) Href(params Params) string {
	path, _ := substitute(ni.Route, placeholders(ni.Route), params)
	return path
}

// NavItems builds the menu entries for the set of references.
func (t *Table) NavItems(refs []NavRef) ([]NavItem, error) {
	items := make([]NavItem, 0, len(refs))

	for _, ref := range refs {
		r, exists := t.Lookup(ref.Key)
		if !exists {
			return nil, fmt.Errorf("navigation: route %q does not exist", ref.Key)
		}

		name := ref.Name
		if name == "" {
			name = r.Label()
		}
		items = append(items, NavItem{Key: r.Key, Name: name, Route: r.Path, Icon: r.Icon})

		if !ref.Expand {
			continue
		}

		for _, c := range t.Children(ref.Key) {
			if c.HideFromBreadcrumb {
				continue
			}
			items = append(items, NavItem{Key: c.Key, Name: c.Label(), Route: c.Path, Icon: c.Icon})
		}
	}

	return items, nil
}
