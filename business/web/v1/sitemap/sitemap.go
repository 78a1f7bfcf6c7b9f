// Package sitemap provides the route table and the navigation menus of the
// dashboard.
package sitemap

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/inkwell/dashboard/foundation/routes"
	"gopkg.in/yaml.v3"
)

//go:embed sitemap.yaml
var document []byte

// Category is a navigation menu as declared in the file.
type Category struct {
	Name  string          `yaml:"name"`
	Title string          `yaml:"title"`
	Items []routes.NavRef `yaml:"items"`
}

// Menu is a navigation menu with its items resolved against the table.
type Menu struct {
	Name  string           `json:"name"`
	Title string           `json:"title"`
	Items []routes.NavItem `json:"items"`
}

// Sitemap holds the route table and the navigation menus built from it.
type Sitemap struct {
	Table *routes.Table
	menus []Menu
}

// Load builds the sitemap from the file at path, or from the embedded
// document when path is empty.
func Load(path string) (*Sitemap, error) {
	if path == "" {
		return Parse(document)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sitemap %s: %w", path, err)
	}

	return Parse(data)
}

// Parse builds the sitemap from a YAML document.
func Parse(data []byte) (*Sitemap, error) {
	table, err := routes.ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("building route table: %w", err)
	}

	var doc struct {
		Navigation []Category `yaml:"navigation"`
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing navigation: %w", err)
	}

	menus := make([]Menu, 0, len(doc.Navigation))
	seen := make(map[string]bool)

	for _, cat := range doc.Navigation {
		if seen[cat.Name] {
			return nil, fmt.Errorf("navigation: duplicate category %q", cat.Name)
		}
		seen[cat.Name] = true

		items, err := table.NavItems(cat.Items)
		if err != nil {
			return nil, fmt.Errorf("navigation: %s: %w", cat.Name, err)
		}

		menus = append(menus, Menu{Name: cat.Name, Title: cat.Title, Items: items})
	}

	return &Sitemap{Table: table, menus: menus}, nil
}

// Menus returns the navigation menus in declaration order.
func (s *Sitemap) Menus() []Menu {
	menus := make([]Menu, len(s.menus))
	copy(menus, s.menus)
	return menus
}

// Nav returns the items of the named navigation menu.
func (s *Sitemap) Nav(category string) ([]routes.NavItem, bool) {
	for _, m := range s.menus {
		if m.Name == category {
			return m.Items, true
		}
	}
	return nil, false
}
