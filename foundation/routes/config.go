package routes

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Definition is the file representation of a route. A definition with
// children becomes a Branch, otherwise a Leaf.
type Definition struct {
	Key                string       `yaml:"key"`
	Path               string       `yaml:"path"`
	Title              string       `yaml:"title"`
	BreadcrumbTitle    string       `yaml:"breadcrumb,omitempty"`
	Icon               string       `yaml:"icon,omitempty"`
	View               string       `yaml:"view,omitempty"`
	Parent             string       `yaml:"parent,omitempty"`
	Params             []string     `yaml:"params,omitempty"`
	HideFromBreadcrumb bool         `yaml:"hide_from_breadcrumb,omitempty"`
	Children           []Definition `yaml:"children,omitempty"`
}

// Build converts the definitions into entries and constructs the table.
func Build(defs []Definition) (*Table, error) {
	entries := make([]Entry, len(defs))

	for i, def := range defs {
		r := def.route()

		if len(def.Children) == 0 {
			entries[i] = Leaf{Route: r}
			continue
		}

		children := make([]Route, len(def.Children))
		for j, c := range def.Children {
			if len(c.Children) > 0 {
				return nil, fmt.Errorf("route %s: child %s: only one level of nesting is supported", def.Key, c.Key)
			}
			cr := c.route()
			if c.View == "" {
				cr.View = CompositeKey(def.Key, c.Key)
			}
			children[j] = cr
		}
		entries[i] = Branch{Route: r, Children: children}
	}

	return New(entries...)
}

// ParseYAML decodes a document with a top-level "routes" list and builds
// the table. Other top-level keys are ignored.
func ParseYAML(data []byte) (*Table, error) {
	var doc struct {
		Routes []Definition `yaml:"routes"`
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing route table: %w", err)
	}

	return Build(doc.Routes)
}

// route applies defaults: the view binding defaults to the key.
func (def Definition) route() Route {
	view := def.View
	if view == "" {
		view = def.Key
	}

	return Route{
		Key:                def.Key,
		Path:               def.Path,
		Title:              def.Title,
		BreadcrumbTitle:    def.BreadcrumbTitle,
		Icon:               def.Icon,
		View:               view,
		Parent:             def.Parent,
		Params:             def.Params,
		HideFromBreadcrumb: def.HideFromBreadcrumb,
	}
}
