package routes

import (
	"slices"
	"strings"
)

// Crumb is one entry of a breadcrumb trail.
type Crumb struct {
	Title    string `json:"title"`
	Path     string `json:"path"`
	IsActive bool   `json:"isActive"`

	// Unresolved lists placeholders left in Path because no value was bound
	// for them. A non-empty list points at a caller or configuration defect.
	Unresolved []string `json:"unresolved,omitempty"`
}

// Trail builds the breadcrumb trail for a match, dispatching nested matches
// to ChildBreadcrumbs.
func (t *Table) Trail(m Match) []Crumb {
	if !m.Nested() {
		return t.Breadcrumbs(m.Key, m.Params)
	}

	branch, child, _ := SplitKey(m.Key)
	return t.ChildBreadcrumbs(branch, child, m.Params)
}

// Breadcrumbs returns the trail for the route with the specified key,
// outermost ancestor first. Hidden routes add no crumb but their ancestors
// are still walked. Only the crumb for key is active. An unknown key
// produces an empty trail. Composite keys are handed to ChildBreadcrumbs.
func (t *Table) Breadcrumbs(key string, params Params) []Crumb {
	if branch, child, ok := SplitKey(key); ok {
		return t.ChildBreadcrumbs(branch, child, params)
	}

	return t.walk(key, params, key)
}

// ChildBreadcrumbs returns the trail of the branch followed by a crumb for
// the nested child route. The child uses its own declared params to fill
// in its effective path. A hidden child adds no crumb and the branch's own
// crumb becomes the active one.
func (t *Table) ChildBreadcrumbs(branch string, child string, params Params) []Crumb {
	c, exists := t.children[CompositeKey(branch, child)]
	if !exists {
		return nil
	}

	trail := t.walk(branch, params, "")

	if c.HideFromBreadcrumb {
		if n := len(trail); n > 0 {
			trail[n-1].IsActive = true
		}
		return trail
	}

	return append(trail, newCrumb(c, params, true))
}

// walk follows the parent chain starting at key. A visited set stops the
// walk if the chain ever revisits a route.
func (t *Table) walk(key string, params Params, active string) []Crumb {
	var trail []Crumb

	visited := make(map[string]bool)
	for key != "" && !visited[key] {
		visited[key] = true

		i, exists := t.index[key]
		if !exists {
			break
		}
		r := t.entries[i].Base()

		if !r.HideFromBreadcrumb {
			trail = append(trail, newCrumb(r, params, key == active))
		}

		key = r.Parent
	}

	slices.Reverse(trail)
	return trail
}

func newCrumb(r Route, params Params, active bool) Crumb {
	path, unresolved := substitute(r.Path, r.Params, params)

	return Crumb{
		Title:      r.Label(),
		Path:       path,
		IsActive:   active,
		Unresolved: unresolved,
	}
}

// substitute replaces the declared placeholders in pattern with their bound
// values. It returns the names of the placeholders still left in the path.
func substitute(pattern string, declared []string, params Params) (string, []string) {
	parts := strings.Split(pattern, "/")

	var unresolved []string
	for i, part := range parts {
		name, ok := strings.CutPrefix(part, ":")
		if !ok {
			continue
		}

		if v, bound := params[name]; bound && v != "" && slices.Contains(declared, name) {
			parts[i] = v
			continue
		}

		unresolved = append(unresolved, name)
	}

	return strings.Join(parts, "/"), unresolved
}
