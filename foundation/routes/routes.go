// Package routes provides a declarative route table that resolves request
// locations to configured views and builds breadcrumb trails from the
// configured route ancestry.
package routes

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/multierr"
)

// KeySeparator joins a branch key and a child key into a composite key.
const KeySeparator = "_"

// Set of errors reported when a route table is constructed.
var (
	ErrInvalidKey      = errors.New("invalid route key")
	ErrDuplicateKey    = errors.New("duplicate route key")
	ErrInvalidPath     = errors.New("invalid route path")
	ErrDuplicatePath   = errors.New("duplicate route path")
	ErrDanglingParent  = errors.New("parent route does not exist")
	ErrCycle           = errors.New("route ancestry contains a cycle")
	ErrUndeclaredParam = errors.New("param is not a placeholder in the route path")
)

// Params maps placeholder names to the values bound during a match.
type Params map[string]string

// Route represents one navigable location.
type Route struct {
	Key                string
	Path               string
	Title              string
	BreadcrumbTitle    string
	Icon               string
	View               string
	Parent             string
	Params             []string
	HideFromBreadcrumb bool
}

// Label returns the title displayed in a breadcrumb trail.
func (r Route) Label() string {
	if r.BreadcrumbTitle != "" {
		return r.BreadcrumbTitle
	}
	return r.Title
}

// Entry is a top-level member of a route table. It is either a Leaf or a
// Branch.
type Entry interface {
	Base() Route
	isEntry()
}

// Leaf is a route without children.
type Leaf struct {
	Route
}

// Base returns the route the leaf represents.
func (l Leaf) Base() Route { return l.Route }

func (Leaf) isEntry() {}

// Branch is a route with nested children. A child's Key is its short name
// and its Path is relative to the branch path.
type Branch struct {
	Route
	Children []Route
}

// Base returns the route the branch represents.
func (b Branch) Base() Route { return b.Route }

func (Branch) isEntry() {}

// =============================================================================

// Table is an immutable, ordered set of routes. A Table is safe for
// concurrent use once constructed.
type Table struct {
	entries  []Entry
	index    map[string]int
	children map[string]Route
	order    map[string][]string
}

// New validates the entries and constructs a route table. Declaration order
// is significant: the first entry that matches a location wins. Every
// defect found is reported in the returned error.
func New(entries ...Entry) (*Table, error) {
	t := Table{
		entries:  slices.Clone(entries),
		index:    make(map[string]int, len(entries)),
		children: make(map[string]Route),
		order:    make(map[string][]string),
	}

	var err error
	for i, e := range entries {
		r := e.Base()

		switch {
		case r.Key == "" || strings.Contains(r.Key, KeySeparator):
			err = multierr.Append(err, fmt.Errorf("%w: %q", ErrInvalidKey, r.Key))
			continue
		case !strings.HasPrefix(r.Path, "/"):
			err = multierr.Append(err, fmt.Errorf("%w: %s: %q must start with /", ErrInvalidPath, r.Key, r.Path))
		}

		if _, exists := t.index[r.Key]; exists {
			err = multierr.Append(err, fmt.Errorf("%w: %q", ErrDuplicateKey, r.Key))
			continue
		}
		t.index[r.Key] = i

		b, ok := e.(Branch)
		if !ok {
			continue
		}

		for _, c := range b.Children {
			if c.Key == "" || strings.Contains(c.Key, KeySeparator) {
				err = multierr.Append(err, fmt.Errorf("%w: %s: child %q", ErrInvalidKey, r.Key, c.Key))
				continue
			}

			key := CompositeKey(r.Key, c.Key)
			if _, exists := t.children[key]; exists {
				err = multierr.Append(err, fmt.Errorf("%w: %q", ErrDuplicateKey, key))
				continue
			}

			if c.Parent != "" && c.Parent != r.Key {
				err = multierr.Append(err, fmt.Errorf("%w: %s: child parent must be %q, got %q", ErrDanglingParent, key, r.Key, c.Parent))
			}

			c.Key = key
			c.Path = joinPath(r.Path, c.Path)
			c.Parent = r.Key
			t.children[key] = c
			t.order[r.Key] = append(t.order[r.Key], key)
		}
	}

	err = multierr.Append(err, t.validatePaths())
	err = multierr.Append(err, t.validateParents())
	err = multierr.Append(err, t.validateParams())

	if err != nil {
		return nil, err
	}

	return &t, nil
}

// Entries returns the top-level entries in declaration order.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, len(t.entries))
	copy(entries, t.entries)
	return entries
}

// Lookup returns the route for the specified key. Composite keys return the
// child route with its effective path.
func (t *Table) Lookup(key string) (Route, bool) {
	if i, exists := t.index[key]; exists {
		return t.entries[i].Base(), true
	}

	r, exists := t.children[key]
	return r, exists
}

// Children returns the child routes of a branch with their composite keys
// and effective paths, in declaration order.
func (t *Table) Children(key string) []Route {
	keys := t.order[key]
	if len(keys) == 0 {
		return nil
	}

	routes := make([]Route, len(keys))
	for i, k := range keys {
		routes[i] = t.children[k]
	}
	return routes
}

// URL returns the concrete location for the route with the specified key.
// Placeholders without a bound value are left in place.
func (t *Table) URL(key string, params Params) (string, bool) {
	r, exists := t.Lookup(key)
	if !exists {
		return "", false
	}

	path, _ := substitute(r.Path, placeholders(r.Path), params)
	return path, true
}

// =============================================================================

// CompositeKey returns the key of a child route nested in a branch.
func CompositeKey(branch string, child string) string {
	return branch + KeySeparator + child
}

// SplitKey breaks a composite key into its branch and child keys.
func SplitKey(key string) (branch string, child string, ok bool) {
	return strings.Cut(key, KeySeparator)
}

// =============================================================================

func (t *Table) validatePaths() error {
	var err error

	seen := make(map[string]string)
	for _, e := range t.entries {
		r := e.Base()
		shape := shapeOf(r.Path)
		if other, exists := seen[shape]; exists {
			err = multierr.Append(err, fmt.Errorf("%w: %s and %s share %q", ErrDuplicatePath, other, r.Key, r.Path))
			continue
		}
		seen[shape] = r.Key
	}

	for branch, keys := range t.order {
		seen := make(map[string]string)
		for _, key := range keys {
			c := t.children[key]
			shape := shapeOf(c.Path)
			if other, exists := seen[shape]; exists {
				err = multierr.Append(err, fmt.Errorf("%w: %s: %s and %s share %q", ErrDuplicatePath, branch, other, key, c.Path))
				continue
			}
			seen[shape] = key
		}
	}

	return err
}

func (t *Table) validateParents() error {
	var err error

	for _, e := range t.entries {
		r := e.Base()
		if r.Parent == "" {
			continue
		}

		if _, exists := t.index[r.Parent]; !exists {
			err = multierr.Append(err, fmt.Errorf("%w: %s: %q", ErrDanglingParent, r.Key, r.Parent))
			continue
		}

		visited := map[string]bool{r.Key: true}
		chain := []string{r.Key}
		for key := r.Parent; key != ""; {
			chain = append(chain, key)
			if visited[key] {
				err = multierr.Append(err, fmt.Errorf("%w: %s", ErrCycle, strings.Join(chain, " -> ")))
				break
			}
			visited[key] = true

			i, exists := t.index[key]
			if !exists {
				break
			}
			key = t.entries[i].Base().Parent
		}
	}

	return err
}

func (t *Table) validateParams() error {
	var err error

	check := func(r Route) {
		declared := placeholders(r.Path)
		for _, p := range r.Params {
			if !slices.Contains(declared, p) {
				err = multierr.Append(err, fmt.Errorf("%w: %s: %q in %q", ErrUndeclaredParam, r.Key, p, r.Path))
			}
		}
	}

	for _, e := range t.entries {
		check(e.Base())
	}
	for _, c := range t.children {
		check(c)
	}

	return err
}

// =============================================================================

// joinPath returns the effective path of a child nested under a branch.
func joinPath(parent string, child string) string {
	child = strings.Trim(child, "/")
	if child == "" {
		return parent
	}
	return strings.TrimSuffix(parent, "/") + "/" + child
}

// shapeOf reduces a pattern to its matching shape so patterns that differ
// only in placeholder names compare equal.
func shapeOf(pattern string) string {
	segs := segments(pattern)
	for i, s := range segs {
		if strings.HasPrefix(s, ":") {
			segs[i] = ":"
		}
	}
	return "/" + strings.Join(segs, "/")
}

// placeholders returns the placeholder names found in a pattern.
func placeholders(pattern string) []string {
	var names []string
	for _, s := range segments(pattern) {
		if strings.HasPrefix(s, ":") {
			names = append(names, s[1:])
		}
	}
	return names
}
