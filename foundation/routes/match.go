package routes

import (
	"strings"
)

// Match is the result of resolving a location against a route table.
type Match struct {
	Route  Route
	Key    string
	Params Params
}

// Nested reports whether the match is for a child route.
func (m Match) Nested() bool {
	_, _, ok := SplitKey(m.Key)
	return ok
}

// Resolve finds the route for the specified location. Top-level entries are
// tried in declaration order, each followed by its children, and the first
// match wins. The boolean is false when nothing matches, in which case
// callers fall back to the home route.
func (t *Table) Resolve(path string) (Match, bool) {
	for _, e := range t.entries {
		r := e.Base()

		if params, ok := MatchPath(r.Path, path); ok {
			return Match{Route: r, Key: r.Key, Params: params}, true
		}

		switch e.(type) {
		case Branch:
			for _, key := range t.order[r.Key] {
				c := t.children[key]
				if params, ok := MatchPath(c.Path, path); ok {
					return Match{Route: c, Key: key, Params: params}, true
				}
			}

		case Leaf:
		}
	}

	return Match{}, false
}

// MatchPath decides if the location matches the pattern and returns the
// values bound to the pattern's placeholders. Both are split into non-empty
// segments; the segment counts must be equal and literal segments must be
// identical.
func MatchPath(pattern string, path string) (Params, bool) {
	patternSegs := segments(pattern)
	pathSegs := segments(path)

	if len(patternSegs) != len(pathSegs) {
		return nil, false
	}

	params := make(Params)
	for i, seg := range patternSegs {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			params[name] = pathSegs[i]
			continue
		}

		if seg != pathSegs[i] {
			return nil, false
		}
	}

	return params, true
}

// Clean returns the canonical form of a decoded location path: a leading
// slash and no repeated or trailing slashes. Every other byte is kept.
func Clean(path string) string {
	return "/" + strings.Join(segments(path), "/")
}

// Location cleans a raw location that may still carry a query string or a
// fragment, as typed by a user or passed in a query parameter.
func Location(raw string) string {
	raw, _, _ = strings.Cut(raw, "#")
	raw, _, _ = strings.Cut(raw, "?")
	return Clean(raw)
}

// segments splits a path on "/" dropping empty segments.
func segments(path string) []string {
	segs := make([]string, 0, strings.Count(path, "/")+1)

	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '/' {
			if i > start {
				segs = append(segs, path[start:i])
			}
			start = i + 1
		}
	}

	return segs
}
