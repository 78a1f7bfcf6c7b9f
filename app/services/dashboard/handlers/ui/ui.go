// Package ui serves the dashboard pages. Every location is resolved against
// the route table; the page shell carries the breadcrumb trail, the menus
// and the view the browser should mount.
package ui

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/inkwell/dashboard/business/web/v1/sitemap"
	"github.com/inkwell/dashboard/foundation/routes"
	"github.com/inkwell/dashboard/foundation/web"
	"go.uber.org/zap"
)

//go:embed templates
var templates embed.FS

// Handlers manages the set of page endpoints.
type Handlers struct {
	log     *zap.SugaredLogger
	sitemap *sitemap.Sitemap
	tmpl    *template.Template
}

// New parses the page templates and constructs the handlers.
func New(log *zap.SugaredLogger, sm *sitemap.Sitemap) (*Handlers, error) {
	tmpl, err := template.ParseFS(templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	h := Handlers{
		log:     log,
		sitemap: sm,
		tmpl:    tmpl,
	}

	return &h, nil
}

// Page renders the page for the requested location. Locations that aren't
// in canonical form are redirected to it and unknown locations fall back
// to the home page.
func (h *Handlers) Page(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	path := routes.Clean(r.URL.Path)

	if path != r.URL.Path {
		target := path
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		return web.Redirect(ctx, w, r, target, http.StatusMovedPermanently)
	}

	m, ok := h.sitemap.Table.Resolve(path)
	if !ok {
		h.log.Infow("page", "traceid", web.GetTraceID(ctx), "status", "no route, redirecting home", "path", path)
		return web.Redirect(ctx, w, r, "/", http.StatusFound)
	}

	crumbs := h.sitemap.Table.Trail(m)
	for _, c := range crumbs {
		if len(c.Unresolved) > 0 {
			h.log.Warnw("page", "traceid", web.GetTraceID(ctx), "status", "unresolved breadcrumb params", "key", m.Key, "path", c.Path, "unresolved", c.Unresolved)
		}
	}

	params, err := json.Marshal(m.Params)
	if err != nil {
		return fmt.Errorf("marshaling params: %w", err)
	}

	data := page{
		Title:       m.Route.Title,
		Key:         m.Key,
		View:        m.Route.View,
		ParamsJSON:  string(params),
		Breadcrumbs: crumbs,
		Menus:       menus(h.sitemap.Menus(), m),
	}

	return web.Render(ctx, w, h.tmpl, "page.html", data, http.StatusOK)
}

// =============================================================================

type link struct {
	Name   string
	Href   string
	Icon   string
	Active bool
}

type menu struct {
	Title string
	Items []link
}

type page struct {
	Title       string
	Key         string
	View        string
	ParamsJSON  string
	Breadcrumbs []routes.Crumb
	Menus       []menu
}

// menus fills in the menu links with the params of the current match.
// Links that still carry placeholders need a value the location doesn't
// provide and are left out.
func menus(ms []sitemap.Menu, m routes.Match) []menu {
	out := make([]menu, 0, len(ms))

	for _, sm := range ms {
		mn := menu{Title: sm.Title}

		for _, it := range sm.Items {
			href := it.Href(m.Params)
			if strings.Contains(href, "/:") {
				continue
			}

			mn.Items = append(mn.Items, link{
				Name:   it.Name,
				Href:   href,
				Icon:   it.Icon,
				Active: it.Key == m.Key,
			})
		}

		if len(mn.Items) > 0 {
			out = append(out, mn)
		}
	}

	return out
}
