// Package navgrp maintains the group of handlers for resolving dashboard
// locations and building the navigation menus.
package navgrp

import (
	"context"
	"net/http"

	"github.com/inkwell/dashboard/business/web/errs"
	"github.com/inkwell/dashboard/business/web/v1/sitemap"
	"github.com/inkwell/dashboard/foundation/routes"
	"github.com/inkwell/dashboard/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of navigation endpoints.
type Handlers struct {
	Log     *zap.SugaredLogger
	Sitemap *sitemap.Sitemap
}

// Resolve matches the location in the path query parameter and returns the
// route with its breadcrumb trail. A location that matches nothing carries
// the redirect to the home page.
func (h Handlers) Resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	path := routes.Location(r.URL.Query().Get("path"))

	m, ok := h.Sitemap.Table.Resolve(path)
	if !ok {
		resp := resolved{
			Path:     path,
			Redirect: "/",
		}
		return web.Respond(ctx, w, resp, http.StatusOK)
	}

	crumbs := h.Sitemap.Table.Trail(m)
	for _, c := range crumbs {
		if len(c.Unresolved) > 0 {
			h.Log.Warnw("breadcrumb", "traceid", web.GetTraceID(ctx), "key", m.Key, "path", c.Path, "unresolved", c.Unresolved)
		}
	}

	resp := resolved{
		Path:        path,
		Found:       true,
		Key:         m.Key,
		Title:       m.Route.Title,
		View:        m.Route.View,
		Icon:        m.Route.Icon,
		Params:      m.Params,
		Breadcrumbs: crumbs,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Items returns the items of a navigation menu. Query parameters are used
// to fill in the links.
func (h Handlers) Items(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	category := web.Param(r, "category")

	items, ok := h.Sitemap.Nav(category)
	if !ok {
		return errs.NewTrustedf(http.StatusNotFound, "navigation menu %q not found", category)
	}

	return web.Respond(ctx, w, toLinks(items, queryParams(r)), http.StatusOK)
}

// Menus returns every navigation menu.
func (h Handlers) Menus(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	params := queryParams(r)

	menus := h.Sitemap.Menus()
	resp := make([]menu, len(menus))
	for i, m := range menus {
		resp[i] = menu{Name: m.Name, Title: m.Title, Items: toLinks(m.Items, params)}
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

func queryParams(r *http.Request) routes.Params {
	params := make(routes.Params)
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	return params
}
