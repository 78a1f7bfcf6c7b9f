package navgrp

import (
	"github.com/inkwell/dashboard/foundation/routes"
)

type resolved struct {
	Path        string         `json:"path"`
	Found       bool           `json:"found"`
	Key         string         `json:"key,omitempty"`
	Title       string         `json:"title,omitempty"`
	View        string         `json:"view,omitempty"`
	Icon        string         `json:"icon,omitempty"`
	Params      routes.Params  `json:"params,omitempty"`
	Breadcrumbs []routes.Crumb `json:"breadcrumbs,omitempty"`
	Redirect    string         `json:"redirect,omitempty"`
}

type link struct {
	routes.NavItem
	Href string `json:"href"`
}

type menu struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Items []link `json:"items"`
}

func toLinks(items []routes.NavItem, params routes.Params) []link {
	links := make([]link, len(items))
	for i, it := range items {
		links[i] = link{NavItem: it, Href: it.Href(params)}
	}
	return links
}
