// Package configgrp maintains the group of handlers exposing the settings a
// browser needs to connect a wallet.
package configgrp

import (
	"context"
	"net/http"
	"sort"

	"github.com/inkwell/dashboard/business/core/wallet"
	"github.com/inkwell/dashboard/business/web/errs"
	"github.com/inkwell/dashboard/foundation/web"
)

// Environment holds the wallet connect endpoints of one environment.
type Environment struct {
	BaseURL       string `json:"baseURL"`
	ServerBaseURL string `json:"serverBaseURL"`
}

// Handlers manages the set of config endpoints.
type Handlers struct {
	ClientID     string
	Domain       string
	Default      string
	Environments map[string]Environment
}

// Query returns the wallet connect settings for the environment named in
// the env query parameter, or the default one.
func (h Handlers) Query(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	name := r.URL.Query().Get("env")
	if name == "" {
		name = h.Default
	}

	env, exists := h.Environments[name]
	if !exists {
		return errs.NewTrustedf(http.StatusBadRequest, "unknown environment %q", name)
	}

	names := make([]string, 0, len(h.Environments))
	for n := range h.Environments {
		names = append(names, n)
	}
	sort.Strings(names)

	resp := struct {
		ClientID            string              `json:"clientId"`
		Domain              string              `json:"domain"`
		Environment         string              `json:"environment"`
		Environments        []string            `json:"environments"`
		BaseURL             string              `json:"baseURL"`
		ServerBaseURL       string              `json:"serverBaseURL"`
		RequiredPermissions []wallet.Permission `json:"requiredPermissions"`
	}{
		ClientID:            h.ClientID,
		Domain:              h.Domain,
		Environment:         name,
		Environments:        names,
		BaseURL:             env.BaseURL,
		ServerBaseURL:       env.ServerBaseURL,
		RequiredPermissions: wallet.RequiredPermissions,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
