// Package workspacegrp maintains the group of handlers for the workspace of
// the connected wallet.
package workspacegrp

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/inkwell/dashboard/business/core/wallet"
	"github.com/inkwell/dashboard/business/core/workspace"
	"github.com/inkwell/dashboard/business/web/errs"
	"github.com/inkwell/dashboard/foundation/events"
	"github.com/inkwell/dashboard/foundation/validate"
	"github.com/inkwell/dashboard/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of workspace endpoints.
type Handlers struct {
	Log       *zap.SugaredLogger
	Workspace *workspace.Core
	WS        websocket.Upgrader
	Evts      *events.Events
}

// Query returns the workspace of the connected wallet. The refresh query
// parameter forces a fetch.
func (h Handlers) Query(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	s, err := wallet.GetSession(ctx)
	if err != nil {
		return web.NewShutdownError("session missing from context")
	}

	var snap workspace.Snapshot
	switch r.URL.Query().Get("refresh") {
	case "true", "1":
		snap, err = h.Workspace.Refresh(ctx, s.Wallet)
	default:
		snap, err = h.Workspace.Load(ctx, s.Wallet)
	}

	if err != nil {
		return errs.NewTrusted(err, http.StatusBadGateway)
	}

	return web.Respond(ctx, w, snap, http.StatusOK)
}

// Select changes the selected blog of the connected wallet.
func (h Handlers) Select(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	s, err := wallet.GetSession(ctx)
	if err != nil {
		return web.NewShutdownError("session missing from context")
	}

	var sel workspace.Select
	if err := web.Decode(r, &sel); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(sel); err != nil {
		return err
	}

	snap, err := h.Workspace.Select(ctx, s.Wallet, sel.BlogID)
	if err != nil {
		if errors.Is(err, workspace.ErrUnknownBlog) {
			return errs.NewTrusted(err, http.StatusNotFound)
		}
		return err
	}

	return web.Respond(ctx, w, snap, http.StatusOK)
}

// Theme returns the theme of the connected wallet.
func (h Handlers) Theme(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	s, err := wallet.GetSession(ctx)
	if err != nil {
		return web.NewShutdownError("session missing from context")
	}

	theme, err := h.Workspace.Theme(s.Wallet)
	if err != nil {
		return err
	}

	return web.Respond(ctx, w, workspace.SetTheme{Theme: theme}, http.StatusOK)
}

// SetTheme stores the theme of the connected wallet.
func (h Handlers) SetTheme(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	s, err := wallet.GetSession(ctx)
	if err != nil {
		return web.NewShutdownError("session missing from context")
	}

	var st workspace.SetTheme
	if err := web.Decode(r, &st); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(st); err != nil {
		return err
	}

	if err := h.Workspace.SetTheme(s.Wallet, st.Theme); err != nil {
		if errors.Is(err, workspace.ErrInvalidTheme) {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		return err
	}

	return web.Respond(ctx, w, st, http.StatusOK)
}

// Events handles a web socket to provide the changes to the blogs of the
// connected wallet.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	s, err := wallet.GetSession(ctx)
	if err != nil {
		return web.NewShutdownError("session missing from context")
	}

	snap, err := h.Workspace.Load(ctx, s.Wallet)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadGateway)
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	// The filter keeps events for the blogs of the workspace and the ones
	// granting or revoking roles of this wallet.
	filter := func(e events.Event) bool {
		return snap.Contains(e.BlogID) || strings.EqualFold(e.Detail, s.Wallet)
	}

	ch := h.Evts.Acquire(v.TraceID, filter)
	defer h.Evts.Release(v.TraceID)

	h.Log.Infow("events", "traceid", v.TraceID, "status", "subscribed", "wallet", s.Wallet, "blogs", len(snap.Blogs))

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case e, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteJSON(e); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}
