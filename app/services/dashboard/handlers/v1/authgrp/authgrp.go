// Package authgrp maintains the group of handlers for connecting a wallet.
package authgrp

import (
	"context"
	"errors"
	"net/http"

	"github.com/inkwell/dashboard/business/core/wallet"
	"github.com/inkwell/dashboard/business/core/workspace"
	"github.com/inkwell/dashboard/business/web/errs"
	"github.com/inkwell/dashboard/foundation/nameservice"
	"github.com/inkwell/dashboard/foundation/validate"
	"github.com/inkwell/dashboard/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of auth endpoints.
type Handlers struct {
	Log       *zap.SugaredLogger
	Wallet    *wallet.Core
	Workspace *workspace.Core
	NS        *nameservice.NameService
}

// Challenge issues a message for the wallet to sign.
func (h Handlers) Challenge(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	addr := web.Param(r, "wallet")
	if !validate.IsWallet(addr) {
		return errs.NewTrustedf(http.StatusBadRequest, "invalid wallet address %q", addr)
	}

	ch := h.Wallet.Challenge(ctx, addr)

	return web.Respond(ctx, w, ch, http.StatusOK)
}

// Login verifies the signed challenge and opens a session.
func (h Handlers) Login(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var l wallet.Login
	if err := web.Decode(r, &l); err != nil {
		if validate.IsFieldErrors(err) {
			return err
		}
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	s, err := h.Wallet.Login(ctx, l)
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrMissingPermissions):
			return errs.NewTrusted(err, http.StatusForbidden)
		case errors.Is(err, wallet.ErrChallengeNotFound),
			errors.Is(err, wallet.ErrChallengeExpired),
			errors.Is(err, wallet.ErrWalletMismatch):
			return errs.NewTrusted(err, http.StatusUnauthorized)
		default:
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
	}

	resp := struct {
		wallet.Session
		Name string `json:"name"`
	}{
		Session: s,
		Name:    h.NS.Lookup(s.Wallet),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Logout closes the session and forgets the workspace of the wallet.
func (h Handlers) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	s, err := wallet.GetSession(ctx)
	if err != nil {
		return web.NewShutdownError("session missing from context")
	}

	if err := h.Wallet.Logout(ctx, s.Token); err != nil {
		return errs.NewTrusted(err, http.StatusUnauthorized)
	}

	h.Workspace.Forget(s.Wallet)

	return web.Respond(ctx, w, nil, http.StatusNoContent)
}

// Session returns the session of the connected wallet.
func (h Handlers) Session(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	s, err := wallet.GetSession(ctx)
	if err != nil {
		return web.NewShutdownError("session missing from context")
	}

	resp := struct {
		wallet.Session
		Name string `json:"name"`
	}{
		Session: s,
		Name:    h.NS.Lookup(s.Wallet),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
