// Package usergrp maintains the group of handlers for managing the users of
// a blog.
package usergrp

import (
	"context"
	"errors"
	"net/http"

	"github.com/inkwell/dashboard/business/core/blog"
	"github.com/inkwell/dashboard/business/core/wallet"
	"github.com/inkwell/dashboard/business/core/workspace"
	"github.com/inkwell/dashboard/business/web/errs"
	"github.com/inkwell/dashboard/foundation/nameservice"
	"github.com/inkwell/dashboard/foundation/validate"
	"github.com/inkwell/dashboard/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of user endpoints.
type Handlers struct {
	Log       *zap.SugaredLogger
	Blog      *blog.Core
	Workspace *workspace.Core
	NS        *nameservice.NameService
}

// Query returns the users of a blog.
func (h Handlers) Query(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	s, err := wallet.GetSession(ctx)
	if err != nil {
		return web.NewShutdownError("session missing from context")
	}

	users, err := h.Blog.QueryUsers(ctx, s.Wallet, web.Param(r, "blogId"))
	if err != nil {
		return toTrusted(err)
	}

	resp := make([]user, len(users))
	for i, u := range users {
		resp[i] = h.toUser(u)
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// QueryByWallet returns the roles of one user of a blog.
func (h Handlers) QueryByWallet(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	s, err := wallet.GetSession(ctx)
	if err != nil {
		return web.NewShutdownError("session missing from context")
	}

	u, err := h.Blog.QueryUser(ctx, s.Wallet, web.Param(r, "blogId"), web.Param(r, "userId"))
	if err != nil {
		return toTrusted(err)
	}

	return web.Respond(ctx, w, h.toUser(u), http.StatusOK)
}

// Create grants roles on a blog to a wallet.
func (h Handlers) Create(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	s, err := wallet.GetSession(ctx)
	if err != nil {
		return web.NewShutdownError("session missing from context")
	}

	var nu blog.NewUser
	if err := web.Decode(r, &nu); err != nil {
		if validate.IsFieldErrors(err) {
			return err
		}
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	u, err := h.Blog.AddUser(ctx, s.Wallet, web.Param(r, "blogId"), nu)
	if err != nil {
		return toTrusted(err)
	}

	h.Workspace.Forget(u.Wallet)

	return web.Respond(ctx, w, h.toUser(u), http.StatusCreated)
}

// Delete revokes every role a wallet holds on a blog.
func (h Handlers) Delete(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	s, err := wallet.GetSession(ctx)
	if err != nil {
		return web.NewShutdownError("session missing from context")
	}

	userWallet := web.Param(r, "userId")

	if err := h.Blog.RemoveUser(ctx, s.Wallet, web.Param(r, "blogId"), userWallet); err != nil {
		return toTrusted(err)
	}

	h.Workspace.Forget(userWallet)

	return web.Respond(ctx, w, nil, http.StatusNoContent)
}

func (h Handlers) toUser(u blog.User) user {
	return user{
		Wallet: u.Wallet,
		Name:   h.NS.Lookup(u.Wallet),
		Roles:  u.Roles,
	}
}

func toTrusted(err error) error {
	switch {
	case validate.IsFieldErrors(err):
		return err
	case errors.Is(err, blog.ErrNotFound):
		return errs.NewTrusted(err, http.StatusNotFound)
	case errors.Is(err, blog.ErrForbidden):
		return errs.NewTrusted(err, http.StatusForbidden)
	case errors.Is(err, blog.ErrNoRoles), errors.Is(err, blog.ErrRemoveSelf):
		return errs.NewTrusted(err, http.StatusBadRequest)
	}
	return err
}
