// Package bloggrp maintains the group of handlers for blog and post access.
package bloggrp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/inkwell/dashboard/business/core/blog"
	"github.com/inkwell/dashboard/business/core/wallet"
	"github.com/inkwell/dashboard/business/core/workspace"
	"github.com/inkwell/dashboard/business/web/errs"
	"github.com/inkwell/dashboard/business/web/v1/sitemap"
	"github.com/inkwell/dashboard/foundation/media"
	"github.com/inkwell/dashboard/foundation/routes"
	"github.com/inkwell/dashboard/foundation/validate"
	"github.com/inkwell/dashboard/foundation/web"
	"go.uber.org/zap"
)

// postView is the page showing a single post.
const postView = "posts_view"

// Handlers manages the set of blog endpoints.
type Handlers struct {
	Log       *zap.SugaredLogger
	Sitemap   *sitemap.Sitemap
	Blog      *blog.Core
	Workspace *workspace.Core
	MaxLogo   int64
}

// QueryBlog returns the details of a blog.
func (h Handlers) QueryBlog(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	s, err := wallet.GetSession(ctx)
	if err != nil {
		return web.NewShutdownError("session missing from context")
	}

	d, err := h.Blog.QueryBlog(ctx, s.Wallet, web.Param(r, "blogId"))
	if err != nil {
		return toTrusted(err)
	}

	return web.Respond(ctx, w, toDetails(d), http.StatusOK)
}

// UpdateBlog modifies the details of a blog.
func (h Handlers) UpdateBlog(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	s, err := wallet.GetSession(ctx)
	if err != nil {
		return web.NewShutdownError("session missing from context")
	}

	var ud blog.UpdateDetails
	if err := web.Decode(r, &ud); err != nil {
		if validate.IsFieldErrors(err) {
			return err
		}
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	blogID := web.Param(r, "blogId")

	d, err := h.Blog.UpdateBlog(ctx, s.Wallet, blogID, ud)
	if err != nil {
		return toTrusted(err)
	}

	h.Workspace.Invalidate(blogID)

	return web.Respond(ctx, w, toDetails(d), http.StatusOK)
}

// SetLogo uploads the image in the logo form field and makes it the logo
// of the blog.
func (h Handlers) SetLogo(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	s, err := wallet.GetSession(ctx)
	if err != nil {
		return web.NewShutdownError("session missing from context")
	}

	limit := h.MaxLogo
	if limit == 0 {
		limit = media.DefaultMaxSize
	}

	// The form overhead needs room on top of the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, limit+64*1024)

	if err := r.ParseMultipartForm(limit); err != nil {
		return errs.NewTrusted(fmt.Errorf("parsing upload: %w", err), http.StatusBadRequest)
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		return errs.NewTrusted(fmt.Errorf("logo form field: %w", err), http.StatusBadRequest)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return errs.NewTrusted(fmt.Errorf("reading upload: %w", err), http.StatusBadRequest)
	}

	blogID := web.Param(r, "blogId")

	d, err := h.Blog.SetLogo(ctx, s.Wallet, blogID, header.Filename, data)
	if err != nil {
		return toTrusted(err)
	}

	h.Workspace.Invalidate(blogID)

	return web.Respond(ctx, w, toDetails(d), http.StatusOK)
}

// =============================================================================

// QueryPosts returns the posts of a blog.
func (h Handlers) QueryPosts(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	s, err := wallet.GetSession(ctx)
	if err != nil {
		return web.NewShutdownError("session missing from context")
	}

	posts, err := h.Blog.QueryPosts(ctx, s.Wallet, web.Param(r, "blogId"))
	if err != nil {
		return toTrusted(err)
	}

	return web.Respond(ctx, w, posts, http.StatusOK)
}

// QueryPost returns a single post.
func (h Handlers) QueryPost(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	s, err := wallet.GetSession(ctx)
	if err != nil {
		return web.NewShutdownError("session missing from context")
	}

	p, err := h.Blog.QueryPost(ctx, s.Wallet, web.Param(r, "blogId"), web.Param(r, "postId"))
	if err != nil {
		return toTrusted(err)
	}

	return web.Respond(ctx, w, p, http.StatusOK)
}

// CreatePost adds a post to a blog.
func (h Handlers) CreatePost(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	s, err := wallet.GetSession(ctx)
	if err != nil {
		return web.NewShutdownError("session missing from context")
	}

	var np blog.NewPost
	if err := web.Decode(r, &np); err != nil {
		if validate.IsFieldErrors(err) {
			return err
		}
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	p, err := h.Blog.CreatePost(ctx, s.Wallet, web.Param(r, "blogId"), np)
	if err != nil {
		return toTrusted(err)
	}

	if loc, ok := h.Sitemap.Table.URL(postView, routes.Params{"blogId": p.BlogID, "postId": p.ID}); ok {
		w.Header().Set("Location", loc)
	}

	return web.Respond(ctx, w, p, http.StatusCreated)
}

// UpdatePost modifies a post.
func (h Handlers) UpdatePost(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	s, err := wallet.GetSession(ctx)
	if err != nil {
		return web.NewShutdownError("session missing from context")
	}

	var up blog.UpdatePost
	if err := web.Decode(r, &up); err != nil {
		if validate.IsFieldErrors(err) {
			return err
		}
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	p, err := h.Blog.UpdatePost(ctx, s.Wallet, web.Param(r, "blogId"), web.Param(r, "postId"), up)
	if err != nil {
		return toTrusted(err)
	}

	return web.Respond(ctx, w, p, http.StatusOK)
}

// DeletePost removes a post.
func (h Handlers) DeletePost(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	s, err := wallet.GetSession(ctx)
	if err != nil {
		return web.NewShutdownError("session missing from context")
	}

	if err := h.Blog.DeletePost(ctx, s.Wallet, web.Param(r, "blogId"), web.Param(r, "postId")); err != nil {
		return toTrusted(err)
	}

	return web.Respond(ctx, w, nil, http.StatusNoContent)
}

// =============================================================================

// toTrusted maps the blog errors to the status codes the client sees.
func toTrusted(err error) error {
	switch {
	case validate.IsFieldErrors(err):
		return err
	case errors.Is(err, blog.ErrNotFound):
		return errs.NewTrusted(err, http.StatusNotFound)
	case errors.Is(err, blog.ErrForbidden):
		return errs.NewTrusted(err, http.StatusForbidden)
	case errors.Is(err, blog.ErrInvalidLogo),
		errors.Is(err, media.ErrEmpty),
		errors.Is(err, media.ErrExtension),
		errors.Is(err, media.ErrFileType):
		return errs.NewTrusted(err, http.StatusBadRequest)
	case errors.Is(err, media.ErrTooLarge):
		return errs.NewTrusted(err, http.StatusRequestEntityTooLarge)
	}
	return err
}
