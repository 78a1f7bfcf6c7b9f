// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/inkwell/dashboard/app/services/dashboard/handlers/v1/authgrp"
	"github.com/inkwell/dashboard/app/services/dashboard/handlers/v1/bloggrp"
	"github.com/inkwell/dashboard/app/services/dashboard/handlers/v1/configgrp"
	"github.com/inkwell/dashboard/app/services/dashboard/handlers/v1/navgrp"
	"github.com/inkwell/dashboard/app/services/dashboard/handlers/v1/usergrp"
	"github.com/inkwell/dashboard/app/services/dashboard/handlers/v1/workspacegrp"
	"github.com/inkwell/dashboard/business/core/blog"
	"github.com/inkwell/dashboard/business/core/wallet"
	"github.com/inkwell/dashboard/business/core/workspace"
	"github.com/inkwell/dashboard/business/web/v1/mid"
	"github.com/inkwell/dashboard/business/web/v1/sitemap"
	"github.com/inkwell/dashboard/foundation/events"
	"github.com/inkwell/dashboard/foundation/nameservice"
	"github.com/inkwell/dashboard/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log       *zap.SugaredLogger
	Sitemap   *sitemap.Sitemap
	Wallet    *wallet.Core
	Blog      *blog.Core
	Workspace *workspace.Core
	NS        *nameservice.NameService
	Evts      *events.Events
	Connect   configgrp.Handlers
}

// Routes binds all the version 1 routes.
func Routes(app *web.App, cfg Config) {
	authen := mid.Authenticate(cfg.Wallet)

	cfgh := cfg.Connect
	app.Handle(http.MethodGet, version, "/config", cfgh.Query)

	ath := authgrp.Handlers{
		Log:       cfg.Log,
		Wallet:    cfg.Wallet,
		Workspace: cfg.Workspace,
		NS:        cfg.NS,
	}
	app.Handle(http.MethodGet, version, "/auth/challenge/:wallet", ath.Challenge)
	app.Handle(http.MethodPost, version, "/auth/login", ath.Login)
	app.Handle(http.MethodPost, version, "/auth/logout", ath.Logout, authen)
	app.Handle(http.MethodGet, version, "/auth/session", ath.Session, authen)

	nvh := navgrp.Handlers{
		Log:     cfg.Log,
		Sitemap: cfg.Sitemap,
	}
	app.Handle(http.MethodGet, version, "/nav/resolve", nvh.Resolve)
	app.Handle(http.MethodGet, version, "/nav/menus", nvh.Menus)
	app.Handle(http.MethodGet, version, "/nav/items/:category", nvh.Items)

	wsh := workspacegrp.Handlers{
		Log:       cfg.Log,
		Workspace: cfg.Workspace,
		Evts:      cfg.Evts,
	}
	app.Handle(http.MethodGet, version, "/workspace", wsh.Query, authen)
	app.Handle(http.MethodPut, version, "/workspace/selected", wsh.Select, authen)
	app.Handle(http.MethodGet, version, "/workspace/theme", wsh.Theme, authen)
	app.Handle(http.MethodPut, version, "/workspace/theme", wsh.SetTheme, authen)
	app.Handle(http.MethodGet, version, "/events", wsh.Events, authen)

	bgh := bloggrp.Handlers{
		Log:       cfg.Log,
		Sitemap:   cfg.Sitemap,
		Blog:      cfg.Blog,
		Workspace: cfg.Workspace,
	}
	app.Handle(http.MethodGet, version, "/blogs/:blogId", bgh.QueryBlog, authen)
	app.Handle(http.MethodPut, version, "/blogs/:blogId", bgh.UpdateBlog, authen)
	app.Handle(http.MethodPost, version, "/blogs/:blogId/logo", bgh.SetLogo, authen)
	app.Handle(http.MethodGet, version, "/blogs/:blogId/posts", bgh.QueryPosts, authen)
	app.Handle(http.MethodPost, version, "/blogs/:blogId/posts", bgh.CreatePost, authen)
	app.Handle(http.MethodGet, version, "/blogs/:blogId/posts/:postId", bgh.QueryPost, authen)
	app.Handle(http.MethodPut, version, "/blogs/:blogId/posts/:postId", bgh.UpdatePost, authen)
	app.Handle(http.MethodDelete, version, "/blogs/:blogId/posts/:postId", bgh.DeletePost, authen)

	usg := usergrp.Handlers{
		Log:       cfg.Log,
		Blog:      cfg.Blog,
		Workspace: cfg.Workspace,
		NS:        cfg.NS,
	}
	app.Handle(http.MethodGet, version, "/blogs/:blogId/users", usg.Query, authen)
	app.Handle(http.MethodPost, version, "/blogs/:blogId/users", usg.Create, authen)
	app.Handle(http.MethodGet, version, "/blogs/:blogId/users/:userId", usg.QueryByWallet, authen)
	app.Handle(http.MethodDelete, version, "/blogs/:blogId/users/:userId", usg.Delete, authen)
}
