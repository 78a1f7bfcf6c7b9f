// Package handlers manages the different versions of the API and the pages.
package handlers

import (
	"context"
	"expvar"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"

	"github.com/inkwell/dashboard/app/services/dashboard/handlers/debug/checkgrp"
	"github.com/inkwell/dashboard/app/services/dashboard/handlers/ui"
	v1 "github.com/inkwell/dashboard/app/services/dashboard/handlers/v1"
	"github.com/inkwell/dashboard/app/services/dashboard/handlers/v1/configgrp"
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

// MuxConfig contains all the mandatory systems required by handlers.
type MuxConfig struct {
	Shutdown  chan os.Signal
	Log       *zap.SugaredLogger
	Origin    string
	Sitemap   *sitemap.Sitemap
	Wallet    *wallet.Core
	Blog      *blog.Core
	Workspace *workspace.Core
	NS        *nameservice.NameService
	Evts      *events.Events
	Connect   configgrp.Handlers
}

// APIMux constructs a http.Handler with all application routes defined.
func APIMux(cfg MuxConfig) (http.Handler, error) {

	// Construct the web.App which holds all routes as well as common Middleware.
	app := web.NewApp(
		cfg.Shutdown,
		mid.Logger(cfg.Log),
		mid.Errors(cfg.Log),
		mid.Metrics(),
		mid.Cors(cfg.Origin),
		mid.Panics(),
	)

	// Accept CORS 'OPTIONS' preflight requests for every route.
	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return nil
	}
	app.Handle(http.MethodOptions, "", "/*path", h)

	// Load the v1 routes.
	v1.Routes(app, v1.Config{
		Log:       cfg.Log,
		Sitemap:   cfg.Sitemap,
		Wallet:    cfg.Wallet,
		Blog:      cfg.Blog,
		Workspace: cfg.Workspace,
		NS:        cfg.NS,
		Evts:      cfg.Evts,
		Connect:   cfg.Connect,
	})

	// Every other location is a dashboard page.
	pages, err := ui.New(cfg.Log, cfg.Sitemap)
	if err != nil {
		return nil, fmt.Errorf("loading pages: %w", err)
	}
	app.Handle(http.MethodGet, "", "/", pages.Page)
	app.Handle(http.MethodGet, "", "/*path", pages.Page)

	return app, nil
}

// DebugStandardLibraryMux registers all the debug routes from the standard library
// into a new mux bypassing the use of the DefaultServerMux. Using the
// DefaultServerMux would be a security risk since a dependency could inject a
// handler into our service without us knowing it.
func DebugStandardLibraryMux() *http.ServeMux {
	mux := http.NewServeMux()

	// Register all the standard library debug endpoints.
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/debug/vars", expvar.Handler())

	return mux
}

// DebugMux registers all the debug standard library routes and then custom
// debug application routes for the service.
func DebugMux(build string, log *zap.SugaredLogger, ready func() error) http.Handler {
	mux := DebugStandardLibraryMux()

	// Register debug check endpoints.
	cgh := checkgrp.Handlers{
		Build: build,
		Log:   log,
		Ready: ready,
	}
	mux.HandleFunc("/debug/readiness", cgh.Readiness)
	mux.HandleFunc("/debug/liveness", cgh.Liveness)

	return mux
}
