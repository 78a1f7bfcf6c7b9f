package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/inkwell/dashboard/app/services/dashboard/handlers"
	"github.com/inkwell/dashboard/app/services/dashboard/handlers/v1/configgrp"
	"github.com/inkwell/dashboard/business/core/blog"
	"github.com/inkwell/dashboard/business/core/blog/stores/blogmem"
	"github.com/inkwell/dashboard/business/core/wallet"
	"github.com/inkwell/dashboard/business/core/workspace"
	"github.com/inkwell/dashboard/business/web/v1/sitemap"
	"github.com/inkwell/dashboard/foundation/events"
	"github.com/inkwell/dashboard/foundation/kvstore"
	"github.com/inkwell/dashboard/foundation/logger"
	"github.com/inkwell/dashboard/foundation/media"
	"github.com/inkwell/dashboard/foundation/nameservice"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("DASHBOARD")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Web struct {
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:10s"`
			IdleTimeout     time.Duration `conf:"default:120s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
			APIHost         string        `conf:"default:0.0.0.0:3000"`
			DebugHost       string        `conf:"default:0.0.0.0:4000"`
			CORSOrigin      string        `conf:"default:*"`
		}
		Auth struct {
			Domain       string        `conf:"default:inkwell.dev"`
			ChallengeTTL time.Duration `conf:"default:5m"`
			SessionTTL   time.Duration `conf:"default:24h"`
		}
		Store struct {
			SettingsFile string `conf:"default:zblog/settings.json"`
			SeedFile     string `conf:"default:zblog/seed.yaml"`
			FetchLimit   int    `conf:"default:4"`
		}
		Routes struct {
			File string
		}
		WalletConnect struct {
			ClientID         string `conf:"default:FREE_TRIAL"`
			Environment      string `conf:"default:prod"`
			BaseURL          string `conf:"default:https://connect.wander.app"`
			ServerBaseURL    string `conf:"default:https://connect-api.wander.app"`
			DevBaseURL       string `conf:"default:https://connect.wander.app"`
			DevServerBaseURL string `conf:"default:https://connect-api.wander.app"`
		}
		NameService struct {
			Folder string `conf:"default:zblog/accounts/"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "inkwell blog dashboard",
		},
	}

	// Parse will set the defaults and then look for any overriding values
	// in environment variables and command line flags.
	const prefix = "DASHBOARD"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	// Display the current configuration to the logs.
	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Route Table Support

	// The route table is validated once here. A broken table stops the
	// service from starting instead of failing during navigation.
	sm, err := sitemap.Load(cfg.Routes.File)
	if err != nil {
		return fmt.Errorf("loading sitemap: %w", err)
	}

	for _, e := range sm.Table.Entries() {
		r := e.Base()
		log.Infow("startup", "status", "route", "key", r.Key, "path", r.Path, "parent", r.Parent)
	}

	// =========================================================================
	// Name Service Support

	// The nameservice package provides name resolution for wallet addresses.
	// The names come from the file names in the accounts folder.
	ns, err := nameservice.New(cfg.NameService.Folder)
	if err != nil {
		return fmt.Errorf("unable to load account name service: %w", err)
	}

	// Logging the accounts for documentation in the logs.
	for addr, name := range ns.Copy() {
		log.Infow("startup", "status", "nameservice", "name", name, "wallet", addr)
	}

	// =========================================================================
	// Business Support

	settings, err := kvstore.NewFile(cfg.Store.SettingsFile)
	if err != nil {
		return fmt.Errorf("opening settings store: %w", err)
	}

	store, err := blogmem.LoadFile(cfg.Store.SeedFile)
	if err != nil {
		return fmt.Errorf("loading blog registry: %w", err)
	}

	// Every change to a blog is published through the events package and
	// fanned out to the websocket clients.
	evts := events.New()

	walletCore := wallet.NewCore(wallet.Config{
		Log:          log,
		Domain:       cfg.Auth.Domain,
		ChallengeTTL: cfg.Auth.ChallengeTTL,
		SessionTTL:   cfg.Auth.SessionTTL,
	})

	blogCore := blog.NewCore(blog.Config{
		Log:      log,
		Storer:   store,
		Uploader: media.NewMemory(),
		Evts:     evts,
	})

	workspaceCore := workspace.NewCore(workspace.Config{
		Log:     log,
		Fetcher: blogCore,
		Store:   settings,
		Limit:   cfg.Store.FetchLimit,
	})

	// =========================================================================
	// Start Debug Service

	log.Infow("startup", "status", "debug v1 router started", "host", cfg.Web.DebugHost)

	// The readiness check confirms the settings store can be read.
	ready := func() error {
		if _, err := settings.Get(workspace.ThemeKey("readiness")); err != nil && !errors.Is(err, kvstore.ErrNotFound) {
			return err
		}
		return nil
	}

	// Construct the mux for the debug calls.
	debugMux := handlers.DebugMux(build, log, ready)

	// Start the service listening for debug requests.
	// Not concerned with shutting this down with load shedding.
	go func() {
		if err := http.ListenAndServe(cfg.Web.DebugHost, debugMux); err != nil {
			log.Errorw("shutdown", "status", "debug v1 router closed", "host", cfg.Web.DebugHost, "ERROR", err)
		}
	}()

	// =========================================================================
	// Start API Service

	log.Infow("startup", "status", "initializing V1 API support")

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	// Construct the mux for the API calls and the pages.
	apiMux, err := handlers.APIMux(handlers.MuxConfig{
		Shutdown:  shutdown,
		Log:       log,
		Origin:    cfg.Web.CORSOrigin,
		Sitemap:   sm,
		Wallet:    walletCore,
		Blog:      blogCore,
		Workspace: workspaceCore,
		NS:        ns,
		Evts:      evts,
		Connect: configgrp.Handlers{
			ClientID: cfg.WalletConnect.ClientID,
			Domain:   cfg.Auth.Domain,
			Default:  cfg.WalletConnect.Environment,
			Environments: map[string]configgrp.Environment{
				"prod": {BaseURL: cfg.WalletConnect.BaseURL, ServerBaseURL: cfg.WalletConnect.ServerBaseURL},
				"dev":  {BaseURL: cfg.WalletConnect.DevBaseURL, ServerBaseURL: cfg.WalletConnect.DevServerBaseURL},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("constructing api mux: %w", err)
	}

	// Construct a server to service the requests against the mux.
	api := http.Server{
		Addr:         cfg.Web.APIHost,
		Handler:      apiMux,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log.Desugar()),
	}

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 1)

	// Start the service listening for api requests.
	go func() {
		log.Infow("startup", "status", "api router started", "host", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	// =========================================================================
	// Shutdown

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		// Release any web sockets that are currently active.
		log.Infow("shutdown", "status", "shutdown web socket channels")
		evts.Shutdown()

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		// Asking listener to shut down and shed load.
		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
