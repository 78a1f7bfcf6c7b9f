// Package workspace keeps track of the blogs a connected wallet can work on
// and which one of them is selected.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/inkwell/dashboard/business/core/blog"
	"github.com/inkwell/dashboard/foundation/kvstore"
	"github.com/maruel/natural"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Set of error variables for the workspace.
var (
	ErrUnknownBlog  = errors.New("blog is not part of the workspace")
	ErrInvalidTheme = errors.New("theme must be light, dark or system")
)

// Fetcher declares the behavior this package needs to retrieve the blogs of
// a wallet.
type Fetcher interface {
	Memberships(ctx context.Context, wallet string) ([]blog.Membership, error)
	QueryBlog(ctx context.Context, wallet string, blogID string) (blog.Details, error)
}

// Config contains the systems the core depends on.
type Config struct {
	Log     *zap.SugaredLogger
	Fetcher Fetcher
	Store   kvstore.Store
	Limit   int
	Now     func() time.Time
}

// Core manages the workspaces of the connected wallets.
type Core struct {
	log     *zap.SugaredLogger
	fetcher Fetcher
	store   kvstore.Store
	limit   int
	now     func() time.Time

	mu    sync.Mutex
	snaps map[string]Snapshot
}

// NewCore constructs a core for workspace access.
func NewCore(cfg Config) *Core {
	if cfg.Limit <= 0 {
		cfg.Limit = 4
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Core{
		log:     cfg.Log,
		fetcher: cfg.Fetcher,
		store:   cfg.Store,
		limit:   cfg.Limit,
		now:     cfg.Now,
		snaps:   make(map[string]Snapshot),
	}
}

// SelectedKey is the store key holding the selected blog of the wallet.
func SelectedKey(wallet string) string {
	return "inkwell-selected-blog-" + strings.ToLower(wallet)
}

// ThemeKey is the store key holding the theme of the wallet.
func ThemeKey(wallet string) string {
	return "inkwell-theme-" + strings.ToLower(wallet)
}

// Load returns the workspace of the wallet, fetching it when it isn't
// cached yet.
func (c *Core) Load(ctx context.Context, wallet string) (Snapshot, error) {
	if snap, exists := c.cached(wallet); exists && snap.State == StateReady {
		return snap, nil
	}

	return c.fetch(ctx, wallet)
}

// Snapshot returns the cached workspace of the wallet without fetching.
func (c *Core) Snapshot(wallet string) (Snapshot, bool) {
	return c.cached(wallet)
}

// Refresh drops the cached workspace of the wallet and fetches it again.
func (c *Core) Refresh(ctx context.Context, wallet string) (Snapshot, error) {
	c.Forget(wallet)
	return c.fetch(ctx, wallet)
}

// Forget drops the cached workspace of the wallet. The stored selection is
// kept for the next connection.
func (c *Core) Forget(wallet string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.snaps, strings.ToLower(wallet))
}

// Select makes the blog the selected one and stores the choice.
func (c *Core) Select(ctx context.Context, wallet string, blogID string) (Snapshot, error) {
	snap, err := c.Load(ctx, wallet)
	if err != nil {
		return Snapshot{}, err
	}

	if !snap.Contains(blogID) {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrUnknownBlog, blogID)
	}

	if err := c.store.Set(SelectedKey(wallet), blogID); err != nil {
		return Snapshot{}, fmt.Errorf("storing selection: %w", err)
	}

	snap.Selected = blogID
	c.save(snap)

	c.log.Infow("workspace", "status", "blog selected", "wallet", wallet, "blogID", blogID)

	return snap, nil
}

// Theme returns the stored theme of the wallet.
func (c *Core) Theme(wallet string) (Theme, error) {
	v, err := c.store.Get(ThemeKey(wallet))
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
		return DefaultTheme, nil
	case err != nil:
		return "", fmt.Errorf("reading theme: %w", err)
	}

	theme := Theme(v)
	if !theme.valid() {
		return DefaultTheme, nil
	}

	return theme, nil
}

// SetTheme stores the theme of the wallet.
func (c *Core) SetTheme(wallet string, theme Theme) error {
	if !theme.valid() {
		return ErrInvalidTheme
	}

	if err := c.store.Set(ThemeKey(wallet), string(theme)); err != nil {
		return fmt.Errorf("storing theme: %w", err)
	}

	return nil
}

// =============================================================================

func (c *Core) fetch(ctx context.Context, wallet string) (Snapshot, error) {
	c.save(Snapshot{Wallet: wallet, State: StateLoading})

	ms, err := c.fetcher.Memberships(ctx, wallet)
	if err != nil {
		c.save(Snapshot{Wallet: wallet, State: StateFailed, Error: err.Error(), Loaded: c.now()})
		return Snapshot{}, fmt.Errorf("fetching blogs: wallet[%s]: %w", wallet, err)
	}

	blogs := make([]Blog, len(ms))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.limit)

	for i, m := range ms {
		blogs[i] = Blog{ID: m.BlogID, Roles: m.Roles}

		g.Go(func() error {
			d, err := c.fetcher.QueryBlog(gctx, wallet, m.BlogID)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}

				c.log.Warnw("workspace", "status", "blog details failed", "wallet", wallet, "blogID", m.BlogID, "ERROR", err)
				blogs[i].Error = err.Error()
				return nil
			}

			blogs[i].Details = &d
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.save(Snapshot{Wallet: wallet, State: StateFailed, Error: err.Error(), Loaded: c.now()})
		return Snapshot{}, fmt.Errorf("fetching details: wallet[%s]: %w", wallet, err)
	}

	sort.SliceStable(blogs, func(i, j int) bool {
		return natural.Less(blogs[i].Title(), blogs[j].Title())
	})

	snap := Snapshot{
		Wallet: wallet,
		State:  StateReady,
		Blogs:  blogs,
		Loaded: c.now(),
	}

	snap.Selected, err = c.restore(wallet, blogs)
	if err != nil {
		c.save(Snapshot{Wallet: wallet, State: StateFailed, Error: err.Error(), Loaded: c.now()})
		return Snapshot{}, err
	}

	c.save(snap)

	c.log.Infow("workspace", "status", "loaded", "wallet", wallet, "blogs", len(blogs), "selected", snap.Selected)

	return snap, nil
}

// restore returns the stored selection when it is still one of the blogs,
// otherwise the first blog, and stores the result.
func (c *Core) restore(wallet string, blogs []Blog) (string, error) {
	key := SelectedKey(wallet)

	saved, err := c.store.Get(key)
	if err != nil && !errors.Is(err, kvstore.ErrNotFound) {
		return "", fmt.Errorf("reading selection: %w", err)
	}

	if slices.ContainsFunc(blogs, func(b Blog) bool { return b.ID == saved }) {
		return saved, nil
	}

	if len(blogs) == 0 {
		if saved != "" {
			if err := c.store.Delete(key); err != nil && !errors.Is(err, kvstore.ErrNotFound) {
				return "", fmt.Errorf("clearing selection: %w", err)
			}
		}
		return "", nil
	}

	selected := blogs[0].ID
	if err := c.store.Set(key, selected); err != nil {
		return "", fmt.Errorf("storing selection: %w", err)
	}

	return selected, nil
}

func (c *Core) cached(wallet string) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, exists := c.snaps[strings.ToLower(wallet)]
	return snap, exists
}

func (c *Core) save(snap Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snaps[strings.ToLower(snap.Wallet)] = snap
}

func (t Theme) valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// Invalidate drops every cached workspace that contains the blog so the
// next load fetches fresh details.
func (c *Core) Invalidate(blogID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for w, snap := range c.snaps {
		if snap.Contains(blogID) {
			delete(c.snaps, w)
		}
	}
}
