package workspace_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/inkwell/dashboard/business/core/blog"
	"github.com/inkwell/dashboard/business/core/workspace"
	"github.com/inkwell/dashboard/foundation/kvstore"
	"go.uber.org/zap"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

const wallet = "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4"

type fetcher struct {
	ms      []blog.Membership
	titles  map[string]string
	broken  map[string]bool
	calls   atomic.Int32
	listErr error
}

func (f *fetcher) Memberships(ctx context.Context, wallet string) ([]blog.Membership, error) {
	f.calls.Add(1)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.ms, nil
}

func (f *fetcher) QueryBlog(ctx context.Context, wallet string, blogID string) (blog.Details, error) {
	if f.broken[blogID] {
		return blog.Details{}, errors.New("process unreachable")
	}
	return blog.Details{ID: blogID, Title: f.titles[blogID]}, nil
}

func newFetcher() *fetcher {
	return &fetcher{
		ms: []blog.Membership{
			{BlogID: "c10", Roles: []blog.Role{blog.RoleAdmin}},
			{BlogID: "notes", Roles: []blog.Role{blog.RoleEditor}},
			{BlogID: "c9", Roles: []blog.Role{blog.RoleAdmin}},
			{BlogID: "gone", Roles: []blog.Role{blog.RoleEditor}},
		},
		titles: map[string]string{
			"c10":   "Changelog 10",
			"c9":    "Changelog 9",
			"notes": "Field Notes",
		},
		broken: map[string]bool{"gone": true},
	}
}

func newCore(f *fetcher, store kvstore.Store) *workspace.Core {
	return workspace.NewCore(workspace.Config{
		Log:     zap.NewNop().Sugar(),
		Fetcher: f,
		Store:   store,
		Limit:   2,
	})
}

func Test_Load(t *testing.T) {
	t.Log("Given the need to load the workspace of a wallet.")
	{
		ctx := context.Background()
		f := newFetcher()
		store := kvstore.NewMemory()
		core := newCore(f, store)

		snap, err := core.Load(ctx, wallet)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the workspace: %s", failed, err)
		}
		t.Logf("\t%s\tShould be able to load the workspace.", success)

		var got []string
		for _, b := range snap.Blogs {
			got = append(got, b.Title())
		}

		exp := []string{"Changelog 9", "Changelog 10", "Field Notes", "gone"}
		if diff := cmp.Diff(exp, got); diff != "" {
			t.Fatalf("\t%s\tShould order the blogs naturally by title. Diff:\n%s", failed, diff)
		}
		t.Logf("\t%s\tShould order the blogs naturally by title.", success)

		last := snap.Blogs[len(snap.Blogs)-1]
		if last.Error == "" || last.Details != nil {
			t.Fatalf("\t%s\tShould keep a blog whose details failed and record the error: %+v", failed, last)
		}
		t.Logf("\t%s\tShould keep a blog whose details failed and record the error.", success)

		if snap.State != workspace.StateReady || snap.Selected != "c9" {
			t.Fatalf("\t%s\tShould select the first blog by default: %s %s", failed, snap.State, snap.Selected)
		}
		t.Logf("\t%s\tShould select the first blog by default.", success)

		saved, err := store.Get(workspace.SelectedKey(wallet))
		if err != nil || saved != "c9" {
			t.Fatalf("\t%s\tShould store the default selection: %q %v", failed, saved, err)
		}
		t.Logf("\t%s\tShould store the default selection.", success)

		if _, err := core.Load(ctx, wallet); err != nil || f.calls.Load() != 1 {
			t.Fatalf("\t%s\tShould serve the second load from cache: calls[%d] %v", failed, f.calls.Load(), err)
		}
		t.Logf("\t%s\tShould serve the second load from cache.", success)
	}
}

func Test_Select(t *testing.T) {
	t.Log("Given the need to select a blog and restore the selection.")
	{
		ctx := context.Background()
		f := newFetcher()
		store := kvstore.NewMemory()
		core := newCore(f, store)

		snap, err := core.Select(ctx, wallet, "notes")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to select a blog: %s", failed, err)
		}

		cur, ok := snap.Current()
		if !ok || cur.Title() != "Field Notes" {
			t.Fatalf("\t%s\tShould make the blog current: %+v", failed, cur)
		}
		t.Logf("\t%s\tShould make the blog current.", success)

		if _, err := core.Select(ctx, wallet, "someone-else"); !errors.Is(err, workspace.ErrUnknownBlog) {
			t.Fatalf("\t%s\tShould reject a blog outside the workspace: %v", failed, err)
		}
		t.Logf("\t%s\tShould reject a blog outside the workspace.", success)

		core.Forget(wallet)

		snap, err = newCore(f, store).Load(ctx, wallet)
		if err != nil || snap.Selected != "notes" {
			t.Fatalf("\t%s\tShould restore the stored selection: %q %v", failed, snap.Selected, err)
		}
		t.Logf("\t%s\tShould restore the stored selection.", success)

		f.ms = f.ms[:1]

		snap, err = core.Refresh(ctx, wallet)
		if err != nil || snap.Selected != "c10" {
			t.Fatalf("\t%s\tShould fall back to the first blog when the stored one is gone: %q %v", failed, snap.Selected, err)
		}
		t.Logf("\t%s\tShould fall back to the first blog when the stored one is gone.", success)
	}
}

func Test_LoadFailure(t *testing.T) {
	t.Log("Given the need to report a failed workspace load.")
	{
		f := newFetcher()
		f.listErr = errors.New("gateway timeout")
		core := newCore(f, kvstore.NewMemory())

		if _, err := core.Load(context.Background(), wallet); !errors.Is(err, f.listErr) {
			t.Fatalf("\t%s\tShould return the fetch error: %v", failed, err)
		}

		snap, ok := core.Snapshot(wallet)
		if !ok || snap.State != workspace.StateFailed || snap.Error == "" {
			t.Fatalf("\t%s\tShould record the failure: %+v", failed, snap)
		}
		t.Logf("\t%s\tShould record the failure.", success)
	}
}

// brokenStore fails every operation.
type brokenStore struct {
	err error
}

func (b brokenStore) Get(key string) (string, error) { return "", b.err }
func (b brokenStore) Set(key string, value string) error { return b.err }
func (b brokenStore) Delete(key string) error { return b.err }

func Test_LoadStoreFailure(t *testing.T) {
	t.Log("Given the need to report a workspace whose selection can't be read.")
	{
		store := brokenStore{err: errors.New("disk gone")}
		core := newCore(newFetcher(), store)

		if _, err := core.Load(context.Background(), wallet); !errors.Is(err, store.err) {
			t.Fatalf("\t%s\tShould return the store error: %v", failed, err)
		}
		t.Logf("\t%s\tShould return the store error.", success)

		snap, ok := core.Snapshot(wallet)
		if !ok || snap.State != workspace.StateFailed || snap.Error == "" {
			t.Fatalf("\t%s\tShould not be left loading: %+v", failed, snap)
		}
		t.Logf("\t%s\tShould not be left loading.", success)
	}
}

func Test_Theme(t *testing.T) {
	t.Log("Given the need to store the theme of a wallet.")
	{
		core := newCore(newFetcher(), kvstore.NewMemory())

		theme, err := core.Theme(wallet)
		if err != nil || theme != workspace.DefaultTheme {
			t.Fatalf("\t%s\tShould default the theme: %q %v", failed, theme, err)
		}
		t.Logf("\t%s\tShould default the theme.", success)

		if err := core.SetTheme(wallet, workspace.ThemeLight); err != nil {
			t.Fatalf("\t%s\tShould be able to set the theme: %s", failed, err)
		}

		if theme, _ := core.Theme(wallet); theme != workspace.ThemeLight {
			t.Fatalf("\t%s\tShould return the stored theme: %q", failed, theme)
		}
		t.Logf("\t%s\tShould return the stored theme.", success)

		if err := core.SetTheme(wallet, "sepia"); !errors.Is(err, workspace.ErrInvalidTheme) {
			t.Fatalf("\t%s\tShould reject an unknown theme: %v", failed, err)
		}
		t.Logf("\t%s\tShould reject an unknown theme.", success)
	}
}
