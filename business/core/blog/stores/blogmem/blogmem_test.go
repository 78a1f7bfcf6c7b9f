package blogmem_test

import (
	"context"
	"errors"
	"testing"

	"github.com/inkwell/dashboard/business/core/blog"
	"github.com/inkwell/dashboard/business/core/blog/stores/blogmem"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_LoadSeed(t *testing.T) {
	t.Log("Given the need to seed the registry from a file.")
	{
		ctx := context.Background()

		store, err := blogmem.LoadFile("../../../../../zblog/seed.yaml")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the seed: %s", failed, err)
		}
		t.Logf("\t%s\tShould be able to load the seed.", success)

		ms, err := store.WalletBlogs(ctx, "0xDD6B972FFCC631A62CAE1BB9D80B7FF429C8EBA4")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to query wallet blogs: %s", failed, err)
		}

		if len(ms) != 3 {
			t.Fatalf("\t%s\tShould match the wallet regardless of case, got %d blogs.", failed, len(ms))
		}
		t.Logf("\t%s\tShould match the wallet regardless of case.", success)

		posts, err := store.QueryPosts(ctx, ms[0].BlogID)
		if err != nil || len(posts) != 1 {
			t.Fatalf("\t%s\tShould load the posts of the blog: %v %d", failed, err, len(posts))
		}

		if posts[0].BlogID != ms[0].BlogID || posts[0].DateCreated.IsZero() {
			t.Fatalf("\t%s\tShould bind the posts to the blog: %+v", failed, posts[0])
		}
		t.Logf("\t%s\tShould bind the posts to the blog.", success)

		if _, err := store.QueryBlog(ctx, "missing"); !errors.Is(err, blog.ErrNotFound) {
			t.Fatalf("\t%s\tShould report a missing blog: %v", failed, err)
		}
		t.Logf("\t%s\tShould report a missing blog.", success)
	}
}

func Test_DuplicateSeed(t *testing.T) {
	seed := blogmem.Seed{
		Blogs: []blogmem.SeedBlog{
			{Details: blog.Details{ID: "a", Title: "One"}},
			{Details: blog.Details{ID: "a", Title: "Two"}},
		},
	}

	if _, err := blogmem.NewStore(seed); err == nil {
		t.Fatalf("\t%s\tShould reject duplicate blog ids.", failed)
	}
	t.Logf("\t%s\tShould reject duplicate blog ids.", success)
}
