package routes_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/inkwell/dashboard/foundation/routes"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func dashboardTable(t *testing.T) *routes.Table {
	t.Helper()

	tbl, err := routes.New(
		routes.Leaf{Route: routes.Route{Key: "home", Path: "/", Title: "Dashboard", BreadcrumbTitle: "Home", Icon: "home"}},
		routes.Leaf{Route: routes.Route{Key: "blogInfo", Path: "/blog/:blogId/info", Title: "Blog Information", BreadcrumbTitle: "Info", Parent: "home", Params: []string{"blogId"}}},
		routes.Leaf{Route: routes.Route{Key: "blogSettings", Path: "/blog/:blogId/settings", Title: "Blog Settings", BreadcrumbTitle: "Settings", Parent: "home", Params: []string{"blogId"}}},
		routes.Branch{
			Route: routes.Route{Key: "posts", Path: "/posts/:blogId", Title: "Posts", Parent: "home", Params: []string{"blogId"}},
			Children: []routes.Route{
				{Key: "index", Path: "", Title: "Posts List", BreadcrumbTitle: "All Posts", HideFromBreadcrumb: true},
				{Key: "new", Path: "new", Title: "Create New Post", BreadcrumbTitle: "New Post", Params: []string{"blogId"}},
				{Key: "view", Path: ":postId", Title: "View Post", Params: []string{"blogId", "postId"}},
				{Key: "edit", Path: ":postId/edit", Title: "Edit Post", BreadcrumbTitle: "Edit", Params: []string{"blogId", "postId"}},
			},
		},
		routes.Leaf{Route: routes.Route{Key: "adminUsers", Path: "/admin/users", Title: "Users Management", BreadcrumbTitle: "Users", Parent: "home"}},
		routes.Leaf{Route: routes.Route{Key: "adminUserDetails", Path: "/admin/users/:userId", Title: "User Details", Parent: "adminUsers", Params: []string{"userId"}}},
		routes.Leaf{Route: routes.Route{Key: "adminNewUser", Path: "/admin/new-user", Title: "New User", Parent: "home"}},
	)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the route table: %v", failed, err)
	}

	return tbl
}

// =============================================================================

func Test_MatchPath(t *testing.T) {
	type table struct {
		name    string
		pattern string
		path    string
		match   bool
		params  routes.Params
	}

	tt := []table{
		{name: "root", pattern: "/", path: "/", match: true, params: routes.Params{}},
		{name: "literal", pattern: "/admin/users", path: "/admin/users", match: true, params: routes.Params{}},
		{name: "trailing", pattern: "/admin/users", path: "/admin/users/", match: true, params: routes.Params{}},
		{name: "params", pattern: "/posts/:blogId/:postId/edit", path: "/posts/abc/123/edit", match: true, params: routes.Params{"blogId": "abc", "postId": "123"}},
		{name: "extra", pattern: "/posts/:blogId/:postId/edit", path: "/posts/abc/123/edit/extra", match: false},
		{name: "short", pattern: "/posts/:blogId/:postId/edit", path: "/posts/abc", match: false},
		{name: "case", pattern: "/admin/users", path: "/Admin/users", match: false},
		{name: "literal-mismatch", pattern: "/blog/:blogId/info", path: "/blog/abc/settings", match: false},
	}

	t.Log("Given the need to match locations against path patterns.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen matching %q against %q.", testID, tst.path, tst.pattern)
				{
					params, ok := routes.MatchPath(tst.pattern, tst.path)
					if ok != tst.match {
						t.Fatalf("\t%s\tTest %d:\tShould get match=%v, got %v.", failed, testID, tst.match, ok)
					}
					t.Logf("\t%s\tTest %d:\tShould get match=%v.", success, testID, tst.match)

					if diff := cmp.Diff(tst.params, params); diff != "" {
						t.Fatalf("\t%s\tTest %d:\tShould get the expected params, diff:\n%s", failed, testID, diff)
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected params.", success, testID)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_Resolve(t *testing.T) {
	tbl := dashboardTable(t)

	type table struct {
		name   string
		path   string
		match  bool
		key    string
		params routes.Params
	}

	tt := []table{
		{name: "home", path: "/", match: true, key: "home", params: routes.Params{}},
		{name: "users", path: "/admin/users", match: true, key: "adminUsers", params: routes.Params{}},
		{name: "new-user", path: "/admin/new-user", match: true, key: "adminNewUser", params: routes.Params{}},
		{name: "blog-info", path: "/blog/XYZ/info", match: true, key: "blogInfo", params: routes.Params{"blogId": "XYZ"}},
		{name: "posts", path: "/posts/abc", match: true, key: "posts", params: routes.Params{"blogId": "abc"}},
		{name: "post-new", path: "/posts/abc/new", match: true, key: "posts_new", params: routes.Params{"blogId": "abc"}},
		{name: "post-view", path: "/posts/abc/123", match: true, key: "posts_view", params: routes.Params{"blogId": "abc", "postId": "123"}},
		{name: "post-edit", path: "/posts/abc/123/edit", match: true, key: "posts_edit", params: routes.Params{"blogId": "abc", "postId": "123"}},
		{name: "too-long", path: "/posts/abc/123/edit/extra", match: false},
		{name: "unknown", path: "/nowhere", match: false},
	}

	t.Log("Given the need to resolve locations against the route table.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen resolving %q.", testID, tst.path)
				{
					m, ok := tbl.Resolve(tst.path)
					if ok != tst.match {
						t.Fatalf("\t%s\tTest %d:\tShould get match=%v, got %v.", failed, testID, tst.match, ok)
					}
					t.Logf("\t%s\tTest %d:\tShould get match=%v.", success, testID, tst.match)

					if !tst.match {
						return
					}

					if m.Key != tst.key {
						t.Logf("\t\tTest %d:\tgot: %s", testID, m.Key)
						t.Logf("\t\tTest %d:\texp: %s", testID, tst.key)
						t.Fatalf("\t%s\tTest %d:\tShould resolve to the right key.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould resolve to the right key.", success, testID)

					if diff := cmp.Diff(tst.params, m.Params); diff != "" {
						t.Fatalf("\t%s\tTest %d:\tShould bind the right params, diff:\n%s", failed, testID, diff)
					}
					t.Logf("\t%s\tTest %d:\tShould bind the right params.", success, testID)

					if nested := strings.Contains(tst.key, routes.KeySeparator); m.Nested() != nested {
						t.Fatalf("\t%s\tTest %d:\tShould report nested=%v.", failed, testID, nested)
					}
					t.Logf("\t%s\tTest %d:\tShould report whether the route is nested.", success, testID)

					again, _ := tbl.Resolve(tst.path)
					if diff := cmp.Diff(m, again); diff != "" {
						t.Fatalf("\t%s\tTest %d:\tShould resolve the same way twice, diff:\n%s", failed, testID, diff)
					}
					t.Logf("\t%s\tTest %d:\tShould resolve the same way twice.", success, testID)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_ResolveLiteralRoutes(t *testing.T) {
	tbl := dashboardTable(t)

	t.Log("Given the need to resolve every literal route to itself.")
	{
		for _, e := range tbl.Entries() {
			r := e.Base()
			if len(r.Params) > 0 {
				continue
			}

			m, ok := tbl.Resolve(r.Path)
			if !ok || m.Key != r.Key || len(m.Params) != 0 {
				t.Fatalf("\t%s\tShould resolve %q to %s with no params, got %s %v.", failed, r.Path, r.Key, m.Key, m.Params)
			}
			t.Logf("\t%s\tShould resolve %q to %s with no params.", success, r.Path, r.Key)

			trail := tbl.Breadcrumbs(r.Key, nil)
			if n := len(trail); n == 0 || trail[n-1].Path != r.Path {
				t.Fatalf("\t%s\tShould build the configured path %q for %s: %+v", failed, r.Path, r.Key, trail)
			}
			t.Logf("\t%s\tShould build the configured path %q for %s.", success, r.Path, r.Key)
		}
	}
}

func Test_ResolveDeclarationOrder(t *testing.T) {
	t.Log("Given the need to break ties with declaration order.")
	{
		byID := routes.Leaf{Route: routes.Route{Key: "item", Path: "/items/:id", Title: "Item", Params: []string{"id"}}}
		create := routes.Leaf{Route: routes.Route{Key: "create", Path: "/items/new", Title: "Create"}}

		tbl, err := routes.New(byID, create)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the table: %v", failed, err)
		}

		if m, _ := tbl.Resolve("/items/new"); m.Key != "item" {
			t.Fatalf("\t%s\tShould pick the earlier placeholder route, got %s.", failed, m.Key)
		}
		t.Logf("\t%s\tShould pick the earlier placeholder route.", success)

		tbl, err = routes.New(create, byID)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the table: %v", failed, err)
		}

		if m, _ := tbl.Resolve("/items/new"); m.Key != "create" {
			t.Fatalf("\t%s\tShould pick the earlier literal route, got %s.", failed, m.Key)
		}
		t.Logf("\t%s\tShould pick the earlier literal route.", success)
	}
}

// =============================================================================

func Test_Breadcrumbs(t *testing.T) {
	tbl := dashboardTable(t)

	type table struct {
		name   string
		key    string
		params routes.Params
		trail  []routes.Crumb
	}

	tt := []table{
		{
			name:  "home",
			key:   "home",
			trail: []routes.Crumb{{Title: "Home", Path: "/", IsActive: true}},
		},
		{
			name:   "blog-info",
			key:    "blogInfo",
			params: routes.Params{"blogId": "XYZ"},
			trail: []routes.Crumb{
				{Title: "Home", Path: "/"},
				{Title: "Info", Path: "/blog/XYZ/info", IsActive: true},
			},
		},
		{
			name:   "user-details",
			key:    "adminUserDetails",
			params: routes.Params{"userId": "0xabc"},
			trail: []routes.Crumb{
				{Title: "Home", Path: "/"},
				{Title: "Users", Path: "/admin/users"},
				{Title: "User Details", Path: "/admin/users/0xabc", IsActive: true},
			},
		},
		{
			name:   "post-new",
			key:    "posts_new",
			params: routes.Params{"blogId": "abc"},
			trail: []routes.Crumb{
				{Title: "Home", Path: "/"},
				{Title: "Posts", Path: "/posts/abc"},
				{Title: "New Post", Path: "/posts/abc/new", IsActive: true},
			},
		},
		{
			name:   "post-edit",
			key:    "posts_edit",
			params: routes.Params{"blogId": "abc", "postId": "123"},
			trail: []routes.Crumb{
				{Title: "Home", Path: "/"},
				{Title: "Posts", Path: "/posts/abc"},
				{Title: "Edit", Path: "/posts/abc/123/edit", IsActive: true},
			},
		},
		{
			name:   "post-index",
			key:    "posts_index",
			params: routes.Params{"blogId": "abc"},
			trail: []routes.Crumb{
				{Title: "Home", Path: "/"},
				{Title: "Posts", Path: "/posts/abc", IsActive: true},
			},
		},
		{
			name:   "unresolved",
			key:    "blogInfo",
			params: routes.Params{},
			trail: []routes.Crumb{
				{Title: "Home", Path: "/"},
				{Title: "Info", Path: "/blog/:blogId/info", IsActive: true, Unresolved: []string{"blogId"}},
			},
		},
		{
			name: "unknown",
			key:  "nowhere",
		},
	}

	t.Log("Given the need to build breadcrumb trails.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen building the trail for %s.", testID, tst.key)
				{
					trail := tbl.Breadcrumbs(tst.key, tst.params)
					if diff := cmp.Diff(tst.trail, trail); diff != "" {
						t.Fatalf("\t%s\tTest %d:\tShould build the expected trail, diff:\n%s", failed, testID, diff)
					}
					t.Logf("\t%s\tTest %d:\tShould build the expected trail.", success, testID)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_TrailFromResolve(t *testing.T) {
	tbl := dashboardTable(t)

	t.Log("Given the need to build a trail straight from a resolved location.")
	{
		m, ok := tbl.Resolve("/posts/abc/123")
		if !ok {
			t.Fatalf("\t%s\tShould resolve the location.", failed)
		}

		exp := []routes.Crumb{
			{Title: "Home", Path: "/"},
			{Title: "Posts", Path: "/posts/abc"},
			{Title: "View Post", Path: "/posts/abc/123", IsActive: true},
		}
		if diff := cmp.Diff(exp, tbl.Trail(m)); diff != "" {
			t.Fatalf("\t%s\tShould build the trail for the nested match, diff:\n%s", failed, diff)
		}
		t.Logf("\t%s\tShould build the trail for the nested match.", success)
	}
}

func Test_HiddenRoutes(t *testing.T) {
	t.Log("Given the need to hide routes from breadcrumb trails.")
	{
		tbl, err := routes.New(
			routes.Leaf{Route: routes.Route{Key: "home", Path: "/", Title: "Home"}},
			routes.Leaf{Route: routes.Route{Key: "landing", Path: "/landing", Title: "Landing", HideFromBreadcrumb: true}},
			routes.Branch{
				Route: routes.Route{Key: "posts", Path: "/posts", Title: "Posts", Parent: "home", HideFromBreadcrumb: true},
				Children: []routes.Route{
					{Key: "new", Path: "new", Title: "Create New Post"},
				},
			},
		)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the table: %v", failed, err)
		}

		if trail := tbl.Breadcrumbs("landing", nil); len(trail) != 0 {
			t.Fatalf("\t%s\tShould render nothing for a hidden root route: %+v", failed, trail)
		}
		t.Logf("\t%s\tShould render nothing for a hidden root route.", success)

		exp := []routes.Crumb{
			{Title: "Home", Path: "/"},
			{Title: "Create New Post", Path: "/posts/new", IsActive: true},
		}
		if diff := cmp.Diff(exp, tbl.Breadcrumbs("posts_new", nil)); diff != "" {
			t.Fatalf("\t%s\tShould keep walking past a hidden branch, diff:\n%s", failed, diff)
		}
		t.Logf("\t%s\tShould keep walking past a hidden branch.", success)
	}
}

// =============================================================================

func Test_Validation(t *testing.T) {
	type table struct {
		name    string
		entries []routes.Entry
		err     error
	}

	leaf := func(key, path, parent string, params ...string) routes.Entry {
		return routes.Leaf{Route: routes.Route{Key: key, Path: path, Title: key, Parent: parent, Params: params}}
	}

	tt := []table{
		{
			name:    "dangling",
			entries: []routes.Entry{leaf("home", "/", ""), leaf("info", "/info", "missing")},
			err:     routes.ErrDanglingParent,
		},
		{
			name:    "cycle",
			entries: []routes.Entry{leaf("a", "/a", "b"), leaf("b", "/b", "a")},
			err:     routes.ErrCycle,
		},
		{
			name:    "self",
			entries: []routes.Entry{leaf("a", "/a", "a")},
			err:     routes.ErrCycle,
		},
		{
			name:    "duplicate-path",
			entries: []routes.Entry{leaf("a", "/blog/:id", ""), leaf("b", "/blog/:blogId", "")},
			err:     routes.ErrDuplicatePath,
		},
		{
			name:    "duplicate-key",
			entries: []routes.Entry{leaf("a", "/a", ""), leaf("a", "/b", "")},
			err:     routes.ErrDuplicateKey,
		},
		{
			name:    "undeclared-param",
			entries: []routes.Entry{leaf("a", "/a/:id", "", "blogId")},
			err:     routes.ErrUndeclaredParam,
		},
		{
			name:    "composite-key",
			entries: []routes.Entry{leaf("a_b", "/a", "")},
			err:     routes.ErrInvalidKey,
		},
		{
			name:    "relative-path",
			entries: []routes.Entry{leaf("a", "a", "")},
			err:     routes.ErrInvalidPath,
		},
		{
			name: "child-param",
			entries: []routes.Entry{
				routes.Branch{
					Route:    routes.Route{Key: "posts", Path: "/posts/:blogId", Params: []string{"blogId"}},
					Children: []routes.Route{{Key: "view", Path: ":postId", Params: []string{"blogId", "slug"}}},
				},
			},
			err: routes.ErrUndeclaredParam,
		},
		{
			name: "child-parent",
			entries: []routes.Entry{
				leaf("home", "/", ""),
				routes.Branch{
					Route:    routes.Route{Key: "posts", Path: "/posts"},
					Children: []routes.Route{{Key: "new", Path: "new", Parent: "home"}},
				},
			},
			err: routes.ErrDanglingParent,
		},
	}

	t.Log("Given the need to reject invalid route tables at construction.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen constructing the %s table.", testID, tst.name)
				{
					tbl, err := routes.New(tst.entries...)
					if tbl != nil {
						t.Fatalf("\t%s\tTest %d:\tShould not get a table back.", failed, testID)
					}

					if !errors.Is(err, tst.err) {
						t.Logf("\t\tTest %d:\tgot: %v", testID, err)
						t.Logf("\t\tTest %d:\texp: %v", testID, tst.err)
						t.Fatalf("\t%s\tTest %d:\tShould get the right error.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the right error.", success, testID)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

// =============================================================================

func Test_ParseYAML(t *testing.T) {
	doc := `
routes:
  - key: home
    path: /
    title: Dashboard
    breadcrumb: Home
  - key: posts
    path: /posts/:blogId
    title: Posts
    parent: home
    params: [blogId]
    children:
      - key: index
        path: ""
        title: Posts List
        hide_from_breadcrumb: true
      - key: new
        path: new
        title: Create New Post
        breadcrumb: New Post
        params: [blogId]
`

	t.Log("Given the need to load a route table from YAML.")
	{
		tbl, err := routes.ParseYAML([]byte(doc))
		if err != nil {
			t.Fatalf("\t%s\tShould be able to parse the document: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to parse the document.", success)

		r, ok := tbl.Lookup("posts_new")
		if !ok {
			t.Fatalf("\t%s\tShould find the nested route.", failed)
		}

		exp := routes.Route{
			Key:             "posts_new",
			Path:            "/posts/:blogId/new",
			Title:           "Create New Post",
			BreadcrumbTitle: "New Post",
			View:            "posts_new",
			Parent:          "posts",
			Params:          []string{"blogId"},
		}
		if diff := cmp.Diff(exp, r); diff != "" {
			t.Fatalf("\t%s\tShould get the nested route with its effective path, diff:\n%s", failed, diff)
		}
		t.Logf("\t%s\tShould get the nested route with its effective path.", success)

		url, _ := tbl.URL("posts_new", routes.Params{"blogId": "b1"})
		if url != "/posts/b1/new" {
			t.Fatalf("\t%s\tShould build the link, got %q.", failed, url)
		}
		t.Logf("\t%s\tShould build the link.", success)
	}
}

func Test_NavItems(t *testing.T) {
	tbl := dashboardTable(t)

	t.Log("Given the need to build navigation menus from the route table.")
	{
		items, err := tbl.NavItems([]routes.NavRef{{Key: "posts", Name: "All Posts", Expand: true}})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to build the menu: %v", failed, err)
		}

		exp := []routes.NavItem{
			{Key: "posts", Name: "All Posts", Route: "/posts/:blogId"},
			{Key: "posts_new", Name: "New Post", Route: "/posts/:blogId/new"},
			{Key: "posts_view", Name: "View Post", Route: "/posts/:blogId/:postId"},
			{Key: "posts_edit", Name: "Edit", Route: "/posts/:blogId/:postId/edit"},
		}
		if diff := cmp.Diff(exp, items); diff != "" {
			t.Fatalf("\t%s\tShould get the branch and its visible children, diff:\n%s", failed, diff)
		}
		t.Logf("\t%s\tShould get the branch and its visible children.", success)

		if href := items[1].Href(routes.Params{"blogId": "b1"}); href != "/posts/b1/new" {
			t.Fatalf("\t%s\tShould build the item link, got %q.", failed, href)
		}
		t.Logf("\t%s\tShould build the item link.", success)

		if _, err := tbl.NavItems([]routes.NavRef{{Key: "missing"}}); err == nil {
			t.Fatalf("\t%s\tShould reject an unknown route.", failed)
		}
		t.Logf("\t%s\tShould reject an unknown route.", success)
	}
}

func Test_Clean(t *testing.T) {
	tt := map[string]string{
		"":                "/",
		"/":               "/",
		"//blog//x/info/": "/blog/x/info",
		"/blog/a?b/info":  "/blog/a?b/info",
	}

	t.Log("Given the need to canonicalize locations.")
	{
		for in, exp := range tt {
			if got := routes.Clean(in); got != exp {
				t.Fatalf("\t%s\tShould clean %q to %q, got %q.", failed, in, exp, got)
			}
			t.Logf("\t%s\tShould clean %q to %q.", success, in, exp)
		}
	}
}

func Test_Location(t *testing.T) {
	tt := map[string]string{
		"blog/x?tab=1":          "/blog/x",
		"/posts/abc/new#editor": "/posts/abc/new",
		"//posts//abc/?draft=1": "/posts/abc",
		"/admin/users/":         "/admin/users",
	}

	t.Log("Given the need to clean raw locations carrying a query or fragment.")
	{
		for in, exp := range tt {
			if got := routes.Location(in); got != exp {
				t.Fatalf("\t%s\tShould clean %q to %q, got %q.", failed, in, exp, got)
			}
			t.Logf("\t%s\tShould clean %q to %q.", success, in, exp)
		}
	}
}
