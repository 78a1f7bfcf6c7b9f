package cmd

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/inkwell/dashboard/business/core/blog"
	"github.com/inkwell/dashboard/business/core/workspace"
	"github.com/spf13/cobra"
)

var blogID string

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List the posts of a blog.",
	Run:   postsRun,
}

var postsShowCmd = &cobra.Command{
	Use:   "show <postId>",
	Short: "Render a post in the terminal.",
	Args:  cobra.ExactArgs(1),
	Run:   postsShowRun,
}

var postsNewCmd = &cobra.Command{
	Use:   "new <title> [markdown file]",
	Short: "Create a draft post.",
	Args:  cobra.RangeArgs(1, 2),
	Run:   postsNewRun,
}

func init() {
	rootCmd.AddCommand(postsCmd)
	postsCmd.AddCommand(postsShowCmd)
	postsCmd.AddCommand(postsNewCmd)
	postsCmd.PersistentFlags().StringVarP(&blogID, "blog", "b", "", "Blog id, the selected blog when empty.")
}

// currentBlog returns the blog flag or the blog selected in the workspace.
func currentBlog() string {
	if blogID != "" {
		return blogID
	}

	var snap workspace.Snapshot
	if err := call(http.MethodGet, "/v1/workspace", nil, &snap); err != nil {
		log.Fatal(err)
	}

	if snap.Selected == "" {
		log.Fatal("no blog selected, pass --blog")
	}

	return snap.Selected
}

func postsRun(cmd *cobra.Command, args []string) {
	var posts []blog.Post
	if err := call(http.MethodGet, fmt.Sprintf("/v1/blogs/%s/posts", currentBlog()), nil, &posts); err != nil {
		log.Fatal(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tTITLE\tSTATE\tUPDATED")
	for _, p := range posts {
		state := "draft"
		if p.Published {
			state = "published"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Title, state, p.DateUpdated.Format("2006-01-02"))
	}
}

func postsShowRun(cmd *cobra.Command, args []string) {
	var p blog.Post
	if err := call(http.MethodGet, fmt.Sprintf("/v1/blogs/%s/posts/%s", currentBlog(), args[0]), nil, &p); err != nil {
		log.Fatal(err)
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	if err != nil {
		log.Fatal(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	if p.Description != "" {
		fmt.Fprintf(&b, "_%s_\n\n", p.Description)
	}
	b.WriteString(p.Body)

	out, err := r.Render(b.String())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Print(out)
}

func postsNewRun(cmd *cobra.Command, args []string) {
	np := blog.NewPost{
		Title: args[0],
	}

	if len(args) == 2 {
		data, err := os.ReadFile(args[1])
		if err != nil {
			log.Fatal(err)
		}
		np.Body = string(data)
	}

	var p blog.Post
	if err := call(http.MethodPost, fmt.Sprintf("/v1/blogs/%s/posts", currentBlog()), np, &p); err != nil {
		log.Fatal(err)
	}

	fmt.Println(p.ID, p.Slug)
}
