package cmd

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/inkwell/dashboard/business/core/workspace"
	"github.com/spf13/cobra"
)

var blogsCmd = &cobra.Command{
	Use:   "blogs",
	Short: "List the blogs the wallet is a member of.",
	Run:   blogsRun,
}

var selectCmd = &cobra.Command{
	Use:   "select <blogId>",
	Short: "Make the blog the selected one.",
	Args:  cobra.ExactArgs(1),
	Run:   selectRun,
}

func init() {
	rootCmd.AddCommand(blogsCmd)
	blogsCmd.AddCommand(selectCmd)
}

func blogsRun(cmd *cobra.Command, args []string) {
	var snap workspace.Snapshot
	if err := call(http.MethodGet, "/v1/workspace", nil, &snap); err != nil {
		log.Fatal(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "\tID\tTITLE\tROLES")
	for _, b := range snap.Blogs {
		marker := ""
		if b.ID == snap.Selected {
			marker = "*"
		}

		roles := make([]string, len(b.Roles))
		for i, r := range b.Roles {
			roles[i] = string(r)
		}

		title := b.Title()
		if b.Error != "" {
			title = "error: " + b.Error
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", marker, b.ID, title, strings.Join(roles, ","))
	}
}

func selectRun(cmd *cobra.Command, args []string) {
	if err := call(http.MethodPut, "/v1/workspace/selected", workspace.Select{BlogID: args[0]}, nil); err != nil {
		log.Fatal(err)
	}
}
