package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/inkwell/dashboard/business/web/v1/sitemap"
	"github.com/inkwell/dashboard/foundation/routes"
	"github.com/spf13/cobra"
)

var routesFile string

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Inspect the route table.",
}

var routesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every route with its effective path.",
	Run:   routesListRun,
}

var routesResolveCmd = &cobra.Command{
	Use:   "resolve <path>",
	Short: "Resolve a location and print its breadcrumb trail.",
	Args:  cobra.ExactArgs(1),
	Run:   routesResolveRun,
}

var routesTrailCmd = &cobra.Command{
	Use:   "trail <key> [name=value...]",
	Short: "Print the breadcrumb trail of a route key.",
	Args:  cobra.MinimumNArgs(1),
	Run:   routesTrailRun,
}

func init() {
	rootCmd.AddCommand(routesCmd)
	routesCmd.AddCommand(routesListCmd)
	routesCmd.AddCommand(routesResolveCmd)
	routesCmd.AddCommand(routesTrailCmd)
	routesCmd.PersistentFlags().StringVarP(&routesFile, "file", "f", "", "Route table document, the built in table when empty.")
}

func loadSitemap() *sitemap.Sitemap {
	sm, err := sitemap.Load(routesFile)
	if err != nil {
		log.Fatal(err)
	}
	return sm
}

func routesListRun(cmd *cobra.Command, args []string) {
	sm := loadSitemap()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "KEY\tPATH\tTITLE")
	for _, e := range sm.Table.Entries() {
		r := e.Base()
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Key, r.Path, r.Title)

		for _, c := range sm.Table.Children(r.Key) {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", c.Key, c.Path, c.Title)
		}
	}
}

func routesResolveRun(cmd *cobra.Command, args []string) {
	sm := loadSitemap()

	m, ok := sm.Table.Resolve(routes.Location(args[0]))
	if !ok {
		fmt.Println("no route matches", args[0])
		os.Exit(1)
	}

	fmt.Println("Key:   ", m.Key)
	fmt.Println("Title: ", m.Route.Title)
	for k, v := range m.Params {
		fmt.Printf("Param:  %s=%s\n", k, v)
	}

	fmt.Println()
	printTrail(sm.Table.Trail(m))
}

func routesTrailRun(cmd *cobra.Command, args []string) {
	sm := loadSitemap()

	if _, ok := sm.Table.Lookup(args[0]); !ok {
		fmt.Println("unknown route key", args[0])
		os.Exit(1)
	}

	params := make(routes.Params)
	for _, kv := range args[1:] {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			log.Fatalf("param %q must be name=value", kv)
		}
		params[name] = value
	}

	printTrail(sm.Table.Breadcrumbs(args[0], params))
}

func printTrail(trail []routes.Crumb) {
	for _, c := range trail {
		marker := " "
		if c.IsActive {
			marker = "*"
		}
		fmt.Printf("%s %-12s %s", marker, c.Title, c.Path)
		if len(c.Unresolved) > 0 {
			fmt.Printf("  (unresolved: %s)", strings.Join(c.Unresolved, ", "))
		}
		fmt.Println()
	}
}
