package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/cmd/fedctl/cmdutil"
	"github.com/marmos91/fedctl/internal/console/routes"
)

var routesCmd = &cobra.Command{
	Use:   "routes [path]",
	Short: "List console routes or resolve a path",
	Long: `List the admin console routes, or resolve a console path to its route
and parameters.

Examples:
  # Route table
  fedctl routes

  # Which screen does a path open?
  fedctl routes /master/openid-federation/add`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRoutes,
}

// RouteList is the route table for rendering.
type RouteList []routes.Route

// Headers implements TableRenderer.
func (rl RouteList) Headers() []string {
	return []string{"NAME", "PATH", "TITLE", "ACCESS"}
}

// Rows implements TableRenderer.
func (rl RouteList) Rows() [][]string {
	rows := make([][]string, 0, len(rl))
	for _, r := range rl {
		rows = append(rows, []string{r.Name, r.Path, r.Title, strings.Join(r.Access, ", ")})
	}
	return rows
}

type resolvedRoute struct {
	Name   string            `json:"name"`
	Path   string            `json:"path"`
	Title  string            `json:"title"`
	Params map[string]string `json:"params"`
}

func runRoutes(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	if len(args) == 0 {
		return cmdutil.PrintOutput(w, routes.Table, false, "", RouteList(routes.Table))
	}

	route, params, ok := routes.Match(args[0])
	if !ok {
		return fmt.Errorf("no route matches %s", args[0])
	}
	pairs := [][2]string{{"Name", route.Name}, {"Route", route.Path}, {"Title", route.Title}}
	for _, seg := range strings.Split(strings.Trim(route.Path, "/"), "/") {
		if name, isParam := strings.CutPrefix(seg, ":"); isParam {
			pairs = append(pairs, [2]string{name, params[name]})
		}
	}
	return cmdutil.PrintKeyValue(w, resolvedRoute{Name: route.Name, Path: route.Path, Title: route.Title, Params: params}, pairs)
}
