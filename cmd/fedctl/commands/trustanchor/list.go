package trustanchor

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/cmd/fedctl/cmdutil"
	"github.com/marmos91/fedctl/internal/console"
	"github.com/marmos91/fedctl/pkg/apiclient"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List trust anchors",
	Long: `List the trust anchors of the realm.

Examples:
  # List as table
  fedctl trust-anchor list

  # List as JSON
  fedctl trust-anchor list -o json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// TrustAnchorList is a list of trust anchors for table rendering.
type TrustAnchorList []apiclient.OpenIDFederation

// Headers implements TableRenderer.
func (l TrustAnchorList) Headers() []string {
	return []string{"INTERNAL ID", "TRUST ANCHOR", "ENTITY TYPES", "REGISTRATION TYPES"}
}

// Rows implements TableRenderer.
func (l TrustAnchorList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, f := range l {
		rows = append(rows, []string{
			f.InternalID,
			f.TrustAnchor,
			cmdutil.JoinOr(f.EntityTypes, "-"),
			cmdutil.JoinOr(f.ClientRegistrationTypesSupported, "-"),
		})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	deps, _ := cmdutil.ConsoleDeps(cmd.OutOrStdout(), cmd.ErrOrStderr())
	view := console.NewTrustAnchorList(client, deps)
	if err := view.Load(cmd.Context()); err != nil {
		return fmt.Errorf("failed to list trust anchors: %w", err)
	}

	items := view.Items()
	return cmdutil.PrintOutput(cmd.OutOrStdout(), items, len(items) == 0, "No trust anchors configured.", TrustAnchorList(items))
}
