package idp

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/cmd/fedctl/cmdutil"
	"github.com/marmos91/fedctl/pkg/apiclient"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List identity providers",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

// ProviderList is a list of identity providers for table rendering.
type ProviderList []apiclient.IdentityProvider

// Headers implements TableRenderer.
func (l ProviderList) Headers() []string {
	return []string{"ALIAS", "PROVIDER", "DISPLAY NAME", "ENABLED"}
}

// Rows implements TableRenderer.
func (l ProviderList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, p := range l {
		rows = append(rows, []string{p.Alias, p.ProviderID, cmdutil.EmptyOr(p.DisplayName, "-"), cmdutil.BoolToYesNo(p.Enabled)})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	providers, err := client.ListIdentityProviders(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list identity providers: %w", err)
	}
	return cmdutil.PrintOutput(cmd.OutOrStdout(), providers, len(providers) == 0, "No identity providers configured.", ProviderList(providers))
}
