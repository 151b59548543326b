package trustanchor

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/cmd/fedctl/cmdutil"
	"github.com/marmos91/fedctl/pkg/apiclient"
)

var getCmd = &cobra.Command{
	Use:   "get <internal-id>",
	Short: "Show a trust anchor",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func detailPairs(f *apiclient.OpenIDFederation) [][2]string {
	return [][2]string{
		{"Internal ID", f.InternalID},
		{"Trust anchor", f.TrustAnchor},
		{"Entity types", cmdutil.JoinOr(f.EntityTypes, "-")},
		{"Client registration types", cmdutil.JoinOr(f.ClientRegistrationTypesSupported, "-")},
	}
}

func runGet(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	f, err := client.GetOpenIDFederation(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get trust anchor: %w", err)
	}
	if f == nil {
		return fmt.Errorf("trust anchor %s not found", args[0])
	}
	return cmdutil.PrintKeyValue(cmd.OutOrStdout(), f, detailPairs(f))
}
