// Package federation implements the realm OpenID Federation policy commands.
package federation

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/cmd/fedctl/cmdutil"
	"github.com/marmos91/fedctl/internal/console"
)

// Cmd is the parent command for the realm federation policy.
var Cmd = &cobra.Command{
	Use:     "federation",
	Aliases: []string{"fed"},
	Short:   "Realm OpenID Federation policy",
	Long: `Show and edit the OpenID Federation policy of a realm.

Examples:
  # Show the policy and, when enabled, the trust anchors
  fedctl federation show

  # Enable federation
  fedctl federation enable

  # Set the authority hints and lifespan
  fedctl federation edit --authority-hint https://ta.example --lifespan 3600`,
}

func init() {
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(editCmd)
	Cmd.AddCommand(enableCmd)
	Cmd.AddCommand(disableCmd)
}

// loadSection fetches the realm and its trust anchors.
func loadSection(cmd *cobra.Command) (*console.FederationSection, error) {
	client, err := cmdutil.GetClient()
	if err != nil {
		return nil, err
	}
	deps, _ := cmdutil.ConsoleDeps(cmd.OutOrStdout(), cmd.ErrOrStderr())
	section := console.NewFederationSection(client, deps)
	if err := section.Load(cmd.Context()); err != nil && section.Realm() == nil {
		return nil, fmt.Errorf("failed to load realm %s: %w", client.Realm(), err)
	}
	return section, nil
}
