// Package trustanchor implements trust anchor management commands for fedctl.
package trustanchor

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for trust anchor management.
var Cmd = &cobra.Command{
	Use:     "trust-anchor",
	Aliases: []string{"ta"},
	Short:   "Trust anchor management",
	Long: `Manage the OpenID Federation trust anchors of a realm.

Examples:
  # List trust anchors
  fedctl trust-anchor list

  # Add a trust anchor interactively
  fedctl ta create

  # Add a trust anchor with flags
  fedctl ta create --trust-anchor https://ta.example --entity-type OPENID_PROVIDER

  # Edit a trust anchor
  fedctl ta edit 5b1c...

  # Delete a trust anchor
  fedctl ta delete 5b1c...`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(editCmd)
	Cmd.AddCommand(deleteCmd)
}
