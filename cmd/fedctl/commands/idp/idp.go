// Package idp implements identity provider commands for fedctl.
package idp

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for identity providers.
var Cmd = &cobra.Command{
	Use:     "idp",
	Aliases: []string{"identity-provider"},
	Short:   "Identity provider management",
	Long: `Manage the identity providers of a realm, including OpenID Federation
providers.

Examples:
  # List identity providers
  fedctl idp list

  # Show an OpenID Federation provider with its metadata expiry
  fedctl idp get openid-federation

  # Add an OpenID Federation provider
  fedctl idp create-federation --issuer https://op.example --trust-anchor https://ta.example`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(createFederationCmd)
	Cmd.AddCommand(deleteCmd)
}
