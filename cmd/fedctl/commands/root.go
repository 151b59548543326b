// Package commands implements the CLI commands for fedctl.
package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/cmd/fedctl/cmdutil"
	configcmd "github.com/marmos91/fedctl/cmd/fedctl/commands/config"
	ctxcmd "github.com/marmos91/fedctl/cmd/fedctl/commands/context"
	federationcmd "github.com/marmos91/fedctl/cmd/fedctl/commands/federation"
	idpcmd "github.com/marmos91/fedctl/cmd/fedctl/commands/idp"
	tokenscmd "github.com/marmos91/fedctl/cmd/fedctl/commands/tokens"
	tacmd "github.com/marmos91/fedctl/cmd/fedctl/commands/trustanchor"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fedctl",
	Short: "OpenID Federation admin client",
	Long: `fedctl manages the OpenID Federation settings of an identity platform
realm through its admin REST API.

Use it to configure trust anchors, the realm federation policy, OpenID
Federation identity providers and realm token lifespans.

Use "fedctl [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Sync flags to cmdutil.Flags for subcommands
		cmdutil.Flags.ServerURL, _ = cmd.Flags().GetString("server")
		cmdutil.Flags.Realm, _ = cmd.Flags().GetString("realm")
		cmdutil.Flags.Token, _ = cmd.Flags().GetString("token")
		cmdutil.Flags.Output, _ = cmd.Flags().GetString("output")
		cmdutil.Flags.ConfigFile, _ = cmd.Flags().GetString("config")
		cmdutil.Flags.NoColor, _ = cmd.Flags().GetBool("no-color")
		cmdutil.Flags.Verbose, _ = cmd.Flags().GetBool("verbose")

		return cmdutil.Setup(cmd.Context(), Version, cmd.Flags().Changed("output"))
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		cmdutil.Teardown(cmd.Context())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext is Execute with ctx passed to every command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().String("server", "", "Admin API base URL (overrides the current context)")
	rootCmd.PersistentFlags().String("realm", "", "Realm to operate on (overrides the current context)")
	rootCmd.PersistentFlags().String("token", "", "Bearer token (overrides the current context)")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format (table|json|yaml)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: $XDG_CONFIG_HOME/fedctl/config.yaml)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(ctxcmd.Cmd)
	rootCmd.AddCommand(configcmd.Cmd)
	rootCmd.AddCommand(tacmd.Cmd)
	rootCmd.AddCommand(federationcmd.Cmd)
	rootCmd.AddCommand(idpcmd.Cmd)
	rootCmd.AddCommand(tokenscmd.Cmd)
}
