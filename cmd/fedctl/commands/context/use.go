package context

import (
	"fmt"

	"github.com/spf13/cobra"
)

var useCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Switch to a different context",
	Long: `Switch to a different server context.

This changes the active context used for subsequent commands.

Examples:
  # Switch to context named "production"
  fedctl context use production`,
	Args: cobra.ExactArgs(1),
	RunE: runContextUse,
}

func runContextUse(cmd *cobra.Command, args []string) error {
	contextName := args[0]

	store, err := openStore()
	if err != nil {
		return err
	}

	if err := store.Use(contextName); err != nil {
		return notFound(contextName, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Switched to context: %s\n", contextName)
	return nil
}
