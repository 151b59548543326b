package context

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/cmd/fedctl/cmdutil"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a context",
	Long: `Delete a saved server context. Deleting the current context leaves no
context selected.

Examples:
  # Delete with confirmation
  fedctl context delete staging

  # Delete without confirmation
  fedctl context delete staging --force`,
	Args: cobra.ExactArgs(1),
	RunE: runContextDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation")
}

func runContextDelete(cmd *cobra.Command, args []string) error {
	name := args[0]
	store, err := openStore()
	if err != nil {
		return err
	}
	if _, err := store.Get(name); err != nil {
		return notFound(name, err)
	}

	return cmdutil.RunDeleteWithConfirmation(cmd.OutOrStdout(), "context", name, deleteForce, func() error {
		if err := store.Delete(name); err != nil {
			return notFound(name, err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Context '%s' deleted\n", name)
		return nil
	})
}
