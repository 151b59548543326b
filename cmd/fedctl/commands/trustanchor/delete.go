package trustanchor

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/cmd/fedctl/cmdutil"
	"github.com/marmos91/fedctl/internal/cli/prompt"
	"github.com/marmos91/fedctl/internal/console"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <internal-id>",
	Short: "Delete a trust anchor",
	Long: `Delete a trust anchor from the realm.

Examples:
  # Delete with confirmation
  fedctl trust-anchor delete 5b1c...

  # Delete without confirmation
  fedctl trust-anchor delete 5b1c... --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	deps, _ := cmdutil.ConsoleDeps(cmd.OutOrStdout(), cmd.ErrOrStderr())
	view := console.NewTrustAnchorList(client, deps)
	if err := view.Load(cmd.Context()); err != nil {
		return fmt.Errorf("failed to list trust anchors: %w", err)
	}

	confirm, err := view.RequestDelete(args[0])
	if err != nil {
		return err
	}

	ok, err := prompt.ConfirmWithForce(confirm.Message, deleteForce)
	if err != nil || !ok {
		view.CancelDelete()
		if err == nil {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
		}
		return cmdutil.HandleAbort(cmd.OutOrStdout(), err)
	}

	if err := view.ConfirmDelete(cmd.Context()); err != nil {
		return cmdutil.FormError(cmd.ErrOrStderr(), err)
	}
	return nil
}
