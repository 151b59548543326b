package idp

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/cmd/fedctl/cmdutil"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <alias>",
	Short: "Delete an identity provider",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	alias := args[0]
	return cmdutil.RunDeleteWithConfirmation(cmd.OutOrStdout(), "identity provider", alias, deleteForce, func() error {
		if err := client.DeleteIdentityProvider(cmd.Context(), alias); err != nil {
			if isNotFound(err) {
				return fmt.Errorf("identity provider %s not found", alias)
			}
			return fmt.Errorf("failed to delete identity provider: %w", err)
		}
		cmdutil.Printer(cmd.OutOrStdout(), cmd.ErrOrStderr()).Success(fmt.Sprintf("Identity provider '%s' deleted", alias))
		return nil
	})
}
