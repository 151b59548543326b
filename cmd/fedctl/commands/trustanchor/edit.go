package trustanchor

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/cmd/fedctl/cmdutil"
	"github.com/marmos91/fedctl/internal/console"
)

var editFlags formFlags

var editCmd = &cobra.Command{
	Use:   "edit <internal-id>",
	Short: "Edit a trust anchor",
	Long: `Edit a trust anchor of the realm.

Without flags every field is prompted for, starting from the stored values.
With flags only the given fields change.

Examples:
  # Interactive
  fedctl trust-anchor edit 5b1c...

  # Replace the entity types
  fedctl trust-anchor edit 5b1c... --entity-type OPENID_PROVIDER,OPENID_RELAYING_PARTY`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editFlags.register(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	deps, _ := cmdutil.ConsoleDeps(cmd.OutOrStdout(), cmd.ErrOrStderr())
	editor := console.NewEditTrustAnchor(client, deps, args[0])
	if err := editor.Load(cmd.Context()); err != nil {
		return fmt.Errorf("failed to load trust anchor: %w", err)
	}

	if err := editFlags.fill(cmd, editor); err != nil {
		return cmdutil.HandleAbort(cmd.OutOrStdout(), err)
	}

	if err := editor.Submit(cmd.Context()); err != nil {
		return cmdutil.FormError(cmd.ErrOrStderr(), err)
	}
	return printSaved(cmd, client, args[0])
}
