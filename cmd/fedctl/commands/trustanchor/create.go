package trustanchor

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/cmd/fedctl/cmdutil"
	"github.com/marmos91/fedctl/internal/cli/output"
	"github.com/marmos91/fedctl/internal/console"
)

var createFlags formFlags

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a trust anchor",
	Long: `Add a trust anchor to the realm.

Without flags every field is prompted for.

Examples:
  # Interactive
  fedctl trust-anchor create

  # With flags
  fedctl trust-anchor create --trust-anchor https://ta.example \
    --entity-type OPENID_PROVIDER --registration-type EXPLICIT`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

func init() {
	createFlags.register(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	deps, _ := cmdutil.ConsoleDeps(cmd.OutOrStdout(), cmd.ErrOrStderr())
	editor := console.NewAddTrustAnchor(client, deps)
	if err := createFlags.fill(cmd, editor); err != nil {
		return cmdutil.HandleAbort(cmd.OutOrStdout(), err)
	}

	if err := editor.Submit(cmd.Context()); err != nil {
		return cmdutil.FormError(cmd.ErrOrStderr(), err)
	}
	return printSaved(cmd, client, editor.CreatedID())
}

// printSaved re-reads the record for JSON and YAML output. Table output
// already has the success alert.
func printSaved(cmd *cobra.Command, client console.TrustAnchorAPI, id string) error {
	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil || format == output.FormatTable || id == "" {
		return err
	}
	f, err := client.GetOpenIDFederation(cmd.Context(), id)
	if err != nil {
		return err
	}
	if f == nil {
		return fmt.Errorf("trust anchor %s not found", id)
	}
	return cmdutil.PrintKeyValue(cmd.OutOrStdout(), f, nil)
}
