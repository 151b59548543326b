package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/cmd/fedctl/cmdutil"
	"github.com/marmos91/fedctl/internal/cli/output"
	"github.com/marmos91/fedctl/pkg/apiclient"
)

var schemaCmd = &cobra.Command{
	Use:   "schema <kind>",
	Short: "Print the JSON schema of a wire representation",
	Long: fmt.Sprintf(`Print the JSON schema of a representation exchanged with the admin API.

Kinds: %s

Examples:
  # Schema of a trust anchor
  fedctl schema trust-anchor

  # As YAML
  fedctl schema realm -o yaml`, strings.Join(apiclient.SchemaKinds(), ", ")),
	Args:      cobra.ExactArgs(1),
	ValidArgs: apiclient.SchemaKinds(),
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := apiclient.Schema(args[0])
		if err != nil {
			return err
		}
		if cmdutil.GetOutputFormat() == string(output.FormatYAML) {
			return output.PrintYAML(cmd.OutOrStdout(), schema)
		}
		return output.PrintJSON(cmd.OutOrStdout(), schema)
	},
}
