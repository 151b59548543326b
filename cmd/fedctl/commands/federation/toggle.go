package federation

import (
	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/cmd/fedctl/cmdutil"
	"github.com/marmos91/fedctl/internal/cli/output"
	"github.com/marmos91/fedctl/internal/console"
)

var enableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable OpenID Federation for the realm",
	Long: `Enable OpenID Federation for the realm. The stored policy must be valid,
so set authority hints first with "fedctl federation edit" if there are none.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToggle(cmd, true)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable OpenID Federation for the realm",
	Long: `Disable OpenID Federation for the realm. Trust anchors are kept and show
up again when federation is enabled.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToggle(cmd, false)
	},
}

func runToggle(cmd *cobra.Command, on bool) error {
	section, err := loadSection(cmd)
	if err != nil {
		return err
	}
	section.SetEnabled(on)
	if err := section.Save(cmd.Context()); err != nil {
		return cmdutil.FormError(cmd.ErrOrStderr(), err)
	}
	return printSaved(cmd, section)
}

// printSaved prints the saved section for JSON and YAML output.
func printSaved(cmd *cobra.Command, section *console.FederationSection) error {
	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil || format == output.FormatTable {
		return err
	}
	return printSection(cmd.OutOrStdout(), section)
}
