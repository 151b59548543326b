package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/marmos91/fedctl/cmd/fedctl/cmdutil"
	"github.com/marmos91/fedctl/internal/cli/output"
	"github.com/marmos91/fedctl/pkg/config"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the configuration after the file, the environment and the defaults
are merged. Table output prints YAML.

Examples:
  # Show as YAML
  fedctl config show

  # Show as JSON
  fedctl config show -o json`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(cmdutil.Flags.ConfigFile)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	if format != output.FormatJSON {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	// Round-trip through YAML so JSON keys follow the file keys.
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to convert config: %w", err)
	}
	return output.PrintJSON(cmd.OutOrStdout(), doc)
}
