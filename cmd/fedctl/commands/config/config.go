// Package config implements the configuration file commands for fedctl.
package config

import (
	"github.com/spf13/cobra"
)

// Cmd is the config subcommand.
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	Long: `Manage the fedctl and fedstub configuration file.

The file is read from --config or $XDG_CONFIG_HOME/fedctl/config.yaml.
Every key can be overridden with a FEDCTL_ environment variable, for
example FEDCTL_LOGGING_LEVEL=DEBUG.

Subcommands:
  init  Write a configuration file with the defaults
  show  Show the effective configuration`,
}

func init() {
	Cmd.AddCommand(initCmd)
	Cmd.AddCommand(showCmd)
}
