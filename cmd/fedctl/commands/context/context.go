// Package context implements context management subcommands for fedctl.
package context

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/internal/cli/credentials"
)

// Cmd is the context subcommand.
var Cmd = &cobra.Command{
	Use:   "context",
	Short: "Manage server contexts",
	Long: `Manage connection contexts for multiple admin servers.

A context stores a server URL, the realm commands default to and an
optional bearer token, similar to kubectl contexts.

Subcommands:
  list     List all configured contexts
  set      Create or update a context
  use      Switch to a different context
  current  Show current context
  delete   Delete a context`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(setCmd)
	Cmd.AddCommand(useCmd)
	Cmd.AddCommand(currentCmd)
	Cmd.AddCommand(deleteCmd)
}

func openStore() (*credentials.Store, error) {
	store, err := credentials.NewStore()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credential store: %w", err)
	}
	return store, nil
}

func notFound(name string, err error) error {
	if errors.Is(err, credentials.ErrContextNotFound) {
		return fmt.Errorf("context '%s' not found\n\n"+
			"List available contexts:\n"+
			"  fedctl context list", name)
	}
	return err
}
