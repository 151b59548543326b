package context

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/cmd/fedctl/cmdutil"
	"github.com/marmos91/fedctl/internal/cli/credentials"
	"github.com/marmos91/fedctl/internal/cli/timeutil"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show current context",
	Long: `Display information about the current active context.

Examples:
  # Show current context
  fedctl context current

  # Show as JSON
  fedctl context current -o json`,
	Args: cobra.NoArgs,
	RunE: runContextCurrent,
}

func runContextCurrent(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	name, ctx, err := store.Current()
	if errors.Is(err, credentials.ErrNoCurrentContext) {
		return fmt.Errorf("no current context set\n\n" +
			"Create one first:\n" +
			"  fedctl context set local --server http://localhost:8080")
	}
	if err != nil {
		return fmt.Errorf("failed to get context: %w", err)
	}

	now := time.Now()
	info := newContextInfo(name, name, ctx, now)
	token := "none"
	switch {
	case ctx.AccessToken != "" && ctx.TokenExpiresAt.IsZero():
		token = "set"
	case ctx.AccessToken != "":
		token = timeutil.FormatExpiry(ctx.TokenExpiresAt, now)
	}

	return cmdutil.PrintKeyValue(cmd.OutOrStdout(), info, [][2]string{
		{"Current context", name},
		{"Server", ctx.ServerURL},
		{"Realm", ctx.Realm},
		{"Token", token},
	})
}
