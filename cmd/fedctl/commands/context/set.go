package context

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/cmd/fedctl/cmdutil"
	"github.com/marmos91/fedctl/internal/cli/credentials"
	"github.com/marmos91/fedctl/internal/cli/prompt"
	"github.com/marmos91/fedctl/pkg/config"
)

var (
	setServer       string
	setRealm        string
	setToken        string
	setTokenExpires time.Duration
	setPromptToken  bool
	setUse          bool
)

var setCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Create or update a context",
	Long: `Create or update a server context.

Flags that are not given keep the stored value. The first context created
becomes the current one.

Examples:
  # Create a context for a local server
  fedctl context set local --server http://localhost:8080 --realm master

  # Store a token valid for one hour
  fedctl context set local --token eyJ... --token-expires 1h

  # Enter the token without echoing it
  fedctl context set prod --server https://idp.example --prompt-token --use`,
	Args: cobra.ExactArgs(1),
	RunE: runContextSet,
}

func init() {
	setCmd.Flags().StringVar(&setServer, "server", "", "Admin API base URL")
	setCmd.Flags().StringVar(&setRealm, "realm", "", "Default realm (default \"master\")")
	setCmd.Flags().StringVar(&setToken, "token", "", "Bearer token")
	setCmd.Flags().DurationVar(&setTokenExpires, "token-expires", 0, "Token validity from now (e.g. 5m, 1h)")
	setCmd.Flags().BoolVar(&setPromptToken, "prompt-token", false, "Prompt for the bearer token")
	setCmd.Flags().BoolVar(&setUse, "use", false, "Make the context current")
}

func runContextSet(cmd *cobra.Command, args []string) error {
	name := args[0]
	store, err := openStore()
	if err != nil {
		return err
	}

	// The root command registers --server, --realm and --token as
	// persistent flags; set shadows them with its own.
	ctx := &credentials.Context{Realm: config.DefaultRealm}
	if existing, err := store.Get(name); err == nil {
		copied := *existing
		ctx = &copied
	}

	flags := cmd.Flags()
	if flags.Changed("server") {
		ctx.ServerURL = setServer
	}
	if flags.Changed("realm") {
		ctx.Realm = setRealm
	}
	if flags.Changed("token") {
		ctx.AccessToken = setToken
		ctx.TokenExpiresAt = time.Time{}
	}
	if setPromptToken {
		token, err := prompt.Secret("Bearer token")
		if err != nil {
			return cmdutil.HandleAbort(cmd.OutOrStdout(), err)
		}
		ctx.AccessToken = token
		ctx.TokenExpiresAt = time.Time{}
	}
	if flags.Changed("token-expires") {
		ctx.TokenExpiresAt = time.Now().Add(setTokenExpires).UTC()
	}

	if err := store.Set(name, ctx); err != nil {
		return fmt.Errorf("failed to save context: %w", err)
	}
	if setUse {
		if err := store.Use(name); err != nil {
			return notFound(name, err)
		}
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Context '%s' saved to %s\n", name, store.Path())
	return nil
}
