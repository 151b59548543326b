// Package tokens implements the realm token settings commands.
package tokens

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/cmd/fedctl/cmdutil"
	"github.com/marmos91/fedctl/internal/console"
)

// Cmd is the parent command for realm token settings.
var Cmd = &cobra.Command{
	Use:   "tokens",
	Short: "Realm token settings",
	Long: `Show and edit the token lifespans and signing settings of a realm.

Lifespans are given in seconds.

Examples:
  # Show the settings
  fedctl tokens show

  # Shorten access tokens to five minutes
  fedctl tokens edit --access-token-lifespan 300

  # Override the reset-credentials action token lifespan
  fedctl tokens edit --action-lifespan reset-credentials=900`,
}

func init() {
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(editCmd)
}

// intField is one integer setting exposed as a flag and a prompt.
type intField struct {
	flag  string
	label string
	get   func(*console.TokenSettingsValues) *int
}

var intFields = []intField{
	{"access-token-lifespan", "Access token lifespan", func(v *console.TokenSettingsValues) *int { return &v.AccessTokenLifespan }},
	{"access-token-lifespan-implicit", "Access token lifespan for implicit flow", func(v *console.TokenSettingsValues) *int { return &v.AccessTokenLifespanForImplicitFlow }},
	{"access-code-lifespan", "Client login timeout", func(v *console.TokenSettingsValues) *int { return &v.AccessCodeLifespan }},
	{"id-token-lifespan", "ID token lifespan", func(v *console.TokenSettingsValues) *int { return &v.IDTokenLifespan }},
	{"device-code-lifespan", "OAuth 2.0 device code lifespan", func(v *console.TokenSettingsValues) *int { return &v.OAuth2DeviceCodeLifespan }},
	{"device-polling-interval", "OAuth 2.0 device polling interval", func(v *console.TokenSettingsValues) *int { return &v.OAuth2DevicePollingInterval }},
	{"offline-session-max-lifespan", "Offline session max lifespan", func(v *console.TokenSettingsValues) *int { return &v.OfflineSessionMaxLifespan }},
	{"user-action-lifespan", "User-initiated action lifespan", func(v *console.TokenSettingsValues) *int { return &v.ActionTokenGeneratedByUserLifespan }},
	{"admin-action-lifespan", "Default admin-initiated action lifespan", func(v *console.TokenSettingsValues) *int { return &v.ActionTokenGeneratedByAdminLifespan }},
	{"refresh-token-max-reuse", "Refresh token max reuse", func(v *console.TokenSettingsValues) *int { return &v.RefreshTokenMaxReuse }},
}

func loadSettings(cmd *cobra.Command) (*console.TokenSettings, error) {
	client, err := cmdutil.GetClient()
	if err != nil {
		return nil, err
	}
	deps, _ := cmdutil.ConsoleDeps(cmd.OutOrStdout(), cmd.ErrOrStderr())
	settings := console.NewTokenSettings(client, deps)
	if err := settings.Load(cmd.Context()); err != nil {
		return nil, fmt.Errorf("failed to load realm %s: %w", client.Realm(), err)
	}
	return settings, nil
}
