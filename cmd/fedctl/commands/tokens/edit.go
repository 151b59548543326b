package tokens

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/cmd/fedctl/cmdutil"
	"github.com/marmos91/fedctl/internal/cli/output"
	"github.com/marmos91/fedctl/internal/cli/prompt"
	"github.com/marmos91/fedctl/internal/console"
)

var (
	editInts               = map[string]*int{}
	editSignatureAlgorithm string
	editRevokeRefresh      bool
	editOfflineMaxEnabled  bool
	editActionLifespans    map[string]int
	editClearActions       []string
)

// SignatureAlgorithms lists the accepted default signature algorithms.
var SignatureAlgorithms = []string{
	"RS256", "RS384", "RS512", "ES256", "ES384", "ES512",
	"PS256", "PS384", "PS512", "HS256", "HS384", "HS512", "EdDSA",
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit token settings",
	Long: `Edit the token settings of the realm.

Without flags the lifespans are prompted for, starting from the stored
values. With flags only the given settings change.

Examples:
  # Interactive
  fedctl tokens edit

  # Set lifespans in seconds
  fedctl tokens edit --access-token-lifespan 300 --id-token-lifespan 300

  # Override and clear per-action lifespans
  fedctl tokens edit --action-lifespan verify-email=3600 --clear-action-lifespan reset-credentials`,
	Args: cobra.NoArgs,
	RunE: runEdit,
}

func init() {
	for _, f := range intFields {
		editInts[f.flag] = editCmd.Flags().Int(f.flag, 0, f.label)
	}
	editCmd.Flags().StringVar(&editSignatureAlgorithm, "signature-algorithm", "", "Default signature algorithm")
	editCmd.Flags().BoolVar(&editRevokeRefresh, "revoke-refresh-token", false, "Revoke refresh tokens on use")
	editCmd.Flags().BoolVar(&editOfflineMaxEnabled, "offline-session-max-lifespan-enabled", false, "Limit offline session lifespan")
	editCmd.Flags().StringToIntVar(&editActionLifespans, "action-lifespan", nil, "Per-action user token lifespan (action=seconds)")
	editCmd.Flags().StringSliceVar(&editClearActions, "clear-action-lifespan", nil, "Actions whose lifespan override is removed")
}

func runEdit(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if !anyEditFlag(cmd) {
		if err := promptSettings(settings); err != nil {
			return cmdutil.HandleAbort(cmd.OutOrStdout(), err)
		}
	} else {
		applyFlags(cmd, settings)
	}

	if err := settings.Save(cmd.Context()); err != nil {
		return cmdutil.FormError(cmd.ErrOrStderr(), err)
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil || format == output.FormatTable {
		return err
	}
	return printSettings(cmd.OutOrStdout(), settings.Form.Values())
}

// anyEditFlag reports whether one of edit's own flags was set.
func anyEditFlag(cmd *cobra.Command) bool {
	names := []string{"signature-algorithm", "revoke-refresh-token", "offline-session-max-lifespan-enabled", "action-lifespan", "clear-action-lifespan"}
	for _, f := range intFields {
		names = append(names, f.flag)
	}
	return slices.ContainsFunc(names, cmd.Flags().Changed)
}

func applyFlags(cmd *cobra.Command, settings *console.TokenSettings) {
	flags := cmd.Flags()
	settings.Form.Edit(func(v *console.TokenSettingsValues) {
		for _, f := range intFields {
			if flags.Changed(f.flag) {
				*f.get(v) = *editInts[f.flag]
			}
		}
		if flags.Changed("signature-algorithm") {
			v.DefaultSignatureAlgorithm = editSignatureAlgorithm
		}
		if flags.Changed("revoke-refresh-token") {
			v.RevokeRefreshToken = editRevokeRefresh
		}
		if flags.Changed("offline-session-max-lifespan-enabled") {
			v.OfflineSessionMaxLifespanEnabled = editOfflineMaxEnabled
		}
		for action, n := range editActionLifespans {
			v.ActionLifespans[action] = n
		}
		for _, action := range editClearActions {
			delete(v.ActionLifespans, action)
		}
	})
}

func promptSettings(settings *console.TokenSettings) error {
	v := settings.Form.Values()

	algorithms := SignatureAlgorithms
	if v.DefaultSignatureAlgorithm != "" {
		// Keep the stored algorithm first so Enter leaves it unchanged.
		algorithms = append([]string{v.DefaultSignatureAlgorithm}, slices.DeleteFunc(slices.Clone(SignatureAlgorithms), func(a string) bool {
			return a == v.DefaultSignatureAlgorithm
		})...)
	}
	alg, err := prompt.SelectString("Default signature algorithm", algorithms)
	if err != nil {
		return err
	}
	v.DefaultSignatureAlgorithm = alg

	if v.RevokeRefreshToken, err = prompt.Confirm("Revoke refresh token", v.RevokeRefreshToken); err != nil {
		return err
	}
	for _, f := range intFields {
		if f.flag == "refresh-token-max-reuse" && !v.RevokeRefreshToken {
			continue
		}
		label := f.label + " (seconds)"
		if f.flag == "refresh-token-max-reuse" {
			label = f.label
		}
		n, err := prompt.InputInt(label, *f.get(&v))
		if err != nil {
			return err
		}
		*f.get(&v) = n
	}

	settings.Form.Edit(func(dst *console.TokenSettingsValues) { *dst = v })
	return nil
}
