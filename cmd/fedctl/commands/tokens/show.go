package tokens

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/cmd/fedctl/cmdutil"
	"github.com/marmos91/fedctl/internal/cli/timeutil"
	"github.com/marmos91/fedctl/internal/console"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show token settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		return printSettings(cmd.OutOrStdout(), settings.Form.Values())
	},
}

func settingPairs(v console.TokenSettingsValues) [][2]string {
	pairs := [][2]string{
		{"Default signature algorithm", cmdutil.EmptyOr(v.DefaultSignatureAlgorithm, "-")},
		{"Revoke refresh token", cmdutil.BoolToYesNo(v.RevokeRefreshToken)},
		{"Offline session max lifespan enabled", cmdutil.BoolToYesNo(v.OfflineSessionMaxLifespanEnabled)},
	}
	for _, f := range intFields {
		n := *f.get(&v)
		value := timeutil.FormatSeconds(n)
		if f.flag == "refresh-token-max-reuse" {
			value = strconv.Itoa(n)
		}
		pairs = append(pairs, [2]string{f.label, value})
	}
	for _, action := range console.TokenActions {
		if n, ok := v.ActionLifespans[action]; ok {
			pairs = append(pairs, [2]string{"Action " + action, timeutil.FormatSeconds(n)})
		}
	}
	return pairs
}

func printSettings(w io.Writer, v console.TokenSettingsValues) error {
	return cmdutil.PrintKeyValue(w, v, settingPairs(v))
}
