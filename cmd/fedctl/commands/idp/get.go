package idp

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/cmd/fedctl/cmdutil"
	"github.com/marmos91/fedctl/internal/cli/timeutil"
	"github.com/marmos91/fedctl/internal/console"
	"github.com/marmos91/fedctl/pkg/apiclient"
)

var getCmd = &cobra.Command{
	Use:   "get <alias>",
	Short: "Show an identity provider",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func detailPairs(idp *apiclient.IdentityProvider, now time.Time) [][2]string {
	pairs := [][2]string{
		{"Alias", idp.Alias},
		{"Provider", idp.ProviderID},
		{"Display name", cmdutil.EmptyOr(idp.DisplayName, "-")},
		{"Enabled", cmdutil.BoolToYesNo(idp.Enabled)},
	}
	if idp.ProviderID != apiclient.ProviderOpenIDFederation {
		return pairs
	}

	d := console.DescribeFederationProvider(*idp)
	expiry := "-"
	if d.ExpiresAt != nil {
		expiry = timeutil.FormatExpiry(*d.ExpiresAt, now)
	}
	order := "-"
	if d.DisplayOrder != nil {
		order = strconv.Itoa(*d.DisplayOrder)
	}
	return append(pairs,
		[2]string{"Issuer", cmdutil.EmptyOr(d.Issuer, "-")},
		[2]string{"Trust anchor", cmdutil.EmptyOr(d.TrustAnchorID, "-")},
		[2]string{"Authority hints", cmdutil.JoinOr(d.AuthorityHints, "-")},
		[2]string{"Display order", order},
		[2]string{"Expires", expiry},
	)
}

func runGet(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	idp, err := client.GetIdentityProvider(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get identity provider: %w", err)
	}
	if idp == nil {
		return fmt.Errorf("identity provider %s: %w", args[0], console.ErrNotFound)
	}
	return cmdutil.PrintKeyValue(cmd.OutOrStdout(), idp, detailPairs(idp, time.Now()))
}

// isNotFound reports a missing provider from either the view or the API.
func isNotFound(err error) bool {
	return errors.Is(err, console.ErrNotFound) || apiclient.IsNotFound(err)
}
