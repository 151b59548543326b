package commands

import (
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/cmd/fedctl/cmdutil"
	"github.com/marmos91/fedctl/internal/cli/credentials"
	"github.com/marmos91/fedctl/internal/cli/health"
	"github.com/marmos91/fedctl/internal/cli/timeutil"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the admin server health",
	Long: `Query the /health endpoint of the server. The endpoint is served by
fedstub; other servers may not provide it.`,
	Args: cobra.NoArgs,
	RunE: runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return err
	}
	conn, err := cmdutil.ResolveConnection(store, time.Now())
	if err != nil {
		return err
	}

	resp, err := health.Fetch(cmd.Context(), &http.Client{Timeout: cmdutil.Config().Timeout}, conn.ServerURL)
	if resp == nil {
		return err
	}
	if printErr := cmdutil.PrintKeyValue(cmd.OutOrStdout(), resp, [][2]string{
		{"Status", resp.Status},
		{"Service", cmdutil.EmptyOr(resp.Data.Service, "-")},
		{"Version", cmdutil.EmptyOr(resp.Data.Version, "-")},
		{"Uptime", timeutil.FormatUptime(resp.Data.Uptime)},
		{"Realms", strconv.Itoa(resp.Data.Realms)},
	}); printErr != nil {
		return printErr
	}
	return err
}
