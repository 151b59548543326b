package context

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/cmd/fedctl/cmdutil"
	"github.com/marmos91/fedctl/internal/cli/credentials"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configured contexts",
	Long: `List all configured server contexts.

The current context is marked with an asterisk (*).

Examples:
  # List contexts as table
  fedctl context list

  # List as JSON
  fedctl context list -o json`,
	Args: cobra.NoArgs,
	RunE: runContextList,
}

// ContextInfo represents context information for output.
type ContextInfo struct {
	Name      string `json:"name"`
	Current   bool   `json:"current"`
	ServerURL string `json:"server_url"`
	Realm     string `json:"realm"`
	HasToken  bool   `json:"has_token"`
	Expired   bool   `json:"token_expired,omitempty"`
}

func newContextInfo(name, current string, c *credentials.Context, now time.Time) ContextInfo {
	return ContextInfo{
		Name:      name,
		Current:   name == current,
		ServerURL: c.ServerURL,
		Realm:     c.Realm,
		HasToken:  c.AccessToken != "",
		Expired:   c.AccessToken != "" && c.TokenExpired(now),
	}
}

// ContextList is a list of contexts for table rendering.
type ContextList []ContextInfo

// Headers implements TableRenderer.
func (cl ContextList) Headers() []string {
	return []string{"", "NAME", "SERVER", "REALM", "TOKEN"}
}

// Rows implements TableRenderer.
func (cl ContextList) Rows() [][]string {
	rows := make([][]string, 0, len(cl))
	for _, c := range cl {
		current := ""
		if c.Current {
			current = "*"
		}
		token := cmdutil.BoolToYesNo(c.HasToken)
		if c.Expired {
			token = "expired"
		}
		rows = append(rows, []string{current, c.Name, c.ServerURL, c.Realm, token})
	}
	return rows
}

func runContextList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	now := time.Now()
	current := store.CurrentName()
	contexts := make(ContextList, 0)
	for _, name := range store.Names() {
		c, err := store.Get(name)
		if err != nil {
			continue
		}
		contexts = append(contexts, newContextInfo(name, current, c, now))
	}

	return cmdutil.PrintOutput(cmd.OutOrStdout(), contexts, len(contexts) == 0,
		"No contexts configured. Use 'fedctl context set <name> --server <url>' to create one.", contexts)
}
