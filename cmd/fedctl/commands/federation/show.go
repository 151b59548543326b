package federation

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/cmd/fedctl/cmdutil"
	"github.com/marmos91/fedctl/internal/cli/output"
	"github.com/marmos91/fedctl/internal/cli/timeutil"
	"github.com/marmos91/fedctl/internal/console"
	"github.com/marmos91/fedctl/pkg/apiclient"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the federation policy",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

// showOutput is the JSON/YAML shape of show.
type showOutput struct {
	Realm        string                         `json:"realm"`
	Policy       console.FederationPolicyValues `json:"policy"`
	TrustAnchors []apiclient.OpenIDFederation   `json:"trustAnchors,omitempty"`
}

func policyPairs(realm string, v console.FederationPolicyValues) [][2]string {
	return [][2]string{
		{"Realm", realm},
		{"Enabled", cmdutil.BoolToYesNo(v.Enabled)},
		{"Authority hints", cmdutil.JoinOr(v.AuthorityHints, "-")},
		{"Lifespan", strconv.Itoa(v.Lifespan) + "s (" + timeutil.FormatSeconds(v.Lifespan) + ")"},
		{"Contacts", cmdutil.JoinOr(v.Contacts, "-")},
		{"Organization", cmdutil.EmptyOr(v.OrganizationName, "-")},
		{"Homepage URI", cmdutil.EmptyOr(v.HomepageURI, "-")},
		{"Logo URI", cmdutil.EmptyOr(v.LogoURI, "-")},
		{"Policy URI", cmdutil.EmptyOr(v.PolicyURI, "-")},
		{"Resolve endpoint", cmdutil.EmptyOr(v.ResolveEndpoint, "-")},
		{"Historical keys endpoint", cmdutil.EmptyOr(v.HistoricalKeysEndpoint, "-")},
	}
}

func anchorTable(items []apiclient.OpenIDFederation) *output.TableData {
	t := output.NewTableData("INTERNAL ID", "TRUST ANCHOR", "ENTITY TYPES")
	for _, f := range items {
		t.AddRow(f.InternalID, f.TrustAnchor, cmdutil.JoinOr(f.EntityTypes, "-"))
	}
	return t
}

func runShow(cmd *cobra.Command, args []string) error {
	section, err := loadSection(cmd)
	if err != nil {
		return err
	}
	return printSection(cmd.OutOrStdout(), section)
}

// printSection prints the policy and, when federation is enabled, the
// trust anchor table.
func printSection(w io.Writer, section *console.FederationSection) error {
	realm := section.Realm().Realm
	policy := section.Form.Values()
	out := showOutput{Realm: realm, Policy: policy}
	if section.TrustAnchorsVisible() {
		out.TrustAnchors = section.TrustAnchors.Items()
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	if format != output.FormatTable {
		return cmdutil.PrintResource(w, out, nil)
	}

	if err := output.KeyValue(w, policyPairs(realm, policy)); err != nil {
		return err
	}
	if !section.TrustAnchorsVisible() {
		return nil
	}
	_, _ = io.WriteString(w, "\nTrust anchors:\n")
	if len(out.TrustAnchors) == 0 {
		_, _ = io.WriteString(w, "No trust anchors configured.\n")
		return nil
	}
	return output.PrintTable(w, anchorTable(out.TrustAnchors))
}
