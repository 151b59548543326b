package federation

import (
	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/cmd/fedctl/cmdutil"
	"github.com/marmos91/fedctl/internal/cli/prompt"
	"github.com/marmos91/fedctl/internal/console"
)

var (
	editAuthorityHints  []string
	editAddHints        []string
	editRemoveHints     []string
	editLifespan        int
	editContacts        []string
	editOrganization    string
	editHomepageURI     string
	editLogoURI         string
	editPolicyURI       string
	editResolveEndpoint string
	editHistoricalKeys  string
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the federation policy",
	Long: `Edit the OpenID Federation policy of the realm.

Without flags every field is prompted for, starting from the stored values.
With flags only the given fields change. The policy is validated only while
federation is enabled.

Examples:
  # Interactive
  fedctl federation edit

  # Replace the authority hints
  fedctl federation edit --authority-hint https://ta.example,https://ia.example

  # Add one hint and set the lifespan
  fedctl federation edit --add-authority-hint https://ta2.example --lifespan 7200`,
	Args: cobra.NoArgs,
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringSliceVar(&editAuthorityHints, "authority-hint", nil, "Authority hints (replaces the list)")
	editCmd.Flags().StringSliceVar(&editAddHints, "add-authority-hint", nil, "Authority hints to add")
	editCmd.Flags().StringSliceVar(&editRemoveHints, "remove-authority-hint", nil, "Authority hints to remove")
	editCmd.Flags().IntVar(&editLifespan, "lifespan", 0, "Entity statement lifespan in seconds")
	editCmd.Flags().StringSliceVar(&editContacts, "contact", nil, "Contacts (replaces the list)")
	editCmd.Flags().StringVar(&editOrganization, "organization-name", "", "Organization name")
	editCmd.Flags().StringVar(&editHomepageURI, "homepage-uri", "", "Homepage URI")
	editCmd.Flags().StringVar(&editLogoURI, "logo-uri", "", "Logo URI")
	editCmd.Flags().StringVar(&editPolicyURI, "policy-uri", "", "Policy URI")
	editCmd.Flags().StringVar(&editResolveEndpoint, "resolve-endpoint", "", "Resolve endpoint")
	editCmd.Flags().StringVar(&editHistoricalKeys, "historical-keys-endpoint", "", "Historical keys endpoint")
}

func runEdit(cmd *cobra.Command, args []string) error {
	section, err := loadSection(cmd)
	if err != nil {
		return err
	}

	if !anyEditFlag(cmd) {
		if err := promptPolicy(section); err != nil {
			return cmdutil.HandleAbort(cmd.OutOrStdout(), err)
		}
	} else {
		applyFlags(cmd, section)
	}

	if err := section.Save(cmd.Context()); err != nil {
		return cmdutil.FormError(cmd.ErrOrStderr(), err)
	}
	return printSaved(cmd, section)
}

var editFlagNames = []string{
	"authority-hint", "add-authority-hint", "remove-authority-hint", "lifespan", "contact",
	"organization-name", "homepage-uri", "logo-uri", "policy-uri", "resolve-endpoint",
	"historical-keys-endpoint",
}

// anyEditFlag reports whether one of edit's own flags was set.
func anyEditFlag(cmd *cobra.Command) bool {
	for _, name := range editFlagNames {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func applyFlags(cmd *cobra.Command, section *console.FederationSection) {
	flags := cmd.Flags()
	section.Form.Edit(func(v *console.FederationPolicyValues) {
		if flags.Changed("authority-hint") {
			v.AuthorityHints = editAuthorityHints
		}
		if flags.Changed("lifespan") {
			v.Lifespan = editLifespan
		}
		if flags.Changed("contact") {
			v.Contacts = editContacts
		}
		setIfChanged(cmd, "organization-name", &v.OrganizationName, editOrganization)
		setIfChanged(cmd, "homepage-uri", &v.HomepageURI, editHomepageURI)
		setIfChanged(cmd, "logo-uri", &v.LogoURI, editLogoURI)
		setIfChanged(cmd, "policy-uri", &v.PolicyURI, editPolicyURI)
		setIfChanged(cmd, "resolve-endpoint", &v.ResolveEndpoint, editResolveEndpoint)
		setIfChanged(cmd, "historical-keys-endpoint", &v.HistoricalKeysEndpoint, editHistoricalKeys)
	})
	for _, h := range editAddHints {
		section.AddAuthorityHint(h)
	}
	for _, h := range editRemoveHints {
		section.RemoveAuthorityHint(h)
	}
}

func setIfChanged(cmd *cobra.Command, name string, dst *string, value string) {
	if cmd.Flags().Changed(name) {
		*dst = value
	}
}

func promptPolicy(section *console.FederationSection) error {
	v := section.Form.Values()

	hints, err := prompt.Input("Authority hints (comma-separated)", cmdutil.JoinOr(v.AuthorityHints, ""))
	if err != nil {
		return err
	}
	lifespan, err := prompt.InputInt("Lifespan (seconds)", v.Lifespan)
	if err != nil {
		return err
	}
	contacts, err := prompt.Input("Contacts (comma-separated)", cmdutil.JoinOr(v.Contacts, ""))
	if err != nil {
		return err
	}

	fields := []struct {
		label string
		dst   *string
	}{
		{"Organization name", &v.OrganizationName},
		{"Homepage URI", &v.HomepageURI},
		{"Logo URI", &v.LogoURI},
		{"Policy URI", &v.PolicyURI},
		{"Resolve endpoint", &v.ResolveEndpoint},
		{"Historical keys endpoint", &v.HistoricalKeysEndpoint},
	}
	for _, f := range fields {
		answer, err := prompt.Input(f.label, *f.dst)
		if err != nil {
			return err
		}
		*f.dst = answer
	}

	v.AuthorityHints = cmdutil.ParseCommaSeparatedList(hints)
	v.Lifespan = lifespan
	v.Contacts = cmdutil.ParseCommaSeparatedList(contacts)
	section.Form.Edit(func(dst *console.FederationPolicyValues) { *dst = v })
	return nil
}
