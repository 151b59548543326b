package trustanchor

import (
	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/internal/cli/prompt"
	"github.com/marmos91/fedctl/internal/console"
	"github.com/marmos91/fedctl/pkg/apiclient"
)

// formFlags are the flags shared by create and edit.
type formFlags struct {
	trustAnchor       string
	entityTypes       []string
	registrationTypes []string
}

func (f *formFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.trustAnchor, "trust-anchor", "", "Trust anchor entity identifier (URL)")
	cmd.Flags().StringSliceVar(&f.entityTypes, "entity-type", nil, "Entity types (OPENID_PROVIDER, OPENID_RELAYING_PARTY)")
	cmd.Flags().StringSliceVar(&f.registrationTypes, "registration-type", nil, "Client registration types (EXPLICIT)")
}

func (f *formFlags) anyChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"trust-anchor", "entity-type", "registration-type"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// fill applies flags to the form, prompting for the rest when no flag was
// given. Prompts start from the current form values.
func (f *formFlags) fill(cmd *cobra.Command, editor *console.TrustAnchorEditor) error {
	interactive := !f.anyChanged(cmd)
	current := editor.Form.Values()

	anchor := current.TrustAnchor
	switch {
	case cmd.Flags().Changed("trust-anchor"):
		anchor = f.trustAnchor
	case interactive:
		v, err := prompt.InputURL("Trust anchor", current.TrustAnchor)
		if err != nil {
			return err
		}
		anchor = v
	}

	entities := current.EntityTypes
	switch {
	case cmd.Flags().Changed("entity-type"):
		entities = f.entityTypes
	case interactive:
		v, err := prompt.MultiSelect("Entity types", prompt.Options(apiclient.EntityTypes...), current.EntityTypes)
		if err != nil {
			return err
		}
		entities = v
	}

	registrations := current.ClientRegistrationTypesSupported
	switch {
	case cmd.Flags().Changed("registration-type"):
		registrations = f.registrationTypes
	case interactive:
		v, err := prompt.MultiSelect("Client registration types", prompt.Options(apiclient.ClientRegistrationTypes...), defaultRegistrations(current))
		if err != nil {
			return err
		}
		registrations = v
	}

	editor.Form.Edit(func(v *console.TrustAnchorValues) {
		v.TrustAnchor = anchor
		v.EntityTypes = entities
		v.ClientRegistrationTypesSupported = registrations
	})
	return nil
}

// defaultRegistrations preselects EXPLICIT on an empty form since it is
// the only supported type.
func defaultRegistrations(v console.TrustAnchorValues) []string {
	if len(v.ClientRegistrationTypesSupported) == 0 {
		return []string{apiclient.ClientRegistrationExplicit}
	}
	return v.ClientRegistrationTypesSupported
}
