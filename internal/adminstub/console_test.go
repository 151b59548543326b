package adminstub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/fedctl/internal/console"
	"github.com/marmos91/fedctl/pkg/apiclient"
)

// The console views driven against the stub over real HTTP.

func consoleDeps() (console.Deps, *console.AlertLog, *console.NavigationLog) {
	alerts := &console.AlertLog{}
	nav := &console.NavigationLog{}
	return console.Deps{Notifier: alerts, Navigator: nav}, alerts, nav
}

func TestConsoleTrustAnchorFlow(t *testing.T) {
	srv, _ := newTestServer(t)
	c := newClient(srv)
	ctx := context.Background()
	deps, alerts, nav := consoleDeps()

	add := console.NewAddTrustAnchor(c, deps)
	add.Form.Edit(func(v *console.TrustAnchorValues) { v.TrustAnchor = "https://ta.example" })
	add.ToggleEntityType(apiclient.EntityTypeOpenIDProvider)
	add.ToggleRegistrationType(apiclient.ClientRegistrationExplicit)
	require.NoError(t, add.Submit(ctx))
	assert.Equal(t, console.StateSuccess, add.State())
	assert.Equal(t, "/master/openid-federation", nav.Last())
	id := add.CreatedID()
	require.NotEmpty(t, id)

	// A second create of the same anchor surfaces the conflict as an alert.
	dup := console.NewAddTrustAnchor(c, deps)
	dup.Form.Edit(func(v *console.TrustAnchorValues) {
		*v = add.Form.Values()
	})
	err := dup.Submit(ctx)
	assert.True(t, apiclient.IsConflict(err))
	assert.Equal(t, 1, alerts.Count(console.AlertDanger))
	assert.Equal(t, "https://ta.example", dup.Form.Values().TrustAnchor)

	edit := console.NewEditTrustAnchor(c, deps, id)
	require.NoError(t, edit.Load(ctx))
	assert.Equal(t, console.StateReady, edit.State())
	edit.ToggleEntityType(apiclient.EntityTypeOpenIDRelyingParty)
	require.NoError(t, edit.Submit(ctx))

	list := console.NewTrustAnchorList(c, deps)
	require.NoError(t, list.Load(ctx))
	require.Len(t, list.Items(), 1)
	assert.Len(t, list.Items()[0].EntityTypes, 2)

	_, err = list.RequestDelete(id)
	require.NoError(t, err)
	require.NoError(t, list.ConfirmDelete(ctx))
	assert.Empty(t, list.Items())

	missing := console.NewEditTrustAnchor(c, deps, id)
	assert.Error(t, missing.Load(ctx))
	assert.Equal(t, console.StateError, missing.State())
}

func TestConsoleFederationSectionFlow(t *testing.T) {
	srv, _ := newTestServer(t)
	c := newClient(srv)
	ctx := context.Background()
	deps, _, _ := consoleDeps()

	section := console.NewFederationSection(c, deps)
	require.NoError(t, section.Load(ctx))
	assert.False(t, section.TrustAnchorsVisible())

	section.SetEnabled(true)
	section.AddAuthorityHint("https://ta.example")
	section.Form.Edit(func(v *console.FederationPolicyValues) { v.Lifespan = 600 })
	require.NoError(t, section.Save(ctx))
	assert.True(t, section.TrustAnchorsVisible())

	realm, err := c.GetRealm(ctx)
	require.NoError(t, err)
	assert.True(t, realm.FederationEnabled())
	assert.Equal(t, 600, realm.FederationLifespan())
	assert.Equal(t, []string{"https://ta.example"}, realm.OpenIDFederationAuthorityHints)
}

func TestConsoleAddFederationProviderFlow(t *testing.T) {
	srv, _ := newTestServer(t)
	c := newClient(srv)
	ctx := context.Background()
	deps, alerts, nav := consoleDeps()

	_, err := c.CreateOpenIDFederation(ctx, federationRequest("https://ta.example"))
	require.NoError(t, err)

	add := console.NewAddFederationProvider(c, deps)
	require.NoError(t, add.Load(ctx))
	assert.Equal(t, []string{"https://ta.example"}, add.TrustAnchorOptions())

	add.Form.Edit(func(v *console.FederationProviderValues) {
		v.Issuer = "https://op.example"
		v.TrustAnchorID = "https://ta.example"
	})
	require.NoError(t, add.Submit(ctx))
	assert.Equal(t, 1, alerts.Count(console.AlertSuccess))
	assert.Equal(t, "/master/identity-providers/openid-federation/openid-federation/settings", nav.Last())

	idp, err := c.GetIdentityProvider(ctx, apiclient.ProviderOpenIDFederation)
	require.NoError(t, err)
	require.NotNil(t, idp)
	_, ok := idp.ExpirationTime()
	assert.True(t, ok)
}

func TestConsoleFederationSectionClearsLists(t *testing.T) {
	srv, _ := newTestServer(t)
	c := newClient(srv)
	ctx := context.Background()
	deps, _, _ := consoleDeps()

	section := console.NewFederationSection(c, deps)
	require.NoError(t, section.Load(ctx))
	section.SetEnabled(true)
	section.AddAuthorityHint("https://ta.example")
	section.Form.Edit(func(v *console.FederationPolicyValues) { v.Contacts = []string{"ops@example.org"} })
	require.NoError(t, section.Save(ctx))

	realm, err := c.GetRealm(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"ops@example.org"}, realm.OpenIDFederationContacts)

	section.Form.Edit(func(v *console.FederationPolicyValues) { v.Contacts = nil })
	require.NoError(t, section.Save(ctx))

	realm, err = c.GetRealm(ctx)
	require.NoError(t, err)
	assert.Empty(t, realm.OpenIDFederationContacts)
	assert.Empty(t, section.Form.Values().Contacts, "reloaded form shows the cleared list")

	// Hints are optional while federation is off, so the last one can go.
	section.SetEnabled(false)
	section.RemoveAuthorityHint("https://ta.example")
	require.NoError(t, section.Save(ctx))

	realm, err = c.GetRealm(ctx)
	require.NoError(t, err)
	assert.False(t, realm.FederationEnabled())
	assert.Empty(t, realm.OpenIDFederationAuthorityHints)
}

func TestConsoleTokenSettingsRemovesLastOverride(t *testing.T) {
	srv, _ := newTestServer(t)
	c := newClient(srv)
	ctx := context.Background()
	deps, _, _ := consoleDeps()

	tokens := console.NewTokenSettings(c, deps)
	require.NoError(t, tokens.Load(ctx))
	tokens.Form.Edit(func(v *console.TokenSettingsValues) { v.ActionLifespans["verify-email"] = 600 })
	require.NoError(t, tokens.Save(ctx))

	realm, err := c.GetRealm(ctx)
	require.NoError(t, err)
	require.Equal(t, "600", realm.Attributes["actionTokenGeneratedByUserLifespan-verify-email"])

	reloaded := console.NewTokenSettings(c, deps)
	require.NoError(t, reloaded.Load(ctx))
	reloaded.Form.Edit(func(v *console.TokenSettingsValues) { delete(v.ActionLifespans, "verify-email") })
	require.NoError(t, reloaded.Save(ctx))

	realm, err = c.GetRealm(ctx)
	require.NoError(t, err)
	assert.NotContains(t, realm.Attributes, "actionTokenGeneratedByUserLifespan-verify-email")

	again := console.NewTokenSettings(c, deps)
	require.NoError(t, again.Load(ctx))
	assert.Empty(t, again.Form.Values().ActionLifespans)
}
