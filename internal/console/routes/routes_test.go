package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilders(t *testing.T) {
	assert.Equal(t, "/master/openid-federation", ToOpenIDFederation("master", ""))
	assert.Equal(t, "/master/openid-federation/general", ToOpenIDFederation("master", TabGeneral))
	assert.Equal(t, "/master/openid-federation/add", ToAddOpenIDFederation("master"))
	assert.Equal(t, "/master/openid-federation/abc", ToEditOpenIDFederation("master", "abc"))
	assert.Equal(t, "/master/identity-providers/openid-federation/add", ToAddFederationIdentityProvider("master"))
	assert.Equal(t,
		"/master/identity-providers/openid-federation/openid-federation/settings",
		ToIdentityProvider("master", "openid-federation", "openid-federation", "settings"))
	assert.Equal(t, "/master/realm-settings/tokens", ToRealmSettingsTokens("master"))
}

func TestBuildEscapes(t *testing.T) {
	assert.Equal(t, "/my%20realm/openid-federation/a%2Fb", ToEditOpenIDFederation("my realm", "a/b"))
}

func TestMatch(t *testing.T) {
	tests := []struct {
		path   string
		name   string
		params map[string]string
	}{
		{"/master/openid-federation", OpenIDFederation, map[string]string{"realm": "master"}},
		{"/master/openid-federation/add", AddOpenIDFederation, map[string]string{"realm": "master"}},
		{"/master/openid-federation/general", OpenIDFederationTab, map[string]string{"realm": "master", "tab": "general"}},
		{"/master/openid-federation/7d1c", EditOpenIDFederation, map[string]string{"realm": "master", "id": "7d1c"}},
		{"/master/identity-providers/openid-federation/add", AddFederationIdentityProvider, map[string]string{"realm": "master"}},
		{"/my%20realm/openid-federation/a%2Fb", EditOpenIDFederation, map[string]string{"realm": "my realm", "id": "a/b"}},
		{"/master/realm-settings/tokens/", RealmSettingsTokens, map[string]string{"realm": "master"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r, params, ok := Match(tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.name, r.Name)
			assert.Equal(t, tt.params, params)
		})
	}
}

func TestMatchUnlistedTabIsAnID(t *testing.T) {
	r, params, ok := Match("/master/openid-federation/settings")
	require.True(t, ok)
	assert.Equal(t, EditOpenIDFederation, r.Name)
	assert.Equal(t, "settings", params["id"])
}

func TestPatterns(t *testing.T) {
	tab, _ := Lookup(OpenIDFederationTab)
	assert.Equal(t, "/{realm}/openid-federation/{tab:(?:general)}", tab.pattern())

	idp, _ := Lookup(IdentityProvider)
	assert.Equal(t, "/{realm}/identity-providers/{providerId}/{alias}/{tab}", idp.pattern())
}

func TestMatchUnknown(t *testing.T) {
	_, _, ok := Match("/master/clients")
	assert.False(t, ok)
}

func TestBuildMatchRoundTrip(t *testing.T) {
	for _, r := range Table {
		params := map[string]string{"realm": "acme", "id": "x1", "tab": TabGeneral, "providerId": "p", "alias": "a"}
		got, gotParams, ok := Match(r.Build(params))
		require.True(t, ok, r.Name)
		assert.Equal(t, r.Name, got.Name)
		for k, v := range gotParams {
			assert.Equal(t, params[k], v)
		}
	}
}

func TestLookupAccess(t *testing.T) {
	r, ok := Lookup(AddFederationIdentityProvider)
	require.True(t, ok)
	assert.Equal(t, []string{AccessManageIdentityProviders}, r.Access)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}
