package console

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/fedctl/pkg/apiclient"
)

func tokenRealm() *apiclient.Realm {
	return &apiclient.Realm{
		Realm:                              "master",
		AccessTokenLifespan:                apiclient.Ptr(300),
		IDTokenLifespan:                    apiclient.Ptr(600),
		ActionTokenGeneratedByUserLifespan: apiclient.Ptr(300),
		Attributes: map[string]string{
			"actionTokenGeneratedByUserLifespan-verify-email": "900",
			"frontendUrl":                                     "https://sso.example",
		},
	}
}

func TestTokenSettingsFrom(t *testing.T) {
	v := TokenSettingsFrom(tokenRealm())

	assert.Equal(t, 300, v.AccessTokenLifespan)
	assert.Equal(t, 600, v.IDTokenLifespan)
	assert.Equal(t, map[string]int{"verify-email": 900}, v.ActionLifespans)
	assert.Empty(t, v.DefaultSignatureAlgorithm)
}

func TestTokenSettingsApplyTo(t *testing.T) {
	realm := tokenRealm()
	v := TokenSettingsFrom(realm)
	v.IDTokenLifespan = 1200
	v.ActionLifespans = map[string]int{"reset-credentials": 60}

	out := v.ApplyTo(realm)

	assert.Equal(t, 1200, *out.IDTokenLifespan)
	assert.Equal(t, "60", out.Attributes["actionTokenGeneratedByUserLifespan-reset-credentials"])
	assert.NotContains(t, out.Attributes, "actionTokenGeneratedByUserLifespan-verify-email")
	assert.Equal(t, "https://sso.example", out.Attributes["frontendUrl"])
	assert.Nil(t, out.DefaultSignatureAlgorithm, "an unset algorithm is left to the server")

	// The input realm is not modified.
	assert.Equal(t, 600, *realm.IDTokenLifespan)
	assert.Contains(t, realm.Attributes, "actionTokenGeneratedByUserLifespan-verify-email")
}

func TestTokenSettingsApplyToRemovesLastOverride(t *testing.T) {
	realm := &apiclient.Realm{
		Realm:      "master",
		Attributes: map[string]string{"actionTokenGeneratedByUserLifespan-verify-email": "900"},
	}
	v := TokenSettingsFrom(realm)
	delete(v.ActionLifespans, "verify-email")

	out, err := json.Marshal(v.ApplyTo(realm))
	require.NoError(t, err)

	var sent map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &sent))
	assert.JSONEq(t, `{}`, string(sent["attributes"]), "an emptied map replaces the stored one")
}

func TestTokenSettingsSave(t *testing.T) {
	api := newFakeAPI()
	api.realmRep = tokenRealm()
	deps, alerts, _ := testDeps()
	ts := NewTokenSettings(api, deps)

	require.NoError(t, ts.Load(context.Background()))
	assert.ErrorIs(t, ts.Save(context.Background()), ErrNotDirty)

	ts.Form.Edit(func(v *TokenSettingsValues) { v.AccessTokenLifespan = 900 })
	require.NoError(t, ts.Save(context.Background()))

	assert.Equal(t, StateSuccess, ts.State())
	assert.Equal(t, 900, *api.realmRep.AccessTokenLifespan)
	assert.Equal(t, 1, alerts.Count(AlertSuccess))
	assert.False(t, ts.Form.IsDirty())
}

func TestTokenSettingsRejectsNegativeLifespan(t *testing.T) {
	api := newFakeAPI()
	api.realmRep = tokenRealm()
	ts := NewTokenSettings(api, Deps{})
	require.NoError(t, ts.Load(context.Background()))

	ts.Form.Edit(func(v *TokenSettingsValues) {
		v.AccessTokenLifespan = -1
		v.DefaultSignatureAlgorithm = "none"
	})
	fe, ok := AsFieldErrors(ts.Save(context.Background()))
	require.True(t, ok)
	assert.Contains(t, fe, "accessTokenLifespan")
	assert.Contains(t, fe, "defaultSignatureAlgorithm")
	assert.Equal(t, 0, api.Calls("updateRealm"))
}

func TestTokenSettingsSaveFailure(t *testing.T) {
	api := newFakeAPI()
	api.realmRep = tokenRealm()
	deps, alerts, _ := testDeps()
	ts := NewTokenSettings(api, deps)
	require.NoError(t, ts.Load(context.Background()))

	api.updateRealmErr = errBackend
	ts.Form.Edit(func(v *TokenSettingsValues) { v.RevokeRefreshToken = true })

	assert.ErrorIs(t, ts.Save(context.Background()), errBackend)
	assert.Equal(t, StateReady, ts.State())
	assert.True(t, ts.Form.Values().RevokeRefreshToken)
	assert.Equal(t, 1, alerts.Count(AlertDanger))
}

func TestTokenSettingsLoadFailure(t *testing.T) {
	captureLogs(t)
	api := newFakeAPI()
	api.getRealmErr = errBackend
	ts := NewTokenSettings(api, Deps{})

	assert.ErrorIs(t, ts.Load(context.Background()), errBackend)
	assert.Equal(t, StateError, ts.State())
	assert.ErrorIs(t, ts.Save(context.Background()), ErrNotReady)
}
