package adminstub

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/fedctl/internal/adminstub/store"
	"github.com/marmos91/fedctl/internal/cli/health"
	"github.com/marmos91/fedctl/pkg/apiclient"
	"github.com/marmos91/fedctl/pkg/config"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*httptest.Server, *store.GORMStore) {
	t.Helper()
	st, err := store.New(store.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	ctx := context.Background()
	require.NoError(t, st.EnsureRealm(ctx, "master"))

	srv := httptest.NewServer(NewRouter(st, RouterOptions{Version: "test", Now: func() time.Time { return fixedNow }}))
	t.Cleanup(srv.Close)
	return srv, st
}

func newClient(srv *httptest.Server) *apiclient.Client {
	return apiclient.New(srv.URL).WithRealm("master")
}

func federationRequest(url string) apiclient.OpenIDFederationRequest {
	return apiclient.OpenIDFederationRequest{
		TrustAnchor:                      url,
		EntityTypes:                      []string{apiclient.EntityTypeOpenIDProvider},
		ClientRegistrationTypesSupported: []string{apiclient.ClientRegistrationExplicit},
	}
}

func TestTrustAnchorLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	c := newClient(srv)
	ctx := context.Background()

	list, err := c.ListOpenIDFederations(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	id, err := c.CreateOpenIDFederation(ctx, federationRequest("https://ta.example"))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := c.GetOpenIDFederation(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.InternalID)
	assert.Equal(t, "https://ta.example", got.TrustAnchor)

	req := federationRequest("https://ta.example")
	req.EntityTypes = append(req.EntityTypes, apiclient.EntityTypeOpenIDRelyingParty)
	require.NoError(t, c.UpdateOpenIDFederation(ctx, id, req))

	got, err = c.GetOpenIDFederation(ctx, id)
	require.NoError(t, err)
	assert.Len(t, got.EntityTypes, 2)

	require.NoError(t, c.DeleteOpenIDFederation(ctx, id))
	got, err = c.GetOpenIDFederation(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got, "404 on findOne is an absent result")

	err = c.DeleteOpenIDFederation(ctx, id)
	assert.True(t, apiclient.IsNotFound(err))
}

func TestCreateTrustAnchorConflict(t *testing.T) {
	srv, _ := newTestServer(t)
	c := newClient(srv)
	ctx := context.Background()

	_, err := c.CreateOpenIDFederation(ctx, federationRequest("https://ta.example"))
	require.NoError(t, err)

	_, err = c.CreateOpenIDFederation(ctx, federationRequest("https://ta.example"))
	require.Error(t, err)
	apiErr, ok := apiclient.AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsConflict())
	assert.Equal(t, "Trust anchor already exists", apiErr.Message)
}

func TestCreateTrustAnchorValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	c := newClient(srv)

	tests := []struct {
		name string
		req  apiclient.OpenIDFederationRequest
		msg  string
	}{
		{"missing anchor", federationRequest(""), "trustAnchor"},
		{"bad entity type", apiclient.OpenIDFederationRequest{
			TrustAnchor:                      "https://ta.example",
			EntityTypes:                      []string{"NOPE"},
			ClientRegistrationTypesSupported: []string{"EXPLICIT"},
		}, "entityTypes"},
		{"no registration types", apiclient.OpenIDFederationRequest{
			TrustAnchor: "https://ta.example",
			EntityTypes: []string{"OPENID_PROVIDER"},
		}, "clientRegistrationTypesSupported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.CreateOpenIDFederation(context.Background(), tt.req)
			apiErr, ok := apiclient.AsAPIError(err)
			require.True(t, ok)
			assert.True(t, apiErr.IsValidationError())
			assert.Contains(t, apiErr.Message, tt.msg)
		})
	}
}

func TestCreateReturnsLocation(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"trustAnchor":"https://ta.example","entityTypes":["OPENID_PROVIDER"],"clientRegistrationTypesSupported":["EXPLICIT"]}`
	resp, err := http.Post(srv.URL+"/admin/realms/master/openid-federations", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Location"), srv.URL+"/admin/realms/master/openid-federations/"))
}

func TestUnknownRealm(t *testing.T) {
	srv, _ := newTestServer(t)
	c := apiclient.New(srv.URL).WithRealm("missing")
	ctx := context.Background()

	realm, err := c.GetRealm(ctx)
	require.NoError(t, err)
	assert.Nil(t, realm)

	_, err = c.ListOpenIDFederations(ctx)
	assert.True(t, apiclient.IsNotFound(err))

	_, err = c.ListIdentityProviders(ctx)
	assert.True(t, apiclient.IsNotFound(err))
}

func TestRealmRoundTripKeepsUnknownFields(t *testing.T) {
	srv, st := newTestServer(t)
	c := newClient(srv)
	ctx := context.Background()

	require.NoError(t, st.UpdateRealm(ctx, "master", map[string]json.RawMessage{
		"smtpServer": json.RawMessage(`{"host":"mail.example"}`),
	}))

	realm, err := c.GetRealm(ctx)
	require.NoError(t, err)
	require.NotNil(t, realm)
	assert.False(t, realm.FederationEnabled())

	realm.OpenIDFederationEnabled = apiclient.Ptr(true)
	realm.OpenIDFederationLifespan = apiclient.Ptr(3600)
	require.NoError(t, c.UpdateRealm(ctx, realm))

	realm, err = c.GetRealm(ctx)
	require.NoError(t, err)
	assert.True(t, realm.FederationEnabled())
	assert.Equal(t, 3600, realm.FederationLifespan())
	assert.JSONEq(t, `{"host":"mail.example"}`, string(realm.Extra["smtpServer"]))
}

func TestUpdateRealmRejectsNegativeLifespan(t *testing.T) {
	srv, _ := newTestServer(t)
	c := newClient(srv)

	err := c.UpdateRealm(context.Background(), &apiclient.Realm{Realm: "master", OpenIDFederationLifespan: apiclient.Ptr(-1)})
	apiErr, ok := apiclient.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestIdentityProviderExpirationDerivedFromLifespan(t *testing.T) {
	srv, _ := newTestServer(t)
	c := newClient(srv)
	ctx := context.Background()

	require.NoError(t, c.UpdateRealm(ctx, &apiclient.Realm{Realm: "master", OpenIDFederationLifespan: apiclient.Ptr(7200)}))

	idp := apiclient.IdentityProvider{
		Alias:      apiclient.ProviderOpenIDFederation,
		ProviderID: apiclient.ProviderOpenIDFederation,
		Enabled:    true,
		Config: map[string]string{
			apiclient.ConfigIssuer:        "https://op.example",
			apiclient.ConfigTrustAnchorID: "https://ta.example",
		},
	}
	alias, err := c.CreateIdentityProvider(ctx, idp)
	require.NoError(t, err)
	assert.Equal(t, idp.Alias, alias)

	got, err := c.GetIdentityProvider(ctx, alias)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotEmpty(t, got.InternalID)
	assert.Equal(t, "https://op.example", got.Issuer())

	exp, ok := got.ExpirationTime()
	require.True(t, ok)
	assert.True(t, fixedNow.Add(2*time.Hour).Equal(exp), "got %s", exp)

	_, err = c.CreateIdentityProvider(ctx, idp)
	assert.True(t, apiclient.IsConflict(err))

	list, err := c.ListIdentityProviders(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, c.DeleteIdentityProvider(ctx, idp.Alias))
	got, err = c.GetIdentityProvider(ctx, idp.Alias)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestIdentityProviderRequiresTrustAnchor(t *testing.T) {
	srv, _ := newTestServer(t)
	c := newClient(srv)

	_, err := c.CreateIdentityProvider(context.Background(), apiclient.IdentityProvider{
		Alias:      apiclient.ProviderOpenIDFederation,
		ProviderID: apiclient.ProviderOpenIDFederation,
	})
	apiErr, ok := apiclient.AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsValidationError())
}

func TestUpdateIdentityProviderCannotRename(t *testing.T) {
	srv, _ := newTestServer(t)
	c := newClient(srv)
	ctx := context.Background()

	_, err := c.CreateIdentityProvider(ctx, apiclient.IdentityProvider{Alias: "google", ProviderID: "oidc"})
	require.NoError(t, err)
	err = c.UpdateIdentityProvider(ctx, "google", apiclient.IdentityProvider{Alias: "other", ProviderID: "oidc"})
	apiErr, ok := apiclient.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	require.NoError(t, c.UpdateIdentityProvider(ctx, "google", apiclient.IdentityProvider{Alias: "google", ProviderID: "oidc", DisplayName: "Google"}))
	got, err := c.GetIdentityProvider(ctx, "google")
	require.NoError(t, err)
	assert.Equal(t, "Google", got.DisplayName)
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var h health.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&h))
	assert.True(t, h.Healthy())
	assert.Equal(t, "fedstub", h.Data.Service)
	assert.Equal(t, "test", h.Data.Version)
	assert.Equal(t, 1, h.Data.Realms)
}

func TestMetricsDisabledIs404(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnknownRouteUsesErrorBody(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.ErrorMessage)
}

func TestServerStartStop(t *testing.T) {
	st, err := store.New(store.MemoryPath)
	require.NoError(t, err)
	defer st.Close()

	cfg := config.StubConfig{Port: 0, Realms: []string{"master", "tenant"}, ShutdownTimeout: time.Second}
	srv, err := NewServer(context.Background(), cfg, st, "test")
	require.NoError(t, err)

	names, err := st.RealmNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"master", "tenant"}, names)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	require.Eventually(t, func() bool { return srv.Addr() != "" }, 2*time.Second, 10*time.Millisecond)

	h, err := health.Fetch(context.Background(), http.DefaultClient, "http://"+srv.Addr())
	require.NoError(t, err)
	assert.True(t, h.Healthy())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.NoError(t, srv.Stop(context.Background()), "second Stop is a no-op")
}
