package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"
	"strings"
	"sync"
)

// DefaultFederationLifespan is the entity statement lifespan, in seconds,
// used when a realm has none configured.
const DefaultFederationLifespan = 86400

// Realm is the subset of the realm representation this client edits. Every
// field the client does not model is kept in Extra and written back
// verbatim, so a fetch-modify-PUT cycle never drops server data.
//
// Optional fields are pointers: nil means "leave as is" and is omitted on
// write, while a pointer to a zero value is sent explicitly. Slices and maps
// follow the same rule: nil is omitted, an empty non-nil value is sent as
// [] or {} so a cleared list replaces the stored one.
type Realm struct {
	ID          string `json:"id,omitempty"`
	Realm       string `json:"realm"`
	DisplayName string `json:"displayName,omitempty"`
	Enabled     *bool  `json:"enabled,omitempty"`

	OpenIDFederationEnabled                *bool    `json:"openIdFederationEnabled,omitempty"`
	OpenIDFederationAuthorityHints         []string `json:"openIdFederationAuthorityHints"`
	OpenIDFederationLifespan               *int     `json:"openIdFederationLifespan,omitempty"`
	OpenIDFederationContacts               []string `json:"openIdFederationContacts"`
	OpenIDFederationLogoURI                *string  `json:"openIdFederationLogoUri,omitempty"`
	OpenIDFederationPolicyURI              *string  `json:"openIdFederationPolicyUri,omitempty"`
	OpenIDFederationOrganizationName       *string  `json:"openIdFederationOrganizationName,omitempty"`
	OpenIDFederationHomepageURI            *string  `json:"openIdFederationHomepageUri,omitempty"`
	OpenIDFederationResolveEndpoint        *string  `json:"openIdFederationResolveEndpoint,omitempty"`
	OpenIDFederationHistoricalKeysEndpoint *string  `json:"openIdFederationHistoricalKeysEndpoint,omitempty"`

	DefaultSignatureAlgorithm           *string `json:"defaultSignatureAlgorithm,omitempty"`
	RevokeRefreshToken                  *bool   `json:"revokeRefreshToken,omitempty"`
	RefreshTokenMaxReuse                *int    `json:"refreshTokenMaxReuse,omitempty"`
	AccessTokenLifespan                 *int    `json:"accessTokenLifespan,omitempty"`
	AccessTokenLifespanForImplicitFlow  *int    `json:"accessTokenLifespanForImplicitFlow,omitempty"`
	AccessCodeLifespan                  *int    `json:"accessCodeLifespan,omitempty"`
	IDTokenLifespan                     *int    `json:"idTokenLifespan,omitempty"`
	OAuth2DeviceCodeLifespan            *int    `json:"oauth2DeviceCodeLifespan,omitempty"`
	OAuth2DevicePollingInterval         *int    `json:"oauth2DevicePollingInterval,omitempty"`
	OfflineSessionMaxLifespanEnabled    *bool   `json:"offlineSessionMaxLifespanEnabled,omitempty"`
	OfflineSessionMaxLifespan           *int    `json:"offlineSessionMaxLifespan,omitempty"`
	ActionTokenGeneratedByUserLifespan  *int    `json:"actionTokenGeneratedByUserLifespan,omitempty"`
	ActionTokenGeneratedByAdminLifespan *int    `json:"actionTokenGeneratedByAdminLifespan,omitempty"`

	Attributes map[string]string `json:"attributes"`

	// Extra holds every field not modelled above.
	Extra map[string]json.RawMessage `json:"-"`
}

// FederationEnabled reports whether OpenID Federation is switched on.
func (r *Realm) FederationEnabled() bool {
	return r.OpenIDFederationEnabled != nil && *r.OpenIDFederationEnabled
}

// FederationLifespan returns the configured lifespan or the default.
func (r *Realm) FederationLifespan() int {
	if r.OpenIDFederationLifespan == nil {
		return DefaultFederationLifespan
	}
	return *r.OpenIDFederationLifespan
}

// realmFields is Realm without its JSON methods.
type realmFields Realm

var (
	knownRealmKeysOnce sync.Once
	knownRealmKeys     map[string]struct{}
)

func realmKeys() map[string]struct{} {
	knownRealmKeysOnce.Do(func() {
		knownRealmKeys = make(map[string]struct{})
		t := reflect.TypeOf(realmFields{})
		for i := 0; i < t.NumField(); i++ {
			name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
			if name != "" && name != "-" {
				knownRealmKeys[name] = struct{}{}
			}
		}
	})
	return knownRealmKeys
}

// UnmarshalJSON decodes the modelled fields and stashes the rest in Extra.
func (r *Realm) UnmarshalJSON(data []byte) error {
	var fields realmFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}

	known := realmKeys()
	for k := range all {
		if _, ok := known[k]; ok {
			delete(all, k)
		}
	}
	if len(all) == 0 {
		all = nil
	}

	*r = Realm(fields)
	r.Extra = all
	return nil
}

// nullableRealmKeys are written only when the value is non-nil.
var nullableRealmKeys = []string{
	"openIdFederationAuthorityHints",
	"openIdFederationContacts",
	"attributes",
}

// MarshalJSON writes the modelled fields merged over Extra.
func (r Realm) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(realmFields(r))
	if err != nil {
		return nil, err
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for _, k := range nullableRealmKeys {
		if string(merged[k]) == "null" {
			delete(merged, k)
		}
	}
	known := realmKeys()
	for k, v := range r.Extra {
		if _, ok := known[k]; ok {
			continue
		}
		merged[k] = v
	}
	return json.Marshal(merged)
}

// Realms is the realm resource. Only single-realm reads and writes are
// declared; realm creation and listing are outside this tool's scope.
var Realms = Resource{
	Name:     "realms",
	BasePath: "/admin/realms/{realm}",
	Operations: map[string]Operation{
		OpFindOne: {Method: http.MethodGet, CatchNotFound: true},
		OpUpdate:  {Method: http.MethodPut},
	},
}

// GetRealm returns the client's realm, or nil when it does not exist.
func (c *Client) GetRealm(ctx context.Context) (*Realm, error) {
	return findOne[Realm](ctx, c, Realms, nil)
}

// UpdateRealm replaces the realm representation. Callers are expected to
// start from a fetched Realm so unmodelled fields survive.
func (c *Client) UpdateRealm(ctx context.Context, realm *Realm) error {
	return update(ctx, c, Realms, nil, realm)
}
