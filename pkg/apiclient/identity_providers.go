package apiclient

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ProviderOpenIDFederation is the provider id (and default alias) of
// OpenID Federation identity providers.
const ProviderOpenIDFederation = "openid-federation"

// Config keys used by OpenID Federation identity providers.
const (
	ConfigIssuer         = "issuer"
	ConfigTrustAnchorID  = "trustAnchorId"
	ConfigAuthorityHints = "authorityHints"
	ConfigExpirationTime = "expiration.time"
	ConfigGUIOrder       = "guiOrder"
)

// AuthorityHintSeparator joins authority hints in the provider config map.
const AuthorityHintSeparator = "##"

// IdentityProvider is an identity provider instance of a realm.
type IdentityProvider struct {
	Alias       string            `json:"alias"`
	DisplayName string            `json:"displayName,omitempty"`
	ProviderID  string            `json:"providerId"`
	Enabled     bool              `json:"enabled"`
	InternalID  string            `json:"internalId,omitempty" jsonschema:"readOnly=true"`
	Config      map[string]string `json:"config,omitempty"`
}

// Issuer returns the configured issuer URL.
func (p IdentityProvider) Issuer() string {
	return p.Config[ConfigIssuer]
}

// DisplayOrder returns the login page position. The second result is false
// when none is configured.
func (p IdentityProvider) DisplayOrder() (int, bool) {
	raw := p.Config[ConfigGUIOrder]
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// TrustAnchorID returns the trust anchor the provider resolves through.
func (p IdentityProvider) TrustAnchorID() string {
	return p.Config[ConfigTrustAnchorID]
}

// AuthorityHints splits the stored authority hints.
func (p IdentityProvider) AuthorityHints() []string {
	return SplitAuthorityHints(p.Config[ConfigAuthorityHints])
}

// ExpirationTime returns the federation metadata expiry. The second result
// is false when the server has not resolved it yet.
func (p IdentityProvider) ExpirationTime() (time.Time, bool) {
	raw := p.Config[ConfigExpirationTime]
	if raw == "" {
		return time.Time{}, false
	}
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(secs, 0).UTC(), true
}

// SplitAuthorityHints splits a "##"-joined hint list, dropping empty entries.
func SplitAuthorityHints(raw string) []string {
	var hints []string
	for _, h := range strings.Split(raw, AuthorityHintSeparator) {
		if h = strings.TrimSpace(h); h != "" {
			hints = append(hints, h)
		}
	}
	return hints
}

// JoinAuthorityHints is the inverse of SplitAuthorityHints.
func JoinAuthorityHints(hints []string) string {
	return strings.Join(hints, AuthorityHintSeparator)
}

// IdentityProviders is the identity provider instance resource.
var IdentityProviders = Resource{
	Name:     "identity-providers",
	BasePath: "/admin/realms/{realm}/identity-provider/instances",
	Operations: map[string]Operation{
		OpFind: {Method: http.MethodGet},
		OpFindOne: {
			Method:        http.MethodGet,
			Path:          "/{alias}",
			URLParamKeys:  []string{"alias"},
			CatchNotFound: true,
		},
		OpCreate: {
			Method:                           http.MethodPost,
			ReturnResourceIDInLocationHeader: &LocationRule{Field: "alias"},
		},
		OpUpdate: {
			Method:       http.MethodPut,
			Path:         "/{alias}",
			URLParamKeys: []string{"alias"},
		},
		OpDelete: {
			Method:       http.MethodDelete,
			Path:         "/{alias}",
			URLParamKeys: []string{"alias"},
		},
	},
}

// ListIdentityProviders returns every identity provider of the realm.
func (c *Client) ListIdentityProviders(ctx context.Context) ([]IdentityProvider, error) {
	return findAll[IdentityProvider](ctx, c, IdentityProviders, nil)
}

// GetIdentityProvider returns the provider, or nil when it does not exist.
func (c *Client) GetIdentityProvider(ctx context.Context, alias string) (*IdentityProvider, error) {
	return findOne[IdentityProvider](ctx, c, IdentityProviders, Params{"alias": alias})
}

// CreateIdentityProvider registers a new identity provider and returns the
// alias the server filed it under.
func (c *Client) CreateIdentityProvider(ctx context.Context, idp IdentityProvider) (string, error) {
	return create(ctx, c, IdentityProviders, nil, idp)
}

// UpdateIdentityProvider replaces the provider registered under alias.
func (c *Client) UpdateIdentityProvider(ctx context.Context, alias string, idp IdentityProvider) error {
	return update(ctx, c, IdentityProviders, Params{"alias": alias}, idp)
}

// DeleteIdentityProvider removes the provider registered under alias.
func (c *Client) DeleteIdentityProvider(ctx context.Context, alias string) error {
	return remove(ctx, c, IdentityProviders, Params{"alias": alias})
}
