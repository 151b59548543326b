package apiclient

import (
	"context"
	"net/http"
)

// Entity types a federation participant can advertise.
const (
	EntityTypeOpenIDProvider     = "OPENID_PROVIDER"
	EntityTypeOpenIDRelyingParty = "OPENID_RELAYING_PARTY"
)

// ClientRegistrationExplicit is the only supported registration type.
const ClientRegistrationExplicit = "EXPLICIT"

// EntityTypes lists every accepted entity type.
var EntityTypes = []string{EntityTypeOpenIDProvider, EntityTypeOpenIDRelyingParty}

// ClientRegistrationTypes lists every accepted client registration type.
var ClientRegistrationTypes = []string{ClientRegistrationExplicit}

// OpenIDFederation is one trust anchor configured for a realm.
type OpenIDFederation struct {
	InternalID                       string            `json:"internalId,omitempty" jsonschema:"readOnly=true"`
	TrustAnchor                      string            `json:"trustAnchor" jsonschema:"format=uri"`
	EntityTypes                      []string          `json:"entityTypes" jsonschema:"enum=OPENID_PROVIDER,enum=OPENID_RELAYING_PARTY"`
	ClientRegistrationTypesSupported []string          `json:"clientRegistrationTypesSupported" jsonschema:"enum=EXPLICIT"`
	IdpConfiguration                 map[string]string `json:"idpConfiguration,omitempty" jsonschema:"readOnly=true"`
}

// OpenIDFederationRequest is the create/update body. It never carries the
// internal id, which the server owns.
type OpenIDFederationRequest struct {
	TrustAnchor                      string   `json:"trustAnchor"`
	EntityTypes                      []string `json:"entityTypes"`
	ClientRegistrationTypesSupported []string `json:"clientRegistrationTypesSupported"`
}

// Request returns the writable part of f.
func (f OpenIDFederation) Request() OpenIDFederationRequest {
	return OpenIDFederationRequest{
		TrustAnchor:                      f.TrustAnchor,
		EntityTypes:                      append([]string(nil), f.EntityTypes...),
		ClientRegistrationTypesSupported: append([]string(nil), f.ClientRegistrationTypesSupported...),
	}
}

// OpenIDFederations is the trust anchor resource.
var OpenIDFederations = Resource{
	Name:     "openid-federations",
	BasePath: "/admin/realms/{realm}/openid-federations",
	Operations: map[string]Operation{
		OpFind: {Method: http.MethodGet},
		OpFindOne: {
			Method:        http.MethodGet,
			Path:          "/{internalId}",
			URLParamKeys:  []string{"internalId"},
			CatchNotFound: true,
		},
		OpCreate: {
			Method:                           http.MethodPost,
			ReturnResourceIDInLocationHeader: &LocationRule{Field: "id"},
		},
		OpUpdate: {
			Method:       http.MethodPut,
			Path:         "/{internalId}",
			URLParamKeys: []string{"internalId"},
		},
		OpDelete: {
			Method:       http.MethodDelete,
			Path:         "/{internalId}",
			URLParamKeys: []string{"internalId"},
		},
	},
}

// ListOpenIDFederations returns every trust anchor of the client's realm.
func (c *Client) ListOpenIDFederations(ctx context.Context) ([]OpenIDFederation, error) {
	return findAll[OpenIDFederation](ctx, c, OpenIDFederations, nil)
}

// GetOpenIDFederation returns the trust anchor, or nil when it does not exist.
func (c *Client) GetOpenIDFederation(ctx context.Context, internalID string) (*OpenIDFederation, error) {
	return findOne[OpenIDFederation](ctx, c, OpenIDFederations, Params{"internalId": internalID})
}

// CreateOpenIDFederation creates a trust anchor and returns its server
// assigned internal id.
func (c *Client) CreateOpenIDFederation(ctx context.Context, req OpenIDFederationRequest) (string, error) {
	return create(ctx, c, OpenIDFederations, nil, req)
}

// UpdateOpenIDFederation replaces the trust anchor's writable fields.
func (c *Client) UpdateOpenIDFederation(ctx context.Context, internalID string, req OpenIDFederationRequest) error {
	return update(ctx, c, OpenIDFederations, Params{"internalId": internalID}, req)
}

// DeleteOpenIDFederation deletes a trust anchor.
func (c *Client) DeleteOpenIDFederation(ctx context.Context, internalID string) error {
	return remove(ctx, c, OpenIDFederations, Params{"internalId": internalID})
}
