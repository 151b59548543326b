package console

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTrustAnchorValues(t *testing.T) {
	tests := []struct {
		name   string
		values TrustAnchorValues
		want   FieldErrors
	}{
		{
			name:   "AllEmpty",
			values: TrustAnchorValues{},
			want: FieldErrors{
				"trustAnchor":                      MsgRequired,
				"entityTypes":                      MsgRequired,
				"clientRegistrationTypesSupported": MsgRequired,
			},
		},
		{
			name: "NotAURL",
			values: TrustAnchorValues{
				TrustAnchor:                      "ta.example",
				EntityTypes:                      []string{"OPENID_PROVIDER"},
				ClientRegistrationTypesSupported: []string{"EXPLICIT"},
			},
			want: FieldErrors{"trustAnchor": MsgURL},
		},
		{
			name: "UnknownEntityType",
			values: TrustAnchorValues{
				TrustAnchor:                      "https://ta.example",
				EntityTypes:                      []string{"OPENID_PROVIDER", "WALLET"},
				ClientRegistrationTypesSupported: []string{"EXPLICIT"},
			},
			want: FieldErrors{"entityTypes": "Must be one of: OPENID_PROVIDER, OPENID_RELAYING_PARTY"},
		},
		{
			name: "Valid",
			values: TrustAnchorValues{
				TrustAnchor:                      "https://ta.example",
				EntityTypes:                      []string{"OPENID_PROVIDER", "OPENID_RELAYING_PARTY"},
				ClientRegistrationTypesSupported: []string{"EXPLICIT"},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.values))
		})
	}
}

func TestValidateFederationPolicySkippedWhenDisabled(t *testing.T) {
	off := FederationPolicyValues{Enabled: false, Lifespan: 0}
	assert.Nil(t, validateFederationPolicy(off))

	on := FederationPolicyValues{Enabled: true, Lifespan: 0, AuthorityHints: []string{"not a url"}}
	errs := validateFederationPolicy(on)
	assert.Equal(t, MsgURL, errs["openIdFederationAuthorityHints"])
	assert.Contains(t, errs, "openIdFederationLifespan")
}

func TestFieldErrorsError(t *testing.T) {
	fe := FieldErrors{"b": "two", "a": "one"}
	assert.Equal(t, "invalid form: a: one; b: two", fe.Error())

	wrapped := fmt.Errorf("submit: %w", error(fe))
	got, ok := AsFieldErrors(wrapped)
	require.True(t, ok)
	assert.Equal(t, fe, got)

	_, ok = AsFieldErrors(errors.New("plain"))
	assert.False(t, ok)
}
