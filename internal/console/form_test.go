package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormDirtyTracking(t *testing.T) {
	f := NewForm(TrustAnchorValues{}, nil)
	assert.False(t, f.IsDirty())

	f.Edit(func(v *TrustAnchorValues) { v.TrustAnchor = "https://ta.example" })
	assert.True(t, f.IsDirty())

	f.Edit(func(v *TrustAnchorValues) { v.TrustAnchor = "" })
	assert.False(t, f.IsDirty(), "editing back to the loaded value is clean")
}

func TestFormNilAndEmptySlicesAreEqual(t *testing.T) {
	f := NewForm(TrustAnchorValues{EntityTypes: nil}, nil)
	f.Edit(func(v *TrustAnchorValues) { v.EntityTypes = []string{} })
	assert.False(t, f.IsDirty())
}

func TestFormToggleRoundTripIsClean(t *testing.T) {
	f := NewForm(TrustAnchorValues{}, nil)
	f.Edit(func(v *TrustAnchorValues) { v.EntityTypes = Toggle(v.EntityTypes, "OPENID_PROVIDER") })
	assert.True(t, f.IsDirty())
	f.Edit(func(v *TrustAnchorValues) { v.EntityTypes = Toggle(v.EntityTypes, "OPENID_PROVIDER") })
	assert.False(t, f.IsDirty())
}

func TestFormLoadAndReset(t *testing.T) {
	f := NewForm(TrustAnchorValues{}, nil)
	f.Load(TrustAnchorValues{TrustAnchor: "https://a.example"})
	f.Edit(func(v *TrustAnchorValues) { v.TrustAnchor = "https://b.example" })

	assert.Equal(t, "https://a.example", f.Initial().TrustAnchor)
	assert.Equal(t, "https://b.example", f.Values().TrustAnchor)

	f.Reset()
	assert.Equal(t, "https://a.example", f.Values().TrustAnchor)
	assert.False(t, f.IsDirty())
}

func TestFormValuesAreCopies(t *testing.T) {
	f := NewForm(TrustAnchorValues{EntityTypes: []string{"OPENID_PROVIDER"}}, nil)
	v := f.Values()
	v.EntityTypes[0] = "mutated"
	assert.Equal(t, "OPENID_PROVIDER", f.Values().EntityTypes[0])
}

func TestFormValidateRecordsErrors(t *testing.T) {
	f := NewForm(TrustAnchorValues{}, nil)
	assert.False(t, f.Validate())
	assert.Len(t, f.Errors(), 3)

	f.Edit(func(v *TrustAnchorValues) {
		v.TrustAnchor = "https://ta.example"
		v.EntityTypes = []string{"OPENID_PROVIDER"}
		v.ClientRegistrationTypesSupported = []string{"EXPLICIT"}
	})
	assert.True(t, f.Validate())
	assert.Nil(t, f.Errors())
}

func TestToggle(t *testing.T) {
	in := []string{"a", "b", "c"}

	assert.Equal(t, []string{"a", "c"}, Toggle(in, "b"))
	assert.Equal(t, []string{"a", "b", "c", "d"}, Toggle(in, "d"))
	assert.Equal(t, []string{"a", "b", "c"}, in, "input is not modified")
	assert.Equal(t, []string{"x"}, Toggle(nil, "x"))
}
