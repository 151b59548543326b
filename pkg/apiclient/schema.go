package apiclient

import (
	"fmt"
	"sort"

	"github.com/invopop/jsonschema"
)

var schemaTypes = map[string]struct {
	value any
	title string
}{
	"trust-anchor":      {&OpenIDFederation{}, "OpenID Federation trust anchor"},
	"identity-provider": {&IdentityProvider{}, "Identity provider instance"},
	"realm":             {&Realm{}, "Realm (fields edited by fedctl)"},
}

// SchemaKinds lists the representations Schema can describe.
func SchemaKinds() []string {
	kinds := make([]string, 0, len(schemaTypes))
	for k := range schemaTypes {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Schema returns the JSON schema of a wire representation.
func Schema(kind string) (*jsonschema.Schema, error) {
	t, ok := schemaTypes[kind]
	if !ok {
		return nil, fmt.Errorf("unknown representation %q (want one of %v)", kind, SchemaKinds())
	}

	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: kind == "realm",
		DoNotReference:            true,
	}
	schema := reflector.Reflect(t.value)
	schema.Version = "https://json-schema.org/draft/2020-12/schema"
	schema.Title = t.title
	return schema, nil
}
