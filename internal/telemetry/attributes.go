package telemetry

import "go.opentelemetry.io/otel/attribute"

// Attribute keys recorded on admin API spans.
const (
	AttrRealm      = "fedctl.realm"
	AttrResource   = "fedctl.resource"
	AttrOperation  = "fedctl.operation"
	AttrInternalID = "fedctl.internal_id"
	AttrAlias      = "fedctl.alias"
	AttrView       = "fedctl.view"
)

// Span names.
const (
	SpanAdminRequest = "admin.request"
	SpanViewLoad     = "console.load"
	SpanViewSubmit   = "console.submit"
	SpanViewDelete   = "console.delete"
)

// Realm returns the realm attribute.
func Realm(realm string) attribute.KeyValue {
	return attribute.String(AttrRealm, realm)
}

// Resource returns the resource-kind attribute (e.g. "openid-federations").
func Resource(name string) attribute.KeyValue {
	return attribute.String(AttrResource, name)
}

// Operation returns the declared-operation attribute (e.g. "findOne").
func Operation(name string) attribute.KeyValue {
	return attribute.String(AttrOperation, name)
}

// View returns the console view attribute.
func View(name string) attribute.KeyValue {
	return attribute.String(AttrView, name)
}
