package logger

import "log/slog"

// Standard field keys. Use these instead of ad-hoc strings so log lines can
// be grepped consistently.
const (
	KeyTraceID    = "trace_id"
	KeyRequestID  = "request_id"
	KeyRealm      = "realm"
	KeyView       = "view"
	KeyMethod     = "method"
	KeyPath       = "path"
	KeyStatus     = "status"
	KeyDurationMs = "duration_ms"
	KeyOperation  = "operation"
	KeyInternalID = "internal_id"
	KeyAlias      = "alias"
	KeyTrust      = "trust_anchor"
	KeyError      = "error"
)

func Realm(name string) slog.Attr { return slog.String(KeyRealm, name) }
func Method(m string) slog.Attr { return slog.String(KeyMethod, m) }
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func Status(code int) slog.Attr { return slog.Int(KeyStatus, code) }
func DurationMs(ms float64) slog.Attr { return slog.Float64(KeyDurationMs, ms) }
func Operation(op string) slog.Attr { return slog.String(KeyOperation, op) }
func InternalID(id string) slog.Attr { return slog.String(KeyInternalID, id) }
func Alias(alias string) slog.Attr { return slog.String(KeyAlias, alias) }
func TrustAnchor(anchor string) slog.Attr { return slog.String(KeyTrust, anchor) }

// Err returns an error attribute. A nil error yields an empty attribute,
// which handlers drop.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}
