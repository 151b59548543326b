package logger

import "context"

type contextKey struct{}

// LogContext carries per-operation fields that every ...Ctx call prepends.
type LogContext struct {
	TraceID   string
	RequestID string
	Realm     string
	View      string
}

// WithContext attaches lc to ctx.
func WithContext(ctx context.Context, lc *LogContext) context.Context {
	return context.WithValue(ctx, contextKey{}, lc)
}

// FromContext returns the LogContext in ctx, or nil.
func FromContext(ctx context.Context) *LogContext {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(contextKey{}).(*LogContext)
	return lc
}

// WithRealm returns a copy of lc scoped to realm.
func (lc *LogContext) WithRealm(realm string) *LogContext {
	c := lc.clone()
	c.Realm = realm
	return c
}

// WithView returns a copy of lc scoped to a console view.
func (lc *LogContext) WithView(view string) *LogContext {
	c := lc.clone()
	c.View = view
	return c
}

func (lc *LogContext) clone() *LogContext {
	if lc == nil {
		return &LogContext{}
	}
	c := *lc
	return &c
}

func withContextFields(ctx context.Context, args []any) []any {
	lc := FromContext(ctx)
	if lc == nil {
		return args
	}

	out := make([]any, 0, 8+len(args))
	if lc.TraceID != "" {
		out = append(out, KeyTraceID, lc.TraceID)
	}
	if lc.RequestID != "" {
		out = append(out, KeyRequestID, lc.RequestID)
	}
	if lc.Realm != "" {
		out = append(out, KeyRealm, lc.Realm)
	}
	if lc.View != "" {
		out = append(out, KeyView, lc.View)
	}
	return append(out, args...)
}
