package adminstub

import (
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/marmos91/fedctl/internal/adminstub/store"
	"github.com/marmos91/fedctl/internal/logger"
	"github.com/marmos91/fedctl/pkg/metrics"
	metricsprom "github.com/marmos91/fedctl/pkg/metrics/prometheus"
)

// RouterOptions tunes the handler tree. Zero values are replaced by
// defaults.
type RouterOptions struct {
	Version string
	Now     func() time.Time
}

// NewRouter builds the stub admin API.
//
//	GET    /health
//	GET    /metrics
//	GET    /admin/realms/{realm}
//	PUT    /admin/realms/{realm}
//	GET    /admin/realms/{realm}/openid-federations
//	POST   /admin/realms/{realm}/openid-federations
//	GET    /admin/realms/{realm}/openid-federations/{internalId}
//	PUT    /admin/realms/{realm}/openid-federations/{internalId}
//	DELETE /admin/realms/{realm}/openid-federations/{internalId}
//	GET    /admin/realms/{realm}/identity-provider/instances
//	POST   /admin/realms/{realm}/identity-provider/instances
//	GET    /admin/realms/{realm}/identity-provider/instances/{alias}
//	PUT    /admin/realms/{realm}/identity-provider/instances/{alias}
//	DELETE /admin/realms/{realm}/identity-provider/instances/{alias}
func NewRouter(st *store.GORMStore, opts RouterOptions) http.Handler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	validate := newValidator()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(metricsprom.NewHTTPMetrics("stub").Middleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	hh := &healthHandler{store: st, version: opts.Version, startedAt: opts.Now(), now: opts.Now}
	r.Get("/health", hh.Liveness)
	r.Handle("/metrics", metrics.Handler())

	realms := &realmHandler{store: st}
	federations := &federationHandler{store: st, validate: validate}
	idps := &identityProviderHandler{store: st, validate: validate, now: opts.Now}

	r.Route("/admin/realms/{realm}", func(r chi.Router) {
		r.Get("/", realms.Get)
		r.Put("/", realms.Update)

		r.Group(func(r chi.Router) {
			r.Use(requireRealm(st))

			r.Route("/openid-federations", func(r chi.Router) {
				r.Get("/", federations.List)
				r.Post("/", federations.Create)
				r.Get("/{internalId}", federations.Get)
				r.Put("/{internalId}", federations.Update)
				r.Delete("/{internalId}", federations.Delete)
			})

			r.Route("/identity-provider/instances", func(r chi.Router) {
				r.Get("/", idps.List)
				r.Post("/", idps.Create)
				r.Get("/{alias}", idps.Get)
				r.Put("/{alias}", idps.Update)
				r.Delete("/{alias}", idps.Delete)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		notFound(w, "HTTP 404 Not Found")
	})
	return r
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// requestLogger logs each request through the internal logger. Health and
// metrics probes are logged at DEBUG.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		args := []any{
			"request_id", requestID,
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.Status(ww.Status()),
			"bytes", ww.BytesWritten(),
			logger.DurationMs(logger.Since(start)),
		}
		if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
			logger.Debug("Stub request completed", args...)
			return
		}
		logger.Info("Stub request completed", args...)
	})
}
