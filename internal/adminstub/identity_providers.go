package adminstub

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/marmos91/fedctl/internal/adminstub/store"
	"github.com/marmos91/fedctl/internal/logger"
	"github.com/marmos91/fedctl/pkg/apiclient"
)

type identityProviderBody struct {
	Alias       string            `json:"alias" validate:"required"`
	DisplayName string            `json:"displayName"`
	ProviderID  string            `json:"providerId" validate:"required"`
	Enabled     bool              `json:"enabled"`
	Config      map[string]string `json:"config"`
}

type identityProviderHandler struct {
	store    *store.GORMStore
	validate *validator.Validate
	now      func() time.Time
}

func toIdentityProvider(p *store.IdentityProvider) apiclient.IdentityProvider {
	return apiclient.IdentityProvider{
		Alias:       p.Alias,
		DisplayName: p.DisplayName,
		ProviderID:  p.ProviderID,
		Enabled:     p.Enabled,
		InternalID:  p.InternalID,
		Config:      p.Config,
	}
}

func (h *identityProviderHandler) List(w http.ResponseWriter, r *http.Request) {
	idps, err := h.store.ListIdentityProviders(r.Context(), chi.URLParam(r, "realm"))
	if err != nil {
		internalError(w, r, err)
		return
	}
	out := make([]apiclient.IdentityProvider, 0, len(idps))
	for _, p := range idps {
		out = append(out, toIdentityProvider(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *identityProviderHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetIdentityProvider(r.Context(), chi.URLParam(r, "realm"), chi.URLParam(r, "alias"))
	if errors.Is(err, store.ErrIdentityProviderNotFound) {
		notFound(w, "Could not find identity provider")
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toIdentityProvider(p))
}

// decode validates the body and, for OpenID Federation providers, fills in
// the metadata expiry the real server would resolve.
func (h *identityProviderHandler) decode(w http.ResponseWriter, r *http.Request) (*store.IdentityProvider, bool) {
	var body identityProviderBody
	if !decodeJSONBody(w, r, &body) {
		return nil, false
	}
	if err := h.validate.Struct(body); err != nil {
		badRequest(w, validationMessage(err))
		return nil, false
	}

	cfg := make(map[string]string, len(body.Config)+1)
	for k, v := range body.Config {
		cfg[k] = v
	}
	if body.ProviderID == apiclient.ProviderOpenIDFederation {
		if cfg[apiclient.ConfigTrustAnchorID] == "" {
			badRequest(w, "invalid config.trustAnchorId: required")
			return nil, false
		}
		lifespan, ok, err := h.store.RealmInt(r.Context(), chi.URLParam(r, "realm"), "openIdFederationLifespan")
		if err != nil {
			internalError(w, r, err)
			return nil, false
		}
		if !ok {
			lifespan = apiclient.DefaultFederationLifespan
		}
		expiry := h.now().Add(time.Duration(lifespan) * time.Second)
		cfg[apiclient.ConfigExpirationTime] = strconv.FormatInt(expiry.Unix(), 10)
	}

	return &store.IdentityProvider{
		Alias:       body.Alias,
		DisplayName: body.DisplayName,
		ProviderID:  body.ProviderID,
		Enabled:     body.Enabled,
		Config:      cfg,
	}, true
}

func (h *identityProviderHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decode(w, r)
	if !ok {
		return
	}
	realm := chi.URLParam(r, "realm")
	if _, err := h.store.CreateIdentityProvider(r.Context(), realm, p); err != nil {
		if errors.Is(err, store.ErrDuplicateIdentityProvider) {
			conflict(w, "Identity Provider "+p.Alias+" already exists")
			return
		}
		internalError(w, r, err)
		return
	}
	logger.InfoCtx(r.Context(), "Identity provider created", logger.Realm(realm), logger.Alias(p.Alias))
	created(w, r, p.Alias)
}

func (h *identityProviderHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decode(w, r)
	if !ok {
		return
	}
	alias := chi.URLParam(r, "alias")
	if p.Alias != alias {
		badRequest(w, "alias cannot be changed")
		return
	}
	err := h.store.UpdateIdentityProvider(r.Context(), chi.URLParam(r, "realm"), alias, p)
	if errors.Is(err, store.ErrIdentityProviderNotFound) {
		notFound(w, "Could not find identity provider")
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}
	noContent(w)
}

func (h *identityProviderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteIdentityProvider(r.Context(), chi.URLParam(r, "realm"), chi.URLParam(r, "alias"))
	if errors.Is(err, store.ErrIdentityProviderNotFound) {
		notFound(w, "Could not find identity provider")
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}
	noContent(w)
}
