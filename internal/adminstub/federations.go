package adminstub

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/marmos91/fedctl/internal/adminstub/store"
	"github.com/marmos91/fedctl/internal/logger"
	"github.com/marmos91/fedctl/pkg/apiclient"
)

// federationBody is the accepted create/update body.
type federationBody struct {
	TrustAnchor                      string   `json:"trustAnchor" validate:"required,url"`
	EntityTypes                      []string `json:"entityTypes" validate:"required,min=1,dive,oneof=OPENID_PROVIDER OPENID_RELAYING_PARTY"`
	ClientRegistrationTypesSupported []string `json:"clientRegistrationTypesSupported" validate:"required,min=1,dive,oneof=EXPLICIT"`
}

type federationHandler struct {
	store    *store.GORMStore
	validate *validator.Validate
}

func toFederation(ta *store.TrustAnchor) apiclient.OpenIDFederation {
	return apiclient.OpenIDFederation{
		InternalID:                       ta.InternalID,
		TrustAnchor:                      ta.TrustAnchor,
		EntityTypes:                      nonNil(ta.EntityTypes),
		ClientRegistrationTypesSupported: nonNil(ta.ClientRegistrationTypesSupported),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (h *federationHandler) List(w http.ResponseWriter, r *http.Request) {
	anchors, err := h.store.ListTrustAnchors(r.Context(), chi.URLParam(r, "realm"))
	if err != nil {
		internalError(w, r, err)
		return
	}
	out := make([]apiclient.OpenIDFederation, 0, len(anchors))
	for _, ta := range anchors {
		out = append(out, toFederation(ta))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *federationHandler) Get(w http.ResponseWriter, r *http.Request) {
	ta, err := h.store.GetTrustAnchor(r.Context(), chi.URLParam(r, "realm"), chi.URLParam(r, "internalId"))
	if errors.Is(err, store.ErrTrustAnchorNotFound) {
		notFound(w, "Could not find OpenID Federation configuration")
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toFederation(ta))
}

// decode reads and validates the body; false means an error was written.
func (h *federationHandler) decode(w http.ResponseWriter, r *http.Request) (*store.TrustAnchor, bool) {
	var body federationBody
	if !decodeJSONBody(w, r, &body) {
		return nil, false
	}
	if err := h.validate.Struct(body); err != nil {
		badRequest(w, validationMessage(err))
		return nil, false
	}
	return &store.TrustAnchor{
		TrustAnchor:                      body.TrustAnchor,
		EntityTypes:                      body.EntityTypes,
		ClientRegistrationTypesSupported: body.ClientRegistrationTypesSupported,
	}, true
}

func (h *federationHandler) Create(w http.ResponseWriter, r *http.Request) {
	ta, ok := h.decode(w, r)
	if !ok {
		return
	}
	realm := chi.URLParam(r, "realm")
	id, err := h.store.CreateTrustAnchor(r.Context(), realm, ta)
	if errors.Is(err, store.ErrDuplicateTrustAnchor) {
		conflict(w, "Trust anchor already exists")
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}
	logger.InfoCtx(r.Context(), "Trust anchor created", logger.Realm(realm), logger.InternalID(id), logger.TrustAnchor(ta.TrustAnchor))
	created(w, r, id)
}

func (h *federationHandler) Update(w http.ResponseWriter, r *http.Request) {
	ta, ok := h.decode(w, r)
	if !ok {
		return
	}
	err := h.store.UpdateTrustAnchor(r.Context(), chi.URLParam(r, "realm"), chi.URLParam(r, "internalId"), ta)
	switch {
	case errors.Is(err, store.ErrTrustAnchorNotFound):
		notFound(w, "Could not find OpenID Federation configuration")
	case errors.Is(err, store.ErrDuplicateTrustAnchor):
		conflict(w, "Trust anchor already exists")
	case err != nil:
		internalError(w, r, err)
	default:
		noContent(w)
	}
}

func (h *federationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteTrustAnchor(r.Context(), chi.URLParam(r, "realm"), chi.URLParam(r, "internalId"))
	if errors.Is(err, store.ErrTrustAnchorNotFound) {
		notFound(w, "Could not find OpenID Federation configuration")
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}
	noContent(w)
}

// validationMessage names the first failing field.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return "invalid " + fe.Field() + ": " + fe.Tag()
	}
	return err.Error()
}
