package adminstub

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marmos91/fedctl/internal/adminstub/store"
)

type realmHandler struct {
	store *store.GORMStore
}

func (h *realmHandler) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.store.GetRealm(r.Context(), chi.URLParam(r, "realm"))
	if errors.Is(err, store.ErrRealmNotFound) {
		notFound(w, "Realm not found.")
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// Update merges the top-level fields of the body into the stored realm.
func (h *realmHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch map[string]json.RawMessage
	if !decodeJSONBody(w, r, &patch) {
		return
	}
	if patch == nil {
		badRequest(w, "Invalid request body")
		return
	}
	if raw, ok := patch["openIdFederationLifespan"]; ok {
		var n int
		if err := json.Unmarshal(raw, &n); err != nil || n < 0 {
			badRequest(w, "openIdFederationLifespan must be a non-negative integer")
			return
		}
	}

	err := h.store.UpdateRealm(r.Context(), chi.URLParam(r, "realm"), patch)
	if errors.Is(err, store.ErrRealmNotFound) {
		notFound(w, "Realm not found.")
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}
	noContent(w)
}

// requireRealm answers 404 unless the {realm} path parameter names a realm.
func requireRealm(st *store.GORMStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := st.RealmExists(r.Context(), chi.URLParam(r, "realm"))
			if err != nil {
				internalError(w, r, err)
				return
			}
			if !ok {
				notFound(w, "Realm not found.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
