// Package routes is the static route table of the admin console. Builders
// produce concrete paths for navigation and Match resolves a path back to
// its route.
package routes

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Route names.
const (
	OpenIDFederation              = "openid-federation"
	OpenIDFederationTab           = "openid-federation-tab"
	AddOpenIDFederation           = "add-openid-federation"
	EditOpenIDFederation          = "edit-openid-federation"
	AddFederationIdentityProvider = "add-openid-federation-identity-provider"
	IdentityProvider              = "identity-provider"
	RealmSettingsTokens           = "realm-settings-tokens"
)

// Access roles a route requires.
const (
	AccessViewRealm               = "view-realm"
	AccessManageIdentityProviders = "manage-identity-providers"
)

// TabGeneral is the only tab of the federation overview.
const TabGeneral = "general"

// Route is one registered path template.
type Route struct {
	Name       string
	Path       string
	Title      string
	Access     []string
	Breadcrumb string

	// Allowed restricts parameter values; a path whose value is not listed
	// falls through to the next route.
	Allowed map[string][]string

	segments []string
}

// Table lists the console routes. Literal segments win over parameters, so
// "add" is never taken as an id, and the tab route only accepts known tab
// names so any other segment is an id.
var Table = []Route{
	{Name: OpenIDFederation, Path: "/:realm/openid-federation", Title: "OpenID Federation", Access: []string{AccessViewRealm}},
	{Name: AddOpenIDFederation, Path: "/:realm/openid-federation/add", Title: "Add trust anchor", Access: []string{AccessViewRealm}, Breadcrumb: "Add"},
	{Name: OpenIDFederationTab, Path: "/:realm/openid-federation/:tab", Title: "OpenID Federation", Access: []string{AccessViewRealm}, Allowed: map[string][]string{"tab": {TabGeneral}}},
	{Name: EditOpenIDFederation, Path: "/:realm/openid-federation/:id", Title: "Edit trust anchor", Access: []string{AccessViewRealm}, Breadcrumb: "Edit"},
	{Name: AddFederationIdentityProvider, Path: "/:realm/identity-providers/openid-federation/add", Title: "Add OpenID Federation provider", Access: []string{AccessManageIdentityProviders}},
	{Name: IdentityProvider, Path: "/:realm/identity-providers/:providerId/:alias/:tab", Title: "Identity provider", Access: []string{AccessManageIdentityProviders}},
	{Name: RealmSettingsTokens, Path: "/:realm/realm-settings/tokens", Title: "Tokens", Access: []string{AccessViewRealm}},
}

// router resolves paths against Table. Handlers are never invoked; the
// matched pattern identifies the route.
var router, byPattern = compile(Table)

func compile(routes []Route) (*chi.Mux, map[string]int) {
	mux := chi.NewRouter()
	patterns := make(map[string]int, len(routes))
	seen := make(map[string]bool, len(routes))
	for i := range routes {
		if seen[routes[i].Name] {
			panic("routes: duplicate route " + routes[i].Name)
		}
		seen[routes[i].Name] = true
		routes[i].segments = split(routes[i].Path)

		pattern := routes[i].pattern()
		patterns[pattern] = i
		mux.Get(pattern, func(http.ResponseWriter, *http.Request) {})
	}
	return mux, patterns
}

func split(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}

// pattern is the chi form of Path: ":id" becomes "{id}" and a restricted
// parameter becomes an anchored alternation.
func (r Route) pattern() string {
	out := make([]string, len(r.segments))
	for i, seg := range r.segments {
		name, ok := strings.CutPrefix(seg, ":")
		if !ok {
			out[i] = seg
			continue
		}
		allowed, restricted := r.Allowed[name]
		if !restricted {
			out[i] = "{" + name + "}"
			continue
		}
		quoted := make([]string, len(allowed))
		for j, v := range allowed {
			quoted[j] = regexp.QuoteMeta(v)
		}
		out[i] = "{" + name + ":(?:" + strings.Join(quoted, "|") + ")}"
	}
	return "/" + strings.Join(out, "/")
}

// Lookup returns the route registered under name.
func Lookup(name string) (Route, bool) {
	for _, r := range Table {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// Build fills the route's placeholders. Values are path-escaped; a missing
// value leaves the placeholder in place.
func (r Route) Build(params map[string]string) string {
	out := make([]string, len(r.segments))
	for i, seg := range r.segments {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			if v, found := params[name]; found && v != "" {
				out[i] = url.PathEscape(v)
				continue
			}
		}
		out[i] = seg
	}
	return "/" + strings.Join(out, "/")
}

// Match resolves a concrete path. Params are unescaped.
func Match(path string) (Route, map[string]string, bool) {
	if u, err := url.Parse(path); err == nil {
		path = u.EscapedPath()
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	rctx := chi.NewRouteContext()
	if !router.Match(rctx, http.MethodGet, path) || len(rctx.RoutePatterns) == 0 {
		return Route{}, nil, false
	}
	i, ok := byPattern[rctx.RoutePatterns[len(rctx.RoutePatterns)-1]]
	if !ok {
		return Route{}, nil, false
	}

	params := make(map[string]string, len(rctx.URLParams.Keys))
	for k, key := range rctx.URLParams.Keys {
		v, err := url.PathUnescape(rctx.URLParams.Values[k])
		if err != nil || v == "" {
			return Route{}, nil, false
		}
		params[key] = v
	}
	return Table[i], params, true
}

// ToOpenIDFederation is the federation overview, optionally on a tab.
func ToOpenIDFederation(realm, tab string) string {
	if tab != "" {
		r, _ := Lookup(OpenIDFederationTab)
		return r.Build(map[string]string{"realm": realm, "tab": tab})
	}
	r, _ := Lookup(OpenIDFederation)
	return r.Build(map[string]string{"realm": realm})
}

// ToAddOpenIDFederation is the create trust anchor screen.
func ToAddOpenIDFederation(realm string) string {
	r, _ := Lookup(AddOpenIDFederation)
	return r.Build(map[string]string{"realm": realm})
}

// ToEditOpenIDFederation is the edit screen of one trust anchor.
func ToEditOpenIDFederation(realm, id string) string {
	r, _ := Lookup(EditOpenIDFederation)
	return r.Build(map[string]string{"realm": realm, "id": id})
}

// ToAddFederationIdentityProvider is the create provider screen.
func ToAddFederationIdentityProvider(realm string) string {
	r, _ := Lookup(AddFederationIdentityProvider)
	return r.Build(map[string]string{"realm": realm})
}

// ToIdentityProvider is a provider detail screen.
func ToIdentityProvider(realm, providerID, alias, tab string) string {
	r, _ := Lookup(IdentityProvider)
	return r.Build(map[string]string{"realm": realm, "providerId": providerID, "alias": alias, "tab": tab})
}

// ToRealmSettingsTokens is the realm token settings screen.
func ToRealmSettingsTokens(realm string) string {
	r, _ := Lookup(RealmSettingsTokens)
	return r.Build(map[string]string{"realm": realm})
}
