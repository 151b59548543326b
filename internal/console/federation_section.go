package console

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/marmos91/fedctl/internal/console/routes"
	"github.com/marmos91/fedctl/internal/logger"
	"github.com/marmos91/fedctl/internal/telemetry"
	"github.com/marmos91/fedctl/pkg/apiclient"
)

// RealmAPI is the subset of the admin client used by realm settings views.
type RealmAPI interface {
	Realm() string
	GetRealm(ctx context.Context) (*apiclient.Realm, error)
	UpdateRealm(ctx context.Context, realm *apiclient.Realm) error
}

// FederationAPI is everything the federation overview needs.
type FederationAPI interface {
	RealmAPI
	TrustAnchorAPI
}

// FederationPolicyValues is the realm level OpenID Federation form.
type FederationPolicyValues struct {
	Enabled                bool     `form:"openIdFederationEnabled" json:"openIdFederationEnabled"`
	AuthorityHints         []string `form:"openIdFederationAuthorityHints" json:"openIdFederationAuthorityHints" validate:"min=1,dive,http_url"`
	Lifespan               int      `form:"openIdFederationLifespan" json:"openIdFederationLifespan" validate:"gte=1"`
	Contacts               []string `form:"openIdFederationContacts" json:"openIdFederationContacts" validate:"dive,required"`
	LogoURI                string   `form:"openIdFederationLogoUri" json:"openIdFederationLogoUri" validate:"omitempty,http_url"`
	PolicyURI              string   `form:"openIdFederationPolicyUri" json:"openIdFederationPolicyUri" validate:"omitempty,http_url"`
	OrganizationName       string   `form:"openIdFederationOrganizationName" json:"openIdFederationOrganizationName"`
	HomepageURI            string   `form:"openIdFederationHomepageUri" json:"openIdFederationHomepageUri" validate:"omitempty,http_url"`
	ResolveEndpoint        string   `form:"openIdFederationResolveEndpoint" json:"openIdFederationResolveEndpoint" validate:"omitempty,http_url"`
	HistoricalKeysEndpoint string   `form:"openIdFederationHistoricalKeysEndpoint" json:"openIdFederationHistoricalKeysEndpoint" validate:"omitempty,http_url"`
}

// Clone implements Values.
func (v FederationPolicyValues) Clone() FederationPolicyValues {
	c := v
	c.AuthorityHints = cloneStrings(v.AuthorityHints)
	c.Contacts = cloneStrings(v.Contacts)
	return c
}

// validateFederationPolicy skips every child field while federation is off.
func validateFederationPolicy(v FederationPolicyValues) FieldErrors {
	if !v.Enabled {
		return nil
	}
	return Validate(v)
}

// FederationPolicyFrom reads the policy fields of a realm.
func FederationPolicyFrom(r *apiclient.Realm) FederationPolicyValues {
	return FederationPolicyValues{
		Enabled:                r.FederationEnabled(),
		AuthorityHints:         r.OpenIDFederationAuthorityHints,
		Lifespan:               r.FederationLifespan(),
		Contacts:               r.OpenIDFederationContacts,
		LogoURI:                apiclient.Deref(r.OpenIDFederationLogoURI, ""),
		PolicyURI:              apiclient.Deref(r.OpenIDFederationPolicyURI, ""),
		OrganizationName:       apiclient.Deref(r.OpenIDFederationOrganizationName, ""),
		HomepageURI:            apiclient.Deref(r.OpenIDFederationHomepageURI, ""),
		ResolveEndpoint:        apiclient.Deref(r.OpenIDFederationResolveEndpoint, ""),
		HistoricalKeysEndpoint: apiclient.Deref(r.OpenIDFederationHistoricalKeysEndpoint, ""),
	}.Clone()
}

// ApplyTo merges the policy into a copy of r.
func (v FederationPolicyValues) ApplyTo(r *apiclient.Realm) *apiclient.Realm {
	out := cloneRealm(r)
	out.OpenIDFederationEnabled = apiclient.Ptr(v.Enabled)
	out.OpenIDFederationAuthorityHints = cloneStrings(v.AuthorityHints)
	out.OpenIDFederationLifespan = apiclient.Ptr(v.Lifespan)
	out.OpenIDFederationContacts = cloneStrings(v.Contacts)
	out.OpenIDFederationLogoURI = apiclient.Ptr(v.LogoURI)
	out.OpenIDFederationPolicyURI = apiclient.Ptr(v.PolicyURI)
	out.OpenIDFederationOrganizationName = apiclient.Ptr(v.OrganizationName)
	out.OpenIDFederationHomepageURI = apiclient.Ptr(v.HomepageURI)
	out.OpenIDFederationResolveEndpoint = apiclient.Ptr(v.ResolveEndpoint)
	out.OpenIDFederationHistoricalKeysEndpoint = apiclient.Ptr(v.HistoricalKeysEndpoint)
	return out
}

// FederationSection is the realm's OpenID Federation overview: the policy
// form plus, while federation is enabled, the trust anchor table. The realm
// and the table are fetched concurrently and re-fetched together after
// every save.
type FederationSection struct {
	api  FederationAPI
	deps Deps

	Form         *Form[FederationPolicyValues]
	TrustAnchors *TrustAnchorList

	refresher *Refresher

	mu      sync.Mutex
	state   State
	loadErr error
	realm   *apiclient.Realm
}

// NewFederationSection creates the overview in StateLoading.
func NewFederationSection(api FederationAPI, deps Deps) *FederationSection {
	deps = deps.withDefaults()
	s := &FederationSection{
		api:          api,
		deps:         deps,
		Form:         NewForm(FederationPolicyValues{Lifespan: apiclient.DefaultFederationLifespan}, validateFederationPolicy),
		TrustAnchors: NewTrustAnchorList(api, deps),
		state:        StateLoading,
	}
	s.refresher = NewRefresher(s.realmFetcher(), s.TrustAnchors.Fetcher())
	return s
}

func (s *FederationSection) realmFetcher() Fetcher {
	return func(ctx context.Context) (func(), error) {
		realm, err := s.api.GetRealm(ctx)
		if err == nil && realm == nil {
			err = fmt.Errorf("realm %s: %w", s.api.Realm(), ErrNotFound)
		}
		if err != nil {
			logger.WarnCtx(ctx, "failed to load realm", logger.Realm(s.api.Realm()), logger.Err(err))
			return func() {
				s.mu.Lock()
				s.state, s.loadErr = StateError, err
				s.mu.Unlock()
			}, err
		}
		return func() {
			s.Form.Load(FederationPolicyFrom(realm))
			s.mu.Lock()
			s.realm, s.state, s.loadErr = realm, StateReady, nil
			s.mu.Unlock()
		}, nil
	}
}

// Load fetches the realm and the trust anchors for a new data version.
// The table failing to load does not fail the section.
func (s *FederationSection) Load(ctx context.Context) error {
	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanViewLoad, spanAttrs(telemetry.View("openid-federation"), telemetry.Realm(s.api.Realm())))
	defer span.End()

	err := s.refresher.Refresh(ctx)
	if errors.Is(err, ErrStale) {
		return err
	}
	return s.Err()
}

// DataVersion returns the version of the data currently shown.
func (s *FederationSection) DataVersion() DataVersion {
	return s.refresher.Version()
}

// State returns the lifecycle state.
func (s *FederationSection) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the realm load failure.
func (s *FederationSection) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Realm returns the last fetched realm.
func (s *FederationSection) Realm() *apiclient.Realm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.realm
}

// SetEnabled flips the federation switch in the form. It only edits form
// state: turning federation off hides the trust anchor table but never
// deletes records.
func (s *FederationSection) SetEnabled(on bool) {
	s.Form.Edit(func(v *FederationPolicyValues) { v.Enabled = on })
}

// TrustAnchorsVisible reports whether the trust anchor table is shown.
func (s *FederationSection) TrustAnchorsVisible() bool {
	return s.Form.Values().Enabled
}

// AddAuthorityHint appends a hint unless it is already present.
func (s *FederationSection) AddAuthorityHint(hint string) {
	s.Form.Edit(func(v *FederationPolicyValues) {
		if !slices.Contains(v.AuthorityHints, hint) {
			v.AuthorityHints = append(v.AuthorityHints, hint)
		}
	})
}

// RemoveAuthorityHint drops a hint.
func (s *FederationSection) RemoveAuthorityHint(hint string) {
	s.Form.Edit(func(v *FederationPolicyValues) {
		v.AuthorityHints = slices.DeleteFunc(v.AuthorityHints, func(h string) bool { return h == hint })
	})
}

// Revert restores the fetched policy.
func (s *FederationSection) Revert() {
	s.Form.Reset()
}

// Save merges the policy into the fetched realm and PUTs it. On success it
// raises a success alert and re-fetches realm and table together; when the
// re-fetched realm carries a new name it navigates to that realm's overview.
// On failure it raises an error alert, keeps the entered values and stays
// put.
func (s *FederationSection) Save(ctx context.Context) error {
	realm, err := s.beginSave()
	if err != nil {
		return err
	}

	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanViewSubmit, spanAttrs(telemetry.View("openid-federation"), telemetry.Realm(s.api.Realm())))
	defer span.End()

	values := s.Form.Values()
	if err := s.api.UpdateRealm(ctx, values.ApplyTo(realm)); err != nil {
		telemetry.RecordError(ctx, err)
		logger.WarnCtx(ctx, "failed to save federation settings", logger.Realm(s.api.Realm()), logger.Err(err))
		s.finishSave(StateReady)
		s.deps.Notifier.Notify(Alert{Variant: AlertDanger, Message: "Could not save realm settings", Err: err})
		return err
	}

	logger.InfoCtx(ctx, "federation settings saved", logger.Realm(s.api.Realm()), "enabled", values.Enabled)
	s.deps.Notifier.Notify(Alert{Variant: AlertSuccess, Message: "Realm settings saved"})
	s.Form.Load(values)
	s.finishSave(StateSuccess)

	if err := s.refresher.Refresh(ctx); err != nil && !errors.Is(err, ErrStale) {
		logger.WarnCtx(ctx, "refresh after save incomplete", logger.Err(err))
	}
	if saved := s.Realm(); saved != nil && saved.Realm != "" && saved.Realm != realm.Realm {
		s.deps.Navigator.Navigate(routes.ToOpenIDFederation(saved.Realm, routes.TabGeneral))
	}
	return nil
}

func (s *FederationSection) beginSave() (*apiclient.Realm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if (s.state != StateReady && s.state != StateSuccess) || s.realm == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotReady, s.state)
	}
	if !s.Form.IsDirty() {
		return nil, ErrNotDirty
	}
	if !s.Form.Validate() {
		return nil, s.Form.Errors()
	}
	s.state = StateSubmitting
	return s.realm, nil
}

func (s *FederationSection) finishSave(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// cloneRealm copies the fields views mutate. Extra is shared: views never
// write to it.
func cloneRealm(r *apiclient.Realm) *apiclient.Realm {
	c := *r
	c.OpenIDFederationAuthorityHints = slices.Clone(r.OpenIDFederationAuthorityHints)
	c.OpenIDFederationContacts = slices.Clone(r.OpenIDFederationContacts)
	if r.Attributes != nil {
		c.Attributes = make(map[string]string, len(r.Attributes))
		for k, v := range r.Attributes {
			c.Attributes[k] = v
		}
	}
	return &c
}
