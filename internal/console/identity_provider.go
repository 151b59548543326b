package console

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/marmos91/fedctl/internal/console/routes"
	"github.com/marmos91/fedctl/internal/logger"
	"github.com/marmos91/fedctl/internal/telemetry"
	"github.com/marmos91/fedctl/pkg/apiclient"
)

// IdentityProviderAPI is the subset of the admin client used by identity
// provider views.
type IdentityProviderAPI interface {
	Realm() string
	ListOpenIDFederations(ctx context.Context) ([]apiclient.OpenIDFederation, error)
	GetIdentityProvider(ctx context.Context, alias string) (*apiclient.IdentityProvider, error)
	CreateIdentityProvider(ctx context.Context, idp apiclient.IdentityProvider) (string, error)
}

// FederationProviderValues is the create form of an OpenID Federation
// identity provider.
type FederationProviderValues struct {
	DisplayName   string `form:"displayName"`
	Issuer        string `form:"config.issuer" validate:"required,http_url"`
	TrustAnchorID string `form:"config.trustAnchorId" validate:"required,http_url"`
	Enabled       bool   `form:"enabled"`

	// DisplayOrder positions the provider on the login page; nil leaves it
	// to the server.
	DisplayOrder *int `form:"config.guiOrder" validate:"omitempty,gte=0"`
}

// Clone implements Values.
func (v FederationProviderValues) Clone() FederationProviderValues {
	c := v
	if v.DisplayOrder != nil {
		c.DisplayOrder = apiclient.Ptr(*v.DisplayOrder)
	}
	return c
}

// Provider converts the form into the wire representation. Provider id and
// alias are fixed; the expiration time is server-derived and never sent.
func (v FederationProviderValues) Provider() apiclient.IdentityProvider {
	idp := apiclient.IdentityProvider{
		Alias:       apiclient.ProviderOpenIDFederation,
		ProviderID:  apiclient.ProviderOpenIDFederation,
		DisplayName: v.DisplayName,
		Enabled:     v.Enabled,
		Config: map[string]string{
			apiclient.ConfigIssuer:        v.Issuer,
			apiclient.ConfigTrustAnchorID: v.TrustAnchorID,
		},
	}
	if v.DisplayOrder != nil {
		idp.Config[apiclient.ConfigGUIOrder] = strconv.Itoa(*v.DisplayOrder)
	}
	return idp
}

// AddFederationProvider is the create screen. The trust anchor selector is
// fed from the realm's trust anchors.
type AddFederationProvider struct {
	api  IdentityProviderAPI
	deps Deps

	Form *Form[FederationProviderValues]

	mu         sync.Mutex
	state      State
	options    []string
	optionsErr error
}

// NewAddFederationProvider creates the screen in StateLoading.
func NewAddFederationProvider(api IdentityProviderAPI, deps Deps) *AddFederationProvider {
	p := &AddFederationProvider{
		api:   api,
		deps:  deps.withDefaults(),
		state: StateLoading,
	}
	p.Form = NewForm(FederationProviderValues{Enabled: true}, p.validate)
	return p
}

// Load fetches the trust anchor options. A failed fetch leaves the options
// empty and the screen usable; Err reports the failure.
func (p *AddFederationProvider) Load(ctx context.Context) error {
	list, err := p.api.ListOpenIDFederations(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = StateReady
	if err != nil {
		logger.WarnCtx(ctx, "failed to list trust anchors for provider form", logger.Realm(p.api.Realm()), logger.Err(err))
		p.options, p.optionsErr = []string{}, err
		return err
	}
	p.options = make([]string, 0, len(list))
	for _, f := range list {
		p.options = append(p.options, f.TrustAnchor)
	}
	p.optionsErr = nil
	return nil
}

// State returns the lifecycle state.
func (p *AddFederationProvider) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Err returns the trust anchor fetch failure.
func (p *AddFederationProvider) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.optionsErr
}

// TrustAnchorOptions returns the selectable trust anchor ids.
func (p *AddFederationProvider) TrustAnchorOptions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.options)
}

// validate adds the "must be a configured trust anchor" rule when the
// option list is known.
func (p *AddFederationProvider) validate(v FederationProviderValues) FieldErrors {
	errs := Validate(v)
	if _, bad := errs["config.trustAnchorId"]; bad {
		return errs
	}

	p.mu.Lock()
	options, known := p.options, p.optionsErr == nil && p.options != nil
	p.mu.Unlock()
	if known && !slices.Contains(options, v.TrustAnchorID) {
		if errs == nil {
			errs = FieldErrors{}
		}
		errs["config.trustAnchorId"] = "Must be one of the realm's trust anchors"
	}
	return errs
}

// Submit validates the form and creates the provider. Success navigates to
// the provider's settings tab.
func (p *AddFederationProvider) Submit(ctx context.Context) error {
	p.mu.Lock()
	if p.state != StateReady {
		state := p.state
		p.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotReady, state)
	}
	p.mu.Unlock()

	if !p.Form.Validate() {
		return p.Form.Errors()
	}
	if !p.Form.IsDirty() {
		return ErrNotDirty
	}
	p.setState(StateSubmitting)

	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanViewSubmit, spanAttrs(telemetry.View("identity-provider-add"), telemetry.Realm(p.api.Realm())))
	defer span.End()

	idp := p.Form.Values().Provider()
	alias, err := p.api.CreateIdentityProvider(ctx, idp)
	if err != nil {
		telemetry.RecordError(ctx, err)
		logger.WarnCtx(ctx, "failed to create identity provider", logger.Alias(idp.Alias), logger.Err(err))
		p.setState(StateReady)
		p.deps.Notifier.Notify(Alert{Variant: AlertDanger, Message: "Could not create the identity provider", Err: err})
		return err
	}

	p.setState(StateSuccess)
	p.deps.Notifier.Notify(Alert{Variant: AlertSuccess, Message: "Identity provider successfully created"})
	if alias == "" {
		alias = idp.Alias
	}
	p.deps.Navigator.Navigate(routes.ToIdentityProvider(p.api.Realm(), idp.ProviderID, alias, "settings"))
	return nil
}

func (p *AddFederationProvider) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

// FederationProviderDetails is the read-only federation section of an
// existing provider.
type FederationProviderDetails struct {
	Alias          string
	DisplayName    string
	Enabled        bool
	Issuer         string
	TrustAnchorID  string
	AuthorityHints []string
	DisplayOrder   *int
	ExpiresAt      *time.Time
}

// DescribeFederationProvider extracts the federation details of idp.
func DescribeFederationProvider(idp apiclient.IdentityProvider) FederationProviderDetails {
	d := FederationProviderDetails{
		Alias:          idp.Alias,
		DisplayName:    idp.DisplayName,
		Enabled:        idp.Enabled,
		Issuer:         idp.Issuer(),
		TrustAnchorID:  idp.TrustAnchorID(),
		AuthorityHints: idp.AuthorityHints(),
	}
	if n, ok := idp.DisplayOrder(); ok {
		d.DisplayOrder = &n
	}
	if exp, ok := idp.ExpirationTime(); ok {
		d.ExpiresAt = &exp
	}
	return d
}

// LoadFederationProvider fetches a provider and describes it. A missing
// provider yields ErrNotFound.
func LoadFederationProvider(ctx context.Context, api IdentityProviderAPI, alias string) (FederationProviderDetails, error) {
	idp, err := api.GetIdentityProvider(ctx, alias)
	if err != nil {
		return FederationProviderDetails{}, err
	}
	if idp == nil {
		return FederationProviderDetails{}, fmt.Errorf("identity provider %s: %w", alias, ErrNotFound)
	}
	return DescribeFederationProvider(*idp), nil
}
