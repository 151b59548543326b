package console

import (
	"context"
	"fmt"
	"sync"

	"github.com/marmos91/fedctl/internal/console/routes"
	"github.com/marmos91/fedctl/internal/logger"
	"github.com/marmos91/fedctl/internal/telemetry"
	"github.com/marmos91/fedctl/pkg/apiclient"
)

// TrustAnchorAPI is the subset of the admin client used by trust anchor views.
type TrustAnchorAPI interface {
	Realm() string
	ListOpenIDFederations(ctx context.Context) ([]apiclient.OpenIDFederation, error)
	GetOpenIDFederation(ctx context.Context, internalID string) (*apiclient.OpenIDFederation, error)
	CreateOpenIDFederation(ctx context.Context, req apiclient.OpenIDFederationRequest) (string, error)
	UpdateOpenIDFederation(ctx context.Context, internalID string, req apiclient.OpenIDFederationRequest) error
	DeleteOpenIDFederation(ctx context.Context, internalID string) error
}

// TrustAnchorValues is the form state of the add/edit trust anchor screen.
type TrustAnchorValues struct {
	TrustAnchor                      string   `form:"trustAnchor" validate:"required,http_url"`
	EntityTypes                      []string `form:"entityTypes" validate:"min=1,unique,dive,oneof=OPENID_PROVIDER OPENID_RELAYING_PARTY"`
	ClientRegistrationTypesSupported []string `form:"clientRegistrationTypesSupported" validate:"min=1,unique,dive,oneof=EXPLICIT"`
}

// Clone implements Values.
func (v TrustAnchorValues) Clone() TrustAnchorValues {
	return TrustAnchorValues{
		TrustAnchor:                      v.TrustAnchor,
		EntityTypes:                      cloneStrings(v.EntityTypes),
		ClientRegistrationTypesSupported: cloneStrings(v.ClientRegistrationTypesSupported),
	}
}

// TrustAnchorValuesFrom converts a fetched record into form state.
func TrustAnchorValuesFrom(rec apiclient.OpenIDFederation) TrustAnchorValues {
	return TrustAnchorValues{
		TrustAnchor:                      rec.TrustAnchor,
		EntityTypes:                      rec.EntityTypes,
		ClientRegistrationTypesSupported: rec.ClientRegistrationTypesSupported,
	}.Clone()
}

// Request converts form state into the wire body.
func (v TrustAnchorValues) Request() apiclient.OpenIDFederationRequest {
	return apiclient.OpenIDFederationRequest{
		TrustAnchor:                      v.TrustAnchor,
		EntityTypes:                      cloneStrings(v.EntityTypes),
		ClientRegistrationTypesSupported: cloneStrings(v.ClientRegistrationTypesSupported),
	}
}

// TrustAnchorEditor is the add or edit trust anchor screen.
type TrustAnchorEditor struct {
	api        TrustAnchorAPI
	deps       Deps
	internalID string

	Form *Form[TrustAnchorValues]

	mu       sync.Mutex
	state    State
	loadErr  error
	record   *apiclient.OpenIDFederation
	createID string
}

// NewAddTrustAnchor returns the create screen. It needs no fetch and starts
// in StateReady with empty values.
func NewAddTrustAnchor(api TrustAnchorAPI, deps Deps) *TrustAnchorEditor {
	return &TrustAnchorEditor{
		api:   api,
		deps:  deps.withDefaults(),
		Form:  NewForm(TrustAnchorValues{}, nil),
		state: StateReady,
	}
}

// NewEditTrustAnchor returns the edit screen for internalID. Call Load
// before editing.
func NewEditTrustAnchor(api TrustAnchorAPI, deps Deps, internalID string) *TrustAnchorEditor {
	return &TrustAnchorEditor{
		api:        api,
		deps:       deps.withDefaults(),
		internalID: internalID,
		Form:       NewForm(TrustAnchorValues{}, nil),
		state:      StateLoading,
	}
}

// IsEdit reports whether the editor updates an existing record.
func (e *TrustAnchorEditor) IsEdit() bool {
	return e.internalID != ""
}

// State returns the current lifecycle state.
func (e *TrustAnchorEditor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Err returns the load failure when State is StateError.
func (e *TrustAnchorEditor) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadErr
}

// Record returns the fetched record of an edit screen.
func (e *TrustAnchorEditor) Record() *apiclient.OpenIDFederation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.record
}

// CreatedID returns the internal id assigned by the server after a
// successful create.
func (e *TrustAnchorEditor) CreatedID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.createID
}

// Load fetches the record of an edit screen. A failed or empty fetch puts
// the screen in StateError rather than leaving it loading.
func (e *TrustAnchorEditor) Load(ctx context.Context) error {
	if !e.IsEdit() {
		return nil
	}

	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanViewLoad, spanAttrs(telemetry.View("trust-anchor-edit"), telemetry.Realm(e.api.Realm())))
	defer span.End()

	e.setState(StateLoading, nil)
	rec, err := e.api.GetOpenIDFederation(ctx, e.internalID)
	if err == nil && rec == nil {
		err = fmt.Errorf("trust anchor %s: %w", e.internalID, ErrNotFound)
	}
	if err != nil {
		telemetry.RecordError(ctx, err)
		logger.WarnCtx(ctx, "failed to load trust anchor", logger.InternalID(e.internalID), logger.Err(err))
		e.setState(StateError, err)
		return err
	}

	e.Form.Load(TrustAnchorValuesFrom(*rec))
	e.mu.Lock()
	e.record = rec
	e.mu.Unlock()
	e.setState(StateReady, nil)
	return nil
}

// ToggleEntityType flips one entity type in the multi-select.
func (e *TrustAnchorEditor) ToggleEntityType(t string) {
	e.Form.Edit(func(v *TrustAnchorValues) { v.EntityTypes = Toggle(v.EntityTypes, t) })
}

// ToggleRegistrationType flips one client registration type.
func (e *TrustAnchorEditor) ToggleRegistrationType(t string) {
	e.Form.Edit(func(v *TrustAnchorValues) {
		v.ClientRegistrationTypesSupported = Toggle(v.ClientRegistrationTypesSupported, t)
	})
}

// CanSubmit reports whether the save button is enabled.
func (e *TrustAnchorEditor) CanSubmit() bool {
	s := e.State()
	return (s == StateReady || s == StateSuccess) && e.Form.IsDirty()
}

// Revert restores the loaded values.
func (e *TrustAnchorEditor) Revert() {
	e.Form.Reset()
}

// Submit validates and saves the form. Invalid input returns FieldErrors
// and an unchanged form returns ErrNotDirty; neither issues a request. A
// failed write raises an error alert, keeps the entered values and returns
// the screen to StateReady. Success raises a success alert and navigates to
// the federation overview.
func (e *TrustAnchorEditor) Submit(ctx context.Context) error {
	if err := e.beginSubmit(); err != nil {
		return err
	}

	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanViewSubmit, spanAttrs(telemetry.View("trust-anchor"), telemetry.Realm(e.api.Realm())))
	defer span.End()

	req := e.Form.Values().Request()
	var (
		err error
		id  = e.internalID
	)
	if e.IsEdit() {
		err = e.api.UpdateOpenIDFederation(ctx, e.internalID, req)
	} else {
		id, err = e.api.CreateOpenIDFederation(ctx, req)
	}

	if err != nil {
		telemetry.RecordError(ctx, err)
		logger.WarnCtx(ctx, "failed to save trust anchor", logger.TrustAnchor(req.TrustAnchor), logger.Err(err))
		e.setState(StateReady, nil)
		e.deps.Notifier.Notify(Alert{Variant: AlertDanger, Message: e.verb("Could not create", "Could not save") + " trust anchor", Err: err})
		return err
	}

	logger.InfoCtx(ctx, "trust anchor saved", logger.TrustAnchor(req.TrustAnchor), logger.InternalID(id))
	e.Form.Load(e.Form.Values())
	e.mu.Lock()
	e.state = StateSuccess
	e.createID = id
	e.mu.Unlock()

	e.deps.Notifier.Notify(Alert{Variant: AlertSuccess, Message: "Trust anchor " + e.verb("created", "saved")})
	e.deps.Navigator.Navigate(routes.ToOpenIDFederation(e.api.Realm(), ""))
	return nil
}

func (e *TrustAnchorEditor) beginSubmit() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateReady && e.state != StateSuccess {
		return fmt.Errorf("%w: %s", ErrNotReady, e.state)
	}
	if !e.Form.Validate() {
		return e.Form.Errors()
	}
	if !e.Form.IsDirty() {
		return ErrNotDirty
	}
	e.state = StateSubmitting
	return nil
}

func (e *TrustAnchorEditor) setState(s State, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = s
	e.loadErr = err
}

func (e *TrustAnchorEditor) verb(add, edit string) string {
	if e.IsEdit() {
		return edit
	}
	return add
}
