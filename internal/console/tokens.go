package console

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/marmos91/fedctl/internal/logger"
	"github.com/marmos91/fedctl/internal/telemetry"
	"github.com/marmos91/fedctl/pkg/apiclient"
)

// Actions whose user-generated action token lifespan can be overridden.
var TokenActions = []string{
	"verify-email",
	"idp-verify-account-via-email",
	"reset-credentials",
	"execute-actions",
}

const actionLifespanAttrPrefix = "actionTokenGeneratedByUserLifespan-"

// TokenSettingsValues is the realm token settings form. Lifespans are in
// seconds.
type TokenSettingsValues struct {
	DefaultSignatureAlgorithm           string `form:"defaultSignatureAlgorithm" json:"defaultSignatureAlgorithm" validate:"omitempty,oneof=RS256 RS384 RS512 ES256 ES384 ES512 PS256 PS384 PS512 HS256 HS384 HS512 EdDSA"`
	RevokeRefreshToken                  bool   `form:"revokeRefreshToken" json:"revokeRefreshToken"`
	RefreshTokenMaxReuse                int    `form:"refreshTokenMaxReuse" json:"refreshTokenMaxReuse" validate:"gte=0"`
	AccessTokenLifespan                 int    `form:"accessTokenLifespan" json:"accessTokenLifespan" validate:"gte=0"`
	AccessTokenLifespanForImplicitFlow  int    `form:"accessTokenLifespanForImplicitFlow" json:"accessTokenLifespanForImplicitFlow" validate:"gte=0"`
	AccessCodeLifespan                  int    `form:"accessCodeLifespan" json:"accessCodeLifespan" validate:"gte=0"`
	IDTokenLifespan                     int    `form:"idTokenLifespan" json:"idTokenLifespan" validate:"gte=0"`
	OAuth2DeviceCodeLifespan            int    `form:"oauth2DeviceCodeLifespan" json:"oauth2DeviceCodeLifespan" validate:"gte=0"`
	OAuth2DevicePollingInterval         int    `form:"oauth2DevicePollingInterval" json:"oauth2DevicePollingInterval" validate:"gte=0"`
	OfflineSessionMaxLifespanEnabled    bool   `form:"offlineSessionMaxLifespanEnabled" json:"offlineSessionMaxLifespanEnabled"`
	OfflineSessionMaxLifespan           int    `form:"offlineSessionMaxLifespan" json:"offlineSessionMaxLifespan" validate:"gte=0"`
	ActionTokenGeneratedByUserLifespan  int    `form:"actionTokenGeneratedByUserLifespan" json:"actionTokenGeneratedByUserLifespan" validate:"gte=0"`
	ActionTokenGeneratedByAdminLifespan int    `form:"actionTokenGeneratedByAdminLifespan" json:"actionTokenGeneratedByAdminLifespan" validate:"gte=0"`

	// ActionLifespans overrides the user action token lifespan per action.
	ActionLifespans map[string]int `form:"actionLifespans" json:"actionLifespans" validate:"dive,keys,oneof=verify-email idp-verify-account-via-email reset-credentials execute-actions,endkeys,gte=0"`
}

// Clone implements Values.
func (v TokenSettingsValues) Clone() TokenSettingsValues {
	c := v
	c.ActionLifespans = make(map[string]int, len(v.ActionLifespans))
	for k, n := range v.ActionLifespans {
		c.ActionLifespans[k] = n
	}
	return c
}

// TokenSettingsFrom reads the token fields of a realm.
func TokenSettingsFrom(r *apiclient.Realm) TokenSettingsValues {
	v := TokenSettingsValues{
		DefaultSignatureAlgorithm:           apiclient.Deref(r.DefaultSignatureAlgorithm, ""),
		RevokeRefreshToken:                  apiclient.Deref(r.RevokeRefreshToken, false),
		RefreshTokenMaxReuse:                apiclient.Deref(r.RefreshTokenMaxReuse, 0),
		AccessTokenLifespan:                 apiclient.Deref(r.AccessTokenLifespan, 0),
		AccessTokenLifespanForImplicitFlow:  apiclient.Deref(r.AccessTokenLifespanForImplicitFlow, 0),
		AccessCodeLifespan:                  apiclient.Deref(r.AccessCodeLifespan, 0),
		IDTokenLifespan:                     apiclient.Deref(r.IDTokenLifespan, 0),
		OAuth2DeviceCodeLifespan:            apiclient.Deref(r.OAuth2DeviceCodeLifespan, 0),
		OAuth2DevicePollingInterval:         apiclient.Deref(r.OAuth2DevicePollingInterval, 0),
		OfflineSessionMaxLifespanEnabled:    apiclient.Deref(r.OfflineSessionMaxLifespanEnabled, false),
		OfflineSessionMaxLifespan:           apiclient.Deref(r.OfflineSessionMaxLifespan, 0),
		ActionTokenGeneratedByUserLifespan:  apiclient.Deref(r.ActionTokenGeneratedByUserLifespan, 0),
		ActionTokenGeneratedByAdminLifespan: apiclient.Deref(r.ActionTokenGeneratedByAdminLifespan, 0),
		ActionLifespans:                     map[string]int{},
	}
	for _, action := range TokenActions {
		raw, ok := r.Attributes[actionLifespanAttrPrefix+action]
		if !ok || raw == "" {
			continue
		}
		if n, err := strconv.Atoi(raw); err == nil {
			v.ActionLifespans[action] = n
		}
	}
	return v
}

// ApplyTo merges the token settings into a copy of r. Per-action overrides
// missing from the form are removed from the realm attributes.
func (v TokenSettingsValues) ApplyTo(r *apiclient.Realm) *apiclient.Realm {
	out := cloneRealm(r)
	if v.DefaultSignatureAlgorithm != "" {
		out.DefaultSignatureAlgorithm = apiclient.Ptr(v.DefaultSignatureAlgorithm)
	}
	out.RevokeRefreshToken = apiclient.Ptr(v.RevokeRefreshToken)
	out.RefreshTokenMaxReuse = apiclient.Ptr(v.RefreshTokenMaxReuse)
	out.AccessTokenLifespan = apiclient.Ptr(v.AccessTokenLifespan)
	out.AccessTokenLifespanForImplicitFlow = apiclient.Ptr(v.AccessTokenLifespanForImplicitFlow)
	out.AccessCodeLifespan = apiclient.Ptr(v.AccessCodeLifespan)
	out.IDTokenLifespan = apiclient.Ptr(v.IDTokenLifespan)
	out.OAuth2DeviceCodeLifespan = apiclient.Ptr(v.OAuth2DeviceCodeLifespan)
	out.OAuth2DevicePollingInterval = apiclient.Ptr(v.OAuth2DevicePollingInterval)
	out.OfflineSessionMaxLifespanEnabled = apiclient.Ptr(v.OfflineSessionMaxLifespanEnabled)
	out.OfflineSessionMaxLifespan = apiclient.Ptr(v.OfflineSessionMaxLifespan)
	out.ActionTokenGeneratedByUserLifespan = apiclient.Ptr(v.ActionTokenGeneratedByUserLifespan)
	out.ActionTokenGeneratedByAdminLifespan = apiclient.Ptr(v.ActionTokenGeneratedByAdminLifespan)

	if out.Attributes == nil {
		out.Attributes = map[string]string{}
	}
	for _, action := range TokenActions {
		key := actionLifespanAttrPrefix + action
		if n, ok := v.ActionLifespans[action]; ok {
			out.Attributes[key] = strconv.Itoa(n)
		} else {
			delete(out.Attributes, key)
		}
	}
	return out
}

// TokenSettings is the realm token settings screen.
type TokenSettings struct {
	api  RealmAPI
	deps Deps

	Form *Form[TokenSettingsValues]

	mu      sync.Mutex
	state   State
	loadErr error
	realm   *apiclient.Realm
}

// NewTokenSettings creates the screen in StateLoading.
func NewTokenSettings(api RealmAPI, deps Deps) *TokenSettings {
	return &TokenSettings{
		api:   api,
		deps:  deps.withDefaults(),
		Form:  NewForm(TokenSettingsValues{}, nil),
		state: StateLoading,
	}
}

// Load fetches the realm.
func (t *TokenSettings) Load(ctx context.Context) error {
	realm, err := t.api.GetRealm(ctx)
	if err == nil && realm == nil {
		err = fmt.Errorf("realm %s: %w", t.api.Realm(), ErrNotFound)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		logger.WarnCtx(ctx, "failed to load realm", logger.Realm(t.api.Realm()), logger.Err(err))
		t.state, t.loadErr = StateError, err
		return err
	}
	t.Form.Load(TokenSettingsFrom(realm))
	t.realm, t.state, t.loadErr = realm, StateReady, nil
	return nil
}

// State returns the lifecycle state.
func (t *TokenSettings) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Err returns the load failure.
func (t *TokenSettings) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loadErr
}

// Save validates the form and PUTs the merged realm. Failure keeps the
// entered values and raises an error alert.
func (t *TokenSettings) Save(ctx context.Context) error {
	t.mu.Lock()
	if (t.state != StateReady && t.state != StateSuccess) || t.realm == nil {
		state := t.state
		t.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotReady, state)
	}
	if !t.Form.IsDirty() {
		t.mu.Unlock()
		return ErrNotDirty
	}
	if !t.Form.Validate() {
		t.mu.Unlock()
		return t.Form.Errors()
	}
	realm := t.realm
	t.state = StateSubmitting
	t.mu.Unlock()

	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanViewSubmit, spanAttrs(telemetry.View("tokens"), telemetry.Realm(t.api.Realm())))
	defer span.End()

	values := t.Form.Values()
	updated := values.ApplyTo(realm)
	if err := t.api.UpdateRealm(ctx, updated); err != nil {
		telemetry.RecordError(ctx, err)
		t.mu.Lock()
		t.state = StateReady
		t.mu.Unlock()
		t.deps.Notifier.Notify(Alert{Variant: AlertDanger, Message: "Could not save token settings", Err: err})
		return err
	}

	t.Form.Load(values)
	t.mu.Lock()
	t.realm, t.state = updated, StateSuccess
	t.mu.Unlock()
	t.deps.Notifier.Notify(Alert{Variant: AlertSuccess, Message: "Token settings saved"})
	return nil
}

// Revert restores the fetched settings.
func (t *TokenSettings) Revert() {
	t.Form.Reset()
}
