package console

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/marmos91/fedctl/internal/logger"
	"github.com/marmos91/fedctl/internal/telemetry"
	"github.com/marmos91/fedctl/pkg/apiclient"
)

// DeleteConfirmation describes the record a pending delete targets.
type DeleteConfirmation struct {
	InternalID  string
	TrustAnchor string
	Message     string
}

// TrustAnchorList is the trust anchor table with its two-step delete.
//
// A failed fetch shows an empty table and puts the list in StateError so
// the presenter can say the data is unavailable; it raises no alert.
type TrustAnchorList struct {
	api  TrustAnchorAPI
	deps Deps

	mu      sync.Mutex
	state   State
	loadErr error
	items   []apiclient.OpenIDFederation
	pending *DeleteConfirmation
}

// NewTrustAnchorList creates the table in StateLoading.
func NewTrustAnchorList(api TrustAnchorAPI, deps Deps) *TrustAnchorList {
	return &TrustAnchorList{api: api, deps: deps.withDefaults(), state: StateLoading}
}

// Load fetches the table.
func (l *TrustAnchorList) Load(ctx context.Context) error {
	commit, err := l.Fetcher()(ctx)
	commit()
	return err
}

// Fetcher returns the fetch for use with a Refresher.
func (l *TrustAnchorList) Fetcher() Fetcher {
	return func(ctx context.Context) (func(), error) {
		items, err := l.api.ListOpenIDFederations(ctx)
		if err != nil {
			logger.WarnCtx(ctx, "failed to list trust anchors, showing none",
				logger.Realm(l.api.Realm()), logger.Err(err))
			return func() { l.publish(nil, err) }, err
		}
		return func() { l.publish(items, nil) }, nil
	}
}

func (l *TrustAnchorList) publish(items []apiclient.OpenIDFederation, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.items = []apiclient.OpenIDFederation{}
		l.state = StateError
		l.loadErr = err
		return
	}
	l.items = slices.Clone(items)
	if l.items == nil {
		l.items = []apiclient.OpenIDFederation{}
	}
	l.state = StateReady
	l.loadErr = nil
}

// State returns the lifecycle state.
func (l *TrustAnchorList) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Err returns the last fetch failure.
func (l *TrustAnchorList) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadErr
}

// Items returns a copy of the displayed records in server order.
func (l *TrustAnchorList) Items() []apiclient.OpenIDFederation {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.items)
}

// TrustAnchorIDs returns the trust anchor identifiers of the table.
func (l *TrustAnchorList) TrustAnchorIDs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := make([]string, 0, len(l.items))
	for _, it := range l.items {
		ids = append(ids, it.TrustAnchor)
	}
	return ids
}

// RequestDelete starts the delete of internalID and returns what the
// confirmation dialog should name. Nothing is deleted yet.
func (l *TrustAnchorList) RequestDelete(internalID string) (DeleteConfirmation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.IndexFunc(l.items, func(f apiclient.OpenIDFederation) bool { return f.InternalID == internalID })
	if i < 0 {
		return DeleteConfirmation{}, fmt.Errorf("trust anchor %s: %w", internalID, ErrNotFound)
	}
	c := DeleteConfirmation{
		InternalID:  internalID,
		TrustAnchor: l.items[i].TrustAnchor,
		Message:     fmt.Sprintf("Are you sure you want to delete the trust anchor %q?", l.items[i].TrustAnchor),
	}
	l.pending = &c
	return c, nil
}

// Pending returns the delete awaiting confirmation, if any.
func (l *TrustAnchorList) Pending() (DeleteConfirmation, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pending == nil {
		return DeleteConfirmation{}, false
	}
	return *l.pending, true
}

// CancelDelete drops the pending delete.
func (l *TrustAnchorList) CancelDelete() {
	l.mu.Lock()
	l.pending = nil
	l.mu.Unlock()
}

// ConfirmDelete deletes the pending record. On success exactly that record
// leaves the table, the others keep their order, and no re-fetch happens.
// On failure the table is untouched and an error alert is raised.
func (l *TrustAnchorList) ConfirmDelete(ctx context.Context) error {
	l.mu.Lock()
	pending := l.pending
	l.pending = nil
	l.mu.Unlock()
	if pending == nil {
		return ErrNoPendingDelete
	}

	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanViewDelete, spanAttrs(telemetry.View("trust-anchors"), telemetry.Realm(l.api.Realm())))
	defer span.End()

	if err := l.api.DeleteOpenIDFederation(ctx, pending.InternalID); err != nil {
		telemetry.RecordError(ctx, err)
		logger.WarnCtx(ctx, "failed to delete trust anchor", logger.InternalID(pending.InternalID), logger.Err(err))
		l.deps.Notifier.Notify(Alert{Variant: AlertDanger, Message: "Could not delete trust anchor", Err: err})
		return err
	}

	l.mu.Lock()
	l.items = slices.DeleteFunc(slices.Clone(l.items), func(f apiclient.OpenIDFederation) bool {
		return f.InternalID == pending.InternalID
	})
	l.mu.Unlock()

	logger.InfoCtx(ctx, "trust anchor deleted", logger.InternalID(pending.InternalID), logger.TrustAnchor(pending.TrustAnchor))
	l.deps.Notifier.Notify(Alert{Variant: AlertSuccess, Message: "Trust anchor deleted"})
	return nil
}
