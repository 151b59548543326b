// Package console implements the admin screens for OpenID Federation
// settings as headless views: each view owns its fetched data, a form with
// dirty tracking and validation, and reports outcomes through a Notifier
// and a Navigator. Rendering is left to the caller (the fedctl CLI).
package console

import "errors"

// State is the lifecycle state of a view.
type State int

const (
	// StateLoading means the initial fetch has not completed.
	StateLoading State = iota
	// StateReady means the form is populated and editable.
	StateReady
	// StateSubmitting means a write is in flight.
	StateSubmitting
	// StateSuccess means the last submit succeeded.
	StateSuccess
	// StateError means the view could not load its data. Retry with Load.
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

var (
	// ErrNotReady is returned when an action needs a loaded, idle view.
	ErrNotReady = errors.New("view is not ready")
	// ErrNotDirty is returned by Submit when nothing was changed.
	ErrNotDirty = errors.New("no changes to save")
	// ErrNotFound is the load error of an edit view whose entity is gone.
	ErrNotFound = errors.New("not found")
	// ErrNoPendingDelete is returned by ConfirmDelete without RequestDelete.
	ErrNoPendingDelete = errors.New("no delete pending confirmation")
	// ErrStale is returned by a load superseded by a newer data version.
	ErrStale = errors.New("superseded by a newer load")
)
