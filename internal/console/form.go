package console

import (
	"reflect"
	"slices"
	"sync"
)

// Values is implemented by form value structs. Clone must return a deep
// copy with nil slices normalised to empty ones, which keeps dirty checks
// stable across edits.
type Values[T any] interface {
	Clone() T
}

// Form holds the editable values of a view together with the values they
// were loaded from.
type Form[T Values[T]] struct {
	mu       sync.RWMutex
	initial  T
	values   T
	errors   FieldErrors
	validate func(T) FieldErrors
}

// NewForm creates a form populated with defaults. A nil validate uses the
// struct's `validate` tags.
func NewForm[T Values[T]](defaults T, validate func(T) FieldErrors) *Form[T] {
	if validate == nil {
		validate = func(v T) FieldErrors { return Validate(v) }
	}
	return &Form[T]{
		initial:  defaults.Clone(),
		values:   defaults.Clone(),
		validate: validate,
	}
}

// Load replaces both the loaded and the current values and clears errors.
func (f *Form[T]) Load(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initial = v.Clone()
	f.values = v.Clone()
	f.errors = nil
}

// Values returns a copy of the current values.
func (f *Form[T]) Values() T {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values.Clone()
}

// Initial returns a copy of the loaded values.
func (f *Form[T]) Initial() T {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.initial.Clone()
}

// Edit applies fn to a copy of the current values and stores the result.
func (f *Form[T]) Edit(fn func(*T)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	next := f.values.Clone()
	fn(&next)
	f.values = next.Clone()
}

// IsDirty reports whether the current values differ from the loaded ones.
func (f *Form[T]) IsDirty() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return !reflect.DeepEqual(f.initial, f.values)
}

// Reset reverts to the loaded values.
func (f *Form[T]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = f.initial.Clone()
	f.errors = nil
}

// Validate runs validation, records per-field errors and reports success.
func (f *Form[T]) Validate() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	errs := f.validate(f.values)
	if len(errs) == 0 {
		f.errors = nil
		return true
	}
	f.errors = errs
	return false
}

// Errors returns the field errors of the last validation.
func (f *Form[T]) Errors() FieldErrors {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.errors == nil {
		return nil
	}
	out := make(FieldErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Toggle adds v to list when absent and removes it otherwise, keeping the
// order of the remaining values. It backs multi-select inputs.
func Toggle(list []string, v string) []string {
	if i := slices.Index(list, v); i >= 0 {
		return slices.Delete(slices.Clone(list), i, i+1)
	}
	return append(slices.Clone(list), v)
}

func cloneStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
