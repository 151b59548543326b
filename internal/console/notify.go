package console

import (
	"fmt"
	"sync"
)

// AlertVariant is the severity of an alert.
type AlertVariant int

const (
	AlertSuccess AlertVariant = iota
	AlertDanger
	AlertWarning
	AlertInfo
)

func (v AlertVariant) String() string {
	switch v {
	case AlertSuccess:
		return "success"
	case AlertDanger:
		return "danger"
	case AlertWarning:
		return "warning"
	default:
		return "info"
	}
}

// Alert is a transient, non-blocking notification.
type Alert struct {
	Variant AlertVariant
	Message string
	Err     error
}

// Text returns the message with the error cause appended.
func (a Alert) Text() string {
	if a.Err == nil {
		return a.Message
	}
	return fmt.Sprintf("%s: %v", a.Message, a.Err)
}

// Notifier receives alerts raised by views.
type Notifier interface {
	Notify(Alert)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Alert)

// Notify implements Notifier.
func (f NotifierFunc) Notify(a Alert) { f(a) }

// AlertLog records alerts in order. The zero value is ready to use.
type AlertLog struct {
	mu     sync.Mutex
	alerts []Alert
}

// Notify implements Notifier.
func (l *AlertLog) Notify(a Alert) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.alerts = append(l.alerts, a)
}

// Alerts returns a copy of the recorded alerts.
func (l *AlertLog) Alerts() []Alert {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Alert(nil), l.alerts...)
}

// Count returns how many alerts of variant were recorded.
func (l *AlertLog) Count(variant AlertVariant) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, a := range l.alerts {
		if a.Variant == variant {
			n++
		}
	}
	return n
}

// Navigator moves the user to another screen, identified by route path.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(string)

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(path string) { f(path) }

// NavigationLog records navigations. The zero value is ready to use.
type NavigationLog struct {
	mu    sync.Mutex
	paths []string
}

// Navigate implements Navigator.
func (l *NavigationLog) Navigate(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.paths = append(l.paths, path)
}

// Paths returns a copy of the visited paths.
func (l *NavigationLog) Paths() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.paths...)
}

// Last returns the most recent path, or "".
func (l *NavigationLog) Last() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.paths) == 0 {
		return ""
	}
	return l.paths[len(l.paths)-1]
}

// Deps are the collaborators shared by every view.
type Deps struct {
	Notifier  Notifier
	Navigator Navigator
}

func (d Deps) withDefaults() Deps {
	if d.Notifier == nil {
		d.Notifier = NotifierFunc(func(Alert) {})
	}
	if d.Navigator == nil {
		d.Navigator = NavigatorFunc(func(string) {})
	}
	return d
}
