package cmdutil

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/marmos91/fedctl/internal/cli/output"
	"github.com/marmos91/fedctl/internal/console"
	"github.com/marmos91/fedctl/internal/console/routes"
	"github.com/marmos91/fedctl/internal/logger"
)

// TerminalNotifier prints console alerts as coloured notices.
type TerminalNotifier struct {
	Printer *output.Printer
}

// Notify implements console.Notifier.
func (n TerminalNotifier) Notify(a console.Alert) {
	switch a.Variant {
	case console.AlertSuccess:
		n.Printer.Success(a.Text())
	case console.AlertDanger:
		n.Printer.Error(a.Text())
	case console.AlertWarning:
		n.Printer.Warning(a.Text())
	default:
		n.Printer.Info(a.Text())
	}
}

// TerminalNavigator reports where the web console would go next. A CLI
// has no screens to move between, so the destination is only described.
type TerminalNavigator struct {
	Printer *output.Printer

	// Last is the most recent destination.
	Last string
}

// Navigate implements console.Navigator.
func (n *TerminalNavigator) Navigate(path string) {
	n.Last = path
	route, params, ok := routes.Match(path)
	if !ok {
		logger.Debug("navigate to unknown route", logger.Path(path))
		return
	}
	logger.Debug("navigate", logger.Path(path), "route", route.Name, "params", params)
	if n.Printer.Format() == output.FormatTable {
		n.Printer.Info(fmt.Sprintf("Next: %s (%s)", route.Title, path))
	}
}

// ConsoleDeps wires views to the terminal.
func ConsoleDeps(w, errOut io.Writer) (console.Deps, *TerminalNavigator) {
	p := Printer(w, errOut)
	nav := &TerminalNavigator{Printer: p}
	return console.Deps{Notifier: TerminalNotifier{Printer: p}, Navigator: nav}, nav
}

// FormError turns a console submit error into a command error. Field
// errors are listed one per line; an unchanged form is reported as such.
func FormError(w io.Writer, err error) error {
	var fe console.FieldErrors
	switch {
	case err == nil:
		return nil
	case errors.As(err, &fe):
		keys := make([]string, 0, len(fe))
		for k := range fe {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			_, _ = fmt.Fprintf(w, "  %s: %s\n", k, fe[k])
		}
		return fmt.Errorf("invalid input (%d field(s))", len(fe))
	case errors.Is(err, console.ErrNotDirty):
		_, _ = fmt.Fprintln(w, "Nothing to save.")
		return nil
	case errors.Is(err, console.ErrNotReady):
		return err
	default:
		// The view has already raised an alert for a failed request.
		return &SilentError{Err: err}
	}
}

// SilentError is an error the user has already been shown. main exits
// non-zero without printing it again.
type SilentError struct {
	Err error
}

func (e *SilentError) Error() string { return e.Err.Error() }
func (e *SilentError) Unwrap() error { return e.Err }
