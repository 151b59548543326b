// Package prompt wraps promptui for the interactive fedctl commands.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user presses Ctrl+C.
var ErrAborted = errors.New("aborted")

// IsAborted reports whether err is a user abort.
func IsAborted(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, ErrAborted)
}

func wrapError(err error) error {
	if err != nil && IsAborted(err) {
		return ErrAborted
	}
	return err
}

// Confirm asks a yes/no question. An empty answer picks the default; "n"
// is a plain no, not an error.
func Confirm(label string, defaultYes bool) (bool, error) {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}

	p := promptui.Prompt{
		Label:     fmt.Sprintf("%s [%s]", label, hint),
		IsConfirm: true,
	}
	result, err := p.Run()
	switch {
	case err == nil:
		return parseYes(result, defaultYes), nil
	case errors.Is(err, promptui.ErrAbort):
		if result == "" {
			return defaultYes, nil
		}
		return false, nil
	default:
		return false, wrapError(err)
	}
}

func parseYes(answer string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "":
		return fallback
	case "y", "yes":
		return true
	default:
		return false
	}
}

// ConfirmWithForce skips the question when force is set. Delete commands
// use it with --force.
func ConfirmWithForce(label string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	return Confirm(label, false)
}
