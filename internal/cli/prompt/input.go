package prompt

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

var (
	errRequired   = errors.New("value is required")
	errInvalidURL = errors.New("must be a valid http(s) URL")
	errNotInteger = errors.New("must be a whole number")
)

func run(p promptui.Prompt) (string, error) {
	result, err := p.Run()
	return strings.TrimSpace(result), wrapError(err)
}

// Input prompts for free text.
func Input(label, defaultValue string) (string, error) {
	return run(promptui.Prompt{Label: label, Default: defaultValue})
}

// InputRequired prompts until a non-empty value is entered.
func InputRequired(label, defaultValue string) (string, error) {
	return run(promptui.Prompt{Label: label, Default: defaultValue, Validate: validateRequired})
}

// InputURL prompts for an absolute http or https URL, the form every
// federation entity identifier takes.
func InputURL(label, defaultValue string) (string, error) {
	return run(promptui.Prompt{Label: label, Default: defaultValue, Validate: validateURL})
}

// InputInt prompts for a non-negative integer such as a lifespan in seconds.
func InputInt(label string, defaultValue int) (int, error) {
	result, err := run(promptui.Prompt{
		Label:    label,
		Default:  strconv.Itoa(defaultValue),
		Validate: validateInt,
	})
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(result)
}

// Secret prompts for a masked value such as an access token.
func Secret(label string) (string, error) {
	return run(promptui.Prompt{Label: label, Mask: '*', Validate: validateRequired})
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return errRequired
	}
	return nil
}

func validateURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errInvalidURL
	}
	return nil
}

func validateInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return errNotInteger
	}
	return nil
}
