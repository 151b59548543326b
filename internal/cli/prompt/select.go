package prompt

import (
	"slices"

	"github.com/manifoldco/promptui"
)

// SelectOption is one entry of a selection list.
type SelectOption struct {
	Label       string
	Value       string
	Description string
}

func selectTemplates(withDetails bool) *promptui.SelectTemplates {
	t := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ .Label | cyan }}",
		Inactive: "  {{ .Label }}",
		Selected: "* {{ .Label | green }}",
	}
	if withDetails {
		t.Details = `{{ "Description:" | faint }}	{{ .Description }}`
	}
	return t
}

// Select returns the value of the chosen option.
func Select(label string, options []SelectOption) (string, error) {
	p := promptui.Select{
		Label:     label,
		Items:     options,
		Templates: selectTemplates(len(options) > 0 && options[0].Description != ""),
		Size:      10,
	}
	i, _, err := p.Run()
	if err != nil {
		return "", wrapError(err)
	}
	return options[i].Value, nil
}

// SelectString picks one of items.
func SelectString(label string, items []string) (string, error) {
	p := promptui.Select{Label: label, Items: items, Size: 10}
	_, result, err := p.Run()
	return result, wrapError(err)
}

const doneLabel = "Done"

// MultiSelect toggles options until Done is chosen and returns the chosen
// values in option order. selected seeds the initial state, so edit
// commands start from the stored values.
func MultiSelect(label string, options []SelectOption, selected []string) ([]string, error) {
	chosen := make(map[string]bool, len(selected))
	for _, v := range selected {
		chosen[v] = true
	}

	for {
		p := promptui.Select{
			Label:        label,
			Items:        multiSelectItems(options, chosen),
			Size:         len(options) + 1,
			HideSelected: true,
		}
		i, _, err := p.Run()
		if err != nil {
			return nil, wrapError(err)
		}
		if i == len(options) {
			break
		}
		v := options[i].Value
		chosen[v] = !chosen[v]
	}
	return collect(options, chosen), nil
}

func multiSelectItems(options []SelectOption, chosen map[string]bool) []string {
	items := make([]string, 0, len(options)+1)
	for _, opt := range options {
		box := "[ ] "
		if chosen[opt.Value] {
			box = "[x] "
		}
		items = append(items, box+opt.Label)
	}
	return append(items, doneLabel)
}

func collect(options []SelectOption, chosen map[string]bool) []string {
	out := []string{}
	for _, opt := range options {
		if chosen[opt.Value] && !slices.Contains(out, opt.Value) {
			out = append(out, opt.Value)
		}
	}
	return out
}

// Options builds options whose label is the value.
func Options(values ...string) []SelectOption {
	out := make([]SelectOption, 0, len(values))
	for _, v := range values {
		out = append(out, SelectOption{Label: v, Value: v})
	}
	return out
}
