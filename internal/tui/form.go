package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ganot/nirapod/internal/viewstate"
)

// draft receives every edit a form makes. *viewstate.Form satisfies it.
type draft interface {
	Set(name, value string) error
	CanSubmit() bool
}

type fieldSpec struct {
	name     string
	label    string
	required bool
	initial  string
}

// specs lists the fields of a form, prefilled from rec, without the skipped names.
func specs[T any](fields []viewstate.Field[T], rec T, skip ...string) []fieldSpec {
	out := make([]fieldSpec, 0, len(fields))
outer:
	for _, f := range fields {
		for _, s := range skip {
			if f.Name == s {
				continue outer
			}
		}
		out = append(out, fieldSpec{name: f.Name, label: f.Label, required: f.Required, initial: f.Get(rec)})
	}
	return out
}

type formField struct {
	fieldSpec
	input textinput.Model
}

// form is a column of text inputs bound to a draft.
type form struct {
	fields []formField
	focus  int
	draft  draft
	errs   map[string]string
}

func newForm(d draft, fields []fieldSpec) *form {
	f := &form{draft: d, errs: map[string]string{}}
	for _, spec := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 120
		in.Placeholder = spec.label
		in.SetValue(spec.initial)
		f.fields = append(f.fields, formField{fieldSpec: spec, input: in})
	}
	return f
}

func (f *form) focusCmd() tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	for i := range f.fields {
		f.fields[i].input.Blur()
	}
	return f.fields[f.focus].input.Focus()
}

// update handles navigation and typing. submit reports ctrl+s, or enter on the last field.
func (f *form) update(msg tea.KeyMsg) (submit bool, cmd tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		f.focus = (f.focus + 1) % len(f.fields)
		return false, f.focusCmd()
	case "shift+tab", "up":
		f.focus = (f.focus - 1 + len(f.fields)) % len(f.fields)
		return false, f.focusCmd()
	case "ctrl+s":
		return true, nil
	case "enter":
		if f.focus == len(f.fields)-1 {
			return true, nil
		}
		f.focus++
		return false, f.focusCmd()
	}

	field := &f.fields[f.focus]
	before := field.input.Value()
	field.input, cmd = field.input.Update(msg)
	if after := field.input.Value(); after != before {
		delete(f.errs, field.name)
		if err := f.draft.Set(field.name, after); err != nil {
			f.errs[field.name] = err.Error()
		}
	}
	return false, cmd
}

// setError records per-field errors from a failed submission.
func (f *form) setError(err error) {
	var verr *viewstate.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	for _, name := range verr.Missing {
		f.errs[name] = "required"
	}
	for name, msg := range verr.Invalid {
		f.errs[name] = msg
	}
}

func (f *form) view() string {
	var b strings.Builder
	for i, field := range f.fields {
		label := field.label
		if field.required {
			label += " *"
		}
		line := labelStyle.Render(label) + field.input.View()
		if i == f.focus {
			line = selectedRow.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if msg, ok := f.errs[field.name]; ok {
			b.WriteString("  " + errorStyle.Render(msg))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if f.draft.CanSubmit() {
		b.WriteString(helpStyle.Render("ctrl+s save • esc cancel"))
	} else {
		b.WriteString(disabledStyle.Render("ctrl+s save (fill required fields)") + helpStyle.Render(" • esc cancel"))
	}
	return b.String()
}
