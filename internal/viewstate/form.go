package viewstate

import (
	"maps"
	"strings"
)

// Field binds a named form input to a record field.
type Field[T any] struct {
	Name     string
	Label    string
	Required bool
	Get      func(T) string
	Set      func(T, string) T
	// Check validates non-empty values.
	Check func(string) error
}

// Validation is the outcome of validating a draft.
type Validation struct {
	Missing []string          `json:"missing,omitempty"`
	Invalid map[string]string `json:"invalid,omitempty"`
}

// OK reports whether the draft may be submitted.
func (v Validation) OK() bool {
	return len(v.Missing) == 0 && len(v.Invalid) == 0
}

// Err returns a *ValidationError, or nil when the draft is valid.
func (v Validation) Err() error {
	if v.OK() {
		return nil
	}
	return &ValidationError{Missing: v.Missing, Invalid: v.Invalid}
}

// Form is the draft buffer of a panel. At most one draft is open at a time.
type Form[T any] struct {
	fields   []Field[T]
	template func() T

	draft  T
	open   bool
	editID string
	errs   map[string]string
}

// NewForm creates a form over fields. template builds the empty create draft.
func NewForm[T any](template func() T, fields ...Field[T]) *Form[T] {
	if template == nil {
		template = func() T {
			var zero T
			return zero
		}
	}
	return &Form[T]{fields: fields, template: template, errs: map[string]string{}}
}

// Fields returns the declared fields in order.
func (f *Form[T]) Fields() []Field[T] {
	return f.fields
}

// OpenCreate opens an empty draft.
func (f *Form[T]) OpenCreate() error {
	if f.open {
		return ErrDraftOpen
	}
	f.draft = f.template()
	f.editID = ""
	f.open = true
	f.errs = map[string]string{}
	return nil
}

// OpenEdit opens a draft copied from rec, which is stored under id.
func (f *Form[T]) OpenEdit(id string, rec T) error {
	if f.open {
		return ErrDraftOpen
	}
	f.draft = rec
	f.editID = id
	f.open = true
	f.errs = map[string]string{}
	return nil
}

// IsOpen reports whether a draft is open.
func (f *Form[T]) IsOpen() bool {
	return f.open
}

// EditingID returns the id of the record being edited, empty for a create draft.
func (f *Form[T]) EditingID() string {
	return f.editID
}

// Set writes value into the named field and clears that field's error.
func (f *Form[T]) Set(name, value string) error {
	if !f.open {
		return ErrNoDraft
	}
	field, ok := f.field(name)
	if !ok {
		return ErrUnknownField
	}
	f.draft = field.Set(f.draft, value)
	delete(f.errs, name)
	return nil
}

// Value reads the named field from the draft.
func (f *Form[T]) Value(name string) string {
	field, ok := f.field(name)
	if !ok || !f.open {
		return ""
	}
	return field.Get(f.draft)
}

// Draft returns the current draft.
func (f *Form[T]) Draft() (T, bool) {
	return f.draft, f.open
}

// Validate checks required fields and field checks, recording per-field errors.
func (f *Form[T]) Validate() Validation {
	v := f.check()
	f.errs = map[string]string{}
	for _, name := range v.Missing {
		f.errs[name] = "required"
	}
	maps.Copy(f.errs, v.Invalid)
	return v
}

// Errors returns the field errors recorded by the last Validate.
func (f *Form[T]) Errors() map[string]string {
	return maps.Clone(f.errs)
}

// CanSubmit reports whether the open draft would pass validation.
func (f *Form[T]) CanSubmit() bool {
	return f.open && f.check().OK()
}

// Submission validates the draft and returns it with the id it edits.
// The draft stays open either way; callers Discard after a successful commit.
func (f *Form[T]) Submission() (T, string, error) {
	if !f.open {
		var zero T
		return zero, "", ErrNoDraft
	}
	if err := f.Validate().Err(); err != nil {
		var zero T
		return zero, "", err
	}
	return f.draft, f.editID, nil
}

// Discard drops the draft without touching any store.
func (f *Form[T]) Discard() {
	var zero T
	f.draft = zero
	f.editID = ""
	f.open = false
	f.errs = map[string]string{}
}

func (f *Form[T]) check() Validation {
	var v Validation
	if !f.open {
		return v
	}
	for _, field := range f.fields {
		value := strings.TrimSpace(field.Get(f.draft))
		if value == "" {
			if field.Required {
				v.Missing = append(v.Missing, field.Name)
			}
			continue
		}
		if field.Check == nil {
			continue
		}
		if err := field.Check(value); err != nil {
			if v.Invalid == nil {
				v.Invalid = map[string]string{}
			}
			v.Invalid[field.Name] = err.Error()
		}
	}
	return v
}

func (f *Form[T]) field(name string) (Field[T], bool) {
	for _, field := range f.fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field[T]{}, false
}

// TextField builds a field from a getter and an in-place setter.
func TextField[T any](name, label string, get func(T) string, set func(*T, string)) Field[T] {
	return Field[T]{
		Name:  name,
		Label: label,
		Get:   get,
		Set: func(rec T, v string) T {
			set(&rec, v)
			return rec
		},
	}
}

// Require marks the field as required.
func (f Field[T]) Require() Field[T] {
	f.Required = true
	return f
}

// Checked attaches a validation check.
func (f Field[T]) Checked(check func(string) error) Field[T] {
	f.Check = check
	return f
}
