// Package booking holds the contact form of the booking step.
package booking

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"booking-wizard/internal/model"
)

var ErrInvalid = errors.New("booking form is invalid")

type Field string

const (
	FieldName  Field = "name"
	FieldEmail Field = "email"
	FieldPhone Field = "phone"
	FieldNotes Field = "notes"
)

func ParseField(s string) (Field, error) {
	switch f := Field(s); f {
	case FieldName, FieldEmail, FieldPhone, FieldNotes:
		return f, nil
	}
	return "", fmt.Errorf("unknown form field %q", s)
}

const (
	MsgNameRequired  = "Name is required"
	MsgEmailRequired = "Email is required"
	MsgEmailInvalid  = "Please enter a valid email"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// FieldErrors maps a field to its message.
type FieldErrors map[Field]string

// Fields returns the offending fields in a stable order.
func (fe FieldErrors) Fields() []Field {
	out := make([]Field, 0, len(fe))
	for f := range fe {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ValidationError is returned when a submit is rejected.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "booking form: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Validate checks the required fields. Phone and notes are free text.
func Validate(d model.BookingFormData) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(d.Name) == "" {
		errs[FieldName] = MsgNameRequired
	}
	email := strings.TrimSpace(d.Email)
	switch {
	case email == "":
		errs[FieldEmail] = MsgEmailRequired
	case !emailPattern.MatchString(email):
		errs[FieldEmail] = MsgEmailInvalid
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Form is the editable state of the booking step: values plus the errors of the last submit.
type Form struct {
	Data   model.BookingFormData `json:"data"`
	Errors FieldErrors           `json:"errors,omitempty"`
}

// Set updates one field and clears that field's error only.
func (f *Form) Set(field Field, value string) {
	switch field {
	case FieldName:
		f.Data.Name = value
	case FieldEmail:
		f.Data.Email = value
	case FieldPhone:
		f.Data.Phone = value
	case FieldNotes:
		f.Data.Notes = value
	}
	delete(f.Errors, field)
	if len(f.Errors) == 0 {
		f.Errors = nil
	}
}

// Submit validates the current values. On success the payload is returned verbatim.
func (f *Form) Submit() (model.BookingFormData, error) {
	f.Errors = Validate(f.Data)
	if f.Errors != nil {
		return model.BookingFormData{}, &ValidationError{Fields: f.Errors}
	}
	return f.Data, nil
}

// Reset empties the form, as on mount.
func (f *Form) Reset() { *f = Form{} }
