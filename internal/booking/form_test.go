package booking

import (
	"errors"
	"testing"

	"booking-wizard/internal/model"
)

func TestEmailValidation(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"a@b.c", true},
		{"jane@x.com", true},
		{"  jane@x.com  ", true},
		{"", false},
		{"   ", false},
		{"nouser", false},
		{"a@", false},
		{"@b.c", false},
		{"a@b", false},
		{"a b@c.d", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			errs := Validate(model.BookingFormData{Name: "X", Email: tt.email})
			_, bad := errs[FieldEmail]
			if bad == tt.ok {
				t.Errorf("email %q: ok=%v errs=%v", tt.email, tt.ok, errs)
			}
		})
	}
}

func TestEmailMessages(t *testing.T) {
	if got := Validate(model.BookingFormData{Name: "X"})[FieldEmail]; got != MsgEmailRequired {
		t.Errorf("empty email: %q", got)
	}
	if got := Validate(model.BookingFormData{Name: "X", Email: "nouser"})[FieldEmail]; got != MsgEmailInvalid {
		t.Errorf("malformed email: %q", got)
	}
}

func TestNameValidation(t *testing.T) {
	if errs := Validate(model.BookingFormData{Name: "  ", Email: "a@b.c"}); errs[FieldName] != MsgNameRequired {
		t.Errorf("whitespace name should be rejected: %v", errs)
	}
	if errs := Validate(model.BookingFormData{Name: "Jane Doe", Email: "a@b.c"}); errs != nil {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestSubmitBlocksAndRecovers(t *testing.T) {
	var f Form
	f.Set(FieldEmail, "not-an-email")

	_, err := f.Submit()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || len(ve.Fields) != 2 {
		t.Fatalf("expected two field errors, got %v", err)
	}

	// fixing the name clears only the name error
	f.Set(FieldName, "Jane Doe")
	if _, ok := f.Errors[FieldName]; ok {
		t.Error("name error should be cleared")
	}
	if f.Errors[FieldEmail] != MsgEmailInvalid {
		t.Errorf("email error should remain, got %v", f.Errors)
	}

	_, err = f.Submit()
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Fields) != 1 || ve.Fields[FieldEmail] == "" {
		t.Errorf("expected only the email error, got %v", ve.Fields)
	}

	f.Set(FieldEmail, "jane@x.com")
	if f.Errors != nil {
		t.Errorf("errors should be empty, got %v", f.Errors)
	}
	f.Set(FieldNotes, "line one\nline two")
	got, err := f.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := model.BookingFormData{Name: "Jane Doe", Email: "jane@x.com", Notes: "line one\nline two"}
	if got != want {
		t.Errorf("payload: got %+v want %+v", got, want)
	}
}

func TestSubmitKeepsPayloadVerbatim(t *testing.T) {
	f := Form{Data: model.BookingFormData{Name: " Jane ", Email: " jane@x.com", Phone: "98765"}}
	got, err := f.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.Name != " Jane " || got.Email != " jane@x.com" {
		t.Errorf("payload was altered: %+v", got)
	}
}

func TestParseField(t *testing.T) {
	if f, err := ParseField("phone"); err != nil || f != FieldPhone {
		t.Errorf("got %v %v", f, err)
	}
	if _, err := ParseField("age"); err == nil {
		t.Error("expected error")
	}
}

func TestReset(t *testing.T) {
	f := Form{Data: model.BookingFormData{Name: "x"}, Errors: FieldErrors{FieldEmail: MsgEmailRequired}}
	f.Reset()
	if f.Data != (model.BookingFormData{}) || f.Errors != nil {
		t.Errorf("reset left %+v", f)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: FieldErrors{FieldName: MsgNameRequired, FieldEmail: MsgEmailRequired}}
	want := "booking form: email: Email is required; name: Name is required"
	if err.Error() != want {
		t.Errorf("got %q", err.Error())
	}
}
