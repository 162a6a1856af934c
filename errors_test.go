package resq

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestNewError(t *testing.T) {
	err := NewError(CodeInvalidMethod, "unsupported method")
	if err.Code != CodeInvalidMethod {
		t.Errorf("expected code %s, got %s", CodeInvalidMethod, err.Code)
	}
	if err.Message != "unsupported method" {
		t.Errorf("expected message 'unsupported method', got %s", err.Message)
	}
}

func TestErrorf(t *testing.T) {
	err := Errorf(CodeInvalidMethod, "unsupported method %q", "TRACE")
	if err.Message != `unsupported method "TRACE"` {
		t.Errorf("expected formatted message, got %s", err.Message)
	}
}

func TestErrorError(t *testing.T) {
	err := NewError(CodeInvalidPayload, "bad payload")
	expected := "invalid_payload: bad payload"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestErrorAs(t *testing.T) {
	var target *Error
	err := error(NewError(CodeInvalidMethod, "nope"))
	if !errors.As(err, &target) {
		t.Fatal("expected errors.As to unwrap *Error")
	}
	if target.Code != CodeInvalidMethod {
		t.Errorf("expected code %s, got %s", CodeInvalidMethod, target.Code)
	}
}

func TestWithDetail(t *testing.T) {
	base := NewError(CodeInvalidPayload, "bad payload")
	detailed := base.WithDetail("field", "id")

	if base.Details != nil {
		t.Error("expected WithDetail to leave the original untouched")
	}
	if detailed.Details["field"] != "id" {
		t.Errorf("expected detail field=id, got %v", detailed.Details)
	}

	more := detailed.WithDetail("reason", "missing")
	if len(more.Details) != 2 {
		t.Errorf("expected 2 details, got %d", len(more.Details))
	}
	if len(detailed.Details) != 1 {
		t.Error("expected intermediate error untouched")
	}
}

func TestValidationError(t *testing.T) {
	type payload struct {
		Name  string `validate:"required"`
		Email string `validate:"email"`
	}

	err := validate.Struct(payload{Email: "not-an-email"})
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}

	resErr := validationError(valErrs)
	if resErr.Code != CodeInvalidPayload {
		t.Errorf("expected code %s, got %s", CodeInvalidPayload, resErr.Code)
	}
	if resErr.Details["Name"] != "required" {
		t.Errorf("expected Name detail 'required', got %v", resErr.Details["Name"])
	}
	if resErr.Details["Email"] != "must be a valid email address" {
		t.Errorf("expected Email detail, got %v", resErr.Details["Email"])
	}
}
