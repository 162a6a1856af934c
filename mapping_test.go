package resq

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMapPayload(t *testing.T) {
	tests := []struct {
		name   string
		opts   *Options
		fields Fields
		want   Fields
	}{
		{
			name:   "maps only fields present in both inputMap and payload",
			opts:   &Options{InputMap: map[string]string{"a": "A", "b": "B"}},
			fields: Fields{"a": 1, "c": 3},
			want:   Fields{"A": 1},
		},
		{
			name:   "renames every matching field",
			opts:   &Options{InputMap: map[string]string{"a": "A", "b": "B"}},
			fields: Fields{"a": 1, "b": 2},
			want:   Fields{"A": 1, "B": 2},
		},
		{
			name:   "nil inputMap yields nil",
			opts:   &Options{},
			fields: Fields{"a": 1},
			want:   nil,
		},
		{
			name:   "nil payload yields nil",
			opts:   &Options{InputMap: map[string]string{"a": "A"}},
			fields: nil,
			want:   nil,
		},
		{
			name: "transform can inject fields into an empty payload",
			opts: &Options{
				TransformPayload: func(f Fields) Fields {
					f["computed"] = true
					return f
				},
			},
			fields: nil,
			want:   Fields{"computed": true},
		},
		{
			name: "transform can remove every field, collapsing to nil",
			opts: &Options{
				InputMap:         map[string]string{"a": "A"},
				TransformPayload: func(Fields) Fields { return Fields{} },
			},
			fields: Fields{"a": 1},
			want:   nil,
		},
		{
			name: "transform rewrites mapped fields",
			opts: &Options{
				InputMap: map[string]string{"a": "A"},
				TransformPayload: func(f Fields) Fields {
					f["A"] = "rewritten"
					return f
				},
			},
			fields: Fields{"a": 1},
			want:   Fields{"A": "rewritten"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapPayload(tt.opts, tt.fields)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mapPayload() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMapHeaders(t *testing.T) {
	tests := []struct {
		name   string
		opts   *Options
		fields Fields
		want   Headers
	}{
		{
			name:   "maps and stringifies values",
			opts:   &Options{HeadersMap: map[string]string{"token": "X-Token", "trace": "X-Trace"}},
			fields: Fields{"token": "abc", "trace": 42},
			want:   Headers{"X-Token": "abc", "X-Trace": "42"},
		},
		{
			name:   "absent logical fields are omitted",
			opts:   &Options{HeadersMap: map[string]string{"token": "X-Token"}},
			fields: Fields{"other": 1},
			want:   nil,
		},
		{
			name: "transform can inject headers",
			opts: &Options{
				TransformHeaders: func(h Headers) Headers {
					h["Accept"] = "application/json"
					return h
				},
			},
			fields: nil,
			want:   Headers{"Accept": "application/json"},
		},
		{
			name: "transform emptying headers collapses to nil",
			opts: &Options{
				HeadersMap:       map[string]string{"token": "X-Token"},
				TransformHeaders: func(Headers) Headers { return Headers{} },
			},
			fields: Fields{"token": "abc"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapHeaders(tt.opts, tt.fields)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mapHeaders() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

type searchPayload struct {
	Query string `schema:"q" validate:"required"`
	Page  int    `schema:"page"`
}

func TestPayloadFields_Struct(t *testing.T) {
	got, err := payloadFields(&searchPayload{Query: "go", Page: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Fields{"q": "go", "page": "2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("payloadFields() mismatch (-want +got):\n%s", diff)
	}
}

func TestPayloadFields_StructValidation(t *testing.T) {
	_, err := payloadFields(&searchPayload{Page: 1})
	if err == nil {
		t.Fatal("expected validation error for missing required field")
	}
	var resErr *Error
	if !errors.As(err, &resErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if resErr.Code != CodeInvalidPayload {
		t.Errorf("expected code %s, got %s", CodeInvalidPayload, resErr.Code)
	}
	if _, ok := resErr.Details["Query"]; !ok {
		t.Errorf("expected details for field Query, got %v", resErr.Details)
	}
}

func TestPayloadFields_UnsupportedType(t *testing.T) {
	_, err := payloadFields(42)
	if err == nil {
		t.Fatal("expected error for unsupported payload type")
	}
	var resErr *Error
	if !errors.As(err, &resErr) || resErr.Code != CodeInvalidPayload {
		t.Errorf("expected CodeInvalidPayload, got %v", err)
	}
}

func TestPayloadFields_Nil(t *testing.T) {
	got, err := payloadFields(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil fields, got %v", got)
	}

	var p *searchPayload
	got, err = payloadFields(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil fields for nil struct pointer, got %v", got)
	}
}

func TestQueryValues(t *testing.T) {
	vals := queryValues(Fields{"a": 1, "b": "x", "c": []string{"p", "q"}})
	if got := vals.Get("a"); got != "1" {
		t.Errorf("a = %q, want %q", got, "1")
	}
	if got := vals.Get("b"); got != "x" {
		t.Errorf("b = %q, want %q", got, "x")
	}
	if diff := cmp.Diff([]string{"p", "q"}, vals["c"]); diff != "" {
		t.Errorf("c mismatch (-want +got):\n%s", diff)
	}
}
