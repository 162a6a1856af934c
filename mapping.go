package resq

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

// Fields is an invocation payload: logical field names to values.
type Fields map[string]any

// Headers maps HTTP header names to values.
type Headers map[string]string

var (
	validate      = validator.New()
	schemaEncoder = schema.NewEncoder()
)

// payloadFields normalizes a caller-supplied payload into a Fields map.
// nil stays nil. Maps pass through as-is. Structs (or pointers to structs)
// are validated with their `validate` tags and then encoded through the
// schema encoder, so `schema` tags name the logical fields.
func payloadFields(payload any) (Fields, error) {
	switch p := payload.(type) {
	case nil:
		return nil, nil
	case Fields:
		return p, nil
	case map[string]any:
		return Fields(p), nil
	}

	rv := reflect.ValueOf(payload)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, Errorf(CodeInvalidPayload, "unsupported payload type %T", payload)
	}

	if err := validate.Struct(rv.Interface()); err != nil {
		var valErrs validator.ValidationErrors
		if errors.As(err, &valErrs) {
			return nil, validationError(valErrs)
		}
		return nil, err
	}

	vals := url.Values{}
	if err := schemaEncoder.Encode(rv.Interface(), vals); err != nil {
		return nil, Errorf(CodeInvalidPayload, "failed to encode payload: %v", err)
	}
	fields := make(Fields, len(vals))
	for k, vs := range vals {
		if len(vs) == 1 {
			fields[k] = vs[0]
		} else {
			fields[k] = vs
		}
	}
	return fields, nil
}

// mapPayload projects the invocation payload through InputMap and the
// TransformPayload hook. Only logical fields present in the payload produce
// wire fields; a result with no keys collapses to nil so the dispatcher
// sends nothing at all rather than an empty object.
func mapPayload(opts *Options, fields Fields) Fields {
	wire := Fields{}
	for logical, wireName := range opts.InputMap {
		if v, ok := fields[logical]; ok {
			wire[wireName] = v
		}
	}
	if opts.TransformPayload != nil {
		wire = opts.TransformPayload(wire)
	}
	if len(wire) == 0 {
		return nil
	}
	return wire
}

// mapHeaders is the header-side counterpart of mapPayload, projecting through
// HeadersMap and the TransformHeaders hook. Values are stringified since
// header values are strings on the wire.
func mapHeaders(opts *Options, fields Fields) Headers {
	hdrs := Headers{}
	for logical, name := range opts.HeadersMap {
		if v, ok := fields[logical]; ok {
			hdrs[name] = fmt.Sprint(v)
		}
	}
	if opts.TransformHeaders != nil {
		hdrs = opts.TransformHeaders(hdrs)
	}
	if len(hdrs) == 0 {
		return nil
	}
	return hdrs
}

// queryValues flattens a wire payload into url.Values for query-string use.
func queryValues(fields Fields) url.Values {
	vals := url.Values{}
	for k, v := range fields {
		switch vv := v.(type) {
		case []string:
			for _, s := range vv {
				vals.Add(k, s)
			}
		default:
			vals.Add(k, fmt.Sprint(v))
		}
	}
	return vals
}
