// Package resq builds declarative HTTP resources: describe an endpoint once
// (method, URL template, field mappings, parser chain) and call it repeatedly
// with different payloads.
//
//	users := resq.New("get", "https://api.example.com/users/{{id}}", nil)
//	body, err := users.Call(ctx, resq.Fields{"id": 5})
//
// A Resource is immutable once created; see Factory for sharing defaults
// across a family of resources.
package resq

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// Resource is an immutable, callable description of one API endpoint.
// It binds an HTTP method, a URL template, and merged Options at creation
// time; every Call is independent and safe to run concurrently.
type Resource struct {
	method string
	url    string
	opts   *Options
}

// Properties is the introspection snapshot returned by Properties.
type Properties struct {
	URL     string
	Method  string
	Options *Options
}

// sharedTransport is used by resources whose options set no Transport.
var sharedTransport = &HTTPTransport{}

// New creates a Resource bound to method and urlTemplate.
// The method is resolved case-insensitively at call time; an unsupported
// method is accepted here but makes every Call fail.
func New(method, urlTemplate string, opts *Options) *Resource {
	return NewFactory(nil).New(method, urlTemplate, opts)
}

// Properties returns a snapshot of the resource's configuration.
func (r *Resource) Properties() Properties {
	return Properties{
		URL:     r.url,
		Method:  r.method,
		Options: r.opts,
	}
}

// BuildURL interpolates the URL template with params, without any network
// activity. Params follow the same forms Call accepts: nil, a Fields map,
// or a struct. Placeholders whose name is not a param key stay verbatim.
func (r *Resource) BuildURL(params any) (string, error) {
	if err := checkPattern(r.opts.Pattern); err != nil {
		return "", err
	}
	fields, err := payloadFields(params)
	if err != nil {
		return "", err
	}
	return interpolate(r.opts.Pattern, r.url, fields), nil
}

// Call invokes the endpoint with the given payload and returns the parsed
// response body.
//
// Pipeline: interpolate the URL, map the payload and headers, dispatch via
// the transport, then run the parser chain over the decoded body. The chain
// runs for failure statuses too, with CallInfo.Failed set; a transport error
// with no response is returned as-is and no parser runs.
func (r *Resource) Call(ctx context.Context, payload any) (any, error) {
	method := strings.ToUpper(r.method)
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return nil, Errorf(CodeInvalidMethod, "unsupported method %q", r.method)
	}
	if err := checkPattern(r.opts.Pattern); err != nil {
		return nil, err
	}

	fields, err := payloadFields(payload)
	if err != nil {
		return nil, err
	}

	req := &Request{
		Method:          method,
		URL:             interpolate(r.opts.Pattern, r.url, fields),
		Headers:         mapHeaders(r.opts, fields),
		WithCredentials: r.opts.WithCredentials,
	}

	switch method {
	case http.MethodGet:
		if wire := mapPayload(r.opts, fields); wire != nil {
			req.Query = queryValues(wire)
		}
	case http.MethodDelete:
		// DELETE never carries a payload, even when InputMap and the
		// invocation payload would produce one.
	default:
		if wire := mapPayload(r.opts, fields); wire != nil {
			req.Body = wire
		}
	}

	res, err := r.transport().Do(ctx, req)
	if err != nil {
		return nil, err
	}

	info := &CallInfo{
		Failed:     res.StatusCode < 200 || res.StatusCode > 299,
		StatusCode: res.StatusCode,
		Header:     res.Header,
		Payload:    fields,
		Options:    r.opts,
	}
	return runParsers(ctx, r.opts.Parsers, decodeBody(res), info)
}

func (r *Resource) transport() Transport {
	if r.opts.Transport != nil {
		return r.opts.Transport
	}
	if r.opts.Logger != nil {
		return &HTTPTransport{Logger: r.opts.Logger}
	}
	return sharedTransport
}

// decodeBody turns a raw response body into the initial parser-chain value:
// nil when empty, decoded JSON when the content type says JSON, otherwise
// the body as a string.
func decodeBody(res *Response) any {
	if len(res.Body) == 0 {
		return nil
	}
	if strings.Contains(res.Header.Get("Content-Type"), "json") {
		var v any
		if err := json.Unmarshal(res.Body, &v); err == nil {
			return v
		}
	}
	return string(res.Body)
}
