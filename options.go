package resq

import (
	"log/slog"
	"regexp"
)

// Options configures how a resource shapes requests and responses.
// An Options value is merged, snapshotted at resource creation, and never
// mutated afterwards; the same Resource may be called concurrently.
type Options struct {
	// Pattern locates placeholder tokens in the URL template, capturing the
	// parameter name in its first group. Defaults to the process-wide
	// pattern, which matches {{name}}.
	Pattern *regexp.Regexp

	// InputMap renames logical payload fields to wire field names. Logical
	// fields missing from the map are not sent. Nil means no payload fields
	// are mapped.
	InputMap map[string]string

	// HeadersMap renames logical payload fields to HTTP header names.
	HeadersMap map[string]string

	// TransformPayload rewrites the mapped wire payload before dispatch.
	// It may add, remove, or rewrite keys; it always runs, even when the
	// mapped payload is empty.
	TransformPayload func(Fields) Fields

	// TransformHeaders rewrites the mapped headers before dispatch.
	TransformHeaders func(Headers) Headers

	// WithCredentials is forwarded to the transport. Once set true at any
	// merge tier it stays true.
	WithCredentials bool

	// Parsers is the ordered response post-processing chain. Unlike scalar
	// fields, parsers concatenate across merge tiers: built-in, then
	// factory defaults, then per-resource.
	Parsers []Parser

	// Transport issues the HTTP calls. Defaults to a shared HTTPTransport.
	Transport Transport

	// Logger receives debug logs from the default transport.
	Logger *slog.Logger
}

// mergeOptions layers override on top of base. Scalar fields from override
// win when set; Parsers concatenate, base first.
func mergeOptions(base, override *Options) *Options {
	merged := &Options{}
	if base != nil {
		*merged = *base
		merged.Parsers = append([]Parser(nil), base.Parsers...)
	}
	if override == nil {
		return merged
	}
	if override.Pattern != nil {
		merged.Pattern = override.Pattern
	}
	if override.InputMap != nil {
		merged.InputMap = override.InputMap
	}
	if override.HeadersMap != nil {
		merged.HeadersMap = override.HeadersMap
	}
	if override.TransformPayload != nil {
		merged.TransformPayload = override.TransformPayload
	}
	if override.TransformHeaders != nil {
		merged.TransformHeaders = override.TransformHeaders
	}
	if override.WithCredentials {
		merged.WithCredentials = true
	}
	if override.Transport != nil {
		merged.Transport = override.Transport
	}
	if override.Logger != nil {
		merged.Logger = override.Logger
	}
	merged.Parsers = append(merged.Parsers, override.Parsers...)
	return merged
}
