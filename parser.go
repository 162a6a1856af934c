package resq

import (
	"context"
	"net/http"
)

// CallInfo carries the fixed side-channel every parser in a chain observes.
// It is built once per invocation after the transport settles and is the
// same value for every parser in the chain.
type CallInfo struct {
	// Failed reports whether the HTTP response had a non-2xx status.
	// Distinct from a transport error: when no response was received at
	// all, Call returns the transport's error and no parser runs.
	Failed bool

	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Header holds the response headers.
	Header http.Header

	// Payload is the original invocation payload, normalized to Fields.
	Payload Fields

	// Options is the resource's merged options.
	Options *Options
}

// Parser is one step of the post-processing chain applied to a response body.
//
// Parsers run left to right; each receives the previous parser's result as
// body and returns the next one. The first parser receives the decoded
// response body, which it must treat as read-only. Returning an error aborts
// the chain and propagates out of Call unmodified.
//
// Failed responses flow through the chain too, giving parsers the first and
// only opportunity to convert a failure body into an error:
//
//	func rejectFailures(ctx context.Context, body any, info *resq.CallInfo) (any, error) {
//	    if info.Failed {
//	        return nil, fmt.Errorf("request failed with status %d", info.StatusCode)
//	    }
//	    return body, nil
//	}
//
// The context is the one passed to Call, so parsers that do their own I/O
// stay cancelable; each parser completes before the next starts.
type Parser func(ctx context.Context, body any, info *CallInfo) (any, error)

// runParsers folds the parser chain over the body, strictly in order.
func runParsers(ctx context.Context, parsers []Parser, body any, info *CallInfo) (any, error) {
	for _, p := range parsers {
		next, err := p(ctx, body, info)
		if err != nil {
			return nil, err
		}
		body = next
	}
	return body, nil
}
