package resq

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// Request describes a single outgoing call, fully shaped by the resource
// pipeline: interpolated URL, mapped query/body, mapped headers.
type Request struct {
	// Method is the canonical upper-case HTTP method.
	Method string

	// URL is the interpolated request URL, without the mapped query.
	URL string

	// Query holds query parameters; nil means no query string is attached.
	Query url.Values

	// Body is the JSON-encodable request body; nil means no body is sent.
	Body any

	// Headers holds the mapped request headers; nil means none are set.
	Headers Headers

	// WithCredentials asks the transport to attach ambient credentials
	// (cookies, client certificates) to the call. The default transport
	// ignores it; transports targeting credential-aware backends honor it.
	WithCredentials bool
}

// Response is what a Transport returns when the remote endpoint replied,
// regardless of status. Failure statuses are not transport errors.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport issues one HTTP call. A non-nil error means no response was
// received at all (connection refused, DNS failure, timeout); when the
// endpoint replied, even with a failure status, the transport must return
// the Response and a nil error.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// defaultMaxBodySize caps how much of a response body is read.
const defaultMaxBodySize = 1 << 22 // 4MB

// HTTPTransport is the default Transport over net/http.
// The zero value is ready to use and shares http.DefaultClient.
type HTTPTransport struct {
	// Client is the underlying HTTP client. Defaults to http.DefaultClient.
	Client *http.Client

	// MaxBodySize caps response body reads. Defaults to 4MB; negative
	// means unlimited.
	MaxBodySize int64

	// Logger receives debug-level request/response logs.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

func (t *HTTPTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	logger := t.Logger
	if logger == nil {
		logger = slog.Default()
	}

	target := req.URL
	if len(req.Query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, err
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	logger.DebugContext(ctx, "request started",
		slog.String("method", req.Method),
		slog.String("url", target),
	)

	res, err := client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	limit := t.MaxBodySize
	if limit == 0 {
		limit = defaultMaxBodySize
	}
	reader := res.Body
	if limit > 0 {
		reader = io.NopCloser(io.LimitReader(res.Body, limit))
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	logger.DebugContext(ctx, "request completed",
		slog.String("method", req.Method),
		slog.String("url", target),
		slog.Int("status", res.StatusCode),
		slog.Int("body_length", len(data)),
	)

	return &Response{
		StatusCode: res.StatusCode,
		Header:     res.Header,
		Body:       data,
	}, nil
}
