// Package testutil provides testing helpers for resq resources.
// It is import-cycle safe and can be used from any package.
package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/broady/resq"
)

// FakeTransport is a scripted resq.Transport for tests. Steps are consumed
// in order; the last step repeats once the script is exhausted. Every request
// is captured for later inspection.
//
//	transport := testutil.NewTransport().
//	    RespondJSON(200, map[string]any{"ok": true})
//	res := resq.New("get", url, &resq.Options{Transport: transport})
type FakeTransport struct {
	mu    sync.Mutex
	steps []step
	next  int
	calls []*resq.Request
}

type step struct {
	res *resq.Response
	err error
}

// NewTransport creates a FakeTransport with no scripted steps.
// An unscripted transport responds 200 with an empty body.
func NewTransport() *FakeTransport {
	return &FakeTransport{}
}

// RespondWith scripts a response with the given status and raw body.
func (t *FakeTransport) RespondWith(status int, contentType, body string) *FakeTransport {
	t.mu.Lock()
	defer t.mu.Unlock()
	header := http.Header{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	t.steps = append(t.steps, step{res: &resq.Response{
		StatusCode: status,
		Header:     header,
		Body:       []byte(body),
	}})
	return t
}

// RespondJSON scripts a JSON response with the given status.
func (t *FakeTransport) RespondJSON(status int, v any) *FakeTransport {
	data, _ := json.Marshal(v)
	return t.RespondWith(status, "application/json", string(data))
}

// FailWith scripts a transport-level failure: the call settles with err and
// no response, as if the endpoint was unreachable.
func (t *FakeTransport) FailWith(err error) *FakeTransport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.steps = append(t.steps, step{err: err})
	return t
}

// Do implements resq.Transport.
func (t *FakeTransport) Do(_ context.Context, req *resq.Request) (*resq.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, req)
	if len(t.steps) == 0 {
		return &resq.Response{StatusCode: http.StatusOK, Header: http.Header{}}, nil
	}
	s := t.steps[t.next]
	if t.next < len(t.steps)-1 {
		t.next++
	}
	return s.res, s.err
}

// Requests returns the captured requests in call order.
func (t *FakeTransport) Requests() []*resq.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*resq.Request(nil), t.calls...)
}

// LastRequest returns the most recent captured request, or nil.
func (t *FakeTransport) LastRequest() *resq.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.calls) == 0 {
		return nil
	}
	return t.calls[len(t.calls)-1]
}
