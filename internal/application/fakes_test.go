package application

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type transportCall struct {
	Method string
	Path   string
	Body   any
}

// fakeTransport scripts responses by path and records every call so tests
// can assert on request ordering and payloads.
type fakeTransport struct {
	mu        sync.Mutex
	responses map[string]json.RawMessage
	errors    map[string]error
	downloads map[string][]byte
	calls     []transportCall
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		responses: map[string]json.RawMessage{},
		errors:    map[string]error{},
		downloads: map[string][]byte{},
	}
}

func (f *fakeTransport) respond(path string, payload string) {
	f.responses[path] = json.RawMessage(payload)
}

func (f *fakeTransport) fail(path string, err error) {
	f.errors[path] = err
}

func (f *fakeTransport) Get(_ context.Context, path string, _ string) (json.RawMessage, error) {
	return f.record("GET", path, nil)
}

func (f *fakeTransport) PostJSON(_ context.Context, path string, body any, _ string) (json.RawMessage, error) {
	return f.record("POST", path, body)
}

func (f *fakeTransport) Download(_ context.Context, path string, _ string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, transportCall{Method: "GET", Path: path})
	if err, ok := f.errors[path]; ok {
		return nil, err
	}
	if data, ok := f.downloads[path]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("unscripted download path %q", path)
}

func (f *fakeTransport) record(method, path string, body any) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, transportCall{Method: method, Path: path, Body: body})
	if err, ok := f.errors[path]; ok {
		return nil, err
	}
	if payload, ok := f.responses[path]; ok {
		return payload, nil
	}
	return nil, fmt.Errorf("unscripted path %q", path)
}

func (f *fakeTransport) callsTo(path string) []transportCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []transportCall
	for _, call := range f.calls {
		if call.Path == path {
			matched = append(matched, call)
		}
	}
	return matched
}

func (f *fakeTransport) callPaths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	paths := make([]string, 0, len(f.calls))
	for _, call := range f.calls {
		paths = append(paths, call.Path)
	}
	return paths
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}
