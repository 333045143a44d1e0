package usecase_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jhoicas/portaria-api/internal/application/ports"
)

// apiCall request registrado por fakeAPI.
type apiCall struct {
	Method   string
	Endpoint string
	Body     string
	Field    string
	Filename string
}

// fakeAPI implementa ports.APIRequester respondiendo con JSON fijo por "METHOD endpoint".
type fakeAPI struct {
	mu        sync.Mutex
	calls     []apiCall
	responses map[string]string
	errs      map[string]error
}

var _ ports.APIRequester = (*fakeAPI)(nil)

func newFakeAPI() *fakeAPI {
	return &fakeAPI{responses: map[string]string{}, errs: map[string]error{}}
}

func (f *fakeAPI) on(method, endpoint, body string) *fakeAPI {
	f.mu.Lock()
	f.responses[method+" "+endpoint] = body
	f.mu.Unlock()
	return f
}

func (f *fakeAPI) fail(method, endpoint string, err error) *fakeAPI {
	f.mu.Lock()
	f.errs[method+" "+endpoint] = err
	f.mu.Unlock()
	return f
}

func (f *fakeAPI) Request(_ context.Context, method, endpoint string, body, out any) error {
	b := ""
	if body != nil {
		raw, _ := json.Marshal(body)
		b = string(raw)
	}
	return f.respond(apiCall{Method: method, Endpoint: endpoint, Body: b}, out)
}

func (f *fakeAPI) RequestNoAuth(ctx context.Context, method, endpoint string, body, out any) error {
	return f.Request(ctx, method, endpoint, body, out)
}

func (f *fakeAPI) Upload(_ context.Context, endpoint, field, filename string, r io.Reader, out any) error {
	content, _ := io.ReadAll(r)
	return f.respond(apiCall{Method: "POST", Endpoint: endpoint, Body: string(content), Field: field, Filename: filename}, out)
}

func (f *fakeAPI) respond(c apiCall, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	key := c.Method + " " + c.Endpoint
	err, resp := f.errs[key], f.responses[key]
	f.mu.Unlock()

	if err != nil {
		return err
	}
	if out == nil || resp == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(resp), out); err != nil {
		return fmt.Errorf("fakeAPI %s: %w", key, err)
	}
	return nil
}

func (f *fakeAPI) callsTo(prefix string) []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []apiCall
	for _, c := range f.calls {
		if strings.HasPrefix(c.Method+" "+c.Endpoint, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeAPI) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// recordingNotifier guarda los toasts emitidos.
type recordingNotifier struct {
	mu     sync.Mutex
	toasts []toastRecord
}

type toastRecord struct {
	Kind, Title, Message string
}

var _ ports.Notifier = (*recordingNotifier)(nil)

func (n *recordingNotifier) add(kind, title, message string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, toastRecord{kind, title, message})
	return fmt.Sprintf("t-%d", len(n.toasts))
}

func (n *recordingNotifier) Success(title, message string) string {
	return n.add("success", title, message)
}
func (n *recordingNotifier) Error(title, message string) string { return n.add("error", title, message) }
func (n *recordingNotifier) Info(title, message string) string  { return n.add("info", title, message) }

func (n *recordingNotifier) all() []toastRecord {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]toastRecord(nil), n.toasts...)
}
