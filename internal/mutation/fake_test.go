package mutation

import (
	"context"
	"encoding/json"
	"sync"

	"reviewdesk/internal/client"
	"reviewdesk/internal/selection"
	"reviewdesk/internal/types"
)

type recordedCall struct {
	Method string
	Path   string
	Body   map[string]any
}

type fakeTransport struct {
	mu       sync.Mutex
	calls    []recordedCall
	response string
	err      error
}

func (f *fakeTransport) Mutate(_ context.Context, method, path string, body any) (*client.Envelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	call := recordedCall{Method: method, Path: path}
	if body != nil {
		raw, _ := json.Marshal(body)
		_ = json.Unmarshal(raw, &call.Body)
	}
	f.calls = append(f.calls, call)
	if f.err != nil {
		return nil, f.err
	}
	var env client.Envelope
	if err := json.Unmarshal([]byte(f.response), &env); err != nil {
		return nil, err
	}
	return &env, nil
}

func (f *fakeTransport) Calls() []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedCall(nil), f.calls...)
}

type notice struct {
	Message  string
	Severity Severity
}

type recordingNotifier struct {
	notices []notice
}

func (r *recordingNotifier) Notify(message string, severity Severity) {
	r.notices = append(r.notices, notice{Message: message, Severity: severity})
}

func (r *recordingNotifier) Last() notice {
	if len(r.notices) == 0 {
		return notice{}
	}
	return r.notices[len(r.notices)-1]
}

func pageList(ids ...int64) *selection.List {
	items := make([]selection.Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, selection.Item{ID: types.IDFromInt(id), Label: "https://site.test/p" + types.IDFromInt(id).String()})
	}
	return selection.NewList(items)
}

func emailList() *selection.List {
	return selection.NewList([]selection.Item{
		{ID: "1", Label: "ops@example.com", Enabled: true},
		{ID: "2", Label: "seo@example.com", Enabled: false},
	})
}
