package app

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"reviewdesk/internal/client"
	"reviewdesk/internal/types"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type apiCall struct {
	Method string
	Path   string
	Body   map[string]any
}

type fakeReviewAPI struct {
	mu        sync.Mutex
	sitemaps  []*types.Sitemap
	pages     map[types.ItemID][]*types.Page
	emails    []*types.EmailPreference
	responses map[string]string
	errs      map[string]error
	calls     []apiCall
	pageLoads int
}

func newFakeReviewAPI() *fakeReviewAPI {
	return &fakeReviewAPI{
		sitemaps: []*types.Sitemap{
			{ID: "1", URL: "https://site.test/sitemap.xml", ClientLabel: "Site"},
			{ID: "2", URL: "https://other.test/sitemap.xml"},
		},
		pages: map[types.ItemID][]*types.Page{
			"1": {
				{ID: "10", SitemapID: "1", URL: "https://site.test/a"},
				{ID: "11", SitemapID: "1", URL: "https://site.test/b", NeedsReview: true},
			},
		},
		emails: []*types.EmailPreference{
			{ID: "1", EmailAddress: "ops@example.com", Enabled: true},
			{ID: "2", EmailAddress: "seo@example.com", Enabled: false},
		},
		responses: map[string]string{},
		errs:      map[string]error{},
	}
}

func (f *fakeReviewAPI) ListSitemaps(context.Context) ([]*types.Sitemap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*types.Sitemap(nil), f.sitemaps...), nil
}

func (f *fakeReviewAPI) ListPages(_ context.Context, sitemapID types.ItemID) ([]*types.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pageLoads++
	return append([]*types.Page(nil), f.pages[sitemapID]...), nil
}

func (f *fakeReviewAPI) ListEmails(context.Context) ([]*types.EmailPreference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*types.EmailPreference(nil), f.emails...), nil
}

func (f *fakeReviewAPI) Mutate(_ context.Context, method, path string, body any) (*client.Envelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	call := apiCall{Method: method, Path: path}
	if body != nil {
		raw, _ := json.Marshal(body)
		_ = json.Unmarshal(raw, &call.Body)
	}
	f.calls = append(f.calls, call)
	key := method + " " + path
	if err := f.errs[key]; err != nil {
		return nil, err
	}
	response, ok := f.responses[key]
	if !ok {
		response = `{"success": true}`
	}
	var env client.Envelope
	if err := json.Unmarshal([]byte(response), &env); err != nil {
		return nil, err
	}
	return &env, nil
}

func (f *fakeReviewAPI) Calls() []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]apiCall(nil), f.calls...)
}

// newLoadedModel returns a model with sitemaps and emails already fetched.
func newLoadedModel(t *testing.T, api *fakeReviewAPI) *Model {
	t.Helper()
	m := NewModel(Options{API: api})
	m.resize(100, 24)
	m.now = func() time.Time { return testNow }
	run(t, m, fetchSitemapsCmd(api))
	run(t, m, fetchEmailsCmd(api))
	return m
}

// run executes cmd synchronously and feeds its message back into the model.
func run(t *testing.T, m *Model, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	_, next := m.Update(cmd())
	return next
}

func press(m *Model, key string) tea.Cmd {
	_, cmd := m.Update(keyMsg(key))
	return cmd
}

func keyMsg(key string) tea.KeyPressMsg {
	switch key {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	r := []rune(key)
	return tea.KeyPressMsg{Code: r[0], Text: key}
}
