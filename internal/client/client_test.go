package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"reviewdesk/internal/types"
)

func newTestClient(url, token string) *Client {
	return &Client{
		baseURL:     url,
		tokenHeader: "X-CSRFToken",
		tokens:      StaticToken(token),
		http: &http.Client{
			Timeout: 2 * time.Second,
		},
	}
}

func TestMutateSendsTokenAndDecodesEnvelope(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/pages/bulk-update" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("X-CSRFToken") != "tok-1" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"success":true,"message":"Updated 2 pages","updated_count":2}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "tok-1")
	env, err := c.Mutate(context.Background(), http.MethodPost, "/api/pages/bulk-update", map[string]any{
		"page_ids":     []types.ItemID{"3", "7"},
		"needs_review": true,
	})
	if err != nil {
		t.Fatalf("Mutate error: %v", err)
	}
	if !env.Success || env.Message != "Updated 2 pages" || env.UpdatedCount != 2 {
		t.Fatalf("unexpected envelope: %#v", env)
	}
	ids, ok := gotBody["page_ids"].([]any)
	if !ok || len(ids) != 2 || ids[0] != float64(3) || ids[1] != float64(7) {
		t.Fatalf("expected numeric page ids, got %#v", gotBody["page_ids"])
	}
	if gotBody["needs_review"] != true {
		t.Fatalf("expected needs_review=true, got %#v", gotBody["needs_review"])
	}
}

func TestMutateNon2xxReturnsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"Invalid sitemap"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "tok")
	_, err := c.Mutate(context.Background(), http.MethodDelete, "/api/sitemaps/4", nil)
	apiErr := AsAPIError(err)
	if apiErr == nil {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "Invalid sitemap" {
		t.Fatalf("unexpected api error: %#v", apiErr)
	}
}

func TestMutateNon2xxWithoutBodyHasEmptyMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestClient(server.URL, "tok")
	_, err := c.Mutate(context.Background(), http.MethodPatch, "/api/emails/1", map[string]any{"enabled": false})
	apiErr := AsAPIError(err)
	if apiErr == nil || apiErr.Message != "" || apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected error: %#v", err)
	}
}

func TestEnvelopeReadsServerID(t *testing.T) {
	var env Envelope
	if err := json.Unmarshal([]byte(`{"success":true,"message":"Email address added successfully","email_id":42}`), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	id, ok := env.ID("email_id")
	if !ok || id != "42" {
		t.Fatalf("expected id 42, got %q ok=%v", id, ok)
	}
	if _, ok := env.ID("page_id"); ok {
		t.Fatalf("expected missing field to report !ok")
	}
}

func TestEnvelopeMissingSuccessIsFailure(t *testing.T) {
	var env Envelope
	if err := json.Unmarshal([]byte(`{"message":"hm"}`), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Success {
		t.Fatalf("expected missing success to decode as false")
	}
}

func TestListPagesSortsNeedsReviewFirst(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sitemaps/9/pages" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"pages":[
			{"id":1,"url":"https://a.test/b","needs_review":false},
			{"id":2,"url":"https://a.test/z","needs_review":true},
			{"id":3,"url":"https://a.test/a","needs_review":false}
		]}`))
	}))
	defer server.Close()

	pages, err := newTestClient(server.URL, "").ListPages(context.Background(), "9")
	if err != nil {
		t.Fatalf("ListPages error: %v", err)
	}
	got := []types.ItemID{pages[0].ID, pages[1].ID, pages[2].ID}
	want := []types.ItemID{"2", "3", "1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order %v, want %v", got, want)
		}
	}
}

func TestListPagesRequiresSitemap(t *testing.T) {
	if _, err := NewWithBaseURL("http://unused", "").ListPages(context.Background(), " "); err == nil {
		t.Fatalf("expected error for empty sitemap id")
	}
}

func TestEmptyTokenOmitsHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header["X-Csrftoken"]; ok {
			t.Errorf("expected no token header")
		}
		_, _ = w.Write([]byte(`{"emails":[{"id":1,"email_address":"a@b.co","enabled":true}]}`))
	}))
	defer server.Close()

	emails, err := newTestClient(server.URL, "").ListEmails(context.Background())
	if err != nil {
		t.Fatalf("ListEmails error: %v", err)
	}
	if len(emails) != 1 || emails[0].EmailAddress != "a@b.co" || !emails[0].Enabled {
		t.Fatalf("unexpected emails: %#v", emails)
	}
}

func TestFileTokenReadsAndTrims(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	token, err := FileToken{Path: path}.Token()
	if err != nil || token != "" {
		t.Fatalf("expected empty token for missing file, got %q err=%v", token, err)
	}
	if err := os.WriteFile(path, []byte("abc123\n"), 0o600); err != nil {
		t.Fatalf("write token: %v", err)
	}
	token, err = FileToken{Path: path}.Token()
	if err != nil || token != "abc123" {
		t.Fatalf("expected abc123, got %q err=%v", token, err)
	}
}

func TestSnapshotLoadsConcurrently(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/api/user/settings":
			_, _ = w.Write([]byte(`{"profile":{"has_pro_subscription":true}}`))
		case "/api/sitemaps":
			_, _ = w.Write([]byte(`{"sitemaps":[{"id":1,"sitemap_url":"https://a.test/sitemap.xml"}]}`))
		case "/api/emails":
			_, _ = w.Write([]byte(`{"emails":[]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	snap, err := newTestClient(server.URL, "tok").Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 requests, got %d", calls.Load())
	}
	if !snap.Settings.Profile.HasProSubscription || len(snap.Sitemaps) != 1 || len(snap.Emails) != 0 {
		t.Fatalf("unexpected snapshot: %#v", snap)
	}
}

func TestSnapshotReturnsFirstError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/emails" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "tok").Snapshot(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusForbidden {
		t.Fatalf("expected wrapped 403, got %v", err)
	}
}

func TestSubmitFeedbackRequiresText(t *testing.T) {
	if _, err := NewWithBaseURL("http://unused", "").SubmitFeedback(context.Background(), FeedbackRequest{}); err == nil {
		t.Fatalf("expected error for empty feedback")
	}
}
