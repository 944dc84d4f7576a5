package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"reviewdesk/internal/config"
	"reviewdesk/internal/types"
)

const (
	defaultBaseURL     = "http://127.0.0.1:8000"
	defaultTokenHeader = "X-CSRFToken"
)

// TokenSource yields the anti-forgery token attached to every request.
type TokenSource interface {
	Token() (string, error)
}

// FileToken reads the token from a file on every call so a token refreshed
// on disk is picked up without restarting. A missing file yields "".
type FileToken struct {
	Path string
}

func (f FileToken) Token() (string, error) {
	if strings.TrimSpace(f.Path) == "" {
		return "", nil
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

type StaticToken string

func (s StaticToken) Token() (string, error) {
	return strings.TrimSpace(string(s)), nil
}

type Client struct {
	baseURL     string
	tokenHeader string
	tokens      TokenSource
	http        *http.Client
}

func New(cfg config.CoreConfig) (*Client, error) {
	tokenPath, err := cfg.ResolveTokenPath()
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:     cfg.BaseURL(),
		tokenHeader: cfg.TokenHeader(),
		tokens:      FileToken{Path: tokenPath},
		http: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}, nil
}

func NewWithBaseURL(baseURL, token string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:     baseURL,
		tokenHeader: defaultTokenHeader,
		tokens:      StaticToken(token),
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) ListSitemaps(ctx context.Context) ([]*types.Sitemap, error) {
	var resp SitemapsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/sitemaps", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sitemaps, nil
}

// ListPages returns the pages of a sitemap, needs-review first.
func (c *Client) ListPages(ctx context.Context, sitemapID types.ItemID) ([]*types.Page, error) {
	if strings.TrimSpace(sitemapID.String()) == "" {
		return nil, errors.New("sitemap id is required")
	}
	var resp PagesResponse
	path := fmt.Sprintf("/api/sitemaps/%s/pages", url.PathEscape(sitemapID.String()))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	types.SortPages(resp.Pages)
	return resp.Pages, nil
}

func (c *Client) ListEmails(ctx context.Context) ([]*types.EmailPreference, error) {
	var resp EmailsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/emails", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Emails, nil
}

func (c *Client) UserSettings(ctx context.Context) (*types.UserSettings, error) {
	var resp types.UserSettings
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/settings", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SubmitFeedback(ctx context.Context, req FeedbackRequest) (*Envelope, error) {
	if strings.TrimSpace(req.Feedback) == "" {
		return nil, errors.New("feedback is required")
	}
	return c.Mutate(ctx, http.MethodPost, "/api/submit-feedback", req)
}

// Snapshot loads the account overview concurrently. The first failure
// cancels the remaining requests.
func (c *Client) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		settings, err := c.UserSettings(gctx)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		snap.Settings = settings
		return nil
	})
	group.Go(func() error {
		sitemaps, err := c.ListSitemaps(gctx)
		if err != nil {
			return fmt.Errorf("load sitemaps: %w", err)
		}
		snap.Sitemaps = sitemaps
		return nil
	})
	group.Go(func() error {
		emails, err := c.ListEmails(gctx)
		if err != nil {
			return fmt.Errorf("load emails: %w", err)
		}
		snap.Emails = emails
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Mutate issues one state-changing request and decodes the service's
// {success, message, ...} envelope. A non-2xx status is returned as
// *APIError; success=false is left for the caller to interpret.
func (c *Client) Mutate(ctx context.Context, method, path string, body any) (*Envelope, error) {
	var env Envelope
	if err := c.doJSON(ctx, method, path, body, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.attachToken(req); err != nil {
		return err
	}

	httpClient := c.http
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) attachToken(req *http.Request) error {
	if c.tokens == nil {
		return nil
	}
	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("read request token: %w", err)
	}
	if token == "" {
		return nil
	}
	header := c.tokenHeader
	if header == "" {
		header = defaultTokenHeader
	}
	req.Header.Set(header, token)
	return nil
}

func decodeAPIError(resp *http.Response) error {
	type errorPayload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	var payload errorPayload
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	switch {
	case payload.Message != "":
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Message}
	case payload.Error != "":
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	return &APIError{StatusCode: resp.StatusCode}
}

// APIError is a non-2xx response. Message is empty when the body carried
// no message the operator could act on.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message == "" {
		return fmt.Sprintf("api error (%d): %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
