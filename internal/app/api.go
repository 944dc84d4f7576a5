package app

import (
	"context"

	"reviewdesk/internal/mutation"
	"reviewdesk/internal/types"
)

// ReviewAPI is the slice of *client.Client the UI needs.
type ReviewAPI interface {
	ListSitemaps(ctx context.Context) ([]*types.Sitemap, error)
	ListPages(ctx context.Context, sitemapID types.ItemID) ([]*types.Page, error)
	ListEmails(ctx context.Context) ([]*types.EmailPreference, error)
	mutation.Transport
}
