package selection

import "reviewdesk/internal/types"

func SitemapItems(sitemaps []*types.Sitemap) []Item {
	out := make([]Item, 0, len(sitemaps))
	for _, sitemap := range sitemaps {
		if sitemap == nil {
			continue
		}
		out = append(out, Item{ID: sitemap.ID, Label: sitemap.DisplayName()})
	}
	return out
}

// PageItems labels pages by URL and carries needs_review as the flag.
func PageItems(pages []*types.Page) []Item {
	out := make([]Item, 0, len(pages))
	for _, page := range pages {
		if page == nil {
			continue
		}
		out = append(out, Item{ID: page.ID, Label: page.URL, Flagged: page.NeedsReview})
	}
	return out
}

func EmailItems(emails []*types.EmailPreference) []Item {
	out := make([]Item, 0, len(emails))
	for _, email := range emails {
		if email == nil {
			continue
		}
		out = append(out, Item{ID: email.ID, Label: email.EmailAddress, Enabled: email.Enabled})
	}
	return out
}
