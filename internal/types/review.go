package types

import (
	"sort"
	"time"
)

type ReviewCadence string

const (
	ReviewCadenceDaily   ReviewCadence = "daily"
	ReviewCadenceWeekly  ReviewCadence = "weekly"
	ReviewCadenceMonthly ReviewCadence = "monthly"
)

type Sitemap struct {
	ID             ItemID        `json:"id"`
	URL            string        `json:"sitemap_url"`
	ClientLabel    string        `json:"client_label,omitempty"`
	PagesPerReview int           `json:"pages_per_review"`
	ReviewCadence  ReviewCadence `json:"review_cadence"`
	CreatedAt      time.Time     `json:"created_at"`
}

// DisplayName prefers the client label over the raw sitemap URL.
func (s *Sitemap) DisplayName() string {
	if s == nil {
		return ""
	}
	if s.ClientLabel != "" {
		return s.ClientLabel
	}
	return s.URL
}

type Page struct {
	ID          ItemID     `json:"id"`
	SitemapID   ItemID     `json:"sitemap_id"`
	URL         string     `json:"url"`
	Reviewed    bool       `json:"reviewed"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	NeedsReview bool       `json:"needs_review"`
}

type EmailPreference struct {
	ID           ItemID `json:"id"`
	EmailAddress string `json:"email_address"`
	Enabled      bool   `json:"enabled"`
}

type ProfileSettings struct {
	HasProSubscription bool `json:"has_pro_subscription"`
}

type UserSettings struct {
	Profile ProfileSettings `json:"profile"`
}

// SortPages orders pages that need review first, then by URL. Nil entries
// go last.
func SortPages(pages []*Page) {
	sort.SliceStable(pages, func(i, j int) bool {
		a, b := pages[i], pages[j]
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		if a.NeedsReview != b.NeedsReview {
			return a.NeedsReview
		}
		return a.URL < b.URL
	})
}
