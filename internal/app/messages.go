package app

import (
	"reviewdesk/internal/mutation"
	"reviewdesk/internal/types"
)

type sitemapsMsg struct {
	sitemaps []*types.Sitemap
	err      error
}

type pagesMsg struct {
	sitemapID types.ItemID
	pages     []*types.Page
	err       error
}

type emailsMsg struct {
	emails []*types.EmailPreference
	err    error
}

type bulkSettledMsg struct {
	view    viewKind
	pending *mutation.Pending
	result  *mutation.Result
	err     error
}

type itemSettledMsg struct {
	view    viewKind
	pending *mutation.Pending
	result  *mutation.Result
	err     error
}

type onboardingMsg struct {
	dismissed bool
}

type clipboardResultMsg struct {
	count  int
	method clipboardMethod
	err    error
}
