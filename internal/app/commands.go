package app

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"reviewdesk/internal/mutation"
	"reviewdesk/internal/store"
	"reviewdesk/internal/types"
)

const (
	fetchTimeout     = 8 * time.Second
	clipboardTimeout = 2 * time.Second
)

func fetchSitemapsCmd(api ReviewAPI) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		sitemaps, err := api.ListSitemaps(ctx)
		return sitemapsMsg{sitemaps: sitemaps, err: err}
	}
}

func fetchPagesCmd(api ReviewAPI, sitemapID types.ItemID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		pages, err := api.ListPages(ctx, sitemapID)
		return pagesMsg{sitemapID: sitemapID, pages: pages, err: err}
	}
}

func fetchEmailsCmd(api ReviewAPI) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		emails, err := api.ListEmails(ctx)
		return emailsMsg{emails: emails, err: err}
	}
}

// bulkSendCmd runs the request off the update loop. The list is settled
// when bulkSettledMsg comes back.
func bulkSendCmd(bulk *mutation.Bulk, view viewKind, pending *mutation.Pending) tea.Cmd {
	return func() tea.Msg {
		res, err := bulk.Send(context.Background(), pending)
		return bulkSettledMsg{view: view, pending: pending, result: res, err: err}
	}
}

func itemSendCmd(items *mutation.Item, view viewKind, pending *mutation.Pending) tea.Cmd {
	return func() tea.Msg {
		res, err := items.Send(context.Background(), pending)
		return itemSettledMsg{view: view, pending: pending, result: res, err: err}
	}
}

func loadOnboardingCmd(flags *store.Flags) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return onboardingMsg{dismissed: flags.Get(ctx, store.FlagOnboardingDismissed)}
	}
}

func dismissOnboardingCmd(flags *store.Flags) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		flags.Set(ctx, store.FlagOnboardingDismissed, true)
		return nil
	}
}

func copyURLsCmd(service ClipboardService, urls []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), clipboardTimeout)
		defer cancel()
		method, err := service.Copy(ctx, strings.Join(urls, "\n"))
		return clipboardResultMsg{count: len(urls), method: method, err: err}
	}
}
