package mutation

import (
	"fmt"
	"net/url"
	"strings"

	"reviewdesk/internal/types"
)

// Resource describes how one kind of list item maps onto the service API.
type Resource struct {
	Name string
	Noun string

	BulkIDsField string
	FlagField    string
	AddField     string
	AddIDField   string

	EmptySelection string
	fallbacks      map[types.Action]string
}

var (
	Pages = Resource{
		Name:           "pages",
		Noun:           "page",
		BulkIDsField:   "page_ids",
		FlagField:      "needs_review",
		EmptySelection: "Please select at least one page",
		fallbacks: map[types.Action]string{
			types.ActionMarkReview:   "Failed to update pages",
			types.ActionUnmarkReview: "Failed to update pages",
		},
	}
	Sitemaps = Resource{
		Name:           "sitemaps",
		Noun:           "sitemap",
		EmptySelection: "Please select at least one sitemap",
		fallbacks: map[types.Action]string{
			types.ActionDelete:  "Failed to delete sitemap",
			types.ActionArchive: "Failed to archive sitemap",
		},
	}
	Emails = Resource{
		Name:           "emails",
		Noun:           "email address",
		AddField:       "email_address",
		AddIDField:     "email_id",
		EmptySelection: "Please select at least one email address",
		fallbacks: map[types.Action]string{
			types.ActionToggle:  "Failed to update email address",
			types.ActionDelete:  "Failed to delete email address",
			types.ActionArchive: "Failed to archive email address",
			types.ActionAdd:     "Failed to add email address",
		},
	}
)

func (r Resource) Fallback(action types.Action) string {
	if msg, ok := r.fallbacks[action]; ok {
		return msg
	}
	return fmt.Sprintf("Failed to %s %s", action.Verb(), r.Noun)
}

// SuccessMessage is used when the service confirms without a message.
func (r Resource) SuccessMessage(action types.Action, count int) string {
	switch action {
	case types.ActionMarkReview:
		return fmt.Sprintf("%d page(s) marked as need to review", count)
	case types.ActionUnmarkReview:
		return fmt.Sprintf("%d page(s) marked as no need to review", count)
	case types.ActionDelete:
		return titleNoun(r.Noun) + " deleted"
	case types.ActionArchive:
		return titleNoun(r.Noun) + " archived"
	case types.ActionAdd:
		return titleNoun(r.Noun) + " added"
	default:
		return titleNoun(r.Noun) + " updated"
	}
}

func (r Resource) ConfirmPrompt(action types.Action, label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return fmt.Sprintf("Are you sure you want to %s this %s?", action.Verb(), r.Noun)
	}
	return fmt.Sprintf("Are you sure you want to %s %s?", action.Verb(), label)
}

func (r Resource) BulkPath() string {
	return "/api/" + r.Name + "/bulk-update"
}

func (r Resource) ItemPath(id types.ItemID) string {
	return "/api/" + r.Name + "/" + url.PathEscape(id.String())
}

func (r Resource) AddPath() string {
	return "/api/" + r.Name + "/add"
}

// BulkKey and the other *Key methods name busy triggers.
func (r Resource) BulkKey() string {
	return "bulk:" + r.Name
}

func (r Resource) AddKey() string {
	return "add:" + r.Name
}

func (r Resource) ItemKey(id types.ItemID) string {
	return "item:" + r.Name + ":" + id.String()
}

func titleNoun(noun string) string {
	if noun == "" {
		return ""
	}
	return strings.ToUpper(noun[:1]) + noun[1:]
}
