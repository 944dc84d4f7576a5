package client

import (
	"encoding/json"

	"reviewdesk/internal/types"
)

type SitemapsResponse struct {
	Sitemaps []*types.Sitemap `json:"sitemaps"`
}

type PagesResponse struct {
	Pages []*types.Page `json:"pages"`
}

type EmailsResponse struct {
	Emails []*types.EmailPreference `json:"emails"`
}

type FeedbackRequest struct {
	Feedback string `json:"feedback"`
	Page     string `json:"page,omitempty"`
}

type Snapshot struct {
	Settings *types.UserSettings
	Sitemaps []*types.Sitemap
	Emails   []*types.EmailPreference
}

// Envelope is the {success, message, ...} body every mutation returns.
// A missing success flag decodes as false.
type Envelope struct {
	Success      bool
	Message      string
	UpdatedCount int

	fields map[string]json.RawMessage
}

func (e *Envelope) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	out := Envelope{fields: fields}
	if raw, ok := fields["success"]; ok {
		if err := json.Unmarshal(raw, &out.Success); err != nil {
			return err
		}
	}
	if raw, ok := fields["message"]; ok {
		_ = json.Unmarshal(raw, &out.Message)
	}
	if raw, ok := fields["updated_count"]; ok {
		_ = json.Unmarshal(raw, &out.UpdatedCount)
	}
	*e = out
	return nil
}

// ID reads a server-assigned identifier from the named field.
func (e *Envelope) ID(field string) (types.ItemID, bool) {
	if e == nil {
		return "", false
	}
	raw, ok := e.fields[field]
	if !ok {
		return "", false
	}
	var id types.ItemID
	if err := json.Unmarshal(raw, &id); err != nil || id == "" {
		return "", false
	}
	return id, true
}
