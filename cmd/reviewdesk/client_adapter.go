package main

import (
	"context"

	"reviewdesk/internal/app"
	"reviewdesk/internal/client"
	"reviewdesk/internal/config"
	"reviewdesk/internal/types"
)

type commandClient interface {
	app.ReviewAPI
	UserSettings(ctx context.Context) (*types.UserSettings, error)
	SubmitFeedback(ctx context.Context, req client.FeedbackRequest) (*client.Envelope, error)
	Snapshot(ctx context.Context) (*client.Snapshot, error)
}

type clientFactory func(cfg config.CoreConfig) (commandClient, error)

func newReviewClient(cfg config.CoreConfig) (commandClient, error) {
	c, err := client.New(cfg)
	if err != nil {
		return nil, err
	}
	return c, nil
}
