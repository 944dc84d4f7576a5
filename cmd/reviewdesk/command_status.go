package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"reviewdesk/internal/client"
	"reviewdesk/internal/logging"
	"reviewdesk/internal/mutation"
)

func newStatusCommand(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show account plan and list counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cfg, err := env.client()
			if err != nil {
				return err
			}
			snapshot, err := c.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(env.wiring.stdout, "server:   %s\n", cfg.BaseURL())
			printStatus(env.wiring.stdout, snapshot)
			return nil
		},
	}
}

func printStatus(out io.Writer, snapshot *client.Snapshot) {
	plan := "free"
	if snapshot.Settings != nil && snapshot.Settings.Profile.HasProSubscription {
		plan = "pro"
	}
	sitemaps, pages := 0, 0
	for _, sitemap := range snapshot.Sitemaps {
		if sitemap == nil {
			continue
		}
		sitemaps++
		pages += sitemap.PagesPerReview
	}
	emails, enabled := 0, 0
	for _, email := range snapshot.Emails {
		if email == nil {
			continue
		}
		emails++
		if email.Enabled {
			enabled++
		}
	}
	fmt.Fprintf(out, "plan:     %s\n", plan)
	fmt.Fprintf(out, "sitemaps: %d (%d pages per review cycle)\n", sitemaps, pages)
	fmt.Fprintf(out, "emails:   %d (%d enabled)\n", emails, enabled)
}

func newFeedbackCommand(env *commandEnv) *cobra.Command {
	var page string
	cmd := &cobra.Command{
		Use:   "feedback <text...>",
		Short: "Send feedback to the service team",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return errors.New("feedback text is required")
			}
			c, cfg, err := env.client()
			if err != nil {
				return err
			}
			resp, err := c.SubmitFeedback(cmd.Context(), client.FeedbackRequest{Feedback: text, Page: page})
			if err != nil {
				return err
			}
			if !resp.Success {
				env.logger(cfg).Warn("feedback rejected", logging.F("message", resp.Message))
				if resp.Message != "" {
					return errors.New(resp.Message)
				}
				return errors.New("failed to submit feedback")
			}
			message := resp.Message
			if message == "" {
				message = "Thanks for your feedback"
			}
			env.notifier().Notify(message, mutation.SeveritySuccess)
			return nil
		},
	}
	cmd.Flags().StringVar(&page, "page", "cli", "page the feedback refers to")
	return cmd
}
