package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"reviewdesk/internal/config"
	"reviewdesk/internal/mutation"
	"reviewdesk/internal/selection"
	"reviewdesk/internal/types"
)

type listLoader func(ctx context.Context, c commandClient) (*selection.List, error)

func loadSitemapList(ctx context.Context, c commandClient) (*selection.List, error) {
	sitemaps, err := c.ListSitemaps(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sitemaps: %w", err)
	}
	return selection.NewList(selection.SitemapItems(sitemaps)), nil
}

func loadEmailList(ctx context.Context, c commandClient) (*selection.List, error) {
	emails, err := c.ListEmails(ctx)
	if err != nil {
		return nil, fmt.Errorf("load emails: %w", err)
	}
	return selection.NewList(selection.EmailItems(emails)), nil
}

func pageListLoader(sitemapID types.ItemID) listLoader {
	return func(ctx context.Context, c commandClient) (*selection.List, error) {
		pages, err := c.ListPages(ctx, sitemapID)
		if err != nil {
			return nil, fmt.Errorf("load pages: %w", err)
		}
		return selection.NewList(selection.PageItems(pages)), nil
	}
}

// applyItem runs one single-item action against a freshly loaded list so
// the id is checked the same way the UI checks it.
func (e *commandEnv) applyItem(ctx context.Context, load listLoader, req mutation.Request, yes bool) (mutation.Effect, error) {
	c, cfg, err := e.client()
	if err != nil {
		return mutation.Effect{}, err
	}
	list := selection.NewList(nil)
	if req.Action != types.ActionAdd {
		list, err = load(ctx, c)
		if err != nil {
			return mutation.Effect{}, err
		}
	}
	items := mutation.NewItem(c, e.notifier(), mutation.WithLogger(e.logger(cfg)))
	effect, err := items.Apply(ctx, list, req, e.gate(yes))
	if errors.Is(err, mutation.ErrNotListed) {
		return effect, fmt.Errorf("%s %s not found", req.Resource.Noun, req.ID)
	}
	if err != nil {
		return effect, markReported(err)
	}
	if effect.Abandoned {
		fmt.Fprintln(e.wiring.stdout, "cancelled")
	}
	return effect, nil
}

// applyBulk selects ids (or every page with all) and submits one bulk
// request. The CLI always uses the reload policy: nothing is kept locally.
func (e *commandEnv) applyBulk(ctx context.Context, sitemapID types.ItemID, ids []types.ItemID, all bool, action types.Action) error {
	c, cfg, err := e.client()
	if err != nil {
		return err
	}
	list, err := pageListLoader(sitemapID)(ctx, c)
	if err != nil {
		return err
	}
	if all {
		list.SetAll(true)
	}
	for _, id := range ids {
		if !list.Contains(id) {
			return fmt.Errorf("page %s is not in sitemap %s", id, sitemapID)
		}
		if !list.IsSelected(id) {
			list.Toggle(id)
		}
	}
	bulk := mutation.NewBulk(c, e.notifier(),
		mutation.WithLogger(e.logger(cfg)),
		mutation.WithBulkPolicy(config.BulkPolicyReload),
	)
	_, err = bulk.Apply(ctx, list, mutation.Request{Resource: mutation.Pages, Action: action})
	return markReported(err)
}

func newRemoveCommand(env *commandEnv, resource mutation.Resource, action types.Action, load listLoader) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   string(action) + " <id>",
		Short: fmt.Sprintf("%s a %s (asks first)", titleWord(action.Verb()), resource.Noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := env.applyItem(cmd.Context(), load, mutation.Request{
				Resource: resource,
				Action:   action,
				ID:       types.ItemID(args[0]),
			}, yes)
			return err
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
