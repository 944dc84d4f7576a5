package main

import (
	"github.com/spf13/cobra"

	"reviewdesk/internal/types"
)

func newPagesCommand(env *commandEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pages",
		Short: "List pages of a sitemap and set their review flag",
	}
	list := &cobra.Command{
		Use:     "list <sitemap-id>",
		Aliases: []string{"ls"},
		Short:   "List pages, those needing review first",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := env.client()
			if err != nil {
				return err
			}
			pages, err := c.ListPages(cmd.Context(), types.ItemID(args[0]))
			if err != nil {
				return err
			}
			printPages(env.wiring.stdout, pages)
			return nil
		},
	}
	cmd.AddCommand(
		list,
		newPagesBulkCommand(env, "mark", "Mark pages as needing review", types.ActionMarkReview),
		newPagesBulkCommand(env, "unmark", "Clear the needs-review flag", types.ActionUnmarkReview),
	)
	return cmd
}

func newPagesBulkCommand(env *commandEnv, use, short string, action types.Action) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   use + " <sitemap-id> [page-id...]",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.applyBulk(cmd.Context(), types.ItemID(args[0]), parseIDs(args[1:]), all, action)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "apply to every page of the sitemap")
	return cmd
}
