package main

import (
	"github.com/spf13/cobra"

	"reviewdesk/internal/mutation"
	"reviewdesk/internal/types"
)

func newSitemapsCommand(env *commandEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitemaps",
		Short: "List, delete or archive sitemaps",
	}
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List sitemaps",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := env.client()
			if err != nil {
				return err
			}
			sitemaps, err := c.ListSitemaps(cmd.Context())
			if err != nil {
				return err
			}
			printSitemaps(env.wiring.stdout, sitemaps)
			return nil
		},
	}
	cmd.AddCommand(
		list,
		newRemoveCommand(env, mutation.Sitemaps, types.ActionDelete, loadSitemapList),
		newRemoveCommand(env, mutation.Sitemaps, types.ActionArchive, loadSitemapList),
	)
	return cmd
}
