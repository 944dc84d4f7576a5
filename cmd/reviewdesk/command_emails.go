package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reviewdesk/internal/mutation"
	"reviewdesk/internal/types"
)

func newEmailsCommand(env *commandEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emails",
		Short: "Manage review notification addresses",
	}
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notification addresses",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := env.client()
			if err != nil {
				return err
			}
			emails, err := c.ListEmails(cmd.Context())
			if err != nil {
				return err
			}
			printEmails(env.wiring.stdout, emails)
			return nil
		},
	}
	add := &cobra.Command{
		Use:   "add <address>",
		Short: "Add a notification address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			effect, err := env.applyItem(cmd.Context(), loadEmailList, mutation.Request{
				Resource: mutation.Emails,
				Action:   types.ActionAdd,
				Value:    args[0],
			}, false)
			if err != nil {
				return err
			}
			if effect.Appended != "" {
				fmt.Fprintf(env.wiring.stdout, "id: %s\n", effect.Appended)
			}
			return nil
		},
	}
	cmd.AddCommand(
		list,
		add,
		newEmailToggleCommand(env, "enable", true),
		newEmailToggleCommand(env, "disable", false),
		newRemoveCommand(env, mutation.Emails, types.ActionDelete, loadEmailList),
	)
	return cmd
}

func newEmailToggleCommand(env *commandEnv, use string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: titleWord(use) + " notifications for an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := env.applyItem(cmd.Context(), loadEmailList, mutation.Request{
				Resource: mutation.Emails,
				Action:   types.ActionToggle,
				ID:       types.ItemID(args[0]),
				Enabled:  enabled,
			}, false)
			return err
		},
	}
}
