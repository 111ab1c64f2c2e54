package main

import (
	"github.com/spf13/cobra"

	"github.com/brandon/mailctl/internal/command"
)

func newEnvelopeCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "envelope",
		Aliases: []string{"envelopes"},
		Short:   "Manage envelopes",
	}

	list := &command.EnvelopeList{}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List envelopes of a folder, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list.Account = flags.account
			return run(flags, cmd.OutOrStdout(), nil, list)
		},
	}
	listCmd.Flags().StringVarP(&list.Folder, "folder", "f", "INBOX", "Folder to list")
	listCmd.Flags().IntVarP(&list.Page, "page", "p", 1, "Page number, starting at 1")
	listCmd.Flags().IntVarP(&list.PageSize, "page-size", "s", command.DefaultPageSize, "Envelopes per page")
	cmd.AddCommand(listCmd)

	return cmd
}
