package main

import (
	"github.com/spf13/cobra"

	"github.com/brandon/mailctl/internal/command"
	"github.com/brandon/mailctl/internal/prompt"
)

func newJournalCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect local changes of the synchronized Maildir",
	}

	list := &command.JournalList{}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List changes not yet pushed to the remote backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list.Account = flags.account
			return run(flags, cmd.OutOrStdout(), nil, list)
		},
	}
	listCmd.Flags().StringVarP(&list.Folder, "folder", "f", "", "Only list changes of this folder")
	listCmd.Flags().IntVarP(&list.Limit, "limit", "l", 0, "Maximum number of changes (0 for all)")
	cmd.AddCommand(listCmd)

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop every pending change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var confirmer prompt.Confirmer = prompt.Terminal{}
			if yes {
				confirmer = prompt.Always(true)
			}
			return run(flags, cmd.OutOrStdout(), confirmer, &command.JournalClear{Account: flags.account})
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	cmd.AddCommand(clearCmd)

	return cmd
}
