package main

import (
	"github.com/spf13/cobra"

	"github.com/brandon/mailctl/internal/command"
	"github.com/brandon/mailctl/internal/prompt"
)

func newFolderCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "folder",
		Aliases: []string{"folders", "mailbox", "mbox"},
		Short:   "Manage folders",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags, cmd.OutOrStdout(), nil, &command.FolderList{Account: flags.account})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <folder>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags, cmd.OutOrStdout(), nil, &command.FolderAdd{Account: flags.account, Folder: args[0]})
		},
	})

	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <folder>",
		Short: "Delete a folder",
		Long: `Delete a folder.

All emails from the given folder are definitely deleted. The folder is
also deleted after execution of the command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var confirmer prompt.Confirmer = prompt.Terminal{}
			if yes {
				confirmer = prompt.Always(true)
			}
			return run(flags, cmd.OutOrStdout(), confirmer, &command.FolderDelete{Account: flags.account, Folder: args[0]})
		},
	}
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	cmd.AddCommand(deleteCmd)

	return cmd
}
