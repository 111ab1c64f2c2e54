package main

import (
	"github.com/spf13/cobra"

	"github.com/brandon/mailctl/internal/command"
)

func newAttachmentCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "attachment",
		Aliases: []string{"attachments"},
		Short:   "Manage attachments",
	}

	var folder string
	downloadCmd := &cobra.Command{
		Use:   "download <id>...",
		Short: "Download all attachments of messages",
		Long: `Download all attachments of the given messages to the downloads
directory of the account.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags, cmd.OutOrStdout(), nil, &command.AttachmentDownload{
				Account: flags.account,
				Folder:  folder,
				IDs:     args,
			})
		},
	}
	downloadCmd.Flags().StringVarP(&folder, "folder", "f", "INBOX", "Folder of the messages")
	cmd.AddCommand(downloadCmd)

	return cmd
}
