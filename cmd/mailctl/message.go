package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/brandon/mailctl/internal/command"
)

func newMessageCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "message",
		Aliases: []string{"messages", "msg"},
		Short:   "Manage messages",
	}

	read := &command.MessageRead{}
	readCmd := &cobra.Command{
		Use:   "read <id>...",
		Short: "Read messages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			read.Account = flags.account
			read.IDs = args
			return run(flags, cmd.OutOrStdout(), nil, read)
		},
	}
	readCmd.Flags().StringVarP(&read.Folder, "folder", "f", "INBOX", "Folder of the messages")
	readCmd.Flags().BoolVarP(&read.Preview, "preview", "p", false, "Read without marking messages as seen")
	readCmd.Flags().BoolVar(&read.Raw, "raw", false, "Print raw messages")
	cmd.AddCommand(readCmd)

	var saveFolder string
	saveCmd := &cobra.Command{
		Use:   "save [file]",
		Short: "Save a raw message to a folder",
		Long:  "Save a raw message, read from the given file or the standard input, to a folder.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readRaw(cmd, args)
			if err != nil {
				return err
			}
			return run(flags, cmd.OutOrStdout(), nil, &command.MessageSave{Account: flags.account, Folder: saveFolder, Raw: raw})
		},
	}
	saveCmd.Flags().StringVarP(&saveFolder, "folder", "f", "INBOX", "Target folder")
	cmd.AddCommand(saveCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "send [file]",
		Short: "Send a raw message",
		Long: `Send a raw message, read from the given file or the standard input.

A copy is saved to the sent folder when the account enables it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readRaw(cmd, args)
			if err != nil {
				return err
			}
			return run(flags, cmd.OutOrStdout(), nil, &command.MessageSend{Account: flags.account, Raw: raw})
		},
	})

	return cmd
}

// readRaw reads a message from the file argument or the standard input
func readRaw(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 1 {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read message: %w", err)
		}
		return raw, nil
	}
	raw, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("failed to read message from stdin: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty message")
	}
	return raw, nil
}
