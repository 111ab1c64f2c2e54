package main

import (
	"github.com/spf13/cobra"

	"github.com/brandon/mailctl/internal/backend"
	"github.com/brandon/mailctl/internal/command"
	"github.com/brandon/mailctl/pkg/types"
)

func newFlagCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "flag",
		Aliases: []string{"flags"},
		Short:   "Manage message flags",
	}

	cmd.AddCommand(newFlagChangeCmd(flags, "add", "Add flags to messages", backend.AddFlags))
	cmd.AddCommand(newFlagChangeCmd(flags, "remove", "Remove flags from messages", backend.RemoveFlags))
	cmd.AddCommand(newFlagChangeCmd(flags, "set", "Replace the flags of messages", backend.SetFlags))

	return cmd
}

func newFlagChangeCmd(flags *globalFlags, use, short string, op backend.Operation) *cobra.Command {
	var (
		folder    string
		flagNames []string
	)
	cmd := &cobra.Command{
		Use:   use + " <id>... --flag <flag>",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags, cmd.OutOrStdout(), nil, &command.FlagChange{
				Account: flags.account,
				Folder:  folder,
				IDs:     args,
				Flags:   types.ParseFlags(flagNames),
				Op:      op,
			})
		},
	}
	cmd.Flags().StringVarP(&folder, "folder", "f", "INBOX", "Folder of the messages")
	cmd.Flags().StringSliceVar(&flagNames, "flag", nil, "Flag to change (seen, answered, flagged, deleted, draft or a custom keyword)")
	return cmd
}
