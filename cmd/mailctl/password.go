package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brandon/mailctl/internal/command"
	"github.com/brandon/mailctl/internal/prompt"
)

func newPasswordCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Manage account passwords stored in the system keyring",
	}

	var fromStdin bool
	setCmd := &cobra.Command{
		Use:       "set <imap|smtp>",
		Short:     "Store the IMAP or SMTP password of the account",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"imap", "smtp"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			var err error
			if fromStdin {
				password, err = readLine(cmd.InOrStdin())
			} else {
				password, err = prompt.Password(fmt.Sprintf("%s password", strings.ToUpper(args[0])))
			}
			if err != nil {
				return err
			}
			return run(flags, cmd.OutOrStdout(), nil, &command.PasswordSet{
				Account:  flags.account,
				Protocol: args[0],
				Password: password,
			})
		},
	}
	setCmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read the password from the first line of the standard input")
	cmd.AddCommand(setCmd)

	var yes bool
	deleteCmd := &cobra.Command{
		Use:       "delete <imap|smtp>",
		Short:     "Remove the IMAP or SMTP password of the account",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"imap", "smtp"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var confirmer prompt.Confirmer = prompt.Terminal{}
			if yes {
				confirmer = prompt.Always(true)
			}
			return run(flags, cmd.OutOrStdout(), confirmer, &command.PasswordDelete{Account: flags.account, Protocol: args[0]})
		},
	}
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	cmd.AddCommand(deleteCmd)

	return cmd
}

// readLine returns the first line of r without its line ending
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password from stdin: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", fmt.Errorf("empty password")
	}
	return line, nil
}
