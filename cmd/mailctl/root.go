package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/brandon/mailctl/internal/command"
	"github.com/brandon/mailctl/internal/config"
	"github.com/brandon/mailctl/internal/credential"
	"github.com/brandon/mailctl/internal/email"
	"github.com/brandon/mailctl/internal/printer"
	"github.com/brandon/mailctl/internal/prompt"
)

type globalFlags struct {
	configPath string
	account    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "mailctl",
		Short: "Manage emails from the command line",
		Long: `mailctl manages the emails of your accounts from the command line.

Each operation (listing folders, reading, saving, sending messages,
changing flags) is served by the backend configured for it: IMAP,
Maildir, the local Maildir used for synchronization, SMTP or sendmail.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(`{{printf "mailctl version %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", config.DefaultConfigPath(), "Path of the configuration file")
	rootCmd.PersistentFlags().StringVarP(&flags.account, "account", "a", "", "Name of the account to use (default account if empty)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newFolderCmd(flags))
	rootCmd.AddCommand(newEnvelopeCmd(flags))
	rootCmd.AddCommand(newFlagCmd(flags))
	rootCmd.AddCommand(newMessageCmd(flags))
	rootCmd.AddCommand(newAttachmentCmd(flags))
	rootCmd.AddCommand(newJournalCmd(flags))
	rootCmd.AddCommand(newPasswordCmd(flags))
	rootCmd.AddCommand(newServeCmd(flags))

	return rootCmd
}

// executable is implemented by every command of internal/command
type executable interface {
	Execute(ctx context.Context, env *command.Env) error
}

// load reads the configuration and sets up logging and the email manager
func load(flags *globalFlags) (*email.Manager, *logrus.Logger, error) {
	// Set up logging
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	// Load configuration
	cfg, err := config.LoadConfig(flags.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Set log level
	levelName := cfg.LogLevel
	if flags.logLevel != "" {
		levelName = flags.logLevel
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	manager, err := email.NewManager(cfg, logger, credential.System().Get)
	if err != nil {
		return nil, nil, err
	}
	return manager, logger, nil
}

// run executes cmd with interrupt handling
func run(flags *globalFlags, out io.Writer, confirmer prompt.Confirmer, cmd executable) error {
	manager, logger, err := load(flags)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := &command.Env{
		Backends:  manager,
		Printer:   printer.New(out, os.Stderr),
		Confirmer: confirmer,
		Secrets:   credential.System(),
		Logger:    logger,
	}
	return cmd.Execute(ctx, env)
}
