package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/brandon/mailctl/internal/mcp"
	"github.com/brandon/mailctl/internal/tools"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the email operations as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, logger, err := load(flags)
			if err != nil {
				return err
			}

			// Set up signal handling for graceful shutdown
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := mcp.NewServer(tools.NewRegistry(manager, logger), version, logger)
			if err := server.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				logger.WithError(err).Error("Server error")
				return err
			}

			logger.Info("Shutting down MCP server")
			return nil
		},
	}
}
