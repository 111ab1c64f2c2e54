package sendmail

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/brandon/mailctl/internal/config"
)

// DefaultCmd reads recipients from the message headers
const DefaultCmd = "/usr/sbin/sendmail -t -oi"

// Sender pipes raw messages to a sendmail compatible command
type Sender struct {
	path   string
	args   []string
	logger *logrus.Logger
}

// New resolves the configured sendmail command
func New(ctx context.Context, cfg *config.SendmailConfig, logger *logrus.Logger) (*Sender, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cmd := cfg.Cmd
	if strings.TrimSpace(cmd) == "" {
		cmd = DefaultCmd
	}
	fields := strings.Fields(cmd)

	path, err := exec.LookPath(fields[0])
	if err != nil {
		return nil, fmt.Errorf("failed to find sendmail command %s: %w", fields[0], err)
	}

	return &Sender{
		path:   path,
		args:   fields[1:],
		logger: logger,
	}, nil
}

// SendMessage writes raw to the standard input of the command
func (s *Sender) SendMessage(ctx context.Context, raw []byte) error {
	cmd := exec.CommandContext(ctx, s.path, s.args...)
	cmd.Stdin = bytes.NewReader(raw)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("failed to send message with %s: %w: %s", s.path, err, msg)
		}
		return fmt.Errorf("failed to send message with %s: %w", s.path, err)
	}

	s.logger.WithField("cmd", s.path).Info("Message sent")
	return nil
}

// Close is a no-op: every send runs its own process
func (s *Sender) Close() error {
	return nil
}
