package imap

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/sirupsen/logrus"

	"github.com/brandon/mailctl/internal/config"
)

// Session wraps an authenticated IMAP client connection. It serves every
// storage capability of an account.
type Session struct {
	config  *config.IMAPConfig
	account string
	client  *client.Client
	logger  *logrus.Logger
}

// Dial connects and logs in to the IMAP server of account
func Dial(ctx context.Context, account string, cfg *config.IMAPConfig, password string, logger *logrus.Logger) (*Session, error) {
	s := &Session{
		config:  cfg,
		account: account,
		logger:  logger,
	}
	if err := s.connect(ctx, password); err != nil {
		return nil, err
	}
	return s, nil
}

// connect establishes a connection to the IMAP server
func (s *Session) connect(ctx context.Context, password string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	tlsConfig := &tls.Config{
		ServerName: s.config.Host,
		MinVersion: tls.VersionTLS12,
	}

	var (
		cl  *client.Client
		err error
	)
	switch {
	case s.config.Insecure:
		cl, err = client.Dial(addr)
	case s.config.Port == 143:
		cl, err = dialStartTLS(addr, tlsConfig)
	default:
		cl, err = client.DialTLS(addr, tlsConfig)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to IMAP server: %w", err)
	}

	if err := cl.Login(s.config.Username, password); err != nil {
		s.logger.WithError(err).Error("Failed to login to IMAP server")
		cl.Logout() //nolint:errcheck
		return fmt.Errorf("failed to login to IMAP server: %w", err)
	}

	s.client = cl
	s.logger.WithField("account", s.account).Info("Connected to IMAP server")
	return nil
}

// dialStartTLS connects in plain text then upgrades the connection,
// closing it when the upgrade fails
func dialStartTLS(addr string, tlsConfig *tls.Config) (*client.Client, error) {
	cl, err := client.Dial(addr)
	if err != nil {
		return nil, err
	}
	if err := cl.StartTLS(tlsConfig); err != nil {
		cl.Terminate() //nolint:errcheck
		return nil, fmt.Errorf("STARTTLS failed: %w", err)
	}
	return cl, nil
}

// Close logs out of the IMAP server
func (s *Session) Close() error {
	if s.client == nil {
		return nil
	}
	err := s.client.Logout()
	s.client = nil
	return err
}

// selectFolder selects folder in read-write mode
func (s *Session) selectFolder(folder string) (*imap.MailboxStatus, error) {
	if s.client == nil {
		return nil, fmt.Errorf("IMAP session is closed")
	}
	mbox, err := s.client.Select(folder, false)
	if err != nil {
		return nil, fmt.Errorf("failed to select folder %s: %w", folder, err)
	}
	return mbox, nil
}
