package smtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/sirupsen/logrus"

	"github.com/brandon/mailctl/internal/config"
)

// Client wraps an authenticated SMTP client connection
type Client struct {
	config  *config.SMTPConfig
	account string
	client  *smtp.Client
	logger  *logrus.Logger
}

// Dial connects and authenticates to the SMTP server of account. Port 465
// uses implicit TLS, every other port STARTTLS.
func Dial(ctx context.Context, account string, cfg *config.SMTPConfig, password string, logger *logrus.Logger) (*Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	tlsConfig := &tls.Config{
		ServerName: cfg.Host,
		MinVersion: tls.VersionTLS12,
	}

	var (
		cl  *smtp.Client
		err error
	)
	if cfg.Port == 465 {
		cl, err = smtp.DialTLS(addr, tlsConfig)
	} else {
		cl, err = smtp.DialStartTLS(addr, tlsConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SMTP server: %w", err)
	}

	if password != "" {
		auth := sasl.NewPlainClient("", cfg.Username, password)
		if err := cl.Auth(auth); err != nil {
			cl.Close() //nolint:errcheck
			return nil, fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	logger.WithField("account", account).Info("Connected to SMTP server")

	return &Client{
		config:  cfg,
		account: account,
		client:  cl,
		logger:  logger,
	}, nil
}

// SendMessage sends a raw message. The envelope is read from its headers
// and the Bcc header is stripped before transmission.
func (c *Client) SendMessage(ctx context.Context, raw []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.client == nil {
		return fmt.Errorf("SMTP session is closed")
	}

	env, err := ReadEnvelope(raw)
	if err != nil {
		return err
	}
	if env.From == "" {
		env.From = c.config.Username
	}

	if err := c.client.SendMail(env.From, env.Recipients, bytes.NewReader(env.Data)); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"account":    c.account,
		"recipients": len(env.Recipients),
	}).Info("Message sent")
	return nil
}

// Close ends the SMTP session
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	err := c.client.Quit()
	if err != nil {
		c.client.Close() //nolint:errcheck
	}
	c.client = nil
	return err
}
