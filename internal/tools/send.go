package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/jhillyerd/enmime"
	"github.com/sirupsen/logrus"

	"github.com/brandon/mailctl/internal/backend"
	"github.com/brandon/mailctl/internal/config"
)

// SendEmailTool composes and sends a new email
type SendEmailTool struct {
	backends Backends
	logger   *logrus.Logger
}

// NewSendEmailTool creates a new send email tool
func NewSendEmailTool(backends Backends, logger *logrus.Logger) *SendEmailTool {
	return &SendEmailTool{
		backends: backends,
		logger:   logger,
	}
}

// Name returns the tool name
func (t *SendEmailTool) Name() string {
	return "send_email"
}

// Description returns the tool description
func (t *SendEmailTool) Description() string {
	return "Send a new email with text and HTML bodies, saving a copy to the sent folder when the account enables it"
}

// InputSchema returns the JSON schema for tool inputs
func (t *SendEmailTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"account_name": accountParam(),
			"to": map[string]interface{}{
				"type":        "string",
				"description": "Recipient email address(es) (comma-separated)",
			},
			"cc": map[string]interface{}{
				"type":        "string",
				"description": "Optional: CC recipients (comma-separated)",
			},
			"subject": map[string]interface{}{
				"type":        "string",
				"description": "Email subject",
			},
			"body_text": map[string]interface{}{
				"type":        "string",
				"description": "Optional: Plain text body",
			},
			"body_html": map[string]interface{}{
				"type":        "string",
				"description": "Optional: HTML body",
			},
		},
		"required": []string{"to", "subject"},
	}
}

// Execute executes the tool
func (t *SendEmailTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	acc, err := t.backends.GetAccount(stringParam(params, "account_name"))
	if err != nil {
		return nil, err
	}

	raw, err := compose(acc, params)
	if err != nil {
		return nil, err
	}

	_, addConfigured := acc.BackendKind(backend.AddMessage)
	saveCopy := acc.SaveCopySentMessage() && addConfigured

	b, err := t.backends.Backend(ctx, acc, func(r *backend.Registration) {
		r.Enable(backend.SendMessage)
		if saveCopy {
			r.Enable(backend.AddMessage)
		}
	})
	if err != nil {
		return nil, err
	}
	defer release(b, t.logger)

	result := map[string]interface{}{
		"success":    true,
		"saved_copy": saveCopy,
	}

	err = b.SendAndSaveCopy(ctx, raw, acc.SentFolder, saveCopy)
	var copyErr *backend.SaveCopyError
	if errors.As(err, &copyErr) {
		t.logger.WithError(err).Warn("Email sent but the copy could not be saved")
		result["saved_copy"] = false
		result["warning"] = err.Error()
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to send email: %w", err)
	}

	return result, nil
}

// compose builds a MIME message from the tool parameters
func compose(acc *config.AccountConfig, params map[string]interface{}) ([]byte, error) {
	if acc.Email == "" {
		return nil, fmt.Errorf("account %s has no email address", acc.Name)
	}

	to, err := addressesParam(params, "to")
	if err != nil {
		return nil, err
	}
	if len(to) == 0 {
		return nil, fmt.Errorf("to is required")
	}
	cc, err := addressesParam(params, "cc")
	if err != nil {
		return nil, err
	}

	builder := enmime.Builder().
		From(acc.DisplayName, acc.Email).
		ToAddrs(to).
		Subject(stringParam(params, "subject"))
	if len(cc) > 0 {
		builder = builder.CCAddrs(cc)
	}
	if text := stringParam(params, "body_text"); text != "" {
		builder = builder.Text([]byte(text))
	}
	if html := stringParam(params, "body_html"); html != "" {
		builder = builder.HTML([]byte(html))
	}

	part, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build email: %w", err)
	}
	var buf bytes.Buffer
	if err := part.Encode(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode email: %w", err)
	}
	return buf.Bytes(), nil
}

func addressesParam(params map[string]interface{}, key string) ([]mail.Address, error) {
	list := stringParam(params, key)
	if list == "" {
		return nil, nil
	}
	parsed, err := mail.ParseAddressList(list)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	out := make([]mail.Address, len(parsed))
	for i, a := range parsed {
		out[i] = *a
	}
	return out, nil
}
