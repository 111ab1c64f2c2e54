package tools

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jhillyerd/enmime"
	"github.com/sirupsen/logrus"

	"github.com/brandon/mailctl/internal/backend"
)

// GetEmailTool reads full messages by id
type GetEmailTool struct {
	backends Backends
	logger   *logrus.Logger
}

// NewGetEmailTool creates a new get email tool
func NewGetEmailTool(backends Backends, logger *logrus.Logger) *GetEmailTool {
	return &GetEmailTool{
		backends: backends,
		logger:   logger,
	}
}

// Name returns the tool name
func (t *GetEmailTool) Name() string {
	return "get_email"
}

// Description returns the tool description
func (t *GetEmailTool) Description() string {
	return "Retrieve full emails by ID. Messages are marked as seen unless preview is set."
}

// InputSchema returns the JSON schema for tool inputs
func (t *GetEmailTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"account_name": accountParam(),
			"folder": map[string]interface{}{
				"type":        "string",
				"description": "Optional: Folder/mailbox (default: INBOX)",
			},
			"email_ids": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Email IDs (from search results)",
			},
			"preview": map[string]interface{}{
				"type":        "boolean",
				"description": "Optional: Do not mark the emails as seen",
			},
		},
		"required": []string{"email_ids"},
	}
}

// Execute executes the tool
func (t *GetEmailTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	ids := stringsParam(params, "email_ids")
	if len(ids) == 0 {
		return nil, fmt.Errorf("email_ids is required")
	}
	preview := boolParam(params, "preview")

	_, b, err := open(ctx, t.backends, params, func(r *backend.Registration) {
		if preview {
			r.Enable(backend.PeekMessages)
			return
		}
		r.EnableGetMessages()
	})
	if err != nil {
		return nil, err
	}
	defer release(b, t.logger)

	folder := folderParam(params)
	read := b.GetMessages
	if preview {
		read = b.PeekMessages
	}
	msgs, err := read(ctx, folder, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get emails: %w", err)
	}

	// Convert to JSON-serializable format
	result := make([]map[string]interface{}, 0, len(msgs))
	for _, msg := range msgs {
		env, err := enmime.ReadEnvelope(bytes.NewReader(msg.Raw))
		if err != nil {
			return nil, fmt.Errorf("failed to parse email %s: %w", msg.ID, err)
		}

		attachments := make([]string, 0, len(env.Attachments))
		for _, a := range env.Attachments {
			attachments = append(attachments, a.FileName)
		}

		result = append(result, map[string]interface{}{
			"id":          msg.ID,
			"folder":      msg.Folder,
			"message_id":  env.GetHeader("Message-Id"),
			"subject":     env.GetHeader("Subject"),
			"from":        env.GetHeader("From"),
			"to":          env.GetHeader("To"),
			"cc":          env.GetHeader("Cc"),
			"date":        env.GetHeader("Date"),
			"body_text":   env.Text,
			"body_html":   env.HTML,
			"attachments": attachments,
		})
	}

	return result, nil
}
