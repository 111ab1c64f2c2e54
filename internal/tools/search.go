package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/brandon/mailctl/internal/backend"
	"github.com/brandon/mailctl/pkg/types"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// SearchEmailsTool lists a page of envelopes, optionally filtered by
// sender or subject
type SearchEmailsTool struct {
	backends Backends
	logger   *logrus.Logger
}

// NewSearchEmailsTool creates a new search emails tool
func NewSearchEmailsTool(backends Backends, logger *logrus.Logger) *SearchEmailsTool {
	return &SearchEmailsTool{
		backends: backends,
		logger:   logger,
	}
}

// Name returns the tool name
func (t *SearchEmailsTool) Name() string {
	return "search_emails"
}

// Description returns the tool description
func (t *SearchEmailsTool) Description() string {
	return "List envelopes of a folder, newest first, with optional sender and subject filters applied to the page"
}

// InputSchema returns the JSON schema for tool inputs
func (t *SearchEmailsTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"account_name": accountParam(),
			"folder": map[string]interface{}{
				"type":        "string",
				"description": "Optional: Folder/mailbox (default: INBOX)",
			},
			"page": map[string]interface{}{
				"type":        "integer",
				"description": "Optional: Page number, starting at 1",
				"minimum":     1,
			},
			"page_size": map[string]interface{}{
				"type":        "integer",
				"description": "Optional: Envelopes per page (default: 20, max: 200)",
				"minimum":     1,
				"maximum":     maxPageSize,
			},
			"sender": map[string]interface{}{
				"type":        "string",
				"description": "Optional: Filter by sender email/name",
			},
			"subject": map[string]interface{}{
				"type":        "string",
				"description": "Optional: Filter by subject (substring match)",
			},
		},
	}
}

// Execute executes the tool
func (t *SearchEmailsTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	page, err := intParam(params, "page", 1)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		return nil, fmt.Errorf("invalid page: %d", page)
	}
	pageSize, err := intParam(params, "page_size", defaultPageSize)
	if err != nil {
		return nil, err
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	_, b, err := open(ctx, t.backends, params, func(r *backend.Registration) {
		r.Enable(backend.ListEnvelopes)
	})
	if err != nil {
		return nil, err
	}
	defer release(b, t.logger)

	folder := folderParam(params)
	envelopes, err := b.ListEnvelopes(ctx, folder, page-1, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list envelopes: %w", err)
	}

	sender := strings.ToLower(stringParam(params, "sender"))
	subject := strings.ToLower(stringParam(params, "subject"))

	// Convert to JSON-serializable format
	emailList := make([]map[string]interface{}, 0, len(envelopes))
	for _, e := range envelopes {
		if !matches(e, sender, subject) {
			continue
		}
		item := map[string]interface{}{
			"id":           e.ID,
			"folder":       folder,
			"message_id":   e.MessageID,
			"subject":      e.Subject,
			"sender_name":  e.SenderName,
			"sender_email": e.SenderEmail,
			"recipients":   e.Recipients,
			"flags":        e.Flags,
		}
		if !e.Date.IsZero() {
			item["date"] = e.Date.Format(time.RFC3339)
		}
		emailList = append(emailList, item)
	}

	return emailList, nil
}

func matches(e types.Envelope, sender, subject string) bool {
	if sender != "" &&
		!strings.Contains(strings.ToLower(e.SenderEmail), sender) &&
		!strings.Contains(strings.ToLower(e.SenderName), sender) {
		return false
	}
	if subject != "" && !strings.Contains(strings.ToLower(e.Subject), subject) {
		return false
	}
	return true
}
