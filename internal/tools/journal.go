package tools

import (
	"context"
	"errors"
	"io/fs"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/brandon/mailctl/internal/cache"
	"github.com/brandon/mailctl/internal/maildir"
)

// ListChangesTool lists the local changes of the Maildir-for-sync backend
type ListChangesTool struct {
	backends Backends
	logger   *logrus.Logger
}

// NewListChangesTool creates a new list changes tool
func NewListChangesTool(backends Backends, logger *logrus.Logger) *ListChangesTool {
	return &ListChangesTool{
		backends: backends,
		logger:   logger,
	}
}

// Name returns the tool name
func (t *ListChangesTool) Name() string {
	return "list_changes"
}

// Description returns the tool description
func (t *ListChangesTool) Description() string {
	return "List local changes of the synchronized Maildir not yet pushed to the remote backend"
}

// InputSchema returns the JSON schema for tool inputs
func (t *ListChangesTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"account_name": accountParam(),
			"folder": map[string]interface{}{
				"type":        "string",
				"description": "Optional: Filter by folder/mailbox",
			},
			"limit": map[string]interface{}{
				"type":        "integer",
				"description": "Optional: Result limit (default: 100)",
				"minimum":     1,
			},
		},
	}
}

// Execute executes the tool
func (t *ListChangesTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	acc, err := t.backends.GetAccount(stringParam(params, "account_name"))
	if err != nil {
		return nil, err
	}
	limit, err := intParam(params, "limit", 100)
	if err != nil {
		return nil, err
	}

	journal, err := cache.OpenExisting(maildir.JournalPath(acc.SyncDir), t.logger)
	if errors.Is(err, fs.ErrNotExist) {
		return []map[string]interface{}{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer journal.Close()

	filter := cache.ChangeFilter{Account: &acc.Name, Limit: limit}
	if folder := stringParam(params, "folder"); folder != "" {
		filter.Folder = &folder
	}
	changes, err := journal.Changes(ctx, filter)
	if err != nil {
		return nil, err
	}

	// Convert to JSON-serializable format
	result := make([]map[string]interface{}, len(changes))
	for i, c := range changes {
		result[i] = map[string]interface{}{
			"id":         c.ID,
			"folder":     c.Folder,
			"action":     string(c.Action),
			"message_id": c.MessageID,
			"flags":      c.Flags,
			"created_at": c.CreatedAt.Format(time.RFC3339),
		}
	}

	return result, nil
}
