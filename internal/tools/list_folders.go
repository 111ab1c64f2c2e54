package tools

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/brandon/mailctl/internal/backend"
)

// ListFoldersTool lists the folders of an account
type ListFoldersTool struct {
	backends Backends
	logger   *logrus.Logger
}

// NewListFoldersTool creates a new list folders tool
func NewListFoldersTool(backends Backends, logger *logrus.Logger) *ListFoldersTool {
	return &ListFoldersTool{
		backends: backends,
		logger:   logger,
	}
}

// Name returns the tool name
func (t *ListFoldersTool) Name() string {
	return "list_folders"
}

// Description returns the tool description
func (t *ListFoldersTool) Description() string {
	return "List available mailboxes/folders of an email account"
}

// InputSchema returns the JSON schema for tool inputs
func (t *ListFoldersTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"account_name": accountParam(),
		},
	}
}

// Execute executes the tool
func (t *ListFoldersTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	acc, b, err := open(ctx, t.backends, params, func(r *backend.Registration) {
		r.Enable(backend.ListFolders)
	})
	if err != nil {
		return nil, err
	}
	defer release(b, t.logger)

	folders, err := b.ListFolders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}

	// Convert to JSON-serializable format
	result := make([]map[string]interface{}, len(folders))
	for i, folder := range folders {
		result[i] = map[string]interface{}{
			"account_name": acc.Name,
			"name":         folder.Name,
			"desc":         folder.Desc,
		}
	}

	return result, nil
}
