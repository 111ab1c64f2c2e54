package tools

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/brandon/mailctl/internal/backend"
	"github.com/brandon/mailctl/pkg/types"
)

// UpdateFlagsTool adds, removes or replaces message flags
type UpdateFlagsTool struct {
	backends Backends
	logger   *logrus.Logger
}

// NewUpdateFlagsTool creates a new update flags tool
func NewUpdateFlagsTool(backends Backends, logger *logrus.Logger) *UpdateFlagsTool {
	return &UpdateFlagsTool{
		backends: backends,
		logger:   logger,
	}
}

// Name returns the tool name
func (t *UpdateFlagsTool) Name() string {
	return "update_flags"
}

// Description returns the tool description
func (t *UpdateFlagsTool) Description() string {
	return "Add, remove or set flags (seen, answered, flagged, deleted, draft) of emails"
}

// InputSchema returns the JSON schema for tool inputs
func (t *UpdateFlagsTool) InputSchema() map[string]interface{} {
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
			"action": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"add", "remove", "set"},
				"description": "How flags are applied",
			},
			"flags": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Flags to apply",
			},
		},
		"required": []string{"email_ids", "action"},
	}
}

// Execute executes the tool
func (t *UpdateFlagsTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	ids := stringsParam(params, "email_ids")
	if len(ids) == 0 {
		return nil, fmt.Errorf("email_ids is required")
	}
	flags := types.ParseFlags(stringsParam(params, "flags"))

	var op backend.Operation
	switch action := stringParam(params, "action"); action {
	case "add":
		op = backend.AddFlags
	case "remove":
		op = backend.RemoveFlags
	case "set":
		op = backend.SetFlags
	default:
		return nil, fmt.Errorf("invalid action: %q", action)
	}

	_, b, err := open(ctx, t.backends, params, func(r *backend.Registration) {
		r.Enable(op)
	})
	if err != nil {
		return nil, err
	}
	defer release(b, t.logger)

	folder := folderParam(params)
	switch op {
	case backend.AddFlags:
		err = b.AddFlags(ctx, folder, ids, flags)
	case backend.RemoveFlags:
		err = b.RemoveFlags(ctx, folder, ids, flags)
	default:
		err = b.SetFlags(ctx, folder, ids, flags)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update flags: %w", err)
	}

	return map[string]interface{}{
		"success":   true,
		"email_ids": ids,
		"flags":     flags,
	}, nil
}
