package tools

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/brandon/mailctl/internal/backend"
	"github.com/brandon/mailctl/internal/config"
)

// Backends resolves accounts and assembles their backends
type Backends interface {
	GetAccount(name string) (*config.AccountConfig, error)
	Backend(ctx context.Context, account *config.AccountConfig, register func(r *backend.Registration)) (*backend.Backend, error)
}

// Registry manages MCP tools
type Registry struct {
	backends Backends
	logger   *logrus.Logger
	tools    map[string]Tool
}

// Tool represents an MCP tool
type Tool interface {
	Name() string
	Description() string
	InputSchema() map[string]interface{}
	Execute(ctx context.Context, params map[string]interface{}) (interface{}, error)
}

// NewRegistry creates a new tool registry
func NewRegistry(backends Backends, logger *logrus.Logger) *Registry {
	reg := &Registry{
		backends: backends,
		logger:   logger,
		tools:    make(map[string]Tool),
	}

	// Register all tools
	reg.registerTools()

	return reg
}

// registerTools registers all available tools
func (r *Registry) registerTools() {
	toolList := []Tool{
		NewListFoldersTool(r.backends, r.logger),
		NewSearchEmailsTool(r.backends, r.logger),
		NewGetEmailTool(r.backends, r.logger),
		NewSendEmailTool(r.backends, r.logger),
		NewUpdateFlagsTool(r.backends, r.logger),
		NewListChangesTool(r.backends, r.logger),
	}

	for _, tool := range toolList {
		r.tools[tool.Name()] = tool
		r.logger.WithField("tool", tool.Name()).Debug("Registered tool")
	}

	r.logger.WithField("count", len(r.tools)).Info("Registered tools")
}

// GetTool returns a tool by name
func (r *Registry) GetTool(name string) (Tool, bool) {
	tool, exists := r.tools[name]
	return tool, exists
}

// ListTools returns all registered tools, sorted by name
func (r *Registry) ListTools() []Tool {
	tools := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name() < tools[j].Name() })
	return tools
}

// GetToolDefinitions returns tool definitions for MCP
func (r *Registry) GetToolDefinitions() []map[string]interface{} {
	tools := r.ListTools()
	definitions := make([]map[string]interface{}, 0, len(tools))
	for _, tool := range tools {
		definitions = append(definitions, map[string]interface{}{
			"name":        tool.Name(),
			"description": tool.Description(),
			"inputSchema": tool.InputSchema(),
		})
	}
	return definitions
}

// open resolves the account named by the account_name parameter and
// assembles its backend
func open(ctx context.Context, backends Backends, params map[string]interface{}, register func(r *backend.Registration)) (*config.AccountConfig, *backend.Backend, error) {
	acc, err := backends.GetAccount(stringParam(params, "account_name"))
	if err != nil {
		return nil, nil, err
	}
	b, err := backends.Backend(ctx, acc, register)
	if err != nil {
		return nil, nil, err
	}
	return acc, b, nil
}

func release(b *backend.Backend, logger *logrus.Logger) {
	if err := b.Close(); err != nil {
		logger.WithError(err).Warn("Failed to close backend")
	}
}

func accountParam() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Optional: Account name, default account if omitted",
	}
}

func stringParam(params map[string]interface{}, key string) string {
	s, _ := params[key].(string)
	return strings.TrimSpace(s)
}

func folderParam(params map[string]interface{}) string {
	if folder := stringParam(params, "folder"); folder != "" {
		return folder
	}
	return "INBOX"
}

// intParam accepts JSON numbers and numeric strings
func intParam(params map[string]interface{}, key string, defaultValue int) (int, error) {
	switch v := params[key].(type) {
	case nil:
		return defaultValue, nil
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", key, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("invalid %s: %v", key, v)
	}
}

func boolParam(params map[string]interface{}, key string) bool {
	b, _ := params[key].(bool)
	return b
}

// stringsParam accepts an array of strings or numbers, or a
// comma-separated string
func stringsParam(params map[string]interface{}, key string) []string {
	var out []string
	switch v := params[key].(type) {
	case []interface{}:
		for _, item := range v {
			switch item := item.(type) {
			case string:
				out = append(out, strings.TrimSpace(item))
			case float64:
				out = append(out, strconv.FormatInt(int64(item), 10))
			}
		}
	case string:
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	case float64:
		out = append(out, strconv.FormatInt(int64(v), 10))
	}
	return out
}
