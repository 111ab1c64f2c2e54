package tools

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jhillyerd/enmime"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandon/mailctl/internal/backend"
	"github.com/brandon/mailctl/internal/config"
	"github.com/brandon/mailctl/internal/email"
	"github.com/brandon/mailctl/pkg/types"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestStringsParam(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  []string
	}{
		{"missing", nil, nil},
		{"array", []interface{}{"a", " b ", 3.0}, []string{"a", "b", "3"}},
		{"comma separated", "1, 2,,3", []string{"1", "2", "3"}},
		{"number", 12.0, []string{"12"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := map[string]interface{}{}
			if tt.value != nil {
				params["ids"] = tt.value
			}
			assert.Equal(t, tt.want, stringsParam(params, "ids"))
		})
	}
}

func TestIntParam(t *testing.T) {
	n, err := intParam(map[string]interface{}{}, "page", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = intParam(map[string]interface{}{"page": 3.0}, "page", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = intParam(map[string]interface{}{"page": "4"}, "page", 1)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	_, err = intParam(map[string]interface{}{"page": "four"}, "page", 1)
	assert.Error(t, err)
	_, err = intParam(map[string]interface{}{"page": true}, "page", 1)
	assert.Error(t, err)
}

func TestFolderParam(t *testing.T) {
	assert.Equal(t, "INBOX", folderParam(map[string]interface{}{}))
	assert.Equal(t, "INBOX", folderParam(map[string]interface{}{"folder": "  "}))
	assert.Equal(t, "Sent", folderParam(map[string]interface{}{"folder": "Sent"}))
}

func TestMatches(t *testing.T) {
	e := types.Envelope{Subject: "Quarterly Report", SenderName: "Alice", SenderEmail: "alice@example.com"}

	assert.True(t, matches(e, "", ""))
	assert.True(t, matches(e, "alice", ""))
	assert.True(t, matches(e, "example.com", "report"))
	assert.False(t, matches(e, "bob", ""))
	assert.False(t, matches(e, "", "invoice"))
}

func TestCompose(t *testing.T) {
	acc := &config.AccountConfig{Name: "work", Email: "me@example.com", DisplayName: "Me"}

	raw, err := compose(acc, map[string]interface{}{
		"to":        "Bob <bob@example.com>, carol@example.com",
		"cc":        "dave@example.com",
		"subject":   "Lunch plans",
		"body_text": "Noon?",
	})
	require.NoError(t, err)

	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "Lunch plans", env.GetHeader("Subject"))
	assert.Contains(t, env.GetHeader("From"), "me@example.com")
	assert.Contains(t, env.GetHeader("To"), "bob@example.com")
	assert.Contains(t, env.GetHeader("To"), "carol@example.com")
	assert.Contains(t, env.GetHeader("Cc"), "dave@example.com")
	assert.Equal(t, "Noon?", env.Text)
}

func TestComposeErrors(t *testing.T) {
	acc := &config.AccountConfig{Name: "work", Email: "me@example.com"}

	_, err := compose(acc, map[string]interface{}{"subject": "x"})
	assert.Error(t, err)

	_, err = compose(acc, map[string]interface{}{"to": "not an address", "subject": "x"})
	assert.Error(t, err)

	_, err = compose(&config.AccountConfig{Name: "anon"}, map[string]interface{}{"to": "bob@example.com"})
	assert.Error(t, err)
}

func TestRegistryTools(t *testing.T) {
	manager, err := email.NewManager(&config.Config{Accounts: []config.AccountConfig{{Name: "a"}}}, testLogger(), nil)
	require.NoError(t, err)
	reg := NewRegistry(manager, testLogger())

	var names []string
	for _, tool := range reg.ListTools() {
		names = append(names, tool.Name())
	}
	assert.Equal(t, []string{"get_email", "list_changes", "list_folders", "search_emails", "send_email", "update_flags"}, names)

	defs := reg.GetToolDefinitions()
	require.Len(t, defs, len(names))
	assert.Equal(t, "get_email", defs[0]["name"])
	assert.NotNil(t, defs[0]["inputSchema"])

	_, ok := reg.GetTool("delete_everything")
	assert.False(t, ok)
}

func call(t *testing.T, reg *Registry, name string, params map[string]interface{}) interface{} {
	t.Helper()
	tool, ok := reg.GetTool(name)
	require.True(t, ok, name)
	out, err := tool.Execute(context.Background(), params)
	require.NoError(t, err, name)
	return out
}

func TestToolsOnSyncedMaildir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	ctx := context.Background()
	dir := t.TempDir()
	out := filepath.Join(dir, "sent.eml")
	script := filepath.Join(dir, "fake-sendmail")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\ncat > \"$1\"\n"), 0755))

	manager, err := email.NewManager(&config.Config{Accounts: []config.AccountConfig{{
		Name:       "local",
		Email:      "me@example.com",
		Backend:    "sync",
		Sender:     "sendmail",
		SentFolder: "Sent",
		SyncDir:    filepath.Join(dir, "sync"),
		Sendmail:   config.SendmailConfig{Cmd: script + " " + out},
	}}}, testLogger(), nil)
	require.NoError(t, err)

	acc, err := manager.GetAccount("")
	require.NoError(t, err)
	b, err := manager.Backend(ctx, acc, func(r *backend.Registration) {
		r.Enable(backend.AddFolder)
	})
	require.NoError(t, err)
	require.NoError(t, b.AddFolder(ctx, "Sent"))
	require.NoError(t, b.Close())

	reg := NewRegistry(manager, testLogger())

	folders := call(t, reg, "list_folders", map[string]interface{}{}).([]map[string]interface{})
	require.Len(t, folders, 2)
	assert.Equal(t, "Sent", folders[1]["name"])
	assert.Equal(t, "local", folders[1]["account_name"])

	sent := call(t, reg, "send_email", map[string]interface{}{
		"to":        "bob@example.com",
		"subject":   "Lunch plans",
		"body_text": "Noon?",
	}).(map[string]interface{})
	assert.Equal(t, true, sent["success"])
	assert.Equal(t, true, sent["saved_copy"])

	delivered, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(delivered), "Lunch plans")

	found := call(t, reg, "search_emails", map[string]interface{}{"folder": "Sent", "subject": "lunch"}).([]map[string]interface{})
	require.Len(t, found, 1)
	id := found[0]["id"].(string)
	assert.Equal(t, "me@example.com", found[0]["sender_email"])

	none := call(t, reg, "search_emails", map[string]interface{}{"folder": "Sent", "sender": "carol"}).([]map[string]interface{})
	assert.Empty(t, none)

	got := call(t, reg, "get_email", map[string]interface{}{
		"folder":    "Sent",
		"email_ids": []interface{}{id},
		"preview":   true,
	}).([]map[string]interface{})
	require.Len(t, got, 1)
	assert.Equal(t, "Lunch plans", got[0]["subject"])
	assert.Equal(t, "Noon?", got[0]["body_text"])

	updated := call(t, reg, "update_flags", map[string]interface{}{
		"folder":    "Sent",
		"email_ids": id,
		"action":    "add",
		"flags":     []interface{}{"flagged"},
	}).(map[string]interface{})
	assert.Equal(t, true, updated["success"])

	changes := call(t, reg, "list_changes", map[string]interface{}{"folder": "Sent"}).([]map[string]interface{})
	require.Len(t, changes, 3)
	assert.Equal(t, "add_folder", changes[0]["action"])
	assert.Equal(t, "add_message", changes[1]["action"])
	assert.Equal(t, "add_flags", changes[2]["action"])
	assert.Equal(t, id, changes[2]["message_id"])

	limited := call(t, reg, "list_changes", map[string]interface{}{"limit": 1.0}).([]map[string]interface{})
	assert.Len(t, limited, 1)
}

func TestUpdateFlagsRejectsUnknownAction(t *testing.T) {
	manager, err := email.NewManager(&config.Config{Accounts: []config.AccountConfig{{Name: "a"}}}, testLogger(), nil)
	require.NoError(t, err)
	tool, ok := NewRegistry(manager, testLogger()).GetTool("update_flags")
	require.True(t, ok)

	_, err = tool.Execute(context.Background(), map[string]interface{}{"email_ids": "1", "action": "toggle"})
	assert.Error(t, err)
	_, err = tool.Execute(context.Background(), map[string]interface{}{"action": "add"})
	assert.Error(t, err)
}

func TestListChangesWithoutJournal(t *testing.T) {
	syncDir := filepath.Join(t.TempDir(), "sync")
	manager, err := email.NewManager(&config.Config{Accounts: []config.AccountConfig{{
		Name:    "local",
		Backend: "sync",
		SyncDir: syncDir,
	}}}, testLogger(), nil)
	require.NoError(t, err)

	changes := call(t, NewRegistry(manager, testLogger()), "list_changes", map[string]interface{}{}).([]map[string]interface{})
	assert.Empty(t, changes)
	assert.NoDirExists(t, syncDir)
}
