package printer

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandon/mailctl/internal/cache"
	"github.com/brandon/mailctl/pkg/types"
)

func TestPrintAndLogUseSeparateStreams(t *testing.T) {
	var out, log bytes.Buffer
	p := New(&out, &log)

	require.NoError(t, p.Print("done"))
	require.NoError(t, p.Log("working"))
	assert.Equal(t, "done\n", out.String())
	assert.Equal(t, "working\n", log.String())
}

func TestEnvelopes(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, &bytes.Buffer{})

	err := p.Envelopes([]types.Envelope{
		{
			ID:          "42",
			Subject:     "Quarterly report",
			SenderName:  "Alice",
			SenderEmail: "alice@example.com",
			Date:        time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
			Flags:       []types.Flag{types.FlagFlagged},
		},
		{
			ID:          "43",
			Subject:     "Re: lunch",
			SenderEmail: "bob@example.com",
			Flags:       []types.Flag{types.FlagSeen, types.FlagAnswered},
		},
	})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "SUBJECT")
	assert.Contains(t, text, "Quarterly report")
	assert.Contains(t, text, "Alice")
	assert.Contains(t, text, "2024-03-01 09:30")
	assert.Contains(t, text, "*!")
	assert.Contains(t, text, "bob@example.com")
}

func TestFlagsColumn(t *testing.T) {
	tests := []struct {
		name  string
		flags []types.Flag
		want  string
	}{
		{"unseen", nil, "*"},
		{"seen", []types.Flag{types.FlagSeen}, ""},
		{"flagged", []types.Flag{types.FlagFlagged}, "*!"},
		{"answered", []types.Flag{types.FlagSeen, types.FlagAnswered}, "R"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, flagsColumn(types.Envelope{Flags: tt.flags}))
		})
	}
}

func TestFoldersAndChanges(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, &bytes.Buffer{})

	require.NoError(t, p.Folders([]types.Folder{{Name: "INBOX"}, {Name: "Archive", Desc: "\\HasNoChildren"}}))
	require.NoError(t, p.Changes([]cache.Change{{
		ID:        7,
		Folder:    "INBOX",
		Action:    cache.ActionAddFlags,
		MessageID: "abc",
		Flags:     []types.Flag{types.FlagSeen, types.FlagFlagged},
		CreatedAt: time.Now(),
	}}))

	text := out.String()
	assert.Contains(t, text, "Archive")
	assert.Contains(t, text, "add_flags")
	assert.Contains(t, text, "seen,flagged")
}
