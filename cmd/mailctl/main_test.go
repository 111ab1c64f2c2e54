package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandon/mailctl/internal/command"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   int
		output string
	}{
		{"success", nil, 0, ""},
		{"declined confirmation", command.ErrAborted, 0, ""},
		{"wrapped declined confirmation", fmt.Errorf("folder delete: %w", command.ErrAborted), 0, ""},
		{"failure", errors.New("folder Archive not found"), 1, "Error: folder Archive not found\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Equal(t, tt.code, exitCode(tt.err, &out))
			assert.Equal(t, tt.output, out.String())
		})
	}
}

func TestReadLine(t *testing.T) {
	line, err := readLine(strings.NewReader("s3cret\r\nignored\n"))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", line)

	line, err = readLine(strings.NewReader("no newline"))
	require.NoError(t, err)
	assert.Equal(t, "no newline", line)

	_, err = readLine(strings.NewReader("\n"))
	assert.Error(t, err)
}
