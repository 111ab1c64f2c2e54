package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhillyerd/enmime"

	"github.com/brandon/mailctl/internal/backend"
)

// MessageRead prints messages, marking them as seen unless Preview is set
type MessageRead struct {
	Account string
	Folder  string
	IDs     []string
	Preview bool
	Raw     bool
}

// Execute runs the command. Messages are printed in the order of IDs.
func (c *MessageRead) Execute(ctx context.Context, env *Env) error {
	env.Logger.Info("Executing read message command")

	if len(c.IDs) == 0 {
		return fmt.Errorf("no message id given")
	}

	_, b, err := env.open(ctx, c.Account, func(r *backend.Registration) {
		if c.Preview {
			r.Enable(backend.PeekMessages)
			return
		}
		r.EnableGetMessages()
	})
	if err != nil {
		return err
	}
	defer env.release(b)

	folder := folderOrInbox(c.Folder)
	read := b.GetMessages
	if c.Preview {
		read = b.PeekMessages
	}
	msgs, err := read(ctx, folder, c.IDs)
	if err != nil {
		return err
	}

	var out []string
	for _, msg := range msgs {
		if c.Raw {
			out = append(out, string(msg.Raw))
			continue
		}
		text, err := readableText(msg.Raw)
		if err != nil {
			return fmt.Errorf("failed to parse message %s: %w", msg.ID, err)
		}
		out = append(out, text)
	}
	return env.Printer.Print(strings.Join(out, "\n\n"))
}

// readableText renders the main headers and the text part of a message
func readableText(raw []byte) (string, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, key := range []string{"From", "To", "Cc", "Subject", "Date"} {
		if value := env.GetHeader(key); value != "" {
			fmt.Fprintf(&b, "%s: %s\n", key, value)
		}
	}
	b.WriteString("\n")
	if env.Text != "" {
		b.WriteString(env.Text)
	} else {
		b.WriteString(env.HTML)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// MessageSave stores a raw message in a folder
type MessageSave struct {
	Account string
	Folder  string
	Raw     []byte
}

// Execute runs the command
func (c *MessageSave) Execute(ctx context.Context, env *Env) error {
	env.Logger.Info("Executing save message command")

	_, b, err := env.open(ctx, c.Account, func(r *backend.Registration) {
		r.Enable(backend.AddMessage)
	})
	if err != nil {
		return err
	}
	defer env.release(b)

	folder := folderOrInbox(c.Folder)
	if _, err := b.AddMessage(ctx, folder, c.Raw); err != nil {
		return err
	}
	return env.Printer.Print(fmt.Sprintf("Message successfully saved to %s!", folder))
}

// MessageSend sends a raw message, then saves a copy to the sent folder
// when the account asks for it
type MessageSend struct {
	Account string
	Raw     []byte
}

// Execute runs the command. A failed copy does not undo the send: the
// returned error wraps a backend.SaveCopyError.
func (c *MessageSend) Execute(ctx context.Context, env *Env) error {
	env.Logger.Info("Executing send message command")

	acc, err := env.Backends.GetAccount(c.Account)
	if err != nil {
		return err
	}

	_, addConfigured := acc.BackendKind(backend.AddMessage)
	saveCopy := acc.SaveCopySentMessage() && addConfigured

	b, err := env.Backends.Backend(ctx, acc, func(r *backend.Registration) {
		r.Enable(backend.SendMessage)
		if saveCopy {
			r.Enable(backend.AddMessage)
		}
	})
	if err != nil {
		return err
	}
	defer env.release(b)

	err = b.SendAndSaveCopy(ctx, c.Raw, acc.SentFolder, saveCopy)
	var copyErr *backend.SaveCopyError
	if errors.As(err, &copyErr) {
		if perr := env.Printer.Print("Message successfully sent!"); perr != nil {
			return perr
		}
		return err
	}
	if err != nil {
		return err
	}
	return env.Printer.Print("Message successfully sent!")
}
