package command

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jhillyerd/enmime"

	"github.com/brandon/mailctl/internal/backend"
)

// AttachmentDownload saves the attachments of messages to the downloads
// directory of the account
type AttachmentDownload struct {
	Account string
	Folder  string
	IDs     []string
}

// Execute runs the command. Messages are processed one at a time in the
// order of IDs.
func (c *AttachmentDownload) Execute(ctx context.Context, env *Env) error {
	env.Logger.Info("Executing download attachments command")

	if len(c.IDs) == 0 {
		return fmt.Errorf("no message id given")
	}

	acc, b, err := env.open(ctx, c.Account, (*backend.Registration).EnableGetMessages)
	if err != nil {
		return err
	}
	defer env.release(b)

	msgs, err := b.GetMessages(ctx, folderOrInbox(c.Folder), c.IDs)
	if err != nil {
		return err
	}

	emailsCount, attachmentsCount := 0, 0
	for _, msg := range msgs {
		id := msg.ID

		parsed, err := enmime.ReadEnvelope(bytes.NewReader(msg.Raw))
		if err != nil {
			return fmt.Errorf("failed to parse message %s: %w", id, err)
		}

		if len(parsed.Attachments) == 0 {
			if err := env.Printer.Log(fmt.Sprintf("No attachment found for message %s!", id)); err != nil {
				return err
			}
			continue
		}
		emailsCount++

		if err := env.Printer.Log(fmt.Sprintf("%d attachment(s) found for message %s!", len(parsed.Attachments), id)); err != nil {
			return err
		}

		for _, part := range parsed.Attachments {
			filename := part.FileName
			if filename == "" {
				filename = uuid.NewString()
			}
			path, err := acc.DownloadFilePath(filename)
			if err != nil {
				return err
			}
			if err := env.Printer.Log(fmt.Sprintf("Downloading %q…", path)); err != nil {
				return err
			}
			if err := os.WriteFile(path, part.Content, 0644); err != nil {
				return fmt.Errorf("cannot save attachment at %q: %w", path, err)
			}
			attachmentsCount++
		}
	}

	switch attachmentsCount {
	case 0:
		return env.Printer.Print("No attachment found!")
	case 1:
		return env.Printer.Print("Downloaded 1 attachment!")
	default:
		return env.Printer.Print(fmt.Sprintf("Downloaded %d attachment(s) from %d message(s)!", attachmentsCount, emailsCount))
	}
}
