package imap

import (
	"context"
	"fmt"
	"strings"

	"github.com/emersion/go-imap"

	"github.com/brandon/mailctl/pkg/types"
)

// ListFolders lists all mailboxes/folders
func (s *Session) ListFolders(ctx context.Context) ([]types.Folder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.client == nil {
		return nil, fmt.Errorf("IMAP session is closed")
	}

	mailboxes := make(chan *imap.MailboxInfo, 10)
	done := make(chan error, 1)

	go func() {
		done <- s.client.List("", "*", mailboxes)
	}()

	var folders []types.Folder
	for m := range mailboxes {
		folders = append(folders, types.Folder{
			Name: m.Name,
			Desc: strings.Join(m.Attributes, ", "),
		})
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}

	return folders, nil
}

// AddFolder creates a mailbox
func (s *Session) AddFolder(ctx context.Context, folder string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.client == nil {
		return fmt.Errorf("IMAP session is closed")
	}
	if err := s.client.Create(folder); err != nil {
		return fmt.Errorf("failed to create folder %s: %w", folder, err)
	}
	return nil
}

// DeleteFolder deletes a mailbox and its messages
func (s *Session) DeleteFolder(ctx context.Context, folder string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.client == nil {
		return fmt.Errorf("IMAP session is closed")
	}
	if err := s.client.Delete(folder); err != nil {
		return fmt.Errorf("failed to delete folder %s: %w", folder, err)
	}
	s.logger.WithField("folder", folder).Info("Deleted IMAP folder")
	return nil
}
