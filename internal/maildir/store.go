package maildir

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/emersion/go-maildir"
	"github.com/sirupsen/logrus"

	"github.com/brandon/mailctl/internal/cache"
)

const inbox = "INBOX"

// JournalFile is the name of the change journal inside a sync directory
const JournalFile = "journal.db"

// JournalPath returns the path of the change journal of a sync directory
func JournalPath(dir string) string {
	return filepath.Join(dir, JournalFile)
}

// Journal records local mutations. The Maildir-for-sync backend journals
// every change so it can be replayed on the remote side.
type Journal interface {
	Record(ctx context.Context, change cache.Change) error
	Close() error
}

// Store is an open Maildir++ tree: the root holds INBOX and every other
// folder lives in a ".Name" subdirectory.
type Store struct {
	root    string
	account string
	journal Journal
	logger  *logrus.Logger
}

// Open opens the Maildir tree at root, creating INBOX if needed
func Open(ctx context.Context, account, root string, logger *logrus.Logger) (*Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if root == "" {
		return nil, fmt.Errorf("maildir root is not configured")
	}

	if err := maildir.Dir(root).Init(); err != nil {
		return nil, fmt.Errorf("failed to open maildir %s: %w", root, err)
	}

	logger.WithFields(logrus.Fields{
		"account": account,
		"root":    root,
	}).Debug("Opened maildir")

	return &Store{
		root:    root,
		account: account,
		logger:  logger,
	}, nil
}

// OpenForSync opens the local Maildir copy used for synchronization,
// with its change journal stored next to it
func OpenForSync(ctx context.Context, account, dir string, logger *logrus.Logger) (*Store, error) {
	s, err := Open(ctx, account, filepath.Join(dir, "maildir"), logger)
	if err != nil {
		return nil, err
	}

	journal, err := cache.Open(JournalPath(dir), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open sync journal: %w", err)
	}
	s.journal = journal
	return s, nil
}

// WithJournal returns the store recording its changes to journal
func (s *Store) WithJournal(journal Journal) *Store {
	s.journal = journal
	return s
}

// Close closes the journal, if any. Maildir itself holds no open handle.
func (s *Store) Close() error {
	if s.journal != nil {
		return s.journal.Close()
	}
	return nil
}

// dir returns the Maildir of folder
func (s *Store) dir(folder string) (maildir.Dir, error) {
	name := strings.TrimSpace(folder)
	if name == "" || strings.EqualFold(name, inbox) {
		return maildir.Dir(s.root), nil
	}
	if strings.ContainsAny(name, "/\\") || name == "." || name == ".." {
		return "", fmt.Errorf("invalid maildir folder name %q", folder)
	}
	return maildir.Dir(filepath.Join(s.root, "."+name)), nil
}

// existingDir returns the Maildir of folder, failing if it does not exist
func (s *Store) existingDir(folder string) (maildir.Dir, error) {
	d, err := s.dir(folder)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(filepath.Join(string(d), "cur")); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("folder %s not found", folder)
		}
		return "", fmt.Errorf("failed to open folder %s: %w", folder, err)
	}
	return d, nil
}

func (s *Store) record(ctx context.Context, change cache.Change) error {
	if s.journal == nil {
		return nil
	}
	change.Account = s.account
	if err := s.journal.Record(ctx, change); err != nil {
		return fmt.Errorf("failed to journal change: %w", err)
	}
	return nil
}
