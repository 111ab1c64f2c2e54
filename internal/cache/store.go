package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/brandon/mailctl/pkg/types"
)

// Action is a local mutation recorded in the sync journal
type Action string

// Recorded actions
const (
	ActionAddFolder    Action = "add_folder"
	ActionDeleteFolder Action = "delete_folder"
	ActionAddMessage   Action = "add_message"
	ActionAddFlags     Action = "add_flags"
	ActionRemoveFlags  Action = "remove_flags"
	ActionSetFlags     Action = "set_flags"
)

// Change is one journal entry
type Change struct {
	ID        int64
	Account   string
	Folder    string
	Action    Action
	MessageID string
	Flags     []types.Flag
	CreatedAt time.Time
}

// Store provides methods for storing and retrieving data from the journal
type Store struct {
	cache  *Cache
	logger *logrus.Logger
}

// NewStore creates a new store instance
func NewStore(cache *Cache, logger *logrus.Logger) *Store {
	return &Store{
		cache:  cache,
		logger: logger,
	}
}

// Open opens the journal database at dbPath
func Open(dbPath string, logger *logrus.Logger) (*Store, error) {
	c, err := NewCache(dbPath, logger)
	if err != nil {
		return nil, err
	}
	return NewStore(c, logger), nil
}

// OpenExisting opens the journal database at dbPath without creating it.
// A missing journal is reported with an error matching fs.ErrNotExist.
func OpenExisting(dbPath string, logger *logrus.Logger) (*Store, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("sync journal %s: %w", dbPath, err)
	}
	return Open(dbPath, logger)
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.cache.Close()
}

// UpsertAccount makes sure the account exists and returns its ID
func (s *Store) UpsertAccount(ctx context.Context, name string) (int, error) {
	_, err := s.cache.DB().ExecContext(ctx, "INSERT INTO accounts (name) VALUES (?) ON CONFLICT(name) DO NOTHING", name)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert account: %w", err)
	}
	return s.GetAccountID(ctx, name)
}

// GetAccountID returns the account ID by name
func (s *Store) GetAccountID(ctx context.Context, name string) (int, error) {
	var id int
	err := s.cache.DB().QueryRowContext(ctx, "SELECT id FROM accounts WHERE name = ?", name).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("account not found: %s", name)
		}
		return 0, fmt.Errorf("failed to get account ID: %w", err)
	}
	return id, nil
}

// UpsertFolder makes sure the folder exists and returns its ID
func (s *Store) UpsertFolder(ctx context.Context, accountID int, name string) (int, error) {
	_, err := s.cache.DB().ExecContext(ctx,
		"INSERT INTO folders (account_id, name) VALUES (?, ?) ON CONFLICT(account_id, name) DO NOTHING",
		accountID, name)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert folder: %w", err)
	}

	var folderID int
	err = s.cache.DB().QueryRowContext(ctx,
		"SELECT id FROM folders WHERE account_id = ? AND name = ?", accountID, name).Scan(&folderID)
	if err != nil {
		return 0, fmt.Errorf("failed to get folder ID: %w", err)
	}
	return folderID, nil
}

// Record appends a change to the journal
func (s *Store) Record(ctx context.Context, change Change) error {
	accountID, err := s.UpsertAccount(ctx, change.Account)
	if err != nil {
		return err
	}
	folderID, err := s.UpsertFolder(ctx, accountID, change.Folder)
	if err != nil {
		return err
	}

	flags := change.Flags
	if flags == nil {
		flags = []types.Flag{}
	}
	flagsJSON, err := json.Marshal(flags)
	if err != nil {
		return fmt.Errorf("failed to marshal flags: %w", err)
	}

	createdAt := change.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO changes (account_id, folder_id, action, message_id, flags, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = s.cache.DB().ExecContext(ctx, query,
		accountID,
		folderID,
		string(change.Action),
		change.MessageID,
		string(flagsJSON),
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to record change: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"account": change.Account,
		"folder":  change.Folder,
		"action":  string(change.Action),
	}).Debug("Recorded local change")
	return nil
}

// ClearChanges removes every change of an account and returns how many
// were removed
func (s *Store) ClearChanges(ctx context.Context, account string) (int64, error) {
	result, err := s.cache.DB().ExecContext(ctx, `
		DELETE FROM changes
		WHERE account_id IN (SELECT id FROM accounts WHERE name = ?)
	`, account)
	if err != nil {
		return 0, fmt.Errorf("failed to clear changes: %w", err)
	}
	return result.RowsAffected()
}
