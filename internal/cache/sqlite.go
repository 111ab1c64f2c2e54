package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// schemaVersion is stored in PRAGMA user_version. Journals written by a
// newer mailctl are refused rather than silently misread.
const schemaVersion = 1

// connection settings, applied once since the pool holds one connection
var pragmas = []string{
	"PRAGMA foreign_keys = ON",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA journal_mode = WAL",
}

// Cache is the SQLite database backing the sync journal
type Cache struct {
	db     *sql.DB
	path   string
	logger *logrus.Logger
}

// NewCache opens the journal database at dbPath, creating the file, its
// directory and the schema when missing
func NewCache(dbPath string, logger *logrus.Logger) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal %s: %w", dbPath, err)
	}
	db.SetMaxOpenConns(1)

	c := &Cache{db: db, path: dbPath, logger: logger}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	logger.WithField("path", dbPath).Debug("Sync journal opened")
	return c, nil
}

func (c *Cache) migrate() error {
	for _, pragma := range pragmas {
		if _, err := c.db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to configure journal (%s): %w", pragma, err)
		}
	}

	var version int
	if err := c.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read journal version: %w", err)
	}
	switch {
	case version == schemaVersion:
		return nil
	case version > schemaVersion:
		return fmt.Errorf("journal %s has version %d, this build supports up to %d", c.path, version, schemaVersion)
	}

	if _, err := c.db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create journal schema: %w", err)
	}
	if _, err := c.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("failed to store journal version: %w", err)
	}
	c.logger.WithFields(logrus.Fields{
		"path":    c.path,
		"version": schemaVersion,
	}).Info("Sync journal schema created")
	return nil
}

// Close closes the database
func (c *Cache) Close() error {
	return c.db.Close()
}

// DB returns the database handle used by Store
func (c *Cache) DB() *sql.DB {
	return c.db
}
