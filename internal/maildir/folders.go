package maildir

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/brandon/mailctl/internal/cache"
	"github.com/brandon/mailctl/pkg/types"
)

// ListFolders lists INBOX followed by every subfolder, sorted by name
func (s *Store) ListFolders(ctx context.Context) ([]types.Folder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || !strings.HasPrefix(name, ".") || name == "." || name == ".." {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.root, name, "cur")); err != nil {
			continue
		}
		names = append(names, strings.TrimPrefix(name, "."))
	}
	sort.Strings(names)

	folders := []types.Folder{{Name: inbox}}
	for _, name := range names {
		folders = append(folders, types.Folder{Name: name})
	}
	return folders, nil
}

// AddFolder creates a folder
func (s *Store) AddFolder(ctx context.Context, folder string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d, err := s.dir(folder)
	if err != nil {
		return err
	}
	if err := d.Init(); err != nil {
		return fmt.Errorf("failed to create folder %s: %w", folder, err)
	}

	return s.record(ctx, cache.Change{Folder: folder, Action: cache.ActionAddFolder})
}

// DeleteFolder removes a folder and every message in it. INBOX cannot be
// deleted.
func (s *Store) DeleteFolder(ctx context.Context, folder string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d, err := s.existingDir(folder)
	if err != nil {
		return err
	}
	if string(d) == s.root {
		return fmt.Errorf("cannot delete folder %s", inbox)
	}

	if err := os.RemoveAll(string(d)); err != nil {
		return fmt.Errorf("failed to delete folder %s: %w", folder, err)
	}
	s.logger.WithField("folder", folder).Info("Deleted maildir folder")

	return s.record(ctx, cache.Change{Folder: folder, Action: cache.ActionDeleteFolder})
}
