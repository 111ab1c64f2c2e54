package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ChangeFilter contains journal query parameters
type ChangeFilter struct {
	Account *string
	Folder  *string
	Action  *Action
	Limit   int
}

// Changes lists journal entries matching filter, oldest first
func (s *Store) Changes(ctx context.Context, filter ChangeFilter) ([]Change, error) {
	var conditions []string
	var args []interface{}

	if filter.Account != nil {
		conditions = append(conditions, "a.name = ?")
		args = append(args, *filter.Account)
	}

	if filter.Folder != nil {
		conditions = append(conditions, "f.name = ?")
		args = append(args, *filter.Folder)
	}

	if filter.Action != nil {
		conditions = append(conditions, "c.action = ?")
		args = append(args, string(*filter.Action))
	}

	query := `
		SELECT c.id, a.name, f.name, c.action, c.message_id, c.flags, c.created_at
		FROM changes c
		JOIN accounts a ON c.account_id = a.id
		JOIN folders f ON c.folder_id = f.id
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY c.id"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.cache.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query changes: %w", err)
	}
	defer rows.Close()

	var changes []Change
	for rows.Next() {
		var change Change
		var action, flagsJSON, createdAt string

		err := rows.Scan(
			&change.ID,
			&change.Account,
			&change.Folder,
			&action,
			&change.MessageID,
			&flagsJSON,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan change: %w", err)
		}

		change.Action = Action(action)
		if err := json.Unmarshal([]byte(flagsJSON), &change.Flags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal flags: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			change.CreatedAt = t
		}

		changes = append(changes, change)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate changes: %w", err)
	}

	return changes, nil
}
