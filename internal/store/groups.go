package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// GroupID resolves a group name to its id. The second return is false when
// the group is unknown.
func (s *Store) GroupID(ctx context.Context, name string) (int64, bool, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 0, false, nil
	}

	var id int64
	err := s.db.QueryRowContext(
		ensureContext(ctx),
		`SELECT id FROM groups WHERE name = ?`,
		trimmed,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("resolve group %s: %w", trimmed, err)
	}
	return id, true, nil
}

// EnsureGroup resolves a group name, creating the row when missing.
func (s *Store) EnsureGroup(ctx context.Context, name string) (int64, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 0, errors.New("group name is required")
	}

	if id, ok, err := s.GroupID(ctx, trimmed); err != nil {
		return 0, err
	} else if ok {
		return id, nil
	}

	res, err := s.execWithRetry(ctx, `INSERT OR IGNORE INTO groups (name) VALUES (?)`, trimmed)
	if err != nil {
		return 0, fmt.Errorf("insert group %s: %w", trimmed, err)
	}
	if id, err := res.LastInsertId(); err == nil && id != 0 {
		return id, nil
	}

	// Lost a race with a concurrent insert; read it back.
	id, ok, err := s.GroupID(ctx, trimmed)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("group %s not found after insert", trimmed)
	}
	return id, nil
}

// GroupName returns the name for a group id, or empty when unknown.
func (s *Store) GroupName(ctx context.Context, id int64) (string, error) {
	var name string
	err := s.db.QueryRowContext(
		ensureContext(ctx),
		`SELECT name FROM groups WHERE id = ?`,
		id,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("group name for %d: %w", id, err)
	}
	return name, nil
}
