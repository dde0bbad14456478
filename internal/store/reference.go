package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// InsertReference adds a catalog entry. The group is created on demand.
func (s *Store) InsertReference(ctx context.Context, nr NewReference) (*ReferenceEntry, error) {
	if strings.TrimSpace(nr.Title) == "" {
		return nil, errors.New("reference title is required")
	}
	groupID, err := s.EnsureGroup(ctx, nr.Group)
	if err != nil {
		return nil, err
	}

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO predb (request_id, group_id, title, filename, created_at)
         VALUES (?, ?, ?, ?, ?)`,
		nr.RequestID,
		groupID,
		nr.Title,
		nullableString(nr.Filename),
		timeString(time.Now().UTC()),
	)
	if err != nil {
		return nil, fmt.Errorf("insert reference: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return &ReferenceEntry{
		ID:        id,
		RequestID: nr.RequestID,
		GroupID:   groupID,
		Title:     nr.Title,
		Filename:  nr.Filename,
	}, nil
}

// ReferenceByRequestID returns every catalog row for a request id within a
// group. Callers see all rows so ambiguity stays visible.
func (s *Store) ReferenceByRequestID(ctx context.Context, requestID, groupID int64) ([]ReferenceEntry, error) {
	rows, err := s.db.QueryContext(
		ensureContext(ctx),
		`SELECT id, request_id, group_id, title, COALESCE(filename, '')
         FROM predb WHERE request_id = ? AND group_id = ? ORDER BY id`,
		requestID,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("reference by request id: %w", err)
	}
	defer rows.Close()

	var entries []ReferenceEntry
	for rows.Next() {
		var entry ReferenceEntry
		if err := rows.Scan(&entry.ID, &entry.RequestID, &entry.GroupID, &entry.Title, &entry.Filename); err != nil {
			return nil, fmt.Errorf("scan reference: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate references: %w", err)
	}
	return entries, nil
}

// ReferenceByTitle looks up a catalog entry whose title or filename equals
// the extracted title, or whose filename equals the extracted filename.
// Returns nil when nothing matches.
func (s *Store) ReferenceByTitle(ctx context.Context, title, filename string) (*ReferenceEntry, error) {
	row := s.db.QueryRowContext(
		ensureContext(ctx),
		`SELECT id, request_id, group_id, title, COALESCE(filename, '')
         FROM predb
         WHERE title = ?1 OR filename = ?1 OR (?2 <> '' AND filename = ?2)
         ORDER BY id LIMIT 1`,
		title,
		filename,
	)

	var entry ReferenceEntry
	err := row.Scan(&entry.ID, &entry.RequestID, &entry.GroupID, &entry.Title, &entry.Filename)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reference by title: %w", err)
	}
	return &entry, nil
}

// CountReferenceEntries reports how many catalog rows carry a usable
// request id. Used for pre-run accounting.
func (s *Store) CountReferenceEntries(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(
		ensureContext(ctx),
		`SELECT COUNT(*) FROM predb WHERE request_id > 0`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count references: %w", err)
	}
	return count, nil
}
