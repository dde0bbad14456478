package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// InsertCandidate adds a release row awaiting reconciliation. The group is
// created on demand.
func (s *Store) InsertCandidate(ctx context.Context, nc NewCandidate) (*Candidate, error) {
	if strings.TrimSpace(nc.Name) == "" {
		return nil, errors.New("candidate name is required")
	}
	groupID, err := s.EnsureGroup(ctx, nc.Group)
	if err != nil {
		return nil, err
	}

	categoryID := nc.CategoryID
	if categoryID == 0 {
		categoryID = 8000
	}
	postDate := nc.PostDate
	if postDate.IsZero() {
		postDate = time.Now().UTC()
	}
	timestamp := timeString(time.Now().UTC())

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO releases (
            name, group_id, category_id, match_status, has_request_id,
            post_date, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		nc.Name,
		groupID,
		categoryID,
		int64(StatusUnprocessed),
		boolInt(nc.HasRequestID),
		timeString(postDate),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert candidate: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.CandidateByID(ctx, id)
}

// CandidateByID fetches a release row by identifier.
func (s *Store) CandidateByID(ctx context.Context, id int64) (*Candidate, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+candidateColumns+` FROM releases r JOIN groups g ON r.group_id = g.id WHERE r.id = ?`,
		id,
	)
	candidate, err := scanCandidate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	return candidate, nil
}

// SelectCandidates returns the ordered batch of rows the filter admits.
// Every mode excludes rows already matched to a reference entry, rows
// already renamed and matched, and permanently skipped rows.
func (s *Store) SelectCandidates(ctx context.Context, spec FilterSpec) ([]*Candidate, error) {
	var (
		clauses []string
		args    []any
	)

	clauses = append(clauses,
		"r.pre_id = 0",
		"NOT (r.is_renamed = 1 AND r.match_status = ?)",
		"r.match_status <> ?",
	)
	args = append(args, int64(StatusFound), int64(StatusPermanentSkip))

	switch spec.Mode {
	case ModeAll:
		clauses = append(clauses, "r.has_request_id = 1")
	case ModeFull, ModeRecent:
		clauses = append(clauses, "r.has_request_id = 1", "r.is_renamed = 0")

		placeholders := make([]string, 0, len(retryableStatuses))
		for _, status := range retryableStatuses {
			placeholders = append(placeholders, "?")
			args = append(args, int64(status))
		}
		clauses = append(clauses, "r.match_status IN ("+strings.Join(placeholders, ", ")+")")

		if spec.Hours > 0 {
			cutoff := time.Now().UTC().Add(-time.Duration(spec.Hours) * time.Hour)
			clauses = append(clauses, "r.post_date > ?")
			args = append(args, timeString(cutoff))
		}
	default:
		return nil, fmt.Errorf("unknown selection mode %d", spec.Mode)
	}

	query := `SELECT ` + candidateColumns + ` FROM releases r JOIN groups g ON r.group_id = g.id
        WHERE ` + strings.Join(clauses, " AND ") + `
        ORDER BY r.post_date DESC`

	if spec.Mode == ModeRecent {
		if spec.Limit <= 0 {
			return nil, errors.New("recent mode requires a positive limit")
		}
		query += " LIMIT " + strconv.Itoa(spec.Limit)
	}

	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("select candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*Candidate
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return candidates, nil
}

// SetMatchStatus writes only the match status. A zero id is a no-op so a
// malformed row can never widen into a mass update.
func (s *Store) SetMatchStatus(ctx context.Context, id int64, status MatchStatus) error {
	if id == 0 {
		return nil
	}
	if !status.Known() {
		return fmt.Errorf("unknown match status %d", int(status))
	}
	if err := s.execWithoutResultRetry(
		ctx,
		`UPDATE releases SET match_status = ?, updated_at = ? WHERE id = ?`,
		int64(status),
		timeString(time.Now().UTC()),
		id,
	); err != nil {
		return fmt.Errorf("set match status: %w", err)
	}
	return nil
}

// ApplyMatch records a reference match whose classified category agrees
// with the release's current category.
func (s *Store) ApplyMatch(ctx context.Context, id int64, searchName string, preID int64) error {
	if id == 0 {
		return nil
	}
	if err := s.execWithoutResultRetry(
		ctx,
		`UPDATE releases
         SET pre_id = ?, match_status = ?, is_renamed = 1, is_categorized = 1,
             search_name = ?, updated_at = ?
         WHERE id = ?`,
		preID,
		int64(StatusFound),
		searchName,
		timeString(time.Now().UTC()),
		id,
	); err != nil {
		return fmt.Errorf("apply match: %w", err)
	}
	return nil
}

// resetDerivedColumns clears every category-specific column; stale
// cross-references from the old category must not survive a recategorize.
const resetDerivedColumns = `series_full = NULL, season = NULL, episode = NULL,
             tv_title = NULL, tv_airdate = NULL,
             rage_id = 0, imdb_id = 0, anidb_id = 0,
             music_info_id = 0, console_info_id = 0, book_info_id = 0`

// ApplyMatchWithCategory records a reference match that changes the
// release's category. The derived metadata reset happens in the same write
// as the title and category update.
func (s *Store) ApplyMatchWithCategory(ctx context.Context, id int64, searchName string, preID, categoryID int64) error {
	if id == 0 {
		return nil
	}
	if err := s.execWithoutResultRetry(
		ctx,
		`UPDATE releases
         SET `+resetDerivedColumns+`,
             pre_id = ?, match_status = ?, is_renamed = 1, is_categorized = 1,
             search_name = ?, category_id = ?, updated_at = ?
         WHERE id = ?`,
		preID,
		int64(StatusFound),
		searchName,
		categoryID,
		timeString(time.Now().UTC()),
		id,
	); err != nil {
		return fmt.Errorf("apply match with category: %w", err)
	}
	return nil
}

// UpdateDerivedMetadata sets the category-specific columns. Used by
// downstream post-processing and by tests exercising the reset path.
func (s *Store) UpdateDerivedMetadata(ctx context.Context, id int64, meta DerivedMetadata) error {
	if id == 0 {
		return nil
	}
	if err := s.execWithoutResultRetry(
		ctx,
		`UPDATE releases
         SET series_full = ?, season = ?, episode = ?, tv_title = ?, tv_airdate = ?,
             rage_id = ?, imdb_id = ?, anidb_id = ?, music_info_id = ?,
             console_info_id = ?, book_info_id = ?, updated_at = ?
         WHERE id = ?`,
		nullableString(meta.SeriesFull),
		nullableString(meta.Season),
		nullableString(meta.Episode),
		nullableString(meta.TVTitle),
		nullableString(meta.TVAirDate),
		meta.RageID,
		meta.ImdbID,
		meta.AnidbID,
		meta.MusicInfoID,
		meta.ConsoleInfoID,
		meta.BookInfoID,
		timeString(time.Now().UTC()),
		id,
	); err != nil {
		return fmt.Errorf("update derived metadata: %w", err)
	}
	return nil
}

// StatusCounts aggregates releases per match status, ordered by status.
func (s *Store) StatusCounts(ctx context.Context) ([]StatusCount, error) {
	rows, err := s.db.QueryContext(
		ensureContext(ctx),
		`SELECT match_status, COUNT(*) FROM releases GROUP BY match_status ORDER BY match_status DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("status counts: %w", err)
	}
	defer rows.Close()

	var counts []StatusCount
	for rows.Next() {
		var (
			status int64
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts = append(counts, StatusCount{Status: MatchStatus(status), Count: count})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}
	return counts, nil
}
