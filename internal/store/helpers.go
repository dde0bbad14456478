package store

import (
	"database/sql"
	"time"
)

const candidateColumns = "r.id, r.name, r.search_name, r.group_id, g.name, r.category_id, " +
	"r.match_status, r.pre_id, r.is_renamed, r.is_categorized, r.has_request_id, r.post_date, " +
	"r.series_full, r.season, r.episode, r.tv_title, r.tv_airdate, " +
	"r.rage_id, r.imdb_id, r.anidb_id, r.music_info_id, r.console_info_id, r.book_info_id, " +
	"r.created_at, r.updated_at"

func scanCandidate(scanner interface{ Scan(dest ...any) error }) (*Candidate, error) {
	var (
		id            int64
		name          string
		searchName    sql.NullString
		groupID       int64
		groupName     string
		categoryID    int64
		matchStatus   int64
		preID         int64
		renamed       int64
		categorized   int64
		hasRequestID  int64
		postDateRaw   sql.NullString
		seriesFull    sql.NullString
		season        sql.NullString
		episode       sql.NullString
		tvTitle       sql.NullString
		tvAirDate     sql.NullString
		rageID        int64
		imdbID        int64
		anidbID       int64
		musicInfoID   int64
		consoleInfoID int64
		bookInfoID    int64
		createdRaw    sql.NullString
		updatedRaw    sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&name,
		&searchName,
		&groupID,
		&groupName,
		&categoryID,
		&matchStatus,
		&preID,
		&renamed,
		&categorized,
		&hasRequestID,
		&postDateRaw,
		&seriesFull,
		&season,
		&episode,
		&tvTitle,
		&tvAirDate,
		&rageID,
		&imdbID,
		&anidbID,
		&musicInfoID,
		&consoleInfoID,
		&bookInfoID,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	return &Candidate{
		ID:           id,
		Name:         name,
		SearchName:   searchName.String,
		GroupID:      groupID,
		GroupName:    groupName,
		CategoryID:   categoryID,
		MatchStatus:  MatchStatus(matchStatus),
		PreID:        preID,
		Renamed:      renamed != 0,
		Categorized:  categorized != 0,
		HasRequestID: hasRequestID != 0,
		PostDate:     parseTime(postDateRaw.String),
		Derived: DerivedMetadata{
			SeriesFull:    seriesFull.String,
			Season:        season.String,
			Episode:       episode.String,
			TVTitle:       tvTitle.String,
			TVAirDate:     tvAirDate.String,
			RageID:        rageID,
			ImdbID:        imdbID,
			AnidbID:       anidbID,
			MusicInfoID:   musicInfoID,
			ConsoleInfoID: consoleInfoID,
			BookInfoID:    bookInfoID,
		},
		CreatedAt: parseTime(createdRaw.String),
		UpdatedAt: parseTime(updatedRaw.String),
	}, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}

func timeString(value time.Time) string {
	return value.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
