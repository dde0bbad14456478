package store

import (
	"time"
)

// MatchStatus represents the reconciliation lifecycle of a release.
type MatchStatus int

const (
	// StatusFound means a reference match was applied. Terminal.
	StatusFound MatchStatus = 1
	// StatusUnprocessed is the default before any attempt.
	StatusUnprocessed MatchStatus = 0
	// StatusLocalLookupFailed means an identifier was extracted but no
	// catalog row matched.
	StatusLocalLookupFailed MatchStatus = -1
	// StatusZeroIdentifier means no identifier was present in the title;
	// only title heuristics apply.
	StatusZeroIdentifier MatchStatus = -2
	// StatusNotFound means no identifier was extractable and no title
	// heuristic matched.
	StatusNotFound MatchStatus = -3
	// StatusPermanentSkip marks a release as retried and still unmatched.
	// Assigned by an external scheduler, never by the matching engine;
	// selection always excludes it.
	StatusPermanentSkip MatchStatus = -4
)

var allStatuses = []MatchStatus{
	StatusFound,
	StatusUnprocessed,
	StatusLocalLookupFailed,
	StatusZeroIdentifier,
	StatusNotFound,
	StatusPermanentSkip,
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []MatchStatus {
	cp := make([]MatchStatus, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

func (s MatchStatus) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusUnprocessed:
		return "unprocessed"
	case StatusLocalLookupFailed:
		return "local_lookup_failed"
	case StatusZeroIdentifier:
		return "zero_identifier"
	case StatusNotFound:
		return "not_found"
	case StatusPermanentSkip:
		return "permanent_skip"
	default:
		return "unknown"
	}
}

// Known reports whether the value is part of the closed enumeration.
func (s MatchStatus) Known() bool {
	for _, known := range allStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// retryableStatuses are re-included by the full and recent selection modes.
var retryableStatuses = []MatchStatus{
	StatusUnprocessed,
	StatusLocalLookupFailed,
	StatusNotFound,
}

// Mode selects which candidate rows a batch run considers.
type Mode int

const (
	// ModeAll covers every unmatched request-id release.
	ModeAll Mode = iota
	// ModeFull covers unrenamed releases with retryable statuses,
	// optionally bounded by a post-date window.
	ModeFull
	// ModeRecent is ModeFull limited to the N most recent releases.
	ModeRecent
)

func (m Mode) String() string {
	switch m {
	case ModeAll:
		return "all"
	case ModeFull:
		return "full"
	case ModeRecent:
		return "recent"
	default:
		return "unknown"
	}
}

// FilterSpec parameterizes candidate selection.
type FilterSpec struct {
	Mode Mode
	// Hours bounds the post-date window for ModeFull and ModeRecent.
	// Zero means no window.
	Hours int
	// Limit caps the number of rows for ModeRecent.
	Limit int
}

// DerivedMetadata holds the category-specific columns computed by
// downstream post-processing. A category change invalidates all of it.
type DerivedMetadata struct {
	SeriesFull    string
	Season        string
	Episode       string
	TVTitle       string
	TVAirDate     string
	RageID        int64
	ImdbID        int64
	AnidbID       int64
	MusicInfoID   int64
	ConsoleInfoID int64
	BookInfoID    int64
}

// Candidate is a release row under reconciliation.
type Candidate struct {
	ID           int64
	Name         string
	SearchName   string
	GroupID      int64
	GroupName    string
	CategoryID   int64
	MatchStatus  MatchStatus
	PreID        int64
	Renamed      bool
	Categorized  bool
	HasRequestID bool
	PostDate     time.Time
	Derived      DerivedMetadata
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ReferenceEntry is an immutable catalog row keyed by request id and group.
type ReferenceEntry struct {
	ID        int64
	RequestID int64
	GroupID   int64
	Title     string
	Filename  string
}

// NewCandidate describes a release to insert.
type NewCandidate struct {
	Name         string
	Group        string
	CategoryID   int64
	HasRequestID bool
	PostDate     time.Time
}

// NewReference describes a catalog entry to insert.
type NewReference struct {
	RequestID int64
	Group     string
	Title     string
	Filename  string
}

// StatusCount pairs a status with the number of releases carrying it.
type StatusCount struct {
	Status MatchStatus
	Count  int64
}
