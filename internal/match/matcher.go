package match

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"prematch/internal/logging"
	"prematch/internal/store"
)

// Catalog is the read interface the matcher needs from the reference store.
type Catalog interface {
	ReferenceByRequestID(ctx context.Context, requestID, groupID int64) ([]store.ReferenceEntry, error)
	ReferenceByTitle(ctx context.Context, title, filename string) (*store.ReferenceEntry, error)
	GroupID(ctx context.Context, name string) (int64, bool, error)
}

// Request carries one candidate through the stage pipeline. Identifier is
// meaningful only when Present is true.
type Request struct {
	Identifier int64
	Present    bool
	Group      string
	RawTitle   string
}

// Result is a resolved reference match, consumed once by the applier.
type Result struct {
	Title       string
	ReferenceID int64
}

// Matcher sequences identifier lookup, group remapping, and title
// heuristics into a single best match or absence.
type Matcher struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewMatcher constructs a matcher over the given catalog.
func NewMatcher(catalog Catalog, logger *slog.Logger) *Matcher {
	return &Matcher{
		catalog: catalog,
		logger:  logging.NewComponentLogger(logger, "matcher"),
	}
}

// A single catalog row whose title names a season but no episode is too
// coarse to rename onto; several distinct postings would collapse onto it.
var (
	seasonOnlyPattern    = regexp.MustCompile(`(?i)s\d+`)
	seasonEpisodePattern = regexp.MustCompile(`(?i)s\d+e\d+`)
)

func seasonOnly(title string) bool {
	return seasonOnlyPattern.MatchString(title) && !seasonEpisodePattern.MatchString(title)
}

// Resolve runs the stage pipeline for one candidate. A nil Result with a
// nil error means every stage missed; that is not an error.
func (m *Matcher) Resolve(ctx context.Context, req Request) (*Result, error) {
	if !req.Present {
		return m.lookupByTitle(ctx, req.RawTitle)
	}

	groupID, known, err := m.catalog.GroupID(ctx, req.Group)
	if err != nil {
		return nil, fmt.Errorf("resolve group: %w", err)
	}

	var entries []store.ReferenceEntry
	if known {
		entries, err = m.catalog.ReferenceByRequestID(ctx, req.Identifier, groupID)
		if err != nil {
			return nil, fmt.Errorf("direct lookup: %w", err)
		}
	}

	switch len(entries) {
	case 0:
		result, err := m.lookupByRemap(ctx, req)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
		return m.lookupByTitle(ctx, req.RawTitle)
	case 1:
		entry := entries[0]
		if seasonOnly(entry.Title) {
			m.logger.Debug("rejecting season-only reference title",
				logging.String(logging.FieldStage, "direct"),
				logging.Int64("reference_id", entry.ID),
				logging.String("title", entry.Title))
			return nil, nil
		}
		return &Result{Title: entry.Title, ReferenceID: entry.ID}, nil
	default:
		// The identifier+group pair is not uniquely resolving; fall back
		// to title heuristics instead of guessing among the rows.
		return m.lookupByTitle(ctx, req.RawTitle)
	}
}

// lookupByRemap retries the direct lookup under the canonical alternate
// group when a remap rule applies.
func (m *Matcher) lookupByRemap(ctx context.Context, req Request) (*Result, error) {
	alternate, ok := RemapGroup(req.Group, req.RawTitle)
	if !ok {
		return nil, nil
	}

	groupID, known, err := m.catalog.GroupID(ctx, alternate)
	if err != nil {
		return nil, fmt.Errorf("resolve remapped group: %w", err)
	}
	if !known {
		return nil, nil
	}

	entries, err := m.catalog.ReferenceByRequestID(ctx, req.Identifier, groupID)
	if err != nil {
		return nil, fmt.Errorf("remapped lookup: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	entry := entries[0]
	m.logger.Debug("matched under remapped group",
		logging.String(logging.FieldStage, "remap"),
		logging.String(logging.FieldGroup, alternate),
		logging.Int64("reference_id", entry.ID))
	return &Result{Title: entry.Title, ReferenceID: entry.ID}, nil
}

// lookupByTitle extracts a canonical title from the raw posting and
// queries the catalog by exact string match.
func (m *Matcher) lookupByTitle(ctx context.Context, rawTitle string) (*Result, error) {
	extraction, ok := extractCanonicalTitle(rawTitle)
	if !ok {
		return nil, nil
	}

	entry, err := m.catalog.ReferenceByTitle(ctx, extraction.title, extraction.filename)
	if err != nil {
		return nil, fmt.Errorf("title lookup: %w", err)
	}
	if entry == nil {
		return nil, nil
	}
	return &Result{Title: entry.Title, ReferenceID: entry.ID}, nil
}
