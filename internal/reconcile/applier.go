package reconcile

import (
	"context"
	"fmt"
	"log/slog"

	"prematch/internal/classify"
	"prematch/internal/logging"
	"prematch/internal/match"
	"prematch/internal/store"
)

// Releases is the write interface the applier needs from storage.
type Releases interface {
	ApplyMatch(ctx context.Context, id int64, searchName string, preID int64) error
	ApplyMatchWithCategory(ctx context.Context, id int64, searchName string, preID, categoryID int64) error
	SetMatchStatus(ctx context.Context, id int64, status store.MatchStatus) error
}

// Recorder receives one change record per applied rename.
type Recorder interface {
	Record(rec ChangeRecord) error
}

// ChangeRecord documents an applied rename for the audit sink.
type ChangeRecord struct {
	RunID       string `json:"run_id,omitempty"`
	ReleaseID   int64  `json:"release_id"`
	OldTitle    string `json:"old_title"`
	NewTitle    string `json:"new_title"`
	OldCategory int64  `json:"old_category"`
	NewCategory int64  `json:"new_category"`
	Group       string `json:"group"`
}

// Applier decides the category-consistency branch and writes match results
// back to storage.
type Applier struct {
	releases   Releases
	classifier classify.Classifier
	audit      Recorder
	runID      string
	logger     *slog.Logger
}

// Option customises the Applier.
type Option func(*Applier)

// WithAuditSink attaches a change recorder. Without one, applies are silent.
func WithAuditSink(recorder Recorder) Option {
	return func(a *Applier) {
		a.audit = recorder
	}
}

// WithRunID stamps audit records with the batch run identifier.
func WithRunID(runID string) Option {
	return func(a *Applier) {
		a.runID = runID
	}
}

// NewApplier constructs an applier bound to storage and a classifier.
func NewApplier(releases Releases, classifier classify.Classifier, logger *slog.Logger, opts ...Option) *Applier {
	applier := &Applier{
		releases:   releases,
		classifier: classifier,
		logger:     logging.NewComponentLogger(logger, "applier"),
	}
	for _, opt := range opts {
		opt(applier)
	}
	return applier
}

// Apply writes a resolved match back to the candidate row. The classified
// category decides between the plain update and the category-change update
// that also resets derived metadata.
func (a *Applier) Apply(ctx context.Context, candidate *store.Candidate, result match.Result) error {
	if candidate == nil || candidate.ID == 0 {
		return nil
	}

	category := a.classifier.Classify(result.Title, candidate.GroupName)
	if category == candidate.CategoryID {
		if err := a.releases.ApplyMatch(ctx, candidate.ID, result.Title, result.ReferenceID); err != nil {
			return fmt.Errorf("apply match to release %d: %w", candidate.ID, err)
		}
	} else {
		if err := a.releases.ApplyMatchWithCategory(ctx, candidate.ID, result.Title, result.ReferenceID, category); err != nil {
			return fmt.Errorf("apply match to release %d: %w", candidate.ID, err)
		}
	}

	a.logger.Debug("match applied",
		logging.Int64(logging.FieldReleaseID, candidate.ID),
		logging.String("new_title", result.Title),
		logging.Int64("category", category))

	if a.audit != nil && candidate.Name != result.Title {
		rec := ChangeRecord{
			RunID:       a.runID,
			ReleaseID:   candidate.ID,
			OldTitle:    candidate.Name,
			NewTitle:    result.Title,
			OldCategory: candidate.CategoryID,
			NewCategory: category,
			Group:       candidate.GroupName,
		}
		if err := a.audit.Record(rec); err != nil {
			// Audit output is informational; a sink failure must not
			// fail the already-persisted match.
			a.logger.Warn("audit record failed",
				logging.Int64(logging.FieldReleaseID, candidate.ID),
				logging.Error(err))
		}
	}
	return nil
}

// ApplyFailure writes the terminal failure status for a candidate that
// exhausted every stage. A candidate that had an identifier records a
// local lookup failure; one without records not-found.
func (a *Applier) ApplyFailure(ctx context.Context, candidate *store.Candidate, hadIdentifier bool) error {
	if candidate == nil || candidate.ID == 0 {
		return nil
	}

	status := store.StatusNotFound
	if hadIdentifier {
		status = store.StatusLocalLookupFailed
	}
	if err := a.releases.SetMatchStatus(ctx, candidate.ID, status); err != nil {
		return fmt.Errorf("record failure for release %d: %w", candidate.ID, err)
	}
	return nil
}
