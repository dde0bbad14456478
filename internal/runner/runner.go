package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"prematch/internal/classify"
	"prematch/internal/config"
	"prematch/internal/logging"
	"prematch/internal/match"
	"prematch/internal/reconcile"
	"prematch/internal/store"
)

// ErrRunInProgress means another batch holds the run lock.
var ErrRunInProgress = errors.New("another prematch batch is already running")

// Storage is the store surface one batch run needs: catalog reads for the
// matcher, release writes for the applier, and candidate selection.
type Storage interface {
	match.Catalog
	reconcile.Releases
	SelectCandidates(ctx context.Context, spec store.FilterSpec) ([]*store.Candidate, error)
	CountReferenceEntries(ctx context.Context) (int64, error)
}

// Summary reports the outcome of one batch run.
type Summary struct {
	RunID   string
	Total   int
	Matched int
	Failed  int
	Skipped int
	Elapsed time.Duration
}

// Runner drives the synchronous batch loop: select candidates, resolve
// each one, apply the result or the failure status.
type Runner struct {
	cfg        *config.Config
	store      Storage
	classifier classify.Classifier
	audit      reconcile.Recorder
	logger     *slog.Logger
}

// Option customises the Runner.
type Option func(*Runner)

// WithClassifier overrides the keyword classifier (primarily for tests).
func WithClassifier(classifier classify.Classifier) Option {
	return func(r *Runner) {
		if classifier != nil {
			r.classifier = classifier
		}
	}
}

// WithAuditSink attaches a change recorder for applied renames.
func WithAuditSink(recorder reconcile.Recorder) Option {
	return func(r *Runner) {
		r.audit = recorder
	}
}

// New constructs a batch runner over an open store.
func New(cfg *config.Config, st Storage, logger *slog.Logger, opts ...Option) *Runner {
	r := &Runner{
		cfg:        cfg,
		store:      st,
		classifier: classify.Keyword(),
		logger:     logging.NewComponentLogger(logger, "runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes one batch under the given filter. Runs are serialized via a
// file lock; a second concurrent run is refused rather than interleaved,
// since the category-reset write path assumes exclusive row ownership.
func (r *Runner) Run(ctx context.Context, spec store.FilterSpec) (*Summary, error) {
	lock := flock.New(r.cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, ErrRunInProgress
	}
	defer func() { _ = lock.Unlock() }()

	runID := uuid.NewString()
	logger := r.logger.With(logging.String(logging.FieldRunID, runID))
	started := time.Now()

	applierOpts := []reconcile.Option{reconcile.WithRunID(runID)}
	if r.audit != nil {
		applierOpts = append(applierOpts, reconcile.WithAuditSink(r.audit))
	}
	matcher := match.NewMatcher(r.store, logger)
	applier := reconcile.NewApplier(r.store, r.classifier, logger, applierOpts...)

	referenceCount, err := r.store.CountReferenceEntries(ctx)
	if err != nil {
		return nil, err
	}

	candidates, err := r.store.SelectCandidates(ctx, spec)
	if err != nil {
		return nil, err
	}

	logger.Info("batch started",
		logging.String("mode", spec.Mode.String()),
		logging.Int("candidates", len(candidates)),
		logging.Int64("reference_entries", referenceCount),
		logging.Bool("continue_on_error", r.cfg.Matching.ContinueOnError))

	summary := &Summary{RunID: runID, Total: len(candidates)}
	progressEvery := r.cfg.Matching.ProgressEvery

	for i, candidate := range candidates {
		// Cancellation between rows leaves no partial state; each row's
		// update is its own atomic unit.
		select {
		case <-ctx.Done():
			summary.Elapsed = time.Since(started)
			return summary, ctx.Err()
		default:
		}

		if err := r.processCandidate(ctx, matcher, applier, candidate, summary); err != nil {
			if !r.cfg.Matching.ContinueOnError {
				summary.Elapsed = time.Since(started)
				return summary, err
			}
			summary.Skipped++
			logger.Warn("row skipped after storage error",
				logging.Int64(logging.FieldReleaseID, candidate.ID),
				logging.Error(err))
		}

		if progressEvery > 0 && (i+1)%progressEvery == 0 {
			logger.Info("batch progress",
				logging.Int("processed", i+1),
				logging.Int("total", summary.Total),
				logging.Int("matched", summary.Matched))
		}
	}

	summary.Elapsed = time.Since(started)
	logger.Info("batch complete",
		logging.Int("total", summary.Total),
		logging.Int("matched", summary.Matched),
		logging.Int("failed", summary.Failed),
		logging.Int("skipped", summary.Skipped),
		logging.Duration("elapsed", summary.Elapsed))
	return summary, nil
}

func (r *Runner) processCandidate(
	ctx context.Context,
	matcher *match.Matcher,
	applier *reconcile.Applier,
	candidate *store.Candidate,
	summary *Summary,
) error {
	identifier, present := match.ExtractIdentifier(candidate.Name)

	result, err := matcher.Resolve(ctx, match.Request{
		Identifier: identifier,
		Present:    present,
		Group:      candidate.GroupName,
		RawTitle:   candidate.Name,
	})
	if err != nil {
		return err
	}

	// Count a row only after its write lands; a row skipped over a failed
	// write belongs to Skipped alone.
	if result == nil {
		if err := applier.ApplyFailure(ctx, candidate, present); err != nil {
			return err
		}
		summary.Failed++
		return nil
	}

	if err := applier.Apply(ctx, candidate, *result); err != nil {
		return err
	}
	summary.Matched++
	return nil
}
