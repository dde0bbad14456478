package reconcile

import (
	"context"
	"errors"
	"testing"

	"prematch/internal/classify"
	"prematch/internal/logging"
	"prematch/internal/match"
	"prematch/internal/store"
)

type fakeReleases struct {
	plainCalls    []appliedMatch
	categoryCalls []appliedMatch
	statusCalls   map[int64]store.MatchStatus
}

type appliedMatch struct {
	id         int64
	searchName string
	preID      int64
	categoryID int64
}

func newFakeReleases() *fakeReleases {
	return &fakeReleases{statusCalls: make(map[int64]store.MatchStatus)}
}

func (f *fakeReleases) ApplyMatch(_ context.Context, id int64, searchName string, preID int64) error {
	f.plainCalls = append(f.plainCalls, appliedMatch{id: id, searchName: searchName, preID: preID})
	return nil
}

func (f *fakeReleases) ApplyMatchWithCategory(_ context.Context, id int64, searchName string, preID, categoryID int64) error {
	f.categoryCalls = append(f.categoryCalls, appliedMatch{id: id, searchName: searchName, preID: preID, categoryID: categoryID})
	return nil
}

func (f *fakeReleases) SetMatchStatus(_ context.Context, id int64, status store.MatchStatus) error {
	f.statusCalls[id] = status
	return nil
}

type fakeRecorder struct {
	records []ChangeRecord
	err     error
}

func (f *fakeRecorder) Record(rec ChangeRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

func testCandidate() *store.Candidate {
	return &store.Candidate{
		ID:         11,
		Name:       "[12345]-[#a.b.teevee@efnet]-[01/42] raw post",
		GroupName:  "alt.binaries.teevee",
		CategoryID: classify.CategoryTV,
	}
}

func TestApplyKeepsCategoryWhenUnchanged(t *testing.T) {
	releases := newFakeReleases()
	applier := NewApplier(releases, classify.Keyword(), logging.NewNop())

	err := applier.Apply(context.Background(), testCandidate(), match.Result{
		Title:       "Some.Show.S02E04.720p.HDTV.x264-GRP",
		ReferenceID: 42,
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if len(releases.categoryCalls) != 0 {
		t.Fatalf("category update should not run when the class is unchanged: %+v", releases.categoryCalls)
	}
	if len(releases.plainCalls) != 1 {
		t.Fatalf("expected one plain update, got %d", len(releases.plainCalls))
	}
	call := releases.plainCalls[0]
	if call.id != 11 || call.searchName != "Some.Show.S02E04.720p.HDTV.x264-GRP" || call.preID != 42 {
		t.Fatalf("unexpected update: %+v", call)
	}
}

func TestApplySwitchesCategoryBranch(t *testing.T) {
	releases := newFakeReleases()
	applier := NewApplier(releases, classify.Keyword(), logging.NewNop())

	candidate := testCandidate()
	candidate.CategoryID = 8000

	err := applier.Apply(context.Background(), candidate, match.Result{
		Title:       "Some.Show.S02E04.720p.HDTV.x264-GRP",
		ReferenceID: 42,
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if len(releases.plainCalls) != 0 {
		t.Fatalf("plain update should not run on a category change: %+v", releases.plainCalls)
	}
	if len(releases.categoryCalls) != 1 {
		t.Fatalf("expected one category update, got %d", len(releases.categoryCalls))
	}
	call := releases.categoryCalls[0]
	if call.categoryID != classify.CategoryTV {
		t.Fatalf("expected category %d, got %d", classify.CategoryTV, call.categoryID)
	}
}

func TestApplyRecordsRename(t *testing.T) {
	releases := newFakeReleases()
	recorder := &fakeRecorder{}
	applier := NewApplier(releases, classify.Keyword(), logging.NewNop(),
		WithAuditSink(recorder), WithRunID("run-1"))

	candidate := testCandidate()
	err := applier.Apply(context.Background(), candidate, match.Result{
		Title:       "Some.Show.S02E04.720p.HDTV.x264-GRP",
		ReferenceID: 42,
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if len(recorder.records) != 1 {
		t.Fatalf("expected one audit record, got %d", len(recorder.records))
	}
	rec := recorder.records[0]
	if rec.RunID != "run-1" || rec.ReleaseID != 11 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.OldTitle != candidate.Name || rec.NewTitle != "Some.Show.S02E04.720p.HDTV.x264-GRP" {
		t.Fatalf("unexpected titles in record: %+v", rec)
	}
	if rec.Group != "alt.binaries.teevee" {
		t.Fatalf("unexpected group in record: %+v", rec)
	}
}

func TestApplySkipsAuditWhenTitleUnchanged(t *testing.T) {
	releases := newFakeReleases()
	recorder := &fakeRecorder{}
	applier := NewApplier(releases, classify.Keyword(), logging.NewNop(), WithAuditSink(recorder))

	candidate := testCandidate()
	candidate.Name = "Some.Show.S02E04.720p.HDTV.x264-GRP"
	candidate.CategoryID = classify.CategoryTV

	err := applier.Apply(context.Background(), candidate, match.Result{
		Title:       "Some.Show.S02E04.720p.HDTV.x264-GRP",
		ReferenceID: 42,
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(recorder.records) != 0 {
		t.Fatalf("no audit record expected for an unchanged title: %+v", recorder.records)
	}
}

func TestApplyToleratesAuditFailure(t *testing.T) {
	releases := newFakeReleases()
	recorder := &fakeRecorder{err: errors.New("disk full")}
	applier := NewApplier(releases, classify.Keyword(), logging.NewNop(), WithAuditSink(recorder))

	err := applier.Apply(context.Background(), testCandidate(), match.Result{
		Title:       "Some.Show.S02E04.720p.HDTV.x264-GRP",
		ReferenceID: 42,
	})
	if err != nil {
		t.Fatalf("a failing audit sink must not fail the apply: %v", err)
	}
	if len(releases.plainCalls) != 1 {
		t.Fatalf("match update should still have run")
	}
}

func TestApplyFailureStatusSelection(t *testing.T) {
	releases := newFakeReleases()
	applier := NewApplier(releases, classify.Keyword(), logging.NewNop())

	withID := testCandidate()
	if err := applier.ApplyFailure(context.Background(), withID, true); err != nil {
		t.Fatalf("ApplyFailure: %v", err)
	}
	if got := releases.statusCalls[withID.ID]; got != store.StatusLocalLookupFailed {
		t.Fatalf("identifier miss should record %v, got %v", store.StatusLocalLookupFailed, got)
	}

	withoutID := testCandidate()
	withoutID.ID = 12
	if err := applier.ApplyFailure(context.Background(), withoutID, false); err != nil {
		t.Fatalf("ApplyFailure: %v", err)
	}
	if got := releases.statusCalls[withoutID.ID]; got != store.StatusNotFound {
		t.Fatalf("no-identifier miss should record %v, got %v", store.StatusNotFound, got)
	}
}

func TestApplyIgnoresZeroCandidate(t *testing.T) {
	releases := newFakeReleases()
	applier := NewApplier(releases, classify.Keyword(), logging.NewNop())

	if err := applier.Apply(context.Background(), nil, match.Result{Title: "x"}); err != nil {
		t.Fatalf("nil candidate: %v", err)
	}
	if err := applier.ApplyFailure(context.Background(), &store.Candidate{}, true); err != nil {
		t.Fatalf("zero-id candidate: %v", err)
	}
	if len(releases.plainCalls)+len(releases.categoryCalls)+len(releases.statusCalls) != 0 {
		t.Fatal("no storage writes expected for nil or zero-id candidates")
	}
}
