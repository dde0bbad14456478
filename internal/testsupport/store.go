package testsupport

import (
	"context"
	"testing"
	"time"

	"prematch/internal/config"
	"prematch/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// NewCandidate inserts a release row for tests.
func NewCandidate(t testing.TB, st *store.Store, name, group string) *store.Candidate {
	t.Helper()

	candidate, err := st.InsertCandidate(context.Background(), store.NewCandidate{
		Name:         name,
		Group:        group,
		HasRequestID: true,
		PostDate:     time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("store.InsertCandidate: %v", err)
	}
	return candidate
}

// NewReference inserts a catalog entry for tests.
func NewReference(t testing.TB, st *store.Store, requestID int64, group, title, filename string) *store.ReferenceEntry {
	t.Helper()

	entry, err := st.InsertReference(context.Background(), store.NewReference{
		RequestID: requestID,
		Group:     group,
		Title:     title,
		Filename:  filename,
	})
	if err != nil {
		t.Fatalf("store.InsertReference: %v", err)
	}
	return entry
}
