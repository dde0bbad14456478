package reconcile

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestAuditSinkWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	sink := NewAuditWriter(&buf)

	records := []ChangeRecord{
		{RunID: "run-1", ReleaseID: 1, OldTitle: "raw one", NewTitle: "Clean.One", NewCategory: 5000},
		{RunID: "run-1", ReleaseID: 2, OldTitle: "raw two", NewTitle: "Clean.Two", NewCategory: 2000},
	}
	for _, rec := range records {
		if err := sink.Record(rec); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	scanner := bufio.NewScanner(&buf)
	var got []ChangeRecord
	for scanner.Scan() {
		var rec ChangeRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("decode line: %v", err)
		}
		got = append(got, rec)
	}
	if len(got) != len(records) {
		t.Fatalf("expected %d lines, got %d", len(records), len(got))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Fatalf("record %d: got %+v, want %+v", i, got[i], records[i])
		}
	}
}

func TestRecordersFanOut(t *testing.T) {
	var first, second bytes.Buffer
	recorders := Recorders{
		&fakeRecorder{err: errors.New("disk full")},
		NewAuditWriter(&first),
		NewAuditWriter(&second),
	}

	err := recorders.Record(ChangeRecord{ReleaseID: 7, NewTitle: "Clean.Title"})
	if err == nil || err.Error() != "disk full" {
		t.Fatalf("expected the first sink error back, got %v", err)
	}
	for name, buf := range map[string]*bytes.Buffer{"first": &first, "second": &second} {
		var rec ChangeRecord
		if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
			t.Fatalf("%s sink: decode: %v", name, err)
		}
		if rec.ReleaseID != 7 {
			t.Fatalf("%s sink missed the record: %+v", name, rec)
		}
	}
}

func TestAuditSinkEmptyPathDisabled(t *testing.T) {
	sink, err := NewAuditSink("  ")
	if err != nil {
		t.Fatalf("NewAuditSink: %v", err)
	}
	if sink != nil {
		t.Fatal("blank path should disable the sink")
	}
	// The nil sink is still safe to use.
	if err := sink.Record(ChangeRecord{ReleaseID: 1}); err != nil {
		t.Fatalf("nil sink Record: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("nil sink Close: %v", err)
	}
}

func TestAuditSinkAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit", "changes.jsonl")

	for i := int64(1); i <= 2; i++ {
		sink, err := NewAuditSink(path)
		if err != nil {
			t.Fatalf("NewAuditSink: %v", err)
		}
		if err := sink.Record(ChangeRecord{ReleaseID: i}); err != nil {
			t.Fatalf("Record: %v", err)
		}
		if err := sink.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read journal: %v", err)
	}
	if lines := bytes.Count(data, []byte("\n")); lines != 2 {
		t.Fatalf("expected 2 journal lines across reopens, got %d", lines)
	}
}
