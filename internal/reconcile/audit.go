package reconcile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// AuditSink persists change records as JSON lines so renames can be
// reviewed after a batch completes.
type AuditSink struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
}

// NewAuditSink opens (or creates) an append-only change journal. The path
// may be empty to disable auditing, in which case nil is returned.
func NewAuditSink(path string) (*AuditSink, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, nil
	}
	if dir := filepath.Dir(trimmed); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure audit dir: %w", err)
		}
	}
	file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit journal %s: %w", trimmed, err)
	}
	return &AuditSink{file: file, enc: json.NewEncoder(file)}, nil
}

// NewAuditWriter wraps an arbitrary writer, primarily for the CLI and tests.
func NewAuditWriter(w io.Writer) *AuditSink {
	return &AuditSink{enc: json.NewEncoder(w)}
}

// Recorders fans each change record out to every sink. A failing sink does
// not stop the others; the first error is returned.
type Recorders []Recorder

func (rs Recorders) Record(rec ChangeRecord) error {
	var firstErr error
	for _, r := range rs {
		if err := r.Record(rec); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Record appends one change record.
func (s *AuditSink) Record(rec ChangeRecord) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(rec)
}

// Close releases the underlying file, if any.
func (s *AuditSink) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}
