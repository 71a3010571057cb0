package history

import (
	"path/filepath"
	"testing"
)

func TestAppendThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer s.Close()

	records := []Record{
		{Timestamp: "2026-08-03T10:00:00Z", Expr: "1d20+5", Result: "1d20+5 (10) = 15", Total: 15},
		{Timestamp: "2026-08-03T10:00:05Z", Expr: "4d6kh3", Result: "4d6kh3 (6, 5, 4, 1) = 15", Total: 15, Crit: "crit"},
	}
	for _, r := range records {
		if err := s.Append(r); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(loaded))
	}
	for i, r := range records {
		if loaded[i] != r {
			t.Fatalf("record %d: expected %#v, got %#v", i, r, loaded[i])
		}
	}
}

func TestLoadEmptyFileReturnsNoRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer s.Close()

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected no records, got %d", len(loaded))
	}
}

func TestAppendPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	s1, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := s1.Append(Record{Expr: "2d6", Total: 7}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	s1.Close()

	s2, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore (reopen): %v", err)
	}
	defer s2.Close()
	loaded, err := s2.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Expr != "2d6" {
		t.Fatalf("expected the previously appended record, got %#v", loaded)
	}
}
