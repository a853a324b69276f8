package store

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndGet(t *testing.T) {
	s := openTestStore(t)

	id, err := s.Create(Record{
		Title:            "Planning",
		Transcript:       "[10:00:01] hello",
		Report:           "## Overview\nshort",
		OriginalFilename: "planning.m4a",
		AudioAsset:       []byte{1, 2, 3},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == "" {
		t.Fatal("Create returned empty id")
	}

	rec, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.ID != id || rec.Title != "Planning" || rec.Transcript != "[10:00:01] hello" {
		t.Errorf("record = %+v", rec)
	}
	if rec.OriginalFilename != "planning.m4a" {
		t.Errorf("filename = %q", rec.OriginalFilename)
	}
	if !bytes.Equal(rec.AudioAsset, []byte{1, 2, 3}) {
		t.Errorf("audio = %v", rec.AudioAsset)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestGetNotFound(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Get("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdate(t *testing.T) {
	s := openTestStore(t)

	id, _ := s.Create(Record{Title: "Old", Transcript: "t", Report: "r", AudioAsset: []byte{9}})
	before, _ := s.Get(id)

	if err := s.Update(id, "New", "t2", "r2"); err != nil {
		t.Fatalf("Update: %v", err)
	}

	rec, _ := s.Get(id)
	if rec.Title != "New" || rec.Transcript != "t2" || rec.Report != "r2" {
		t.Errorf("record = %+v", rec)
	}

	// Audio and creation time are immutable.
	if !bytes.Equal(rec.AudioAsset, []byte{9}) {
		t.Errorf("audio changed: %v", rec.AudioAsset)
	}
	if !rec.CreatedAt.Equal(before.CreatedAt) {
		t.Errorf("created_at changed: %v -> %v", before.CreatedAt, rec.CreatedAt)
	}
}

func TestUpdateNotFound(t *testing.T) {
	s := openTestStore(t)

	id, _ := s.Create(Record{Title: "Keep", Transcript: "t", Report: "r"})

	err := s.Update("no-such-id", "X", "Y", "Z")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	// Existing records untouched by the failed update.
	rec, _ := s.Get(id)
	if rec.Title != "Keep" {
		t.Errorf("title = %q, want %q", rec.Title, "Keep")
	}
}

func TestListNewestFirst(t *testing.T) {
	s := openTestStore(t)

	// Force distinct created_at values.
	old := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	mid := time.Now().UTC().Add(-time.Minute).Format(time.RFC3339)
	s.db.Exec(`INSERT INTO meetings (id, created_at, title, transcript, report) VALUES ('a', ?, 'oldest', '', '')`, old)
	s.db.Exec(`INSERT INTO meetings (id, created_at, title, transcript, report) VALUES ('b', ?, 'middle', '', 'done')`, mid)
	newest, err := s.Create(Record{Title: "newest", Transcript: "t", Report: ""})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].ID != newest || entries[1].ID != "b" || entries[2].ID != "a" {
		t.Errorf("order = %s, %s, %s", entries[0].ID, entries[1].ID, entries[2].ID)
	}
	if entries[0].HasReport || !entries[1].HasReport {
		t.Errorf("has-report flags wrong: %+v", entries)
	}
}

func TestResolveID(t *testing.T) {
	s := openTestStore(t)

	s.db.Exec(`INSERT INTO meetings (id, created_at, title, transcript, report) VALUES ('abc-123', '2026-01-01T00:00:00Z', 'one', '', '')`)
	s.db.Exec(`INSERT INTO meetings (id, created_at, title, transcript, report) VALUES ('abd-456', '2026-01-01T00:00:00Z', 'two', '', '')`)

	id, err := s.ResolveID("abc")
	if err != nil {
		t.Fatalf("ResolveID: %v", err)
	}
	if id != "abc-123" {
		t.Errorf("id = %q, want abc-123", id)
	}

	if _, err := s.ResolveID("ab"); err == nil {
		t.Error("ambiguous prefix should fail")
	}
	if _, err := s.ResolveID("zzz"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
