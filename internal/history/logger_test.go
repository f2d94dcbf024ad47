package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestLogAndTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	l, err := NewLogger(path, 0)
	if err != nil {
		t.Fatal(err)
	}

	for _, cmd := range []string{"echo one", "echo two", "echo three"} {
		if err := l.Log(cmd, 0, "", 5*time.Millisecond, "/tmp"); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := l.Tail(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Command != "echo two" || entries[1].Command != "echo three" {
		t.Errorf("unexpected tail order: %v", entries)
	}
	if entries[0].Seq != 2 || entries[1].Seq != 3 {
		t.Errorf("unexpected sequence numbers: %d, %d", entries[0].Seq, entries[1].Seq)
	}
	if _, err := uuid.Parse(entries[0].ID); err != nil {
		t.Errorf("entry ID is not a uuid: %q", entries[0].ID)
	}
}

func TestSeqResumes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")

	l, err := NewLogger(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Log("first", 0, "", time.Millisecond, "/"); err != nil {
		t.Fatal(err)
	}

	// A new logger over the same file continues the sequence.
	l2, err := NewLogger(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := l2.Log("second", 1, "boom", time.Millisecond, "/"); err != nil {
		t.Fatal(err)
	}

	entries, err := l2.Tail(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].Seq != 2 {
		t.Errorf("sequence did not resume: got %d", entries[1].Seq)
	}
	if entries[1].ExitCode != 1 || entries[1].Error != "boom" {
		t.Errorf("entry fields lost: %+v", entries[1])
	}
}

func TestSizeCapRotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	l, err := NewLogger(path, 1)
	if err != nil {
		t.Fatal(err)
	}
	// Shrink the cap so the test doesn't have to write a megabyte.
	l.maxBytes = 64

	if err := l.Log("echo one", 0, "", time.Millisecond, "/"); err != nil {
		t.Fatal(err)
	}
	// The first entry already exceeds the cap, so this write rotates.
	if err := l.Log("echo two", 0, "", time.Millisecond, "/"); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(path + ".1"); err != nil {
		t.Fatalf("expected rotated log: %v", err)
	}

	entries, err := l.Tail(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Command != "echo two" {
		t.Errorf("expected only the post-rotation entry, got %v", entries)
	}
	// The sequence keeps counting across rotations.
	if entries[0].Seq != 2 {
		t.Errorf("expected seq 2, got %d", entries[0].Seq)
	}
}

func TestTailMissingFile(t *testing.T) {
	l, err := NewLogger(filepath.Join(t.TempDir(), "history.jsonl"), 0)
	if err != nil {
		t.Fatal(err)
	}
	entries, err := l.Tail(10)
	if err != nil {
		t.Fatal(err)
	}
	if entries != nil {
		t.Errorf("expected no entries, got %v", entries)
	}
}
