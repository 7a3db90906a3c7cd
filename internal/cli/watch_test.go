package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "beetle.svg")
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("<svg/>"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := watchTemplate(path)
	if err != nil {
		t.Fatalf("watchTemplate: %v", err)
	}

	if err := os.WriteFile(other, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Changes:
		t.Fatal("change reported for an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}

	if err := os.WriteFile(path, []byte("<svg></svg>"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported after writing the template")
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if _, ok := <-w.Changes; ok {
		// A coalesced event may still be buffered; the channel must close after it.
		if _, ok := <-w.Changes; ok {
			t.Error("Changes not closed after Close")
		}
	}
}

func TestWatchTemplateMissingDir(t *testing.T) {
	if _, err := watchTemplate(filepath.Join(t.TempDir(), "nope", "bug.svg")); err == nil {
		t.Error("watchTemplate on a missing directory succeeded")
	}
}
