package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skanderbz/batitrack/internal/config"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"clean name", "plan.pdf", "plan.pdf"},
		{"spaces", "plan de masse.pdf", "plan_de_masse.pdf"},
		{"path traversal", "../../etc/passwd", "passwd"},
		{"accents", "bâtiment.dwg", "b_timent.dwg"},
		{"allowed punctuation", "plan_v2.final-copy.pdf", "plan_v2.final-copy.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeFilename(tt.input)
			if got != tt.expected {
				t.Errorf("SanitizeFilename(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFileStorage_Save(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewFileStorage(&config.UploadConfig{Dir: dir, MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("NewFileStorage() error = %v", err)
	}

	path, safeName, err := storage.Save(strings.NewReader("contenu du plan"), "plan A.pdf")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if safeName != "plan_A.pdf" {
		t.Errorf("safeName = %q", safeName)
	}
	if !strings.HasSuffix(path, "_plan_A.pdf") {
		t.Errorf("storage path %q should end with the sanitized name", path)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 stored file, got %d", len(entries))
	}

	// The returned path points at the stored file, even with an absolute dir
	if path != filepath.Join(dir, entries[0].Name()) {
		t.Errorf("storage path = %q, expected %q", path, filepath.Join(dir, entries[0].Name()))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("stored file not readable at returned path: %v", err)
	}
}

func TestFileStorage_Save_UniqueNames(t *testing.T) {
	storage, err := NewFileStorage(&config.UploadConfig{Dir: t.TempDir(), MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("NewFileStorage() error = %v", err)
	}

	path1, _, err := storage.Save(strings.NewReader("a"), "plan.pdf")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	path2, _, err := storage.Save(strings.NewReader("b"), "plan.pdf")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if path1 == path2 {
		t.Error("two uploads of the same filename should get distinct paths")
	}
}

func TestFileStorage_Save_TooLarge(t *testing.T) {
	dir := t.TempDir()
	storage := &FileStorage{dir: dir, maxBytes: 10}

	_, _, err := storage.Save(strings.NewReader(strings.Repeat("x", 11)), "big.bin")
	if err != ErrFileTooLarge {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}

	// Partial file must be removed
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("oversized upload should leave no file behind, found %d", len(entries))
	}
}
