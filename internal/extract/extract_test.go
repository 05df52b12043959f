package extract

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFile_ReadsPlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("The sky is blue."), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	name, content, err := File(path)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if name != "notes.txt" {
		t.Errorf("unexpected name %q", name)
	}
	if content != "The sky is blue." {
		t.Errorf("unexpected content %q", content)
	}
}

func TestFile_RejectsUnsupportedExtension(t *testing.T) {
	if _, _, err := File("document.docx"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestFile_MissingFile(t *testing.T) {
	if _, _, err := File(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFile_InvalidPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	if err := os.WriteFile(path, []byte("not a pdf"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, _, err := File(path); err == nil {
		t.Fatal("expected error for invalid pdf")
	}
}
