package summarizer

import (
	"strings"
	"testing"
)

func TestSummarize_LimitsSentenceCount(t *testing.T) {
	docText := "Dogs are loyal animals. Cats are independent. Dogs play fetch with dogs. Fish swim. Birds fly south in winter."
	f := NewFrequency()
	got, err := f.Summarize(docText, 2)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if n := strings.Count(got, "."); n > 2 {
		t.Errorf("expected at most 2 sentences, got %d: %q", n, got)
	}
	if got == "" {
		t.Error("expected non-empty summary")
	}
}

func TestSummarize_NoSentencePunctuation(t *testing.T) {
	f := NewFrequency()
	got, err := f.Summarize("  just a fragment without punctuation  ", 3)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if got != "just a fragment without punctuation" {
		t.Errorf("unexpected summary: %q", got)
	}
}

func TestSummarize_KeepsOriginalOrder(t *testing.T) {
	docText := "Alpha alpha alpha first. Unrelated filler here. Alpha alpha second."
	f := NewFrequency()
	got, err := f.Summarize(docText, 2)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	first := strings.Index(got, "first")
	second := strings.Index(got, "second")
	if first == -1 || second == -1 {
		t.Fatalf("expected both alpha sentences selected, got %q", got)
	}
	if first > second {
		t.Errorf("selected sentences out of document order: %q", got)
	}
}
