package session

import (
	"testing"

	"github.com/prakathesh/PDF-AIchatbot/internal/domain"
)

func TestAppendAndHistoryPreserveOrder(t *testing.T) {
	s := New()
	s.Append(domain.Turn{Question: "first"})
	s.Append(domain.Turn{Question: "second"})
	s.Append(domain.Turn{Question: "third"})

	got := s.History()
	if len(got) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(got))
	}
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Question != want {
			t.Errorf("turn %d: got %q, want %q", i, got[i].Question, want)
		}
	}
}

func TestHistoryReturnsCopy(t *testing.T) {
	s := New()
	s.Append(domain.Turn{Question: "original"})
	h := s.History()
	h[0].Question = "mutated"
	if s.History()[0].Question != "original" {
		t.Error("mutating the returned history changed the session")
	}
}

func TestClear(t *testing.T) {
	s := New()
	s.Append(domain.Turn{Question: "q"})
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("expected empty session after clear, got %d turns", s.Len())
	}
	if len(s.History()) != 0 {
		t.Error("history not empty after clear")
	}
}
