// Package summarizer produces the short document overview shown once after
// ingestion.
package summarizer

import (
	"math"
	"sort"
	"strings"

	"github.com/prakathesh/PDF-AIchatbot/internal/text"
)

// Frequency ranks sentences by normalized content-word frequency and keeps
// the top ones in their original order.
type Frequency struct{}

// NewFrequency creates a frequency-based sentence ranker summarizer.
func NewFrequency() *Frequency { return &Frequency{} }

// Summarize returns up to maxSentences sentences of docText, picked by
// frequency score. Text without sentence punctuation is returned trimmed.
func (f *Frequency) Summarize(docText string, maxSentences int) (string, error) {
	if maxSentences <= 0 {
		maxSentences = 3
	}
	sentences := text.Sentences(docText)
	if len(sentences) == 0 {
		return strings.TrimSpace(docText), nil
	}

	freq := map[string]float64{}
	for _, sent := range sentences {
		for _, tok := range text.ContentTokens(sent) {
			freq[tok]++
		}
	}
	maxF := 0.0
	for _, v := range freq {
		if v > maxF {
			maxF = v
		}
	}
	if maxF > 0 {
		for k, v := range freq {
			freq[k] = v / maxF
		}
	}

	type ranked struct {
		idx   int
		score float64
	}
	scores := make([]ranked, len(sentences))
	for i, sent := range sentences {
		toks := text.Tokens(sent)
		score := 0.0
		for _, tok := range toks {
			score += freq[tok]
		}
		// Length normalization so long sentences do not dominate.
		if n := float64(len(toks)); n > 0 {
			score /= math.Sqrt(n)
		}
		scores[i] = ranked{i, score}
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if maxSentences > len(scores) {
		maxSentences = len(scores)
	}
	selected := make([]int, maxSentences)
	for i := range selected {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)

	parts := make([]string, 0, len(selected))
	for _, idx := range selected {
		parts = append(parts, strings.TrimSpace(sentences[idx]))
	}
	return strings.Join(parts, " "), nil
}
