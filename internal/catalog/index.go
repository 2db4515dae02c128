// Package catalog is the in-memory search engine over catalog entries.
//
// An Index is an immutable snapshot: Refresh means building a new Index from
// the latest document set and swapping it in. Nothing mutates an Index after
// NewIndex returns, so any number of goroutines may query one concurrently.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ayush-assistant/herbcatalog/internal/domain"
)

// Query is one filter request. Empty fields impose no constraint.
type Query struct {
	// Text is matched case-insensitively as a substring of the entry's haystack.
	Text string
	// Category must equal the entry's category exactly.
	Category string
}

// Index is a snapshot of the catalog in store order (newest first).
type Index struct {
	herbs      []domain.Herb
	haystacks  []string
	names      []string
	categories []string
}

// NewIndex builds an index over herbs. The slice is copied; callers keep
// ownership of theirs. Order is preserved as given.
func NewIndex(herbs []domain.Herb) *Index {
	ix := &Index{
		herbs:     slices.Clone(herbs),
		haystacks: make([]string, len(herbs)),
		names:     make([]string, len(herbs)),
	}

	seen := make(map[string]struct{})
	for i, h := range ix.herbs {
		ix.haystacks[i] = Haystack(h)
		ix.names[i] = strings.ToLower(strings.TrimSpace(h.Name))
		if h.Category == "" {
			continue
		}
		if _, ok := seen[h.Category]; !ok {
			seen[h.Category] = struct{}{}
			ix.categories = append(ix.categories, h.Category)
		}
	}
	slices.Sort(ix.categories)
	return ix
}

// Len returns the number of entries in the snapshot.
func (ix *Index) Len() int { return len(ix.herbs) }

// Categories returns the distinct non-empty categories, sorted.
func (ix *Index) Categories() []string {
	if ix.categories == nil {
		return []string{}
	}
	return slices.Clone(ix.categories)
}

// Filter returns the entries matching q, in snapshot order.
// The result is never nil.
func (ix *Index) Filter(q Query) []domain.Herb {
	text := strings.ToLower(strings.TrimSpace(q.Text))

	out := []domain.Herb{}
	for i, h := range ix.herbs {
		if text != "" && !strings.Contains(ix.haystacks[i], text) {
			continue
		}
		if q.Category != "" && h.Category != q.Category {
			continue
		}
		out = append(out, h)
	}
	return out
}

// Match returns the first entry, in snapshot order, whose name appears in
// message. Comparison is case-insensitive on trimmed text; entries with a
// blank name never match.
func (ix *Index) Match(message string) (domain.Herb, bool) {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return domain.Herb{}, false
	}
	for i, name := range ix.names {
		if name != "" && strings.Contains(msg, name) {
			return ix.herbs[i], true
		}
	}
	return domain.Herb{}, false
}

// Haystack is the lower-cased text an entry is searched by: name, category,
// benefits, used_for, forms, dosage and precautions joined by single spaces,
// with empty values left out.
func Haystack(h domain.Herb) string {
	parts := make([]string, 0, 3+len(h.Benefits)+len(h.UsedFor)+len(h.Forms)+len(h.Precautions))
	parts = append(parts, h.Name, h.Category)
	parts = append(parts, h.Benefits...)
	parts = append(parts, h.UsedFor...)
	parts = append(parts, h.Forms...)
	parts = append(parts, h.Dosage)
	parts = append(parts, h.Precautions...)

	parts = slices.DeleteFunc(parts, func(s string) bool { return s == "" })
	return strings.ToLower(strings.Join(parts, " "))
}

// Summary is the display projection of one filter result.
type Summary struct {
	Showing int
	Total   int
	Empty   bool
	Text    string
}

// Summarize describes shown results out of total entries.
func Summarize(shown, total int) Summary {
	return Summary{
		Showing: shown,
		Total:   total,
		Empty:   shown == 0,
		Text:    fmt.Sprintf("Showing %d of %d herbs", shown, total),
	}
}
