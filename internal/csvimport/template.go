package csvimport

import (
	"strings"

	"github.com/ayush-assistant/herbcatalog/internal/domain"
)

// exampleHerb is the sample row written under the template header.
var exampleHerb = domain.Herb{
	Name:        "Ashwagandha",
	Category:    "Adaptogen",
	Benefits:    []string{"Stress relief", "Sleep support"},
	UsedFor:     []string{"Stress", "Fatigue"},
	Forms:       []string{"Powder", "Capsule"},
	ImageURL:    "https://example.com/images/ashwagandha.jpg",
	Dosage:      "1 capsule daily",
	Precautions: []string{"Consult doctor if pregnant"},
}

// Template returns a two-line CSV document: the header and one example row.
// Multi-value cells are always quoted and pipe-delimited so the expected
// shape is obvious to whoever fills the file in.
func (s Schema) Template() []byte {
	var b strings.Builder
	b.WriteString(strings.Join(s.columns, ","))
	b.WriteByte('\n')

	cells := make([]string, len(s.columns))
	for i, col := range s.columns {
		if isMultiValue(col) {
			cells[i] = quote(JoinTags(s.multiValue(exampleHerb, col)))
			continue
		}
		cells[i] = quoteIfNeeded(s.scalar(exampleHerb, col))
	}
	b.WriteString(strings.Join(cells, ","))
	b.WriteByte('\n')
	return []byte(b.String())
}

// Record returns h as one row of cells in schema order, with multi-value
// fields pipe-joined. Feeding the row back through MapRow yields h again.
func (s Schema) Record(h domain.Herb) []string {
	out := make([]string, len(s.columns))
	for i, col := range s.columns {
		if isMultiValue(col) {
			out[i] = JoinTags(s.multiValue(h, col))
			continue
		}
		out[i] = s.scalar(h, col)
	}
	return out
}

// JoinTags is the inverse of domain.SplitTags. A lone tag that contains a
// comma gets a trailing "|" so it is not split on the way back in.
func JoinTags(tags []string) string {
	joined := strings.Join(tags, "|")
	if len(tags) == 1 && strings.Contains(joined, ",") {
		joined += "|"
	}
	return joined
}

func isMultiValue(col string) bool {
	switch col {
	case ColBenefits, ColUsedFor, ColForms, ColPrecautions:
		return true
	}
	return false
}

func (s Schema) multiValue(h domain.Herb, col string) []string {
	switch col {
	case ColBenefits:
		return h.Benefits
	case ColUsedFor:
		return h.UsedFor
	case ColForms:
		return h.Forms
	case ColPrecautions:
		return h.Precautions
	}
	return nil
}

func (s Schema) scalar(h domain.Herb, col string) string {
	switch col {
	case ColName:
		return h.Name
	case ColCategory:
		return h.Category
	case ColImageURL:
		return h.ImageURL
	case ColDosage:
		return h.Dosage
	}
	return ""
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, `",`) {
		return quote(s)
	}
	return s
}
