package csvimport

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ayush-assistant/herbcatalog/internal/domain"
)

// Column names of the import schema, in file order.
const (
	ColName        = "name"
	ColCategory    = "category"
	ColBenefits    = "benefits"
	ColUsedFor     = "used_for"
	ColForms       = "forms"
	ColImageURL    = "image_url"
	ColDosage      = "dosage"
	ColPrecautions = "precautions"
)

var (
	// ErrEmptyFile is returned when the upload has no non-blank rows.
	ErrEmptyFile = fmt.Errorf("%w: CSV file is empty", domain.ErrValidation)

	// ErrNoValidRows is returned when no data row survives mapping.
	ErrNoValidRows = fmt.Errorf("%w: no valid rows found in CSV", domain.ErrValidation)
)

// HeaderError reports a header row that does not match the schema.
type HeaderError struct {
	Expected []string
	Got      []string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("%s: invalid CSV header, expected: %s",
		domain.ErrValidation, strings.Join(e.Expected, ","))
}

// Unwrap lets errors.Is(err, domain.ErrValidation) match a HeaderError.
func (e *HeaderError) Unwrap() error { return domain.ErrValidation }

// Schema is the fixed, ordered column layout accepted by the importer.
type Schema struct {
	columns []string
	index   map[string]int
}

// NewSchema returns the import schema. The image_url column sits between
// forms and dosage and is present only when includeImageURL is set.
func NewSchema(includeImageURL bool) Schema {
	cols := []string{ColName, ColCategory, ColBenefits, ColUsedFor, ColForms}
	if includeImageURL {
		cols = append(cols, ColImageURL)
	}
	cols = append(cols, ColDosage, ColPrecautions)

	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		idx[c] = i
	}
	return Schema{columns: cols, index: idx}
}

// Columns returns a copy of the header in file order.
func (s Schema) Columns() []string {
	return append([]string(nil), s.columns...)
}

// HasImageURL reports whether the schema carries the image_url column.
func (s Schema) HasImageURL() bool {
	_, ok := s.index[ColImageURL]
	return ok
}

// ValidateHeader compares a tokenized header row with the schema.
// Cells are trimmed and case-folded; order and length must match exactly.
func (s Schema) ValidateHeader(cells []string) error {
	if len(cells) != len(s.columns) {
		return &HeaderError{Expected: s.Columns(), Got: cells}
	}
	for i, c := range cells {
		if strings.ToLower(strings.TrimSpace(c)) != s.columns[i] {
			return &HeaderError{Expected: s.Columns(), Got: cells}
		}
	}
	return nil
}

// MapRow converts one tokenized data row into a Herb.
// It returns false when the row has fewer cells than the header or when
// name, category or dosage is empty. CreatedAt is left for the store.
func (s Schema) MapRow(cells []string) (domain.Herb, bool) {
	if len(cells) < len(s.columns) {
		return domain.Herb{}, false
	}
	cell := func(col string) string {
		return strings.TrimSpace(cells[s.index[col]])
	}

	h := domain.Herb{
		Name:        cell(ColName),
		Category:    cell(ColCategory),
		Benefits:    domain.SplitTags(cell(ColBenefits)),
		UsedFor:     domain.SplitTags(cell(ColUsedFor)),
		Forms:       domain.SplitTags(cell(ColForms)),
		Dosage:      cell(ColDosage),
		Precautions: domain.SplitTags(cell(ColPrecautions)),
	}
	if s.HasImageURL() {
		h.ImageURL = cell(ColImageURL)
	}
	if !h.HasRequired() {
		return domain.Herb{}, false
	}
	return h, true
}

// Result is the outcome of parsing an upload.
// Rows counts data rows after the header; Skipped counts the rows MapRow rejected.
type Result struct {
	Herbs   []domain.Herb
	Rows    int
	Skipped int
}

// Parse runs the whole pipeline short of committing: split, header check,
// tokenize and map every data row.
func (s Schema) Parse(text string) (Result, error) {
	rows := SplitRows(text)
	if len(rows) == 0 {
		return Result{}, ErrEmptyFile
	}
	if err := s.ValidateHeader(Tokenize(rows[0])); err != nil {
		return Result{}, err
	}

	res := Result{Rows: len(rows) - 1}
	for _, row := range rows[1:] {
		h, ok := s.MapRow(Tokenize(row))
		if !ok {
			res.Skipped++
			continue
		}
		res.Herbs = append(res.Herbs, h)
	}
	if len(res.Herbs) == 0 {
		return res, ErrNoValidRows
	}
	return res, nil
}

// IsHeaderError reports whether err is, or wraps, a *HeaderError.
func IsHeaderError(err error) bool {
	var he *HeaderError
	return errors.As(err, &he)
}
