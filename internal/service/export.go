package service

import (
	"context"
	"fmt"

	"github.com/ayush-assistant/herbcatalog/internal/csvimport"
	"github.com/ayush-assistant/herbcatalog/internal/domain"
	"github.com/ayush-assistant/herbcatalog/internal/repo"
)

// ExportService produces a full export of the catalog in the import layout,
// read straight from the store rather than the search index.
type ExportService struct {
	repo   repo.HerbRepo
	schema csvimport.Schema
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(r repo.HerbRepo, schema csvimport.Schema) *ExportService {
	return &ExportService{repo: r, schema: schema}
}

// Export returns every herb, newest first.
func (s *ExportService) Export(ctx context.Context) ([]domain.Herb, error) {
	herbs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	return herbs, nil
}

// Records returns the export as CSV records: the import header followed by one
// record per herb. Feeding the records back through an import recreates the
// same herbs.
func (s *ExportService) Records(ctx context.Context) ([][]string, error) {
	herbs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Records: %w", err)
	}

	records := make([][]string, 0, len(herbs)+1)
	records = append(records, s.schema.Columns())
	for _, h := range herbs {
		records = append(records, s.schema.Record(h))
	}
	return records, nil
}
