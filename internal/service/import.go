package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ayush-assistant/herbcatalog/internal/csvimport"
	"github.com/ayush-assistant/herbcatalog/internal/domain"
	"github.com/ayush-assistant/herbcatalog/internal/repo"
)

// ImportError reports a store failure part-way through an import.
// Result holds what was committed before the failing group; those groups are
// not rolled back.
type ImportError struct {
	Result domain.ImportResult
	Err    error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import failed after %d herbs in %d batches: %v",
		e.Result.Imported, e.Result.Batches, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }

// ImportService runs the CSV import pipeline against the store.
type ImportService struct {
	repo      repo.HerbRepo
	schema    csvimport.Schema
	batchSize int
	logger    *slog.Logger
}

// NewImportService constructs an ImportService. batchSize is clamped to
// [1, csvimport.MaxBatchSize]; zero selects the maximum.
func NewImportService(r repo.HerbRepo, schema csvimport.Schema, batchSize int, logger *slog.Logger) *ImportService {
	if batchSize <= 0 || batchSize > csvimport.MaxBatchSize {
		batchSize = csvimport.MaxBatchSize
	}
	return &ImportService{repo: r, schema: schema, batchSize: batchSize, logger: logger}
}

// Schema returns the column layout imports are validated against.
func (s *ImportService) Schema() csvimport.Schema { return s.schema }

// Template returns the downloadable CSV template for the configured schema.
func (s *ImportService) Template() []byte { return s.schema.Template() }

// Import parses text and commits the valid herbs group by group, each group in
// its own transaction. Parse failures are validation errors and write nothing.
// A failing group stops the import with an *ImportError.
func (s *ImportService) Import(ctx context.Context, text string) (domain.ImportResult, error) {
	parsed, err := s.schema.Parse(text)
	if err != nil {
		return domain.ImportResult{}, fmt.Errorf("service.ImportService.Import: %w", err)
	}

	result := domain.ImportResult{Rows: parsed.Rows, Skipped: parsed.Skipped}
	groups := csvimport.Partition(parsed.Herbs, s.batchSize)

	for i, group := range groups {
		if err := s.repo.CreateBatch(ctx, group); err != nil {
			s.logger.ErrorContext(ctx, "import batch failed",
				"batch", i+1,
				"batches", len(groups),
				"imported", result.Imported,
				"error", err,
			)
			return result, &ImportError{Result: result, Err: fmt.Errorf("service.ImportService.Import: %w", err)}
		}
		result.Imported += len(group)
		result.Batches++
		s.logger.InfoContext(ctx, "import batch committed",
			"batch", i+1,
			"batches", len(groups),
			"size", len(group),
		)
	}

	s.logger.InfoContext(ctx, "import finished",
		"rows", result.Rows,
		"imported", result.Imported,
		"skipped", result.Skipped,
		"batches", result.Batches,
	)
	return result, nil
}
