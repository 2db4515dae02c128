package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ayush-assistant/herbcatalog/internal/catalog"
	"github.com/ayush-assistant/herbcatalog/internal/domain"
	"github.com/ayush-assistant/herbcatalog/internal/repo"
)

// WatchRetryDelay is how long Watch waits before listening again after the
// change feed fails.
const WatchRetryDelay = 2 * time.Second

// SearchResult is one page of a catalog search.
// Matched counts every entry passing the filter; Herbs holds only the page.
type SearchResult struct {
	Herbs   []domain.Herb
	Matched int
	Summary catalog.Summary
	Page    domain.PaginationParams
	Loaded  bool
}

// CatalogService serves searches from an in-memory index of the whole catalog.
// The index is replaced wholesale on every refresh; readers never lock.
type CatalogService struct {
	repo   repo.HerbRepo
	logger *slog.Logger
	index  atomic.Pointer[catalog.Index]
	loaded atomic.Bool
}

// NewCatalogService constructs a CatalogService holding an empty index.
func NewCatalogService(r repo.HerbRepo, logger *slog.Logger) *CatalogService {
	s := &CatalogService{repo: r, logger: logger}
	s.index.Store(catalog.NewIndex(nil))
	return s
}

// Refresh reloads the whole catalog from the store and swaps the index.
// On error the previous index stays in place.
func (s *CatalogService) Refresh(ctx context.Context) error {
	herbs, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("service.CatalogService.Refresh: %w", err)
	}
	s.index.Store(catalog.NewIndex(herbs))
	s.loaded.Store(true)
	return nil
}

// Loaded reports whether at least one refresh has succeeded.
func (s *CatalogService) Loaded() bool { return s.loaded.Load() }

// Snapshot returns the current index.
func (s *CatalogService) Snapshot() *catalog.Index { return s.index.Load() }

// Search filters the current index and returns the requested page.
func (s *CatalogService) Search(q catalog.Query, p domain.PaginationParams) SearchResult {
	ix := s.index.Load()
	matched := ix.Filter(q)
	start, end := p.Window(len(matched))

	return SearchResult{
		Herbs:   matched[start:end],
		Matched: len(matched),
		Summary: catalog.Summarize(len(matched), ix.Len()),
		Page:    p,
		Loaded:  s.Loaded(),
	}
}

// Categories returns the distinct categories of the current index.
func (s *CatalogService) Categories() []string {
	return s.index.Load().Categories()
}

// Watch refreshes once, then refreshes after every change notification until
// ctx is done. When the feed fails it waits WatchRetryDelay, refreshes to pick
// up anything missed, and listens again. It returns nil on cancellation.
func (s *CatalogService) Watch(ctx context.Context, feed repo.ChangeFeed) error {
	for {
		if err := s.Refresh(ctx); err != nil && ctx.Err() == nil {
			s.logger.ErrorContext(ctx, "catalog refresh failed", "error", err)
		} else if err == nil {
			s.logger.InfoContext(ctx, "catalog refreshed", "herbs", s.Snapshot().Len())
		}

		err := feed.Listen(ctx, func(op string) {
			if err := s.Refresh(ctx); err != nil {
				s.logger.ErrorContext(ctx, "catalog refresh failed", "op", op, "error", err)
				return
			}
			s.logger.DebugContext(ctx, "catalog refreshed", "op", op, "herbs", s.Snapshot().Len())
		})
		if ctx.Err() != nil {
			return nil
		}
		s.logger.WarnContext(ctx, "change feed lost, retrying", "error", err, "delay", WatchRetryDelay)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(WatchRetryDelay):
		}
	}
}
