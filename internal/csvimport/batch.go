package csvimport

import "github.com/ayush-assistant/herbcatalog/internal/domain"

// MaxBatchSize is the largest group committed in one atomic write.
// It keeps headroom under the 500-operation ceiling of hosted document stores
// the import files were originally prepared for.
const MaxBatchSize = 450

// Partition splits herbs into consecutive groups of at most size entries.
// A size outside (0, MaxBatchSize] is treated as MaxBatchSize. The groups
// share the input's backing array; concatenated in order they equal herbs.
func Partition(herbs []domain.Herb, size int) [][]domain.Herb {
	if size <= 0 || size > MaxBatchSize {
		size = MaxBatchSize
	}
	groups := make([][]domain.Herb, 0, (len(herbs)+size-1)/size)
	for start := 0; start < len(herbs); start += size {
		end := min(start+size, len(herbs))
		groups = append(groups, herbs[start:end:end])
	}
	return groups
}
