package domain

// ImportResult summarises a CSV import.
//
// Rows counts every data row after the header. Imported counts herbs that were
// committed to the store, Skipped counts rows dropped as malformed or missing a
// required field, and Batches counts the groups committed.
type ImportResult struct {
	Rows     int
	Imported int
	Skipped  int
	Batches  int
}
