// Package csvimport turns an uploaded CSV file into validated catalog entries.
//
// The package is pure: it never touches the store. The service layer runs the
// pipeline and commits the resulting groups.
//
//	schema := csvimport.NewSchema(false)
//	res, err := schema.Parse(string(body))
//	if err != nil {
//	    // ErrEmptyFile, *HeaderError or ErrNoValidRows; nothing was written.
//	}
//	for _, group := range csvimport.Partition(res.Herbs, csvimport.MaxBatchSize) {
//	    // commit group atomically, one after another
//	}
//
// Rows are tokenized one line at a time, so quoted fields cannot span lines.
// Rows shorter than the header, and rows missing name, category or dosage, are
// skipped and only counted.
package csvimport
