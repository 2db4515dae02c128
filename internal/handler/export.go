package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
)

// exportFilename is the download name of a CSV export.
const exportFilename = "herbs_export.csv"

// ExportHerbs handles GET /herbs/export.
// It returns every herb read from the store. Use ?format=csv to receive CSV
// in the import layout (re-importable); default is JSON.
func (s *Server) ExportHerbs(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("format") {
	case "", "json":
		herbs, err := s.exports.Export(r.Context())
		if err != nil {
			s.writeError(w, r, err, "")
			return
		}
		out := make([]Herb, len(herbs))
		for i, h := range herbs {
			out[i] = herbToResponse(h)
		}
		writeJSON(w, http.StatusOK, out)
	case "csv":
		records, err := s.exports.Records(r.Context())
		if err != nil {
			s.writeError(w, r, err, "")
			return
		}
		body, err := encodeCSV(records)
		if err != nil {
			s.writeError(w, r, err, "")
			return
		}
		writeCSV(w, exportFilename, body)
	default:
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("format must be csv or json"))
	}
}

// encodeCSV writes records with encoding/csv, quoting cells as needed.
func encodeCSV(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
