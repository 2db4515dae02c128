package handler

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/ayush-assistant/herbcatalog/internal/middleware"
)

// templateFilename is the download name of the CSV template.
const templateFilename = "herbs_template.csv"

// ImportHerbs handles POST /herbs/import.
// The CSV arrives either as the "file" part of a multipart form or as the raw
// request body (text/csv).
func (s *Server) ImportHerbs(w http.ResponseWriter, r *http.Request) {
	text, err := s.readUpload(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: ErrorDetail{
				Code: "payload_too_large", Message: "request body too large",
			}})
			return
		}
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	res, err := s.imports.Import(r.Context(), text)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	email, _ := middleware.AdminEmail(r.Context())
	s.logger.InfoContext(r.Context(), "herbs imported", "email", email, "imported", res.Imported, "skipped", res.Skipped)

	writeJSON(w, http.StatusOK, ImportResponse{
		Rows:     res.Rows,
		Imported: res.Imported,
		Skipped:  res.Skipped,
		Batches:  res.Batches,
		Message:  fmt.Sprintf("Imported %d herbs", res.Imported),
	})
}

// GetImportTemplate handles GET /herbs/import/template.
func (s *Server) GetImportTemplate(w http.ResponseWriter, _ *http.Request) {
	writeCSV(w, templateFilename, s.imports.Template())
}

// readUpload returns the uploaded CSV text.
func (s *Server) readUpload(r *http.Request) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return "", fmt.Errorf("could not read the upload: %w", err)
		}
		return string(b), nil
	}

	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		return "", fmt.Errorf("could not read the upload: %w", err)
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		return "", errors.New("multipart upload must carry a \"file\" part")
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("could not read the upload: %w", err)
	}
	return string(b), nil
}

// writeCSV sends body as a CSV attachment named filename.
func writeCSV(w http.ResponseWriter, filename string, body []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
