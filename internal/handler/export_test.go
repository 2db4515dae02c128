package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush-assistant/herbcatalog/internal/csvimport"
	"github.com/ayush-assistant/herbcatalog/internal/domain"
	"github.com/ayush-assistant/herbcatalog/internal/handler"
)

// exportServicer builds records the way ExportService does so the CSV body
// can be checked against the importer.
func exportServicer(herbs []domain.Herb) *mockExportServicer {
	schema := csvimport.NewSchema(false)
	return &mockExportServicer{
		export: func(_ context.Context) ([]domain.Herb, error) { return herbs, nil },
		records: func(_ context.Context) ([][]string, error) {
			out := [][]string{schema.Columns()}
			for _, h := range herbs {
				out = append(out, schema.Record(h))
			}
			return out, nil
		},
	}
}

func TestExportHerbs_DefaultJSON(t *testing.T) {
	h := herbFixture()
	rec := httptest.NewRecorder()
	newHTTPHandler(handler.Deps{Exports: exportServicer([]domain.Herb{h})}).
		ServeHTTP(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/herbs/export", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var rows []handler.Herb
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	require.Len(t, rows, 1)
	assert.Equal(t, h.Name, rows[0].Name)
}

func TestExportHerbs_CSV_ReimportsToSameHerbs(t *testing.T) {
	a := herbFixture()
	b := herbFixture()
	b.Name = "Triphala"
	b.Category = "Digestive"
	b.Benefits = []string{"Digestion, regularity"}
	herbs := []domain.Herb{a, b}

	rec := httptest.NewRecorder()
	newHTTPHandler(handler.Deps{Exports: exportServicer(herbs)}).
		ServeHTTP(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/herbs/export?format=csv", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Equal(t, `attachment; filename=herbs_export.csv`, rec.Header().Get("Content-Disposition"))

	res, err := csvimport.NewSchema(false).Parse(rec.Body.String())
	require.NoError(t, err)
	require.Len(t, res.Herbs, 2)
	for i := range herbs {
		assert.Equal(t, herbs[i].Name, res.Herbs[i].Name)
		assert.Equal(t, herbs[i].Benefits, res.Herbs[i].Benefits)
		assert.Equal(t, herbs[i].Precautions, res.Herbs[i].Precautions)
	}
}

func TestExportHerbs_UnknownFormat(t *testing.T) {
	rec := httptest.NewRecorder()
	newHTTPHandler(handler.Deps{Exports: exportServicer(nil)}).
		ServeHTTP(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/herbs/export?format=xml", nil)))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestExportHerbs_StoreError(t *testing.T) {
	svc := &mockExportServicer{
		export: func(_ context.Context) ([]domain.Herb, error) { return nil, errDB },
	}

	rec := httptest.NewRecorder()
	newHTTPHandler(handler.Deps{Exports: svc}).
		ServeHTTP(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/herbs/export", nil)))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestExportHerbs_RequiresAdmin(t *testing.T) {
	rec := httptest.NewRecorder()
	newHTTPHandler(handler.Deps{Exports: exportServicer(nil)}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/herbs/export", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
