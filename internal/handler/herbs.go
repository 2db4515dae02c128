package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/ayush-assistant/herbcatalog/internal/catalog"
	"github.com/ayush-assistant/herbcatalog/internal/domain"
)

// ListHerbs handles GET /herbs.
// Supports ?q= (substring over every text field), ?category= (exact match),
// and ?page= / ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) ListHerbs(w http.ResponseWriter, r *http.Request) {
	var (
		q, category *string
		page, limit *int
	)
	query := r.URL.Query()
	params := []struct {
		name string
		dest any
	}{
		{"q", &q},
		{"category", &category},
		{"page", &page},
		{"limit", &limit},
	}
	for _, p := range params {
		if err := runtime.BindQueryParameter("form", true, false, p.name, query, p.dest); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, requestBody(fmt.Sprintf("invalid %s parameter", p.name)))
			return
		}
	}

	paging := domain.NewPaginationParams(page, limit)
	res := s.catalog.Search(catalog.Query{Text: deref(q), Category: deref(category)}, paging)

	data := make([]Herb, len(res.Herbs))
	for i, h := range res.Herbs {
		data[i] = herbToResponse(h)
	}
	writeJSON(w, http.StatusOK, HerbList{
		Data: data,
		Pagination: Pagination{
			Page:  paging.Page,
			Limit: paging.Limit,
			Total: res.Matched,
		},
		Summary: Summary{
			Showing: res.Summary.Showing,
			Total:   res.Summary.Total,
			Empty:   res.Summary.Empty,
			Text:    res.Summary.Text,
		},
		Loaded: res.Loaded,
	})
}

// ListCategories handles GET /categories.
func (s *Server) ListCategories(w http.ResponseWriter, _ *http.Request) {
	names := s.catalog.Categories()
	data := make([]Category, len(names))
	for i, n := range names {
		data[i] = Category{Name: n, Slug: slug.Make(n)}
	}
	writeJSON(w, http.StatusOK, CategoryList{Data: data})
}

// GetHerb handles GET /herbs/{id}. It reads the store, not the search index.
func (s *Server) GetHerb(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	herb, err := s.herbs.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "herb not found")
		return
	}
	writeJSON(w, http.StatusOK, herbToResponse(herb))
}

// CreateHerb handles POST /herbs.
func (s *Server) CreateHerb(w http.ResponseWriter, r *http.Request) {
	var in HerbInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body must be a JSON herb"))
		return
	}

	created, err := s.herbs.Create(r.Context(), inputToHerb(in))
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, herbToResponse(created))
}

// DeleteHerb handles DELETE /herbs/{id}.
func (s *Server) DeleteHerb(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.herbs.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "herb not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID binds the {id} path parameter. On failure it writes a 422 and
// returns false.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("id must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
