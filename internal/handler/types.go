package handler

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/ayush-assistant/herbcatalog/internal/domain"
)

// Request and response bodies. Field names follow openapi.yaml.

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// Herb is the API representation of a catalog entry.
type Herb struct {
	Id          openapi_types.UUID `json:"id"`
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Benefits    []string           `json:"benefits"`
	UsedFor     []string           `json:"used_for"`
	Forms       []string           `json:"forms"`
	ImageUrl    *string            `json:"image_url,omitempty"`
	Dosage      string             `json:"dosage"`
	Precautions []string           `json:"precautions"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// HerbInput is the body of POST /herbs. Multi-value fields are delimited
// text, split the same way as CSV cells.
type HerbInput struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Benefits    string  `json:"benefits"`
	UsedFor     string  `json:"used_for"`
	Forms       string  `json:"forms"`
	ImageUrl    *string `json:"image_url,omitempty"`
	Dosage      string  `json:"dosage"`
	Precautions string  `json:"precautions"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Summary is the "Showing K of N" projection of a search.
type Summary struct {
	Showing int    `json:"showing"`
	Total   int    `json:"total"`
	Empty   bool   `json:"empty"`
	Text    string `json:"text"`
}

// HerbList is the body of GET /herbs.
type HerbList struct {
	Data       []Herb     `json:"data"`
	Pagination Pagination `json:"pagination"`
	Summary    Summary    `json:"summary"`
	Loaded     bool       `json:"loaded"`
}

// Category is one entry of GET /categories.
type Category struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryList is the body of GET /categories.
type CategoryList struct {
	Data []Category `json:"data"`
}

// ImportResponse is the body of a successful POST /herbs/import.
type ImportResponse struct {
	Rows     int    `json:"rows"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	Batches  int    `json:"batches"`
	Message  string `json:"message"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    openapi_types.Email `json:"email"`
	Password string              `json:"password"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ChatRequest is the body of POST /chat/intercept.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse tells the widget whether to answer locally or pass through.
type ChatResponse struct {
	Handled bool                `json:"handled"`
	HerbId  *openapi_types.UUID `json:"herb_id,omitempty"`
	Text    *string             `json:"text,omitempty"`
	Html    *string             `json:"html,omitempty"`
}

// herbToResponse maps a domain.Herb to its API representation.
func herbToResponse(h domain.Herb) Herb {
	out := Herb{
		Id:          h.ID,
		Name:        h.Name,
		Category:    h.Category,
		Benefits:    nonNil(h.Benefits),
		UsedFor:     nonNil(h.UsedFor),
		Forms:       nonNil(h.Forms),
		Dosage:      h.Dosage,
		Precautions: nonNil(h.Precautions),
		CreatedAt:   h.CreatedAt,
	}
	if h.ImageURL != "" {
		out.ImageUrl = &h.ImageURL
	}
	return out
}

// inputToHerb maps a create request to a domain.Herb.
func inputToHerb(in HerbInput) domain.Herb {
	h := domain.Herb{
		Name:        in.Name,
		Category:    in.Category,
		Benefits:    domain.SplitTags(in.Benefits),
		UsedFor:     domain.SplitTags(in.UsedFor),
		Forms:       domain.SplitTags(in.Forms),
		Dosage:      in.Dosage,
		Precautions: domain.SplitTags(in.Precautions),
	}
	if in.ImageUrl != nil {
		h.ImageURL = *in.ImageUrl
	}
	return h
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
