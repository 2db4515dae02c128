// Package domain contains the core data types for the herbal catalog service.
// This package has no dependencies beyond uuid and is imported by every other
// internal package (csvimport, catalog, repo, service, handler).
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Herb is a single catalog entry.
// ID and CreatedAt are assigned by the store on insert and never set by clients.
// Entries are never updated in place; a correction is a delete plus a create.
// No field may contain a line break: the import format is one record per line.
type Herb struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name" validate:"required,max=200,singleline"`
	Category    string    `json:"category" validate:"required,max=100,singleline"`
	Benefits    []string  `json:"benefits" validate:"dive,singleline"`
	UsedFor     []string  `json:"used_for" validate:"dive,singleline"`
	Forms       []string  `json:"forms" validate:"dive,singleline"`
	ImageURL    string    `json:"image_url,omitempty" validate:"omitempty,singleline,url"`
	Dosage      string    `json:"dosage" validate:"required,singleline"`
	Precautions []string  `json:"precautions" validate:"dive,singleline"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HasRequired reports whether name, category and dosage are all non-blank.
func (h Herb) HasRequired() bool {
	return strings.TrimSpace(h.Name) != "" &&
		strings.TrimSpace(h.Category) != "" &&
		strings.TrimSpace(h.Dosage) != ""
}

// SplitTags parses delimited multi-value text into a list of tags.
// The delimiter is "|" when the text contains one, otherwise ",".
// Items are trimmed and empty items are dropped. The result is never nil.
func SplitTags(s string) []string {
	sep := ","
	if strings.Contains(s, "|") {
		sep = "|"
	}
	out := []string{}
	for _, part := range strings.Split(s, sep) {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
