// Package service contains the business logic for the herbal catalog.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ayush-assistant/herbcatalog/internal/domain"
	"github.com/ayush-assistant/herbcatalog/internal/repo"
)

// HerbService implements single-record operations on catalog entries.
type HerbService struct {
	repo     repo.HerbRepo
	validate *validator.Validate
}

// NewHerbService constructs a HerbService backed by the provided HerbRepo.
func NewHerbService(r repo.HerbRepo) *HerbService {
	return &HerbService{repo: r, validate: newValidator()}
}

// Create normalises and validates a herb, then persists it.
// Whitespace-only required fields are treated as empty.
func (s *HerbService) Create(ctx context.Context, herb domain.Herb) (domain.Herb, error) {
	herb = normalize(herb)
	if err := s.check(herb); err != nil {
		return domain.Herb{}, fmt.Errorf("service.HerbService.Create: %w", err)
	}

	created, err := s.repo.Create(ctx, herb)
	if err != nil {
		return domain.Herb{}, fmt.Errorf("service.HerbService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single herb by ID.
func (s *HerbService) GetByID(ctx context.Context, id uuid.UUID) (domain.Herb, error) {
	herb, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Herb{}, fmt.Errorf("service.HerbService.GetByID: %w", err)
	}
	return herb, nil
}

// Delete removes a herb by ID.
func (s *HerbService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.HerbService.Delete: %w", err)
	}
	return nil
}

// check runs the struct validation and reports the first failing field as a
// domain.ErrValidation.
func (s *HerbService) check(herb domain.Herb) error {
	err := s.validate.Struct(herb)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", domain.ErrValidation, fe.Field())
	case "url":
		return fmt.Errorf("%w: %s must be an absolute URL", domain.ErrValidation, fe.Field())
	case "singleline":
		return fmt.Errorf("%w: %s must not contain line breaks", domain.ErrValidation, fe.Field())
	case "max":
		return fmt.Errorf("%w: %s must be at most %s characters", domain.ErrValidation, fe.Field(), fe.Param())
	default:
		return fmt.Errorf("%w: %s is invalid", domain.ErrValidation, fe.Field())
	}
}

// newValidator returns a validator that reports fields by their JSON names.
// It registers "singleline", which rejects CR and LF.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("singleline", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), "\r\n")
	})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// normalize trims scalar fields and re-cleans tag lists so stored entries
// have no surrounding whitespace or empty tags.
func normalize(h domain.Herb) domain.Herb {
	h.Name = strings.TrimSpace(h.Name)
	h.Category = strings.TrimSpace(h.Category)
	h.ImageURL = strings.TrimSpace(h.ImageURL)
	h.Dosage = strings.TrimSpace(h.Dosage)
	h.Benefits = cleanTags(h.Benefits)
	h.UsedFor = cleanTags(h.UsedFor)
	h.Forms = cleanTags(h.Forms)
	h.Precautions = cleanTags(h.Precautions)
	return h
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
