package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"avihayshai/hypertrophy-toolbox/internal/domain"
	"avihayshai/hypertrophy-toolbox/internal/planner"
	"avihayshai/hypertrophy-toolbox/internal/repository"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrValidationFailed = errors.New("catalog validation failed")
)

// allowedFilterFields is the closed whitelist of catalog filter fields.
// Validation happens here, at the boundary, before any query document is
// built; the repository keeps its own translation map as a second gate.
var allowedFilterFields = map[string]bool{
	"name":                true,
	"primary_muscle":      true,
	"secondary_muscle":    true,
	"tertiary_muscle":     true,
	"equipment":           true,
	"mechanic":            true,
	"force":               true,
	"movement_pattern":    true,
	"movement_subpattern": true,
	"difficulty":          true,
}

// CatalogService manages the exercise catalog: seeding, filtered listing and
// the movement-pattern backfill job.
type CatalogService interface {
	SeedExercises(ctx context.Context, exercises []domain.Exercise) (int, error)
	GetExercise(ctx context.Context, name string) (*domain.Exercise, error)
	ListExercises(ctx context.Context, rawFilter map[string]string) ([]domain.Exercise, error)
	BackfillPatterns(ctx context.Context) (int, error)
	AllowedFilterFields() []string
}

// catalogService implements the CatalogService interface.
type catalogService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewCatalogService creates a new instance of catalogService.
func NewCatalogService(exerciseRepo repository.ExerciseRepository) CatalogService {
	return &catalogService{exerciseRepo: exerciseRepo}
}

// SeedExercises bulk-imports catalog rows. Rows arriving without movement
// pattern tags are classified on the way in, so the catalog never holds
// untagged rows after a seed.
func (s *catalogService) SeedExercises(ctx context.Context, exercises []domain.Exercise) (int, error) {
	for i := range exercises {
		if exercises[i].Name == "" {
			return 0, fmt.Errorf("%w: exercise at index %d has no name", ErrValidationFailed, i)
		}
		if exercises[i].MovementPattern == "" {
			pattern, subpattern := planner.Classify(exercises[i].Name, exercises[i].PrimaryMuscle)
			exercises[i].MovementPattern = string(pattern)
			exercises[i].MovementSubpattern = subpattern
		}
	}
	return s.exerciseRepo.Upsert(ctx, exercises)
}

// GetExercise retrieves a single catalog row by name.
func (s *catalogService) GetExercise(ctx context.Context, name string) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// ListExercises returns catalog rows matching the filter. Unknown filter
// fields are rejected up front rather than ignored, so a typoed query fails
// loudly instead of returning the whole catalog.
func (s *catalogService) ListExercises(ctx context.Context, rawFilter map[string]string) ([]domain.Exercise, error) {
	fields := make(map[string]string, len(rawFilter))
	for field, value := range rawFilter {
		if !allowedFilterFields[field] {
			return nil, fmt.Errorf("%w: unknown filter field %q", ErrValidationFailed, field)
		}
		if value == "" {
			continue
		}
		fields[field] = value
	}

	return s.exerciseRepo.List(ctx, repository.ExerciseFilter{Fields: fields})
}

// BackfillPatterns classifies every untagged catalog row and persists the
// tags. Classification is deterministic, so re-running the job is harmless.
func (s *catalogService) BackfillPatterns(ctx context.Context) (int, error) {
	untagged, err := s.exerciseRepo.ListUntagged(ctx)
	if err != nil {
		return 0, err
	}

	tagged := 0
	for _, ex := range untagged {
		pattern, subpattern := planner.Classify(ex.Name, ex.PrimaryMuscle)
		if err := s.exerciseRepo.SetMovementPattern(ctx, ex.Name, string(pattern), subpattern); err != nil {
			return tagged, err
		}
		tagged++
	}
	return tagged, nil
}

// AllowedFilterFields lists the whitelisted filter fields, sorted.
func (s *catalogService) AllowedFilterFields() []string {
	fields := make([]string, 0, len(allowedFilterFields))
	for f := range allowedFilterFields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
