package service

import (
	"context"
	"fmt"

	"avihayshai/hypertrophy-toolbox/internal/config"
	"avihayshai/hypertrophy-toolbox/internal/domain"
	"avihayshai/hypertrophy-toolbox/internal/planner"
	"avihayshai/hypertrophy-toolbox/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PersistenceError reports a failed routine write during plan persistence.
// Routines listed in Persisted were already committed: the write guarantee is
// per routine, not per plan, so earlier routines stay written.
type PersistenceError struct {
	Routine   string
	Persisted []string
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist routine %s (routines %v already written): %v", e.Routine, e.Persisted, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// GenerateResult bundles a generated plan with its persistence outcome.
type GenerateResult struct {
	Plan      *planner.GeneratedPlan
	Persisted bool
}

// PlannerService runs plan generation and the read-only analysis endpoints.
type PlannerService interface {
	Generate(ctx context.Context, userID primitive.ObjectID, cfg planner.GenerateConfig) (*GenerateResult, error)
	Coverage(ctx context.Context, userID primitive.ObjectID) (*planner.CoverageReport, error)
	Progression(ctx context.Context, userID primitive.ObjectID, exerciseName string, experience planner.Experience) (*planner.Suggestion, error)
}

// plannerService implements the PlannerService interface.
type plannerService struct {
	exerciseRepo   repository.ExerciseRepository
	selectionRepo  repository.SelectionRepository
	workoutLogRepo repository.WorkoutLogRepository

	limits             planner.Limits
	progressionPolicy  planner.ProgressionPolicy
	progressionHistory int
}

// NewPlannerService creates a new instance of plannerService with tunables
// taken from the planner config section.
func NewPlannerService(
	exerciseRepo repository.ExerciseRepository,
	selectionRepo repository.SelectionRepository,
	workoutLogRepo repository.WorkoutLogRepository,
	plannerCfg config.PlannerConfig,
) PlannerService {
	limits := planner.Limits{
		RoutineSetBudget: plannerCfg.RoutineSetBudget,
		RoutineSetFloor:  plannerCfg.RoutineSetFloor,
	}
	if limits.RoutineSetBudget == 0 {
		limits = planner.DefaultLimits()
	}

	policy := planner.ProgressionPolicy{
		SmallIncrement:      plannerCfg.SmallIncrement,
		LargeIncrement:      plannerCfg.LargeIncrement,
		SmallIncrementBelow: plannerCfg.SmallIncrementBelow,
		DeloadPercent:       plannerCfg.DeloadPercent,
		AssumeEffortOK:      plannerCfg.AssumeEffortOK,
	}
	if policy.SmallIncrement == 0 {
		policy = planner.DefaultProgressionPolicy()
		policy.AssumeEffortOK = plannerCfg.AssumeEffortOK
	}

	history := plannerCfg.ProgressionHistory
	if history <= 0 {
		history = 6
	}

	return &plannerService{
		exerciseRepo:       exerciseRepo,
		selectionRepo:      selectionRepo,
		workoutLogRepo:     workoutLogRepo,
		limits:             limits,
		progressionPolicy:  policy,
		progressionHistory: history,
	}
}

// Generate runs one generation request end to end: loads the candidate pool,
// loads existing selections for merge mode, runs the pure generator, and
// persists the result routine by routine when requested. Each routine is
// written in its own transaction; a failure mid-plan returns a
// *PersistenceError naming what was already committed.
func (s *plannerService) Generate(ctx context.Context, userID primitive.ObjectID, cfg planner.GenerateConfig) (*GenerateResult, error) {
	if userID == primitive.NilObjectID {
		return nil, fmt.Errorf("user ID is required")
	}

	pool, err := s.exerciseRepo.List(ctx, repository.ExerciseFilter{})
	if err != nil {
		return nil, err
	}

	var existing []domain.UserSelection
	if cfg.MergeMode {
		existing, err = s.selectionRepo.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	plan, err := planner.Generate(cfg, pool, existing, s.limits)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{Plan: plan}
	if !cfg.Persist {
		return result, nil
	}

	existingByRoutine := make(map[string][]domain.UserSelection)
	for _, sel := range existing {
		existingByRoutine[sel.Routine] = append(existingByRoutine[sel.Routine], sel)
	}

	var persisted []string
	for _, label := range plan.RoutineOrder {
		items := plan.Routines[label]
		if cfg.MergeMode && len(items) == 0 {
			// Nothing new for this routine; leave the stored rows alone.
			continue
		}

		rows := existingByRoutine[label]
		if !cfg.MergeMode {
			rows = nil
		}
		order := len(rows)
		for _, item := range items {
			rows = append(rows, selectionFromItem(item, order))
			order++
		}

		if err := s.selectionRepo.ReplaceRoutine(ctx, userID, label, rows); err != nil {
			return result, &PersistenceError{Routine: label, Persisted: persisted, Err: err}
		}
		persisted = append(persisted, label)
	}

	result.Persisted = true
	return result, nil
}

func selectionFromItem(item planner.PlanItem, order int) domain.UserSelection {
	rir := item.Prescription.RIR
	return domain.UserSelection{
		Routine:            item.Routine,
		ExerciseName:       item.Exercise.Name,
		MovementPattern:    string(item.Pattern),
		MovementSubpattern: item.Exercise.MovementSubpattern,
		Mechanic:           item.Exercise.Mechanic,
		PrimaryMuscle:      item.Exercise.PrimaryMuscle,
		Role:               domain.SlotRole(item.Role),
		Sets:               item.Prescription.Sets,
		MinReps:            item.Prescription.MinReps,
		MaxReps:            item.Prescription.MaxReps,
		RIR:                &rir,
		ExerciseOrder:      order,
	}
}

// Coverage analyzes the user's persisted plan.
func (s *plannerService) Coverage(ctx context.Context, userID primitive.ObjectID) (*planner.CoverageReport, error) {
	selections, err := s.selectionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	report := planner.AnalyzeCoverage(selections, s.limits)
	return &report, nil
}

// Progression evaluates the double-progression engine over the exercise's
// recent log history.
func (s *plannerService) Progression(ctx context.Context, userID primitive.ObjectID, exerciseName string, experience planner.Experience) (*planner.Suggestion, error) {
	if exerciseName == "" {
		return nil, fmt.Errorf("%w: exercise name is required", ErrValidationFailed)
	}
	if experience == "" {
		experience = planner.ExperienceIntermediate
	}
	if !planner.ValidExperience(experience) {
		return nil, fmt.Errorf("%w: unknown experience level %q", ErrValidationFailed, experience)
	}

	history, err := s.workoutLogRepo.ListByExercise(ctx, userID, exerciseName, s.progressionHistory)
	if err != nil {
		return nil, err
	}

	suggestion := planner.SuggestProgression(history, experience, s.progressionPolicy)
	return &suggestion, nil
}
