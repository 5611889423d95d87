package service

import (
	"context"
	"errors"
	"fmt"

	"avihayshai/hypertrophy-toolbox/internal/domain"
	"avihayshai/hypertrophy-toolbox/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrSelectionNotFound = errors.New("plan selection not found")
	ErrBackupNotFound    = errors.New("plan backup not found")
	ErrSupersetInvalid   = errors.New("a superset links exactly two selections of the same routine")
)

// PlanService manages the user's persisted plan outside of generation:
// manual selection CRUD, superset linking and backup/restore.
type PlanService interface {
	ListSelections(ctx context.Context, userID primitive.ObjectID) ([]domain.UserSelection, error)
	AddSelection(ctx context.Context, userID primitive.ObjectID, sel domain.UserSelection) (*domain.UserSelection, error)
	UpdateSelection(ctx context.Context, userID, selectionID primitive.ObjectID, sets, minReps, maxReps, order int, rir *int, rpe, weight *float64) (*domain.UserSelection, error)
	DeleteSelection(ctx context.Context, userID, selectionID primitive.ObjectID) error

	LinkSuperset(ctx context.Context, userID, firstID, secondID primitive.ObjectID) (string, error)
	UnlinkSuperset(ctx context.Context, userID primitive.ObjectID, group string) error

	BackupPlan(ctx context.Context, userID primitive.ObjectID, name string) (*domain.PlanBackup, error)
	ListBackups(ctx context.Context, userID primitive.ObjectID) ([]domain.PlanBackup, error)
	RestorePlan(ctx context.Context, userID primitive.ObjectID, label string) (int, error)
	DeleteBackup(ctx context.Context, userID primitive.ObjectID, label string) error
}

// planService implements the PlanService interface.
type planService struct {
	selectionRepo repository.SelectionRepository
	exerciseRepo  repository.ExerciseRepository
	backupRepo    repository.BackupRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	selectionRepo repository.SelectionRepository,
	exerciseRepo repository.ExerciseRepository,
	backupRepo repository.BackupRepository,
) PlanService {
	return &planService{
		selectionRepo: selectionRepo,
		exerciseRepo:  exerciseRepo,
		backupRepo:    backupRepo,
	}
}

// ListSelections returns the user's whole plan.
func (s *planService) ListSelections(ctx context.Context, userID primitive.ObjectID) ([]domain.UserSelection, error) {
	return s.selectionRepo.ListByUser(ctx, userID)
}

// AddSelection appends one manually chosen exercise to a routine. The
// exercise must exist in the catalog; pattern and mechanic are denormalized
// from the catalog row.
func (s *planService) AddSelection(ctx context.Context, userID primitive.ObjectID, sel domain.UserSelection) (*domain.UserSelection, error) {
	if sel.Routine == "" || sel.ExerciseName == "" {
		return nil, fmt.Errorf("%w: routine and exercise name are required", ErrValidationFailed)
	}
	if sel.Sets < 1 || sel.MinReps < 1 || sel.MaxReps < sel.MinReps {
		return nil, fmt.Errorf("%w: sets and rep range must be positive with min <= max", ErrValidationFailed)
	}

	exercise, err := s.exerciseRepo.GetByName(ctx, sel.ExerciseName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	sel.UserID = userID
	sel.MovementPattern = exercise.MovementPattern
	sel.MovementSubpattern = exercise.MovementSubpattern
	sel.Mechanic = exercise.Mechanic
	sel.PrimaryMuscle = exercise.PrimaryMuscle
	if sel.Role == "" {
		sel.Role = domain.RoleAccessory
		if exercise.IsCompound() {
			sel.Role = domain.RoleMain
		}
	}
	sel.SupersetGroup = nil

	id, err := s.selectionRepo.Create(ctx, &sel)
	if err != nil {
		return nil, err
	}
	sel.ID = id
	return &sel, nil
}

// UpdateSelection edits the prescription of one plan row.
func (s *planService) UpdateSelection(ctx context.Context, userID, selectionID primitive.ObjectID, sets, minReps, maxReps, order int, rir *int, rpe, weight *float64) (*domain.UserSelection, error) {
	if sets < 1 || minReps < 1 || maxReps < minReps {
		return nil, fmt.Errorf("%w: sets and rep range must be positive with min <= max", ErrValidationFailed)
	}

	sel, err := s.selectionRepo.GetByID(ctx, userID, selectionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSelectionNotFound
		}
		return nil, err
	}

	sel.Sets = sets
	sel.MinReps = minReps
	sel.MaxReps = maxReps
	sel.ExerciseOrder = order
	sel.RIR = rir
	sel.RPE = rpe
	sel.Weight = weight

	if err := s.selectionRepo.Update(ctx, sel); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSelectionNotFound
		}
		return nil, err
	}
	return sel, nil
}

// DeleteSelection removes one plan row.
func (s *planService) DeleteSelection(ctx context.Context, userID, selectionID primitive.ObjectID) error {
	err := s.selectionRepo.Delete(ctx, userID, selectionID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSelectionNotFound
	}
	return err
}

// LinkSuperset tags two selections of the same routine with a fresh group
// label. A selection can belong to at most one superset.
func (s *planService) LinkSuperset(ctx context.Context, userID, firstID, secondID primitive.ObjectID) (string, error) {
	if firstID == secondID {
		return "", ErrSupersetInvalid
	}

	first, err := s.selectionRepo.GetByID(ctx, userID, firstID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrSelectionNotFound
		}
		return "", err
	}
	second, err := s.selectionRepo.GetByID(ctx, userID, secondID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrSelectionNotFound
		}
		return "", err
	}

	if first.Routine != second.Routine {
		return "", ErrSupersetInvalid
	}
	if first.SupersetGroup != nil || second.SupersetGroup != nil {
		return "", fmt.Errorf("%w: a selection already belongs to a superset", ErrSupersetInvalid)
	}

	group := uuid.NewString()
	ids := []primitive.ObjectID{firstID, secondID}
	if err := s.selectionRepo.SetSupersetGroup(ctx, userID, ids, group); err != nil {
		return "", err
	}
	return group, nil
}

// UnlinkSuperset removes the tag from both members of the group.
func (s *planService) UnlinkSuperset(ctx context.Context, userID primitive.ObjectID, group string) error {
	if group == "" {
		return fmt.Errorf("%w: superset group is required", ErrValidationFailed)
	}
	err := s.selectionRepo.ClearSupersetGroup(ctx, userID, group)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSelectionNotFound
	}
	return err
}

// BackupPlan snapshots the current selection set under a generated label.
func (s *planService) BackupPlan(ctx context.Context, userID primitive.ObjectID, name string) (*domain.PlanBackup, error) {
	selections, err := s.selectionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(selections) == 0 {
		return nil, fmt.Errorf("%w: no selections to back up", ErrValidationFailed)
	}

	backup := &domain.PlanBackup{
		UserID:     userID,
		Label:      uuid.NewString(),
		Name:       name,
		Selections: selections,
	}

	id, err := s.backupRepo.Create(ctx, backup)
	if err != nil {
		return nil, err
	}
	backup.ID = id
	return backup, nil
}

// ListBackups returns the user's snapshots.
func (s *planService) ListBackups(ctx context.Context, userID primitive.ObjectID) ([]domain.PlanBackup, error) {
	return s.backupRepo.ListByUser(ctx, userID)
}

// RestorePlan replaces the current plan with a snapshot, routine by routine.
// The same per-routine write guarantee as generation applies: a failure
// leaves already restored routines in place. Returns the number of rows
// restored.
func (s *planService) RestorePlan(ctx context.Context, userID primitive.ObjectID, label string) (int, error) {
	backup, err := s.backupRepo.GetByLabel(ctx, userID, label)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrBackupNotFound
		}
		return 0, err
	}

	byRoutine := make(map[string][]domain.UserSelection)
	var order []string
	for _, sel := range backup.Selections {
		if _, seen := byRoutine[sel.Routine]; !seen {
			order = append(order, sel.Routine)
		}
		byRoutine[sel.Routine] = append(byRoutine[sel.Routine], sel)
	}

	// Routines present now but absent from the snapshot are cleared too, so
	// restore really means "back to the snapshot".
	current, err := s.selectionRepo.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	for _, sel := range current {
		if _, inSnapshot := byRoutine[sel.Routine]; !inSnapshot {
			byRoutine[sel.Routine] = nil
			order = append(order, sel.Routine)
		}
	}

	var restored int
	var persisted []string
	for _, routine := range order {
		if err := s.selectionRepo.ReplaceRoutine(ctx, userID, routine, byRoutine[routine]); err != nil {
			return restored, &PersistenceError{Routine: routine, Persisted: persisted, Err: err}
		}
		persisted = append(persisted, routine)
		restored += len(byRoutine[routine])
	}
	return restored, nil
}

// DeleteBackup removes one snapshot.
func (s *planService) DeleteBackup(ctx context.Context, userID primitive.ObjectID, label string) error {
	err := s.backupRepo.Delete(ctx, userID, label)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrBackupNotFound
	}
	return err
}
