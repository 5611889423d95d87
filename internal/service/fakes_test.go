package service_test

import (
	"context"
	"strings"
	"time"

	"avihayshai/hypertrophy-toolbox/internal/domain"
	"avihayshai/hypertrophy-toolbox/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. They honor the same not-found semantics as the
// mongo implementations so the services' error translation can be tested
// without a database.

type fakeExerciseRepo struct {
	exercises map[string]domain.Exercise // keyed by name
}

func newFakeExerciseRepo(exercises ...domain.Exercise) *fakeExerciseRepo {
	repo := &fakeExerciseRepo{exercises: make(map[string]domain.Exercise)}
	for _, ex := range exercises {
		repo.exercises[ex.Name] = ex
	}
	return repo
}

func (r *fakeExerciseRepo) Upsert(_ context.Context, exercises []domain.Exercise) (int, error) {
	for _, ex := range exercises {
		r.exercises[ex.Name] = ex
	}
	return len(exercises), nil
}

func (r *fakeExerciseRepo) GetByName(_ context.Context, name string) (*domain.Exercise, error) {
	ex, ok := r.exercises[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &ex, nil
}

func (r *fakeExerciseRepo) List(_ context.Context, filter repository.ExerciseFilter) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, ex := range r.exercises {
		if matchesFilter(ex, filter) {
			out = append(out, ex)
		}
	}
	return out, nil
}

func matchesFilter(ex domain.Exercise, filter repository.ExerciseFilter) bool {
	for field, value := range filter.Fields {
		var got string
		switch field {
		case "name":
			got = ex.Name
		case "primary_muscle":
			got = ex.PrimaryMuscle
		case "equipment":
			got = ex.Equipment
		case "mechanic":
			got = string(ex.Mechanic)
		case "movement_pattern":
			got = ex.MovementPattern
		case "difficulty":
			got = ex.Difficulty
		}
		if !strings.EqualFold(got, value) {
			return false
		}
	}
	return true
}

func (r *fakeExerciseRepo) ListUntagged(_ context.Context) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, ex := range r.exercises {
		if ex.MovementPattern == "" {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (r *fakeExerciseRepo) SetMovementPattern(_ context.Context, name, pattern, subpattern string) error {
	ex, ok := r.exercises[name]
	if !ok {
		return repository.ErrNotFound
	}
	ex.MovementPattern = pattern
	ex.MovementSubpattern = subpattern
	r.exercises[name] = ex
	return nil
}

type fakeSelectionRepo struct {
	selections map[primitive.ObjectID]domain.UserSelection

	replaceCalls []string // routine labels, in call order
	failRoutine  string   // ReplaceRoutine fails when called for this label
}

func newFakeSelectionRepo() *fakeSelectionRepo {
	return &fakeSelectionRepo{selections: make(map[primitive.ObjectID]domain.UserSelection)}
}

func (r *fakeSelectionRepo) Create(_ context.Context, sel *domain.UserSelection) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	sel.ID = id
	sel.CreatedAt = time.Now()
	sel.UpdatedAt = sel.CreatedAt
	r.selections[id] = *sel
	return id, nil
}

func (r *fakeSelectionRepo) GetByID(_ context.Context, userID, id primitive.ObjectID) (*domain.UserSelection, error) {
	sel, ok := r.selections[id]
	if !ok || sel.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &sel, nil
}

func (r *fakeSelectionRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.UserSelection, error) {
	var out []domain.UserSelection
	for _, sel := range r.selections {
		if sel.UserID == userID {
			out = append(out, sel)
		}
	}
	return out, nil
}

func (r *fakeSelectionRepo) ListByRoutine(_ context.Context, userID primitive.ObjectID, routine string) ([]domain.UserSelection, error) {
	var out []domain.UserSelection
	for _, sel := range r.selections {
		if sel.UserID == userID && sel.Routine == routine {
			out = append(out, sel)
		}
	}
	return out, nil
}

func (r *fakeSelectionRepo) Update(_ context.Context, sel *domain.UserSelection) error {
	if _, ok := r.selections[sel.ID]; !ok {
		return repository.ErrNotFound
	}
	sel.UpdatedAt = time.Now()
	r.selections[sel.ID] = *sel
	return nil
}

func (r *fakeSelectionRepo) Delete(_ context.Context, userID, id primitive.ObjectID) error {
	sel, ok := r.selections[id]
	if !ok || sel.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.selections, id)
	return nil
}

func (r *fakeSelectionRepo) ReplaceRoutine(_ context.Context, userID primitive.ObjectID, routine string, rows []domain.UserSelection) error {
	if routine == r.failRoutine && r.failRoutine != "" {
		return repository.ErrUpdateFailed
	}
	r.replaceCalls = append(r.replaceCalls, routine)
	for id, sel := range r.selections {
		if sel.UserID == userID && sel.Routine == routine {
			delete(r.selections, id)
		}
	}
	for _, row := range rows {
		row.UserID = userID
		row.ID = primitive.NewObjectID()
		r.selections[row.ID] = row
	}
	return nil
}

func (r *fakeSelectionRepo) SetSupersetGroup(_ context.Context, userID primitive.ObjectID, ids []primitive.ObjectID, group string) error {
	for _, id := range ids {
		sel, ok := r.selections[id]
		if !ok || sel.UserID != userID {
			return repository.ErrUpdateFailed
		}
		g := group
		sel.SupersetGroup = &g
		r.selections[id] = sel
	}
	return nil
}

func (r *fakeSelectionRepo) ClearSupersetGroup(_ context.Context, userID primitive.ObjectID, group string) error {
	cleared := false
	for id, sel := range r.selections {
		if sel.UserID == userID && sel.SupersetGroup != nil && *sel.SupersetGroup == group {
			sel.SupersetGroup = nil
			r.selections[id] = sel
			cleared = true
		}
	}
	if !cleared {
		return repository.ErrNotFound
	}
	return nil
}

type fakeWorkoutLogRepo struct {
	entries map[primitive.ObjectID]domain.WorkoutLogEntry
}

func newFakeWorkoutLogRepo() *fakeWorkoutLogRepo {
	return &fakeWorkoutLogRepo{entries: make(map[primitive.ObjectID]domain.WorkoutLogEntry)}
}

func (r *fakeWorkoutLogRepo) InsertMany(_ context.Context, entries []domain.WorkoutLogEntry) error {
	for i := range entries {
		entries[i].ID = primitive.NewObjectID()
		r.entries[entries[i].ID] = entries[i]
	}
	return nil
}

func (r *fakeWorkoutLogRepo) GetByID(_ context.Context, userID, id primitive.ObjectID) (*domain.WorkoutLogEntry, error) {
	e, ok := r.entries[id]
	if !ok || e.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r *fakeWorkoutLogRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.WorkoutLogEntry, error) {
	var out []domain.WorkoutLogEntry
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeWorkoutLogRepo) ListByExercise(_ context.Context, userID primitive.ObjectID, exerciseName string, limit int) ([]domain.WorkoutLogEntry, error) {
	var out []domain.WorkoutLogEntry
	for _, e := range r.entries {
		if e.UserID == userID && e.ExerciseName == exerciseName {
			out = append(out, e)
		}
	}
	// Newest first, as the mongo implementation sorts.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].SessionDate.After(out[i].SessionDate) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeWorkoutLogRepo) Update(_ context.Context, entry *domain.WorkoutLogEntry) error {
	if _, ok := r.entries[entry.ID]; !ok {
		return repository.ErrNotFound
	}
	entry.UpdatedAt = time.Now()
	r.entries[entry.ID] = *entry
	return nil
}

func (r *fakeWorkoutLogRepo) Delete(_ context.Context, userID, id primitive.ObjectID) error {
	e, ok := r.entries[id]
	if !ok || e.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

type fakeBackupRepo struct {
	backups map[string]domain.PlanBackup // keyed by label
}

func newFakeBackupRepo() *fakeBackupRepo {
	return &fakeBackupRepo{backups: make(map[string]domain.PlanBackup)}
}

func (r *fakeBackupRepo) Create(_ context.Context, backup *domain.PlanBackup) (primitive.ObjectID, error) {
	backup.ID = primitive.NewObjectID()
	backup.CreatedAt = time.Now()
	r.backups[backup.Label] = *backup
	return backup.ID, nil
}

func (r *fakeBackupRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.PlanBackup, error) {
	var out []domain.PlanBackup
	for _, b := range r.backups {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBackupRepo) GetByLabel(_ context.Context, userID primitive.ObjectID, label string) (*domain.PlanBackup, error) {
	b, ok := r.backups[label]
	if !ok || b.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *fakeBackupRepo) Delete(_ context.Context, userID primitive.ObjectID, label string) error {
	b, ok := r.backups[label]
	if !ok || b.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.backups, label)
	return nil
}
