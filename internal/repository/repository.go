package repository

import (
	"avihayshai/hypertrophy-toolbox/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ExerciseFilter carries catalog query criteria. Field names are validated
// against a closed whitelist at the service boundary before any query is
// built; the repository additionally only translates known fields.
type ExerciseFilter struct {
	Fields map[string]string // whitelisted field -> exact value
}

// ExerciseRepository is the read-mostly exercise catalog.
type ExerciseRepository interface {
	Upsert(ctx context.Context, exercises []domain.Exercise) (int, error) // seed/import, keyed by name
	GetByName(ctx context.Context, name string) (*domain.Exercise, error)
	List(ctx context.Context, filter ExerciseFilter) ([]domain.Exercise, error)
	ListUntagged(ctx context.Context) ([]domain.Exercise, error)
	SetMovementPattern(ctx context.Context, name, pattern, subpattern string) error
}

// SelectionRepository manages the user's current plan rows.
type SelectionRepository interface {
	Create(ctx context.Context, sel *domain.UserSelection) (primitive.ObjectID, error)
	GetByID(ctx context.Context, userID, id primitive.ObjectID) (*domain.UserSelection, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.UserSelection, error)
	ListByRoutine(ctx context.Context, userID primitive.ObjectID, routine string) ([]domain.UserSelection, error)
	Update(ctx context.Context, sel *domain.UserSelection) error
	Delete(ctx context.Context, userID, id primitive.ObjectID) error

	// ReplaceRoutine atomically swaps all rows of one routine for the given
	// user. This is the per-routine transaction boundary of plan generation
	// and restore: a failure mid-plan leaves previously written routines
	// intact but never a half-written routine.
	ReplaceRoutine(ctx context.Context, userID primitive.ObjectID, routine string, rows []domain.UserSelection) error

	// Superset linking. SetSupersetGroup tags both rows with the group;
	// ClearSupersetGroup removes the tag from every row carrying it.
	SetSupersetGroup(ctx context.Context, userID primitive.ObjectID, ids []primitive.ObjectID, group string) error
	ClearSupersetGroup(ctx context.Context, userID primitive.ObjectID, group string) error
}

// WorkoutLogRepository stores realized workout sessions.
type WorkoutLogRepository interface {
	InsertMany(ctx context.Context, entries []domain.WorkoutLogEntry) error
	GetByID(ctx context.Context, userID, id primitive.ObjectID) (*domain.WorkoutLogEntry, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLogEntry, error)
	// ListByExercise returns the most recent entries for one exercise,
	// newest first, capped at limit. Feeds the progression engine.
	ListByExercise(ctx context.Context, userID primitive.ObjectID, exerciseName string, limit int) ([]domain.WorkoutLogEntry, error)
	Update(ctx context.Context, entry *domain.WorkoutLogEntry) error
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// BackupRepository stores named snapshots of a user's plan.
type BackupRepository interface {
	Create(ctx context.Context, backup *domain.PlanBackup) (primitive.ObjectID, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.PlanBackup, error)
	GetByLabel(ctx context.Context, userID primitive.ObjectID, label string) (*domain.PlanBackup, error)
	Delete(ctx context.Context, userID primitive.ObjectID, label string) error
}

// ArtifactRepository stores export artifact metadata; the workbooks
// themselves live in object storage.
type ArtifactRepository interface {
	Create(ctx context.Context, artifact *domain.ExportArtifact) (primitive.ObjectID, error)
	GetByID(ctx context.Context, userID, id primitive.ObjectID) (*domain.ExportArtifact, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.ExportArtifact, error)
}
