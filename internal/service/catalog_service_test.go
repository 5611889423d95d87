package service_test

import (
	"context"
	"testing"

	"avihayshai/hypertrophy-toolbox/internal/domain"
	"avihayshai/hypertrophy-toolbox/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_ListExercises_RejectsUnknownFilterField(t *testing.T) {
	svc := service.NewCatalogService(newFakeExerciseRepo())

	_, err := svc.ListExercises(context.Background(), map[string]string{"primary_muscle; DROP": "Chest"})
	require.ErrorIs(t, err, service.ErrValidationFailed)
	assert.Contains(t, err.Error(), "unknown filter field")

	_, err = svc.ListExercises(context.Background(), map[string]string{"primaryMuscle": "Chest"})
	assert.ErrorIs(t, err, service.ErrValidationFailed, "camelCase aliases are not whitelisted")
}

func TestCatalogService_ListExercises_WhitelistedFilter(t *testing.T) {
	repo := newFakeExerciseRepo(
		domain.Exercise{Name: "Barbell Bench Press", PrimaryMuscle: "Chest", Equipment: "Barbell"},
		domain.Exercise{Name: "Barbell Back Squat", PrimaryMuscle: "Quadriceps", Equipment: "Barbell"},
	)
	svc := service.NewCatalogService(repo)

	exercises, err := svc.ListExercises(context.Background(), map[string]string{"primary_muscle": "Chest"})
	require.NoError(t, err)
	require.Len(t, exercises, 1)
	assert.Equal(t, "Barbell Bench Press", exercises[0].Name)

	// Empty values are dropped, not treated as filters.
	exercises, err = svc.ListExercises(context.Background(), map[string]string{"equipment": ""})
	require.NoError(t, err)
	assert.Len(t, exercises, 2)
}

func TestCatalogService_AllowedFilterFields(t *testing.T) {
	svc := service.NewCatalogService(newFakeExerciseRepo())
	fields := svc.AllowedFilterFields()

	assert.Contains(t, fields, "primary_muscle")
	assert.Contains(t, fields, "movement_pattern")
	assert.NotContains(t, fields, "password_hash")
	assert.IsIncreasing(t, fields)
}

func TestCatalogService_SeedExercises_ClassifiesUntaggedRows(t *testing.T) {
	repo := newFakeExerciseRepo()
	svc := service.NewCatalogService(repo)

	count, err := svc.SeedExercises(context.Background(), []domain.Exercise{
		{Name: "Romanian Deadlift", PrimaryMuscle: "Hamstrings"},
		{Name: "Custom Machine", PrimaryMuscle: "Chest", MovementPattern: "horizontal_push", MovementSubpattern: "press"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	rdl, err := svc.GetExercise(context.Background(), "Romanian Deadlift")
	require.NoError(t, err)
	assert.Equal(t, "hinge", rdl.MovementPattern)
	assert.Equal(t, "hip_hinge", rdl.MovementSubpattern)

	// Rows arriving with tags keep them.
	custom, err := svc.GetExercise(context.Background(), "Custom Machine")
	require.NoError(t, err)
	assert.Equal(t, "horizontal_push", custom.MovementPattern)
}

func TestCatalogService_SeedExercises_RejectsNamelessRow(t *testing.T) {
	svc := service.NewCatalogService(newFakeExerciseRepo())
	_, err := svc.SeedExercises(context.Background(), []domain.Exercise{{PrimaryMuscle: "Chest"}})
	assert.ErrorIs(t, err, service.ErrValidationFailed)
}

func TestCatalogService_BackfillPatterns(t *testing.T) {
	repo := newFakeExerciseRepo(
		domain.Exercise{Name: "Lat Pulldown", PrimaryMuscle: "Lats"},
		domain.Exercise{Name: "Plank", PrimaryMuscle: "Abs"},
		domain.Exercise{Name: "Barbell Back Squat", PrimaryMuscle: "Quadriceps", MovementPattern: "squat"},
	)
	svc := service.NewCatalogService(repo)

	tagged, err := svc.BackfillPatterns(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, tagged, "already tagged rows are left alone")

	pulldown, err := svc.GetExercise(context.Background(), "Lat Pulldown")
	require.NoError(t, err)
	assert.Equal(t, "vertical_pull", pulldown.MovementPattern)

	// Idempotent: a second run finds nothing to tag.
	tagged, err = svc.BackfillPatterns(context.Background())
	require.NoError(t, err)
	assert.Zero(t, tagged)
}

func TestCatalogService_GetExercise_NotFound(t *testing.T) {
	svc := service.NewCatalogService(newFakeExerciseRepo())
	_, err := svc.GetExercise(context.Background(), "No Such Exercise")
	assert.ErrorIs(t, err, service.ErrExerciseNotFound)
}
