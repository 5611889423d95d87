package service_test

import (
	"context"
	"testing"

	"avihayshai/hypertrophy-toolbox/internal/domain"
	"avihayshai/hypertrophy-toolbox/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newPlanFixture(t *testing.T) (service.PlanService, *fakeSelectionRepo, *fakeBackupRepo, primitive.ObjectID) {
	t.Helper()
	selRepo := newFakeSelectionRepo()
	backupRepo := newFakeBackupRepo()
	exRepo := newFakeExerciseRepo(
		domain.Exercise{
			Name:               "Barbell Back Squat",
			PrimaryMuscle:      "Quadriceps",
			Mechanic:           domain.MechanicCompound,
			MovementPattern:    "squat",
			MovementSubpattern: "bilateral_squat",
		},
		domain.Exercise{
			Name:            "Dumbbell Curl",
			PrimaryMuscle:   "Biceps",
			Mechanic:        domain.MechanicIsolation,
			MovementPattern: "isolation",
		},
	)
	return service.NewPlanService(selRepo, exRepo, backupRepo), selRepo, backupRepo, primitive.NewObjectID()
}

func seedSelection(t *testing.T, repo *fakeSelectionRepo, userID primitive.ObjectID, routine, name string) *domain.UserSelection {
	t.Helper()
	sel := domain.UserSelection{
		UserID:       userID,
		Routine:      routine,
		ExerciseName: name,
		Sets:         3,
		MinReps:      8,
		MaxReps:      12,
	}
	_, err := repo.Create(context.Background(), &sel)
	require.NoError(t, err)
	return &sel
}

func TestPlanService_AddSelection_DenormalizesCatalogRow(t *testing.T) {
	svc, _, _, userID := newPlanFixture(t)

	sel, err := svc.AddSelection(context.Background(), userID, domain.UserSelection{
		Routine:      "A",
		ExerciseName: "Barbell Back Squat",
		Sets:         4,
		MinReps:      6,
		MaxReps:      10,
	})
	require.NoError(t, err)

	assert.Equal(t, "squat", sel.MovementPattern)
	assert.Equal(t, "bilateral_squat", sel.MovementSubpattern)
	assert.Equal(t, domain.MechanicCompound, sel.Mechanic)
	assert.Equal(t, "Quadriceps", sel.PrimaryMuscle)
	assert.Equal(t, domain.RoleMain, sel.Role, "compounds default to the main role")
	assert.False(t, sel.ID.IsZero())
}

func TestPlanService_AddSelection_IsolationDefaultsToAccessory(t *testing.T) {
	svc, _, _, userID := newPlanFixture(t)

	sel, err := svc.AddSelection(context.Background(), userID, domain.UserSelection{
		Routine:      "B",
		ExerciseName: "Dumbbell Curl",
		Sets:         3,
		MinReps:      10,
		MaxReps:      15,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAccessory, sel.Role)
}

func TestPlanService_AddSelection_Rejections(t *testing.T) {
	svc, _, _, userID := newPlanFixture(t)
	ctx := context.Background()

	_, err := svc.AddSelection(ctx, userID, domain.UserSelection{
		Routine: "A", ExerciseName: "Cable Ghost Press", Sets: 3, MinReps: 8, MaxReps: 12,
	})
	assert.ErrorIs(t, err, service.ErrExerciseNotFound)

	_, err = svc.AddSelection(ctx, userID, domain.UserSelection{
		ExerciseName: "Barbell Back Squat", Sets: 3, MinReps: 8, MaxReps: 12,
	})
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	_, err = svc.AddSelection(ctx, userID, domain.UserSelection{
		Routine: "A", ExerciseName: "Barbell Back Squat", Sets: 3, MinReps: 12, MaxReps: 8,
	})
	assert.ErrorIs(t, err, service.ErrValidationFailed)
}

func TestPlanService_UpdateSelection(t *testing.T) {
	svc, selRepo, _, userID := newPlanFixture(t)
	sel := seedSelection(t, selRepo, userID, "A", "Barbell Back Squat")

	updated, err := svc.UpdateSelection(context.Background(), userID, sel.ID, 5, 5, 8, 2, intRef(1), nil, floatRef(102.5))
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Sets)
	assert.Equal(t, 5, updated.MinReps)
	assert.Equal(t, 8, updated.MaxReps)
	assert.Equal(t, 2, updated.ExerciseOrder)
	require.NotNil(t, updated.Weight)
	assert.InDelta(t, 102.5, *updated.Weight, 0.001)

	_, err = svc.UpdateSelection(context.Background(), userID, primitive.NewObjectID(), 3, 8, 12, 0, nil, nil, nil)
	assert.ErrorIs(t, err, service.ErrSelectionNotFound)
}

func TestPlanService_LinkSuperset(t *testing.T) {
	svc, selRepo, _, userID := newPlanFixture(t)
	first := seedSelection(t, selRepo, userID, "A", "Barbell Back Squat")
	second := seedSelection(t, selRepo, userID, "A", "Dumbbell Curl")

	group, err := svc.LinkSuperset(context.Background(), userID, first.ID, second.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, group)

	stored, err := selRepo.GetByID(context.Background(), userID, first.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.SupersetGroup)
	assert.Equal(t, group, *stored.SupersetGroup)

	stored, err = selRepo.GetByID(context.Background(), userID, second.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.SupersetGroup)
	assert.Equal(t, group, *stored.SupersetGroup)
}

func TestPlanService_LinkSuperset_Rejections(t *testing.T) {
	svc, selRepo, _, userID := newPlanFixture(t)
	ctx := context.Background()
	first := seedSelection(t, selRepo, userID, "A", "Barbell Back Squat")
	crossRoutine := seedSelection(t, selRepo, userID, "B", "Dumbbell Curl")

	_, err := svc.LinkSuperset(ctx, userID, first.ID, first.ID)
	assert.ErrorIs(t, err, service.ErrSupersetInvalid)

	_, err = svc.LinkSuperset(ctx, userID, first.ID, crossRoutine.ID)
	assert.ErrorIs(t, err, service.ErrSupersetInvalid)

	_, err = svc.LinkSuperset(ctx, userID, first.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, service.ErrSelectionNotFound)

	// A member of an existing group cannot join a second one.
	second := seedSelection(t, selRepo, userID, "A", "Dumbbell Curl")
	third := seedSelection(t, selRepo, userID, "A", "Leg Press")
	_, err = svc.LinkSuperset(ctx, userID, first.ID, second.ID)
	require.NoError(t, err)
	_, err = svc.LinkSuperset(ctx, userID, second.ID, third.ID)
	assert.ErrorIs(t, err, service.ErrSupersetInvalid)
}

func TestPlanService_UnlinkSuperset(t *testing.T) {
	svc, selRepo, _, userID := newPlanFixture(t)
	ctx := context.Background()
	first := seedSelection(t, selRepo, userID, "A", "Barbell Back Squat")
	second := seedSelection(t, selRepo, userID, "A", "Dumbbell Curl")

	group, err := svc.LinkSuperset(ctx, userID, first.ID, second.ID)
	require.NoError(t, err)

	require.NoError(t, svc.UnlinkSuperset(ctx, userID, group))
	stored, err := selRepo.GetByID(ctx, userID, first.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.SupersetGroup)

	assert.ErrorIs(t, svc.UnlinkSuperset(ctx, userID, group), service.ErrSelectionNotFound)
	assert.ErrorIs(t, svc.UnlinkSuperset(ctx, userID, ""), service.ErrValidationFailed)
}

func TestPlanService_BackupPlan(t *testing.T) {
	svc, selRepo, _, userID := newPlanFixture(t)
	ctx := context.Background()

	_, err := svc.BackupPlan(ctx, userID, "empty")
	assert.ErrorIs(t, err, service.ErrValidationFailed, "an empty plan cannot be backed up")

	seedSelection(t, selRepo, userID, "A", "Barbell Back Squat")
	seedSelection(t, selRepo, userID, "B", "Dumbbell Curl")

	backup, err := svc.BackupPlan(ctx, userID, "before experiment")
	require.NoError(t, err)
	assert.NotEmpty(t, backup.Label)
	assert.Equal(t, "before experiment", backup.Name)
	assert.Len(t, backup.Selections, 2)

	backups, err := svc.ListBackups(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestPlanService_RestorePlan(t *testing.T) {
	svc, selRepo, _, userID := newPlanFixture(t)
	ctx := context.Background()

	seedSelection(t, selRepo, userID, "A", "Barbell Back Squat")
	backup, err := svc.BackupPlan(ctx, userID, "baseline")
	require.NoError(t, err)

	// Mutate the plan after the snapshot: change routine A, add routine B.
	for id, sel := range selRepo.selections {
		sel.Sets = 9
		selRepo.selections[id] = sel
	}
	seedSelection(t, selRepo, userID, "B", "Dumbbell Curl")

	restored, err := svc.RestorePlan(ctx, userID, backup.Label)
	require.NoError(t, err)
	assert.Equal(t, 1, restored)

	plan, err := selRepo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, plan, 1, "routines absent from the snapshot are cleared")
	assert.Equal(t, "A", plan[0].Routine)
	assert.Equal(t, 3, plan[0].Sets)

	_, err = svc.RestorePlan(ctx, userID, "no-such-label")
	assert.ErrorIs(t, err, service.ErrBackupNotFound)
}

func TestPlanService_RestorePlan_PartialFailure(t *testing.T) {
	svc, selRepo, _, userID := newPlanFixture(t)
	ctx := context.Background()

	seedSelection(t, selRepo, userID, "A", "Barbell Back Squat")
	backup, err := svc.BackupPlan(ctx, userID, "one routine")
	require.NoError(t, err)

	// Routine B exists only in the live plan, so restore clears it after
	// writing the snapshot routines. Failing that write surfaces what was
	// already persisted.
	seedSelection(t, selRepo, userID, "B", "Dumbbell Curl")
	selRepo.failRoutine = "B"
	_, err = svc.RestorePlan(ctx, userID, backup.Label)

	var perr *service.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "B", perr.Routine)
	assert.Equal(t, []string{"A"}, perr.Persisted)
}

func TestPlanService_DeleteBackup(t *testing.T) {
	svc, selRepo, _, userID := newPlanFixture(t)
	ctx := context.Background()

	seedSelection(t, selRepo, userID, "A", "Barbell Back Squat")
	backup, err := svc.BackupPlan(ctx, userID, "short lived")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBackup(ctx, userID, backup.Label))
	assert.ErrorIs(t, svc.DeleteBackup(ctx, userID, backup.Label), service.ErrBackupNotFound)
}
