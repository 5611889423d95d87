package export_test

import (
	"testing"
	"time"

	"avihayshai/hypertrophy-toolbox/internal/domain"
	"avihayshai/hypertrophy-toolbox/internal/export"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func intVal(v int) *int           { return &v }
func floatVal(v float64) *float64 { return &v }
func strVal(v string) *string     { return &v }

func TestPlanWorkbook(t *testing.T) {
	group := strVal("ss-1")
	selections := []domain.UserSelection{
		{
			Routine:         "A",
			ExerciseName:    "Barbell Back Squat",
			MovementPattern: "squat",
			Role:            domain.RoleMain,
			Sets:            4,
			MinReps:         6,
			MaxReps:         10,
			RIR:             intVal(2),
			Weight:          floatVal(100),
		},
		{
			Routine:         "A",
			ExerciseName:    "Dumbbell Curl",
			MovementPattern: "isolation",
			Role:            domain.RoleAccessory,
			Sets:            3,
			MinReps:         10,
			MaxReps:         15,
			SupersetGroup:   group,
		},
	}

	buf, err := export.PlanWorkbook(selections)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Workout Plan")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Routine", rows[0][0])
	assert.Equal(t, "Exercise", rows[0][1])

	assert.Equal(t, "Barbell Back Squat", rows[1][1])
	assert.Equal(t, "squat", rows[1][2])
	assert.Equal(t, "main", rows[1][3])
	assert.Equal(t, "4", rows[1][4])
	assert.Equal(t, "100", rows[1][8])

	assert.Equal(t, "Dumbbell Curl", rows[2][1])
	assert.Equal(t, "ss-1", rows[2][9])
}

func TestPlanWorkbook_EmptyPlanStillHasHeader(t *testing.T) {
	buf, err := export.PlanWorkbook(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Workout Plan")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestLogWorkbook(t *testing.T) {
	entries := []domain.WorkoutLogEntry{
		{
			SessionDate:    time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC),
			Routine:        "A",
			ExerciseName:   "Barbell Bench Press",
			PlannedSets:    4,
			PlannedMinReps: 6,
			PlannedMaxReps: 10,
			ScoredSets:     intVal(4),
			ScoredMaxReps:  intVal(9),
			ScoredWeight:   floatVal(60),
			RIR:            intVal(2),
		},
		{
			SessionDate:    time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC),
			Routine:        "A",
			ExerciseName:   "Plank",
			PlannedSets:    3,
			PlannedMinReps: 1,
			PlannedMaxReps: 1,
			// Unscored: scored cells stay blank.
		},
	}

	buf, err := export.LogWorkbook(entries)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Workout Log")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Session Date", rows[0][0])

	assert.Equal(t, "2026-08-24", rows[1][0])
	assert.Equal(t, "Barbell Bench Press", rows[1][2])
	assert.Equal(t, "6-10", rows[1][4])
	assert.Equal(t, "4", rows[1][5])
	assert.Equal(t, "9", rows[1][6])
	assert.Equal(t, "60", rows[1][7])

	assert.Equal(t, "Plank", rows[2][2])
	assert.Equal(t, "1-1", rows[2][4])
	if len(rows[2]) > 5 {
		assert.Equal(t, "", rows[2][5])
	}
}
