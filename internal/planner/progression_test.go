package planner_test

import (
	"testing"

	"avihayshai/hypertrophy-toolbox/internal/domain"
	"avihayshai/hypertrophy-toolbox/internal/planner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// entry builds a scored log entry with a planned 6-10 rep band.
func entry(scoredMax int, weight float64, rir *int, rpe *float64) domain.WorkoutLogEntry {
	return domain.WorkoutLogEntry{
		PlannedSets:    4,
		PlannedMinReps: 6,
		PlannedMaxReps: 10,
		ScoredMaxReps:  intPtr(scoredMax),
		ScoredWeight:   floatPtr(weight),
		RIR:            rir,
		RPE:            rpe,
	}
}

func TestSuggestProgression_NoHistory(t *testing.T) {
	s := planner.SuggestProgression(nil, planner.ExperienceIntermediate, planner.DefaultProgressionPolicy())
	assert.Equal(t, planner.StatusHold, s.Status)
	assert.Nil(t, s.NextWeight)

	// Unscored entries do not count as history either.
	unscored := []domain.WorkoutLogEntry{{PlannedSets: 4, PlannedMinReps: 6, PlannedMaxReps: 10}}
	s = planner.SuggestProgression(unscored, planner.ExperienceIntermediate, planner.DefaultProgressionPolicy())
	assert.Equal(t, planner.StatusHold, s.Status)
}

func TestSuggestProgression_TopOfRangeIncreasesWeight(t *testing.T) {
	history := []domain.WorkoutLogEntry{entry(10, 60, intPtr(2), nil)}

	s := planner.SuggestProgression(history, planner.ExperienceIntermediate, planner.DefaultProgressionPolicy())
	require.Equal(t, planner.StatusIncreaseWeight, s.Status)
	require.NotNil(t, s.NextWeight)
	assert.InDelta(t, 65, *s.NextWeight, 0.001) // large increment above the threshold
	require.NotNil(t, s.TargetReps)
	assert.Equal(t, 6, *s.TargetReps) // reset to the bottom of the band
}

func TestSuggestProgression_LightWeightGetsSmallIncrement(t *testing.T) {
	history := []domain.WorkoutLogEntry{entry(10, 15, intPtr(2), nil)}

	s := planner.SuggestProgression(history, planner.ExperienceIntermediate, planner.DefaultProgressionPolicy())
	require.Equal(t, planner.StatusIncreaseWeight, s.Status)
	assert.InDelta(t, 17.5, *s.NextWeight, 0.001)
}

func TestSuggestProgression_NovicesAlwaysGetSmallIncrement(t *testing.T) {
	history := []domain.WorkoutLogEntry{entry(10, 100, intPtr(2), nil)}

	s := planner.SuggestProgression(history, planner.ExperienceNovice, planner.DefaultProgressionPolicy())
	require.Equal(t, planner.StatusIncreaseWeight, s.Status)
	assert.InDelta(t, 102.5, *s.NextWeight, 0.001)
}

func TestSuggestProgression_RPEAlsoQualifiesEffort(t *testing.T) {
	history := []domain.WorkoutLogEntry{entry(10, 60, nil, floatPtr(8))}

	s := planner.SuggestProgression(history, planner.ExperienceIntermediate, planner.DefaultProgressionPolicy())
	assert.Equal(t, planner.StatusIncreaseWeight, s.Status)
}

func TestSuggestProgression_EffortTooHighHolds(t *testing.T) {
	// Top of range reached but at RIR 0: grinding, do not add weight.
	history := []domain.WorkoutLogEntry{entry(10, 60, intPtr(0), nil)}

	s := planner.SuggestProgression(history, planner.ExperienceIntermediate, planner.DefaultProgressionPolicy())
	assert.Equal(t, planner.StatusHold, s.Status)
	assert.Nil(t, s.NextWeight)
}

func TestSuggestProgression_UnknownEffortFollowsPolicy(t *testing.T) {
	history := []domain.WorkoutLogEntry{entry(10, 60, nil, nil)}

	conservative := planner.DefaultProgressionPolicy()
	s := planner.SuggestProgression(history, planner.ExperienceIntermediate, conservative)
	assert.Equal(t, planner.StatusHold, s.Status, "missing effort must not trigger an increase by default")

	permissive := conservative
	permissive.AssumeEffortOK = true
	s = planner.SuggestProgression(history, planner.ExperienceIntermediate, permissive)
	assert.Equal(t, planner.StatusIncreaseWeight, s.Status)
}

func TestSuggestProgression_OneMissBelowMinPushesReps(t *testing.T) {
	history := []domain.WorkoutLogEntry{
		entry(4, 60, intPtr(1), nil),  // latest, below the 6 rep minimum
		entry(8, 60, intPtr(2), nil),  // previous session was in range
	}

	s := planner.SuggestProgression(history, planner.ExperienceIntermediate, planner.DefaultProgressionPolicy())
	require.Equal(t, planner.StatusPushReps, s.Status)
	require.NotNil(t, s.NextWeight)
	assert.InDelta(t, 60, *s.NextWeight, 0.001) // weight held
	require.NotNil(t, s.TargetReps)
	assert.Equal(t, 5, *s.TargetReps)
}

func TestSuggestProgression_ConsecutiveMissesReduceWeight(t *testing.T) {
	history := []domain.WorkoutLogEntry{
		entry(4, 60, intPtr(1), nil),
		entry(5, 60, intPtr(0), nil),
	}

	s := planner.SuggestProgression(history, planner.ExperienceIntermediate, planner.DefaultProgressionPolicy())
	require.Equal(t, planner.StatusReduceWeight, s.Status)
	require.NotNil(t, s.NextWeight)
	// 10% deload from 60 rounded to the 2.5 increment.
	assert.InDelta(t, 55, *s.NextWeight, 0.001)
}

func TestSuggestProgression_WithinRangeHoldsAndNudgesReps(t *testing.T) {
	history := []domain.WorkoutLogEntry{entry(8, 60, intPtr(2), nil)}

	s := planner.SuggestProgression(history, planner.ExperienceIntermediate, planner.DefaultProgressionPolicy())
	require.Equal(t, planner.StatusHold, s.Status)
	require.NotNil(t, s.NextWeight)
	assert.InDelta(t, 60, *s.NextWeight, 0.001)
	require.NotNil(t, s.TargetReps)
	assert.Equal(t, 9, *s.TargetReps)
}

func TestSuggestProgression_UnscoredLatestEntryIsSkipped(t *testing.T) {
	history := []domain.WorkoutLogEntry{
		{PlannedSets: 4, PlannedMinReps: 6, PlannedMaxReps: 10}, // planned but never done
		entry(10, 60, intPtr(2), nil),
	}

	s := planner.SuggestProgression(history, planner.ExperienceIntermediate, planner.DefaultProgressionPolicy())
	assert.Equal(t, planner.StatusIncreaseWeight, s.Status)
}
