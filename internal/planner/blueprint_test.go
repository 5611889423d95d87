package planner_test

import (
	"testing"

	"avihayshai/hypertrophy-toolbox/internal/domain"
	"avihayshai/hypertrophy-toolbox/internal/planner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlueprintFor_ValidDays(t *testing.T) {
	for days := 1; days <= 5; days++ {
		bp, err := planner.BlueprintFor(days)
		require.NoError(t, err, "days=%d", days)
		assert.Len(t, bp.RoutineOrder, days)
		for _, label := range bp.RoutineOrder {
			slots, ok := bp.Slots[label]
			require.True(t, ok, "routine %s missing slots", label)
			assert.Len(t, slots, 6, "routine %s", label)

			// Every routine leads with main lifts.
			assert.Equal(t, planner.RoleMain, slots[0].Role)
		}
	}
}

func TestBlueprintFor_OutOfRange(t *testing.T) {
	for _, days := range []int{0, -1, 6, 10} {
		_, err := planner.BlueprintFor(days)
		var validationErr *planner.ValidationError
		require.ErrorAs(t, err, &validationErr, "days=%d", days)
		assert.Equal(t, "training_days", validationErr.Field)
	}
}

func TestBlueprint_SetTotalsWithinBand(t *testing.T) {
	// With the standard prescriptions, every routine of every blueprint must
	// land inside the [15,24] set band for every experience level.
	limits := planner.DefaultLimits()
	for days := 1; days <= 5; days++ {
		bp, err := planner.BlueprintFor(days)
		require.NoError(t, err)
		for _, exp := range []planner.Experience{
			planner.ExperienceNovice, planner.ExperienceIntermediate, planner.ExperienceAdvanced,
		} {
			for _, label := range bp.RoutineOrder {
				total := 0
				for _, slot := range bp.Slots[label] {
					total += planner.Prescribe(
						domain.MechanicCompound, planner.GoalHypertrophy, slot.Role, 0, exp,
					).Sets
				}
				assert.GreaterOrEqual(t, total, limits.RoutineSetFloor,
					"days=%d routine=%s experience=%s", days, label, exp)
				assert.LessOrEqual(t, total, limits.RoutineSetBudget,
					"days=%d routine=%s experience=%s", days, label, exp)
			}
		}
	}
}
