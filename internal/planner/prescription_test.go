package planner_test

import (
	"testing"

	"avihayshai/hypertrophy-toolbox/internal/domain"
	"avihayshai/hypertrophy-toolbox/internal/planner"

	"github.com/stretchr/testify/assert"
)

func TestPrescribe_RepRanges(t *testing.T) {
	cases := []struct {
		name      string
		mechanic  domain.Mechanic
		goal      planner.Goal
		slotIndex int
		wantMin   int
		wantMax   int
		wantRIR   int
	}{
		{"strength compound early", domain.MechanicCompound, planner.GoalStrength, 0, 3, 5, 2},
		{"strength compound late", domain.MechanicCompound, planner.GoalStrength, 3, 4, 6, 2},
		{"hypertrophy compound early", domain.MechanicCompound, planner.GoalHypertrophy, 1, 6, 10, 1},
		{"hypertrophy compound late", domain.MechanicCompound, planner.GoalHypertrophy, 2, 8, 12, 1},
		{"hypertrophy isolation early", domain.MechanicIsolation, planner.GoalHypertrophy, 0, 10, 12, 1},
		{"hypertrophy isolation late", domain.MechanicIsolation, planner.GoalHypertrophy, 4, 12, 15, 1},
		{"endurance compound", domain.MechanicCompound, planner.GoalEndurance, 0, 12, 15, 3},
		{"endurance isolation", domain.MechanicIsolation, planner.GoalEndurance, 5, 15, 20, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := planner.Prescribe(tc.mechanic, tc.goal, planner.RoleMain, tc.slotIndex, planner.ExperienceIntermediate)
			assert.Equal(t, tc.wantMin, p.MinReps)
			assert.Equal(t, tc.wantMax, p.MaxReps)
			assert.Equal(t, tc.wantRIR, p.RIR)
		})
	}
}

func TestPrescribe_Sets(t *testing.T) {
	// Mains get more sets than accessories, novices one set less.
	p := planner.Prescribe(domain.MechanicCompound, planner.GoalHypertrophy, planner.RoleMain, 0, planner.ExperienceIntermediate)
	assert.Equal(t, 4, p.Sets)

	p = planner.Prescribe(domain.MechanicCompound, planner.GoalHypertrophy, planner.RoleMain, 0, planner.ExperienceNovice)
	assert.Equal(t, 3, p.Sets)

	p = planner.Prescribe(domain.MechanicIsolation, planner.GoalHypertrophy, planner.RoleAccessory, 3, planner.ExperienceAdvanced)
	assert.Equal(t, 3, p.Sets)

	p = planner.Prescribe(domain.MechanicIsolation, planner.GoalHypertrophy, planner.RoleAccessory, 3, planner.ExperienceNovice)
	assert.Equal(t, 2, p.Sets)
}

func TestPrescribe_UnknownMechanicFallsBackToIsolation(t *testing.T) {
	// Catalog rows without a mechanic tag get the isolation band.
	p := planner.Prescribe("", planner.GoalHypertrophy, planner.RoleAccessory, 3, planner.ExperienceIntermediate)
	assert.Equal(t, 12, p.MinReps)
	assert.Equal(t, 15, p.MaxReps)
}

func TestPrescribe_Deterministic(t *testing.T) {
	a := planner.Prescribe(domain.MechanicCompound, planner.GoalStrength, planner.RoleMain, 1, planner.ExperienceAdvanced)
	b := planner.Prescribe(domain.MechanicCompound, planner.GoalStrength, planner.RoleMain, 1, planner.ExperienceAdvanced)
	assert.Equal(t, a, b)
}

func TestMainSetFloor(t *testing.T) {
	assert.Equal(t, 3, planner.MainSetFloor(planner.ExperienceNovice))
	assert.Equal(t, 4, planner.MainSetFloor(planner.ExperienceIntermediate))
	assert.Equal(t, 4, planner.MainSetFloor(planner.ExperienceAdvanced))
}
