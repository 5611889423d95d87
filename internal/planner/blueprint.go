package planner

import "fmt"

// BlueprintSlot is one ordered slot of a routine template: the movement
// pattern to fill and whether it is a main lift or an accessory.
type BlueprintSlot struct {
	Pattern    Pattern
	Subpattern string // optional; preferred but not required when selecting
	Role       SlotRole
}

// SlotRole mirrors domain.SlotRole but keeps the planner free of storage
// concerns; conversion happens at the service boundary.
type SlotRole string

const (
	RoleMain      SlotRole = "main"
	RoleAccessory SlotRole = "accessory"
)

// Blueprint maps an ordered set of routine labels to their slot sequences.
type Blueprint struct {
	RoutineOrder []string
	Slots        map[string][]BlueprintSlot
}

// Each routine carries mains plus accessories tuned so that, with the
// prescription set counts, total sets land inside the [15,24] routine band
// for every experience level.
var blueprints = map[int]Blueprint{
	1: {
		RoutineOrder: []string{"A"},
		Slots: map[string][]BlueprintSlot{
			"A": {
				{Pattern: PatternSquat, Role: RoleMain},
				{Pattern: PatternHorizontalPush, Role: RoleMain},
				{Pattern: PatternHorizontalPull, Role: RoleMain},
				{Pattern: PatternHinge, Role: RoleMain},
				{Pattern: PatternVerticalPush, Role: RoleAccessory},
				{Pattern: PatternCore, Role: RoleAccessory},
			},
		},
	},
	2: {
		RoutineOrder: []string{"A", "B"},
		Slots: map[string][]BlueprintSlot{
			"A": {
				{Pattern: PatternSquat, Role: RoleMain},
				{Pattern: PatternHorizontalPush, Role: RoleMain},
				{Pattern: PatternHorizontalPull, Role: RoleMain},
				{Pattern: PatternVerticalPush, Role: RoleAccessory},
				{Pattern: PatternIsolation, Role: RoleAccessory},
				{Pattern: PatternCore, Role: RoleAccessory},
			},
			"B": {
				{Pattern: PatternHinge, Role: RoleMain},
				{Pattern: PatternVerticalPull, Role: RoleMain},
				{Pattern: PatternVerticalPush, Role: RoleMain},
				{Pattern: PatternHorizontalPull, Role: RoleAccessory},
				{Pattern: PatternIsolation, Role: RoleAccessory},
				{Pattern: PatternCore, Role: RoleAccessory},
			},
		},
	},
	3: {
		RoutineOrder: []string{"A", "B", "C"},
		Slots: map[string][]BlueprintSlot{
			"A": {
				{Pattern: PatternSquat, Role: RoleMain},
				{Pattern: PatternHorizontalPush, Role: RoleMain},
				{Pattern: PatternVerticalPull, Role: RoleMain},
				{Pattern: PatternHinge, Role: RoleAccessory},
				{Pattern: PatternIsolation, Role: RoleAccessory},
				{Pattern: PatternCore, Role: RoleAccessory},
			},
			"B": {
				{Pattern: PatternHinge, Role: RoleMain},
				{Pattern: PatternVerticalPush, Role: RoleMain},
				{Pattern: PatternHorizontalPull, Role: RoleMain},
				{Pattern: PatternSquat, Subpattern: "lunge", Role: RoleAccessory},
				{Pattern: PatternIsolation, Role: RoleAccessory},
				{Pattern: PatternCore, Role: RoleAccessory},
			},
			"C": {
				{Pattern: PatternSquat, Role: RoleMain},
				{Pattern: PatternHorizontalPush, Role: RoleMain},
				{Pattern: PatternHorizontalPull, Role: RoleMain},
				{Pattern: PatternVerticalPush, Role: RoleAccessory},
				{Pattern: PatternVerticalPull, Role: RoleAccessory},
				{Pattern: PatternCore, Role: RoleAccessory},
			},
		},
	},
	4: {
		// Upper/lower split, two of each.
		RoutineOrder: []string{"A", "B", "C", "D"},
		Slots: map[string][]BlueprintSlot{
			"A": {
				{Pattern: PatternSquat, Role: RoleMain},
				{Pattern: PatternHinge, Role: RoleMain},
				{Pattern: PatternSquat, Subpattern: "lunge", Role: RoleMain},
				{Pattern: PatternIsolation, Role: RoleAccessory},
				{Pattern: PatternIsolation, Role: RoleAccessory},
				{Pattern: PatternCore, Role: RoleAccessory},
			},
			"B": {
				{Pattern: PatternHorizontalPush, Role: RoleMain},
				{Pattern: PatternHorizontalPull, Role: RoleMain},
				{Pattern: PatternVerticalPush, Role: RoleMain},
				{Pattern: PatternVerticalPull, Role: RoleAccessory},
				{Pattern: PatternIsolation, Role: RoleAccessory},
				{Pattern: PatternIsolation, Role: RoleAccessory},
			},
			"C": {
				{Pattern: PatternHinge, Role: RoleMain},
				{Pattern: PatternSquat, Role: RoleMain},
				{Pattern: PatternHinge, Subpattern: "hip_hinge", Role: RoleMain},
				{Pattern: PatternIsolation, Role: RoleAccessory},
				{Pattern: PatternIsolation, Role: RoleAccessory},
				{Pattern: PatternCore, Role: RoleAccessory},
			},
			"D": {
				{Pattern: PatternVerticalPull, Role: RoleMain},
				{Pattern: PatternVerticalPush, Role: RoleMain},
				{Pattern: PatternHorizontalPull, Role: RoleMain},
				{Pattern: PatternHorizontalPush, Role: RoleAccessory},
				{Pattern: PatternIsolation, Role: RoleAccessory},
				{Pattern: PatternIsolation, Role: RoleAccessory},
			},
		},
	},
	5: {
		// Upper/lower plus push/pull/legs.
		RoutineOrder: []string{"A", "B", "C", "D", "E"},
		Slots: map[string][]BlueprintSlot{
			"A": {
				{Pattern: PatternHorizontalPush, Role: RoleMain},
				{Pattern: PatternHorizontalPull, Role: RoleMain},
				{Pattern: PatternVerticalPull, Role: RoleMain},
				{Pattern: PatternVerticalPush, Role: RoleAccessory},
				{Pattern: PatternIsolation, Role: RoleAccessory},
				{Pattern: PatternIsolation, Role: RoleAccessory},
			},
			"B": {
				{Pattern: PatternSquat, Role: RoleMain},
				{Pattern: PatternHinge, Role: RoleMain},
				{Pattern: PatternSquat, Subpattern: "lunge", Role: RoleMain},
				{Pattern: PatternIsolation, Role: RoleAccessory},
				{Pattern: PatternIsolation, Role: RoleAccessory},
				{Pattern: PatternCore, Role: RoleAccessory},
			},
			"C": {
				{Pattern: PatternVerticalPush, Role: RoleMain},
				{Pattern: PatternHorizontalPush, Role: RoleMain},
				{Pattern: PatternHorizontalPush, Subpattern: "fly", Role: RoleMain},
				{Pattern: PatternIsolation, Role: RoleAccessory},
				{Pattern: PatternIsolation, Role: RoleAccessory},
				{Pattern: PatternCore, Role: RoleAccessory},
			},
			"D": {
				{Pattern: PatternVerticalPull, Role: RoleMain},
				{Pattern: PatternHorizontalPull, Role: RoleMain},
				{Pattern: PatternHinge, Subpattern: "hip_hinge", Role: RoleMain},
				{Pattern: PatternIsolation, Role: RoleAccessory},
				{Pattern: PatternIsolation, Role: RoleAccessory},
				{Pattern: PatternCore, Role: RoleAccessory},
			},
			"E": {
				{Pattern: PatternSquat, Role: RoleMain},
				{Pattern: PatternHinge, Role: RoleMain},
				{Pattern: PatternSquat, Subpattern: "lunge", Role: RoleMain},
				{Pattern: PatternIsolation, Role: RoleAccessory},
				{Pattern: PatternIsolation, Role: RoleAccessory},
				{Pattern: PatternCore, Role: RoleAccessory},
			},
		},
	},
}

// BlueprintFor returns the session blueprint for the given weekly training
// day count (1..5).
func BlueprintFor(trainingDays int) (Blueprint, error) {
	bp, ok := blueprints[trainingDays]
	if !ok {
		return Blueprint{}, &ValidationError{Field: "training_days", Message: fmt.Sprintf("must be between 1 and 5, got %d", trainingDays)}
	}
	return bp, nil
}
