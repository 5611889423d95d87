// Package planner implements the auto starter plan generator: movement
// pattern classification, blueprint-driven exercise selection, prescription
// calculation, the double-progression suggestion engine and pattern coverage
// analysis. Everything in this package is pure over its inputs; persistence
// is the service layer's job.
package planner

// Pattern is the coarse movement-pattern tag of an exercise.
type Pattern string

const (
	PatternSquat          Pattern = "squat"
	PatternHinge          Pattern = "hinge"
	PatternHorizontalPush Pattern = "horizontal_push"
	PatternHorizontalPull Pattern = "horizontal_pull"
	PatternVerticalPush   Pattern = "vertical_push"
	PatternVerticalPull   Pattern = "vertical_pull"
	PatternCore           Pattern = "core"
	PatternIsolation      Pattern = "isolation"
)

// CorePatterns are the canonical compound patterns a balanced plan must
// cover. Coverage analysis flags any of these with zero sets, and the
// set-budget trim never reduces them.
var CorePatterns = []Pattern{
	PatternSquat,
	PatternHinge,
	PatternHorizontalPush,
	PatternHorizontalPull,
	PatternVerticalPush,
	PatternVerticalPull,
}

// IsCorePattern reports whether p is one of the canonical compound patterns.
func IsCorePattern(p Pattern) bool {
	for _, c := range CorePatterns {
		if p == c {
			return true
		}
	}
	return false
}

// trimRank orders patterns for set reduction: lowest rank loses sets first.
func trimRank(p Pattern) int {
	switch p {
	case PatternIsolation:
		return 0
	case PatternCore:
		return 1
	default:
		return 2
	}
}

// Goal is the training goal driving rep ranges and selection scoring.
type Goal string

const (
	GoalHypertrophy Goal = "hypertrophy"
	GoalStrength    Goal = "strength"
	GoalEndurance   Goal = "endurance"
)

// ValidGoal reports whether g is a known training goal.
func ValidGoal(g Goal) bool {
	switch g {
	case GoalHypertrophy, GoalStrength, GoalEndurance:
		return true
	}
	return false
}

// Experience is the lifter's training experience level.
type Experience string

const (
	ExperienceNovice       Experience = "novice"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
)

// ValidExperience reports whether e is a known experience level.
func ValidExperience(e Experience) bool {
	switch e {
	case ExperienceNovice, ExperienceIntermediate, ExperienceAdvanced:
		return true
	}
	return false
}

// Environment restricts the equipment pool to what the lifter has access to.
type Environment string

const (
	EnvironmentGym  Environment = "gym"
	EnvironmentHome Environment = "home"
)

// environmentEquipment maps an environment to the equipment assumed
// available there. An explicit equipment whitelist in the request overrides
// this mapping.
var environmentEquipment = map[Environment][]string{
	EnvironmentGym:  {"Barbell", "Dumbbell", "Machine", "Cable", "Bodyweight", "Kettlebell"},
	EnvironmentHome: {"Dumbbell", "Bodyweight", "Band", "Kettlebell"},
}
