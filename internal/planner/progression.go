package planner

import (
	"math"

	"avihayshai/hypertrophy-toolbox/internal/domain"
)

// ProgressionStatus is the outcome of evaluating recent performance for one
// exercise. Statuses are recomputed on every view and never persisted.
type ProgressionStatus string

const (
	StatusIncreaseWeight ProgressionStatus = "increase_weight"
	StatusPushReps       ProgressionStatus = "push_reps"
	StatusReduceWeight   ProgressionStatus = "reduce_weight"
	StatusHold           ProgressionStatus = "hold"
)

// ProgressionPolicy holds the tunable parts of the double-progression rules.
// AssumeEffortOK decides what happens when a log entry carries neither RIR
// nor RPE: false (the default) is conservative and suppresses weight
// increases.
type ProgressionPolicy struct {
	SmallIncrement      float64 // default 2.5
	LargeIncrement      float64 // default 5
	SmallIncrementBelow float64 // weights under this always get the small increment, default 20
	DeloadPercent       float64 // default 10
	AssumeEffortOK      bool
}

// DefaultProgressionPolicy returns the standard increments and the
// conservative unknown-effort fallback.
func DefaultProgressionPolicy() ProgressionPolicy {
	return ProgressionPolicy{
		SmallIncrement:      2.5,
		LargeIncrement:      5,
		SmallIncrementBelow: 20,
		DeloadPercent:       10,
	}
}

// Suggestion is the computed progression advice for one exercise.
type Suggestion struct {
	Status     ProgressionStatus `json:"status"`
	NextWeight *float64          `json:"nextWeight,omitempty"`
	TargetReps *int              `json:"targetReps,omitempty"`
	Reason     string            `json:"reason"`
}

// SuggestProgression evaluates the double-progression state machine over an
// exercise's history, newest entry first. Only scored entries participate.
//
// Transition rules:
//   - top of the rep range hit with acceptable effort -> increase_weight
//   - below the bottom of the range twice in a row    -> reduce_weight
//   - below the bottom once                           -> push_reps
//   - anything else                                   -> hold
func SuggestProgression(history []domain.WorkoutLogEntry, experience Experience, policy ProgressionPolicy) Suggestion {
	scored := make([]domain.WorkoutLogEntry, 0, len(history))
	for _, e := range history {
		if e.IsScored() {
			scored = append(scored, e)
		}
	}
	if len(scored) == 0 {
		return Suggestion{Status: StatusHold, Reason: "no scored sessions yet"}
	}

	latest := scored[0]
	scoredMax := *latest.ScoredMaxReps
	weight := 0.0
	if latest.ScoredWeight != nil {
		weight = *latest.ScoredWeight
	} else if latest.PlannedWeight != nil {
		weight = *latest.PlannedWeight
	}

	if scoredMax >= latest.PlannedMaxReps {
		if effortAcceptable(latest, policy) {
			next := weight + increment(weight, experience, policy)
			target := latest.PlannedMinReps
			return Suggestion{
				Status:     StatusIncreaseWeight,
				NextWeight: &next,
				TargetReps: &target,
				Reason:     "top of rep range reached with effort in range",
			}
		}
		target := latest.PlannedMaxReps
		return Suggestion{
			Status:     StatusHold,
			TargetReps: &target,
			Reason:     "top of rep range reached but effort unknown or out of range; holding weight",
		}
	}

	if scoredMax < latest.PlannedMinReps {
		if consecutiveBelowMin(scored) >= 2 {
			next := roundToIncrement(weight*(1-policy.DeloadPercent/100), policy.SmallIncrement)
			target := latest.PlannedMinReps
			return Suggestion{
				Status:     StatusReduceWeight,
				NextWeight: &next,
				TargetReps: &target,
				Reason:     "below the rep range minimum in consecutive sessions",
			}
		}
		target := minInt(latest.PlannedMaxReps, scoredMax+1)
		return Suggestion{
			Status:     StatusPushReps,
			NextWeight: &weight,
			TargetReps: &target,
			Reason:     "below the rep range minimum; hold weight and push for more reps",
		}
	}

	target := minInt(latest.PlannedMaxReps, scoredMax+1)
	return Suggestion{
		Status:     StatusHold,
		NextWeight: &weight,
		TargetReps: &target,
		Reason:     "within the rep range; add a rep toward the top of the range",
	}
}

// effortAcceptable reports whether the session's effort permits a weight
// increase: RIR in [1,3] or RPE in [7,9]. With both absent, the policy's
// AssumeEffortOK decides.
func effortAcceptable(e domain.WorkoutLogEntry, policy ProgressionPolicy) bool {
	if e.RIR == nil && e.RPE == nil {
		return policy.AssumeEffortOK
	}
	if e.RIR != nil && *e.RIR >= 1 && *e.RIR <= 3 {
		return true
	}
	if e.RPE != nil && *e.RPE >= 7 && *e.RPE <= 9 {
		return true
	}
	return false
}

func increment(weight float64, experience Experience, policy ProgressionPolicy) float64 {
	if weight < policy.SmallIncrementBelow || experience == ExperienceNovice {
		return policy.SmallIncrement
	}
	return policy.LargeIncrement
}

// consecutiveBelowMin counts how many of the most recent scored entries in a
// row came in under the planned minimum.
func consecutiveBelowMin(scored []domain.WorkoutLogEntry) int {
	count := 0
	for _, e := range scored {
		if *e.ScoredMaxReps < e.PlannedMinReps {
			count++
			continue
		}
		break
	}
	return count
}

func roundToIncrement(v, inc float64) float64 {
	if inc <= 0 {
		return v
	}
	return math.Round(v/inc) * inc
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
