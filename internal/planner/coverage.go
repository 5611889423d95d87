package planner

import (
	"fmt"

	"avihayshai/hypertrophy-toolbox/internal/domain"
)

// Warning severities, mildest first.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityHigh    = "high"
)

// Warning codes.
const (
	WarnLowVolume      = "low_volume"
	WarnHighVolume     = "high_volume"
	WarnMissingPattern = "missing_pattern"
	WarnPushPullSkew   = "push_pull_skew"
	WarnIsolationHeavy = "isolation_heavy"
)

// pushPullSkewThreshold flags a plan when the smaller of push/pull volume is
// more than 50% away from the larger.
const pushPullSkewThreshold = 0.5

// isolationCompoundThreshold flags a plan when isolation sets outnumber
// compound sets.
const isolationCompoundThreshold = 1.0

// CoverageWarning is one finding of the coverage report.
type CoverageWarning struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Routine  string `json:"routine,omitempty"` // empty for plan-wide findings
	Message  string `json:"message"`
}

// CoverageReport aggregates a persisted plan by movement pattern. It is a
// read-only report: imbalances become warnings, never errors.
type CoverageReport struct {
	PerRoutineSets map[string]map[Pattern]int `json:"perRoutineSets"`
	TotalSets      map[Pattern]int            `json:"totalSets"`
	Warnings       []CoverageWarning          `json:"warnings"`
}

// AnalyzeCoverage counts sets per movement pattern per routine and flags:
// routines outside the set band, canonical patterns with zero volume,
// push:pull skew beyond 50%, and isolation volume exceeding compound volume.
func AnalyzeCoverage(selections []domain.UserSelection, limits Limits) CoverageReport {
	if limits.RoutineSetBudget == 0 {
		limits = DefaultLimits()
	}

	report := CoverageReport{
		PerRoutineSets: make(map[string]map[Pattern]int),
		TotalSets:      make(map[Pattern]int),
	}

	routineSets := make(map[string]int)
	var routineOrder []string
	compoundSets, isolationSets := 0, 0

	for _, sel := range selections {
		pattern := Pattern(sel.MovementPattern)
		if pattern == "" {
			pattern, _ = Classify(sel.ExerciseName, sel.PrimaryMuscle)
		}
		if report.PerRoutineSets[sel.Routine] == nil {
			report.PerRoutineSets[sel.Routine] = make(map[Pattern]int)
			routineOrder = append(routineOrder, sel.Routine)
		}
		report.PerRoutineSets[sel.Routine][pattern] += sel.Sets
		report.TotalSets[pattern] += sel.Sets
		routineSets[sel.Routine] += sel.Sets

		if sel.Mechanic == domain.MechanicCompound {
			compoundSets += sel.Sets
		} else {
			isolationSets += sel.Sets
		}
	}

	for _, routine := range routineOrder {
		sets := routineSets[routine]
		if sets < limits.RoutineSetFloor {
			report.Warnings = append(report.Warnings, CoverageWarning{
				Severity: SeverityWarning,
				Code:     WarnLowVolume,
				Routine:  routine,
				Message:  fmt.Sprintf("routine %s has %d sets, below the %d set floor", routine, sets, limits.RoutineSetFloor),
			})
		}
		if sets > limits.RoutineSetBudget {
			report.Warnings = append(report.Warnings, CoverageWarning{
				Severity: SeverityWarning,
				Code:     WarnHighVolume,
				Routine:  routine,
				Message:  fmt.Sprintf("routine %s has %d sets, above the %d set budget", routine, sets, limits.RoutineSetBudget),
			})
		}
	}

	for _, pattern := range CorePatterns {
		if report.TotalSets[pattern] == 0 {
			report.Warnings = append(report.Warnings, CoverageWarning{
				Severity: SeverityHigh,
				Code:     WarnMissingPattern,
				Message:  fmt.Sprintf("no %s exercises anywhere in the plan", pattern),
			})
		}
	}

	pushSets := report.TotalSets[PatternHorizontalPush] + report.TotalSets[PatternVerticalPush]
	pullSets := report.TotalSets[PatternHorizontalPull] + report.TotalSets[PatternVerticalPull]
	if pushSets > 0 || pullSets > 0 {
		larger := pushSets
		if pullSets > larger {
			larger = pullSets
		}
		skew := float64(abs(pushSets-pullSets)) / float64(larger)
		if skew > pushPullSkewThreshold {
			report.Warnings = append(report.Warnings, CoverageWarning{
				Severity: SeverityWarning,
				Code:     WarnPushPullSkew,
				Message:  fmt.Sprintf("push:pull set balance is skewed (%d push vs %d pull)", pushSets, pullSets),
			})
		}
	}

	if compoundSets > 0 && float64(isolationSets)/float64(compoundSets) > isolationCompoundThreshold {
		report.Warnings = append(report.Warnings, CoverageWarning{
			Severity: SeverityInfo,
			Code:     WarnIsolationHeavy,
			Message:  fmt.Sprintf("isolation volume (%d sets) exceeds compound volume (%d sets)", isolationSets, compoundSets),
		})
	}

	return report
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
