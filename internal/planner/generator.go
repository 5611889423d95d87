package planner

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"avihayshai/hypertrophy-toolbox/internal/domain"
)

// GenerateConfig is the validated input of one generation run. It mirrors the
// JSON request contract field for field.
type GenerateConfig struct {
	TrainingDays         int
	Environment          Environment
	Experience           Experience
	Goal                 Goal
	VolumeScale          float64
	EquipmentWhitelist   []string
	ExcludeExercises     []string
	MovementRestrictions []string
	PriorityMuscles      []string
	TimeBudgetMinutes    int
	MergeMode            bool
	Overwrite            bool
	Persist              bool
}

// Validate checks enum values and ranges and fills defaults. Returns a
// *ValidationError naming the offending field.
func (c *GenerateConfig) Validate() error {
	if c.TrainingDays < 1 || c.TrainingDays > 5 {
		return &ValidationError{Field: "training_days", Message: fmt.Sprintf("must be between 1 and 5, got %d", c.TrainingDays)}
	}
	if c.Environment == "" {
		c.Environment = EnvironmentGym
	}
	if c.Environment != EnvironmentGym && c.Environment != EnvironmentHome {
		return &ValidationError{Field: "environment", Message: fmt.Sprintf("unknown environment %q", c.Environment)}
	}
	if c.Experience == "" {
		c.Experience = ExperienceIntermediate
	}
	if !ValidExperience(c.Experience) {
		return &ValidationError{Field: "experience_level", Message: fmt.Sprintf("unknown experience level %q", c.Experience)}
	}
	if c.Goal == "" {
		c.Goal = GoalHypertrophy
	}
	if !ValidGoal(c.Goal) {
		return &ValidationError{Field: "goal", Message: fmt.Sprintf("unknown goal %q", c.Goal)}
	}
	if c.VolumeScale == 0 {
		c.VolumeScale = 1.0
	}
	if c.VolumeScale < 0.5 || c.VolumeScale > 1.5 {
		return &ValidationError{Field: "volume_scale", Message: "must be within [0.5, 1.5]"}
	}
	if c.TimeBudgetMinutes < 0 {
		return &ValidationError{Field: "time_budget_minutes", Message: "must not be negative"}
	}
	if c.MergeMode && c.Overwrite {
		return &ValidationError{Field: "merge_mode", Message: "merge_mode and overwrite are mutually exclusive"}
	}
	return nil
}

func (c GenerateConfig) constraints() SelectionConstraints {
	return SelectionConstraints{
		Goal:                 c.Goal,
		Experience:           c.Experience,
		Environment:          c.Environment,
		EquipmentWhitelist:   c.EquipmentWhitelist,
		ExcludeExercises:     c.ExcludeExercises,
		MovementRestrictions: c.MovementRestrictions,
	}
}

// PlanItem is one generated slot: the chosen exercise plus its prescription.
type PlanItem struct {
	Routine      string          `json:"routine"`
	SlotIndex    int             `json:"slotIndex"`
	Exercise     domain.Exercise `json:"exercise"`
	Pattern      Pattern         `json:"pattern"`
	Subpattern   string          `json:"subpattern,omitempty"`
	Role         SlotRole        `json:"role"`
	Prescription Prescription    `json:"prescription"`
}

// GeneratedPlan is the result of one generation run, before persistence.
type GeneratedPlan struct {
	RoutineOrder []string              `json:"routineOrder"`
	Routines     map[string][]PlanItem `json:"routines"`
	Warnings     []string              `json:"warnings,omitempty"`
}

// TotalExercises counts the exercises assigned across all routines.
func (p *GeneratedPlan) TotalExercises() int {
	total := 0
	for _, items := range p.Routines {
		total += len(items)
	}
	return total
}

// SetsPerRoutine sums prescribed sets per routine label.
func (p *GeneratedPlan) SetsPerRoutine() map[string]int {
	sets := make(map[string]int, len(p.Routines))
	for label, items := range p.Routines {
		for _, it := range items {
			sets[label] += it.Prescription.Sets
		}
	}
	return sets
}

// Limits are the tunable volume bounds, injected from configuration rather
// than read from package globals.
type Limits struct {
	RoutineSetBudget int // upper bound enforced by the priority pass, default 24
	RoutineSetFloor  int // lower bound reported by coverage analysis, default 15
}

// DefaultLimits returns the standard [15,24] routine set band.
func DefaultLimits() Limits {
	return Limits{RoutineSetBudget: 24, RoutineSetFloor: 15}
}

const (
	accessorySetCap      = 4 // priority boost never pushes an accessory past this
	mainSetCap           = 5
	secondsPerRep        = 3
	mainRestSeconds      = 150
	accessoryRestSeconds = 90
)

// Generate runs the full pipeline for one config: blueprint slots are filled
// via the selector and prescription calculator, then the priority-muscle
// reallocation and time-budget trimming passes run per routine. The pool and
// any existing selections (for merge mode) are supplied by the caller; the
// function itself never touches storage.
func Generate(cfg GenerateConfig, pool []domain.Exercise, existing []domain.UserSelection, limits Limits) (*GeneratedPlan, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if limits.RoutineSetBudget == 0 {
		limits = DefaultLimits()
	}

	bp, err := BlueprintFor(cfg.TrainingDays)
	if err != nil {
		return nil, err
	}

	plan := &GeneratedPlan{
		RoutineOrder: bp.RoutineOrder,
		Routines:     make(map[string][]PlanItem, len(bp.RoutineOrder)),
	}

	// One used-set for the whole plan: an exercise appears at most once.
	used := make(map[string]bool)
	coveredPatterns := make(map[string]map[Pattern]bool)
	if cfg.MergeMode {
		for _, sel := range existing {
			used[strings.ToLower(sel.ExerciseName)] = true
			pattern := Pattern(sel.MovementPattern)
			if pattern == "" {
				pattern, _ = Classify(sel.ExerciseName, sel.PrimaryMuscle)
			}
			if coveredPatterns[sel.Routine] == nil {
				coveredPatterns[sel.Routine] = make(map[Pattern]bool)
			}
			coveredPatterns[sel.Routine][pattern] = true
		}
	}

	constraints := cfg.constraints()
	for _, label := range bp.RoutineOrder {
		var items []PlanItem
		for slotIdx, slot := range bp.Slots[label] {
			if cfg.MergeMode && coveredPatterns[label][slot.Pattern] {
				continue
			}

			ex, err := SelectExercise(slot, pool, constraints, used)
			if err != nil {
				if errors.Is(err, ErrNoCandidate) {
					plan.Warnings = append(plan.Warnings,
						fmt.Sprintf("routine %s: no candidate for slot %d (%s), slot skipped", label, slotIdx, slot.Pattern))
					continue
				}
				return nil, err
			}
			used[strings.ToLower(ex.Name)] = true

			presc := Prescribe(ex.Mechanic, cfg.Goal, slot.Role, slotIdx, cfg.Experience)
			if slot.Role == RoleAccessory && cfg.VolumeScale != 1.0 {
				presc.Sets = clamp(int(math.Round(float64(presc.Sets)*cfg.VolumeScale)), 1, accessorySetCap)
			}

			items = append(items, PlanItem{
				Routine:      label,
				SlotIndex:    slotIdx,
				Exercise:     *ex,
				Pattern:      slot.Pattern,
				Subpattern:   slot.Subpattern,
				Role:         slot.Role,
				Prescription: presc,
			})
		}

		items = applyPriorityMuscles(items, cfg, limits, plan)
		items = enforceSetFloor(items, cfg, limits, plan)
		items = applyTimeBudget(items, cfg, plan)
		plan.Routines[label] = items
	}

	return plan, nil
}

// applyPriorityMuscles adds one set per priority muscle to matching
// accessories (cap 4), falling back to a matching main lift when no accessory
// trains the muscle. If the routine then exceeds the set budget, sets are
// taken back from non-priority isolation and core work first; core compound
// patterns are never reduced.
func applyPriorityMuscles(items []PlanItem, cfg GenerateConfig, limits Limits, plan *GeneratedPlan) []PlanItem {
	if len(cfg.PriorityMuscles) == 0 || len(items) == 0 {
		return items
	}

	for _, muscle := range cfg.PriorityMuscles {
		boosted := false
		for i := range items {
			if items[i].Role != RoleAccessory || !trainsMuscle(items[i].Exercise, muscle) {
				continue
			}
			if items[i].Prescription.Sets < accessorySetCap {
				items[i].Prescription.Sets++
				boosted = true
			}
		}
		if boosted {
			continue
		}
		// No accessory covers the muscle; boost the first matching main lift.
		for i := range items {
			if items[i].Role == RoleMain && trainsMuscle(items[i].Exercise, muscle) && items[i].Prescription.Sets < mainSetCap {
				items[i].Prescription.Sets++
				break
			}
		}
	}

	// Enforce the routine set budget: reduce the lowest-rank non-priority
	// pattern first, then the item with the most sets.
	label := items[0].Routine
	for totalSets(items) > limits.RoutineSetBudget {
		idx := -1
		for i := range items {
			if IsCorePattern(items[i].Pattern) {
				continue
			}
			if matchesAnyMuscle(items[i].Exercise, cfg.PriorityMuscles) {
				continue
			}
			if items[i].Prescription.Sets <= 1 {
				continue
			}
			if idx == -1 {
				idx = i
				continue
			}
			ri, rc := trimRank(items[i].Pattern), trimRank(items[idx].Pattern)
			if ri < rc || (ri == rc && items[i].Prescription.Sets > items[idx].Prescription.Sets) {
				idx = i
			}
		}
		if idx == -1 {
			plan.Warnings = append(plan.Warnings,
				fmt.Sprintf("routine %s: set budget of %d exceeded but only core compound sets remain", label, limits.RoutineSetBudget))
			break
		}
		items[idx].Prescription.Sets--
	}

	return items
}

// enforceSetFloor adds back accessory volume removed by a low volume scale
// until the routine meets the set floor. Only accessories are raised, fewest
// sets first; a routine that still cannot reach the floor gets a warning.
// Time-budget trimming runs after this and may legitimately go below the
// floor again.
func enforceSetFloor(items []PlanItem, cfg GenerateConfig, limits Limits, plan *GeneratedPlan) []PlanItem {
	if cfg.VolumeScale >= 1.0 || len(items) == 0 {
		return items
	}

	label := items[0].Routine
	for totalSets(items) < limits.RoutineSetFloor {
		idx := -1
		for i := range items {
			if items[i].Role != RoleAccessory || items[i].Prescription.Sets >= accessorySetCap {
				continue
			}
			if idx == -1 || items[i].Prescription.Sets < items[idx].Prescription.Sets {
				idx = i
			}
		}
		if idx == -1 {
			plan.Warnings = append(plan.Warnings,
				fmt.Sprintf("routine %s: %d sets after volume scaling, below the %d set floor", label, totalSets(items), limits.RoutineSetFloor))
			break
		}
		items[idx].Prescription.Sets++
	}
	return items
}

// applyTimeBudget trims accessory volume until the estimated session duration
// fits the requested time budget. Main lifts are never taken below the
// role minimum for the lifter's experience; accessories can be reduced to
// zero sets and are then dropped.
func applyTimeBudget(items []PlanItem, cfg GenerateConfig, plan *GeneratedPlan) []PlanItem {
	if cfg.TimeBudgetMinutes <= 0 || len(items) == 0 {
		return items
	}

	label := items[0].Routine
	floor := MainSetFloor(cfg.Experience)

	for estimateMinutes(items) > float64(cfg.TimeBudgetMinutes) {
		idx := -1
		// Accessories first: non-priority before priority, lowest pattern
		// rank before higher, most sets breaks ties.
		for i := range items {
			if items[i].Role != RoleAccessory || items[i].Prescription.Sets < 1 {
				continue
			}
			if idx == -1 {
				idx = i
				continue
			}
			if betterTrimTarget(items[i], items[idx], cfg.PriorityMuscles) {
				idx = i
			}
		}
		if idx == -1 {
			// Only mains left; they stay at or above the role minimum.
			reducible := false
			for i := range items {
				if items[i].Role == RoleMain && items[i].Prescription.Sets > floor {
					items[i].Prescription.Sets--
					reducible = true
					break
				}
			}
			if !reducible {
				plan.Warnings = append(plan.Warnings,
					fmt.Sprintf("routine %s: cannot fit %d minute budget without cutting main lifts below minimum", label, cfg.TimeBudgetMinutes))
				break
			}
			continue
		}

		items[idx].Prescription.Sets--
		if items[idx].Prescription.Sets == 0 {
			items = append(items[:idx], items[idx+1:]...)
		}
	}

	return items
}

func betterTrimTarget(a, b PlanItem, priorityMuscles []string) bool {
	aPrio := matchesAnyMuscle(a.Exercise, priorityMuscles)
	bPrio := matchesAnyMuscle(b.Exercise, priorityMuscles)
	if aPrio != bPrio {
		return !aPrio // non-priority work goes first
	}
	ra, rb := trimRank(a.Pattern), trimRank(b.Pattern)
	if ra != rb {
		return ra < rb
	}
	return a.Prescription.Sets > b.Prescription.Sets
}

// estimateMinutes is the rough session duration formula:
// sets x (avg reps x tempo + rest), summed over the routine.
func estimateMinutes(items []PlanItem) float64 {
	var seconds float64
	for _, it := range items {
		avgReps := float64(it.Prescription.MinReps+it.Prescription.MaxReps) / 2
		rest := float64(accessoryRestSeconds)
		if it.Role == RoleMain {
			rest = float64(mainRestSeconds)
		}
		seconds += float64(it.Prescription.Sets) * (avgReps*secondsPerRep + rest)
	}
	return seconds / 60
}

func totalSets(items []PlanItem) int {
	total := 0
	for _, it := range items {
		total += it.Prescription.Sets
	}
	return total
}

func trainsMuscle(ex domain.Exercise, muscle string) bool {
	for _, m := range ex.Muscles() {
		if strings.EqualFold(m, muscle) {
			return true
		}
	}
	return false
}

func matchesAnyMuscle(ex domain.Exercise, muscles []string) bool {
	for _, m := range muscles {
		if trainsMuscle(ex, m) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SortItems restores blueprint order after post-processing passes; it keeps
// the exercise_order column stable for persistence.
func SortItems(items []PlanItem) {
	sort.Slice(items, func(i, j int) bool { return items[i].SlotIndex < items[j].SlotIndex })
}
