package planner

import (
	"sort"
	"strings"

	"avihayshai/hypertrophy-toolbox/internal/domain"
)

// SelectionConstraints are the pool filters applied before scoring.
type SelectionConstraints struct {
	Goal                 Goal
	Experience           Experience
	Environment          Environment
	EquipmentWhitelist   []string // empty means "whatever the environment offers"
	ExcludeExercises     []string // by name, case-insensitive
	MovementRestrictions []string // pattern or subpattern tags to avoid, e.g. "overhead_press"
}

// allowedEquipment resolves the effective equipment set. An explicit
// whitelist wins over the environment mapping; both empty means unrestricted.
func (c SelectionConstraints) allowedEquipment() map[string]bool {
	source := c.EquipmentWhitelist
	if len(source) == 0 {
		source = environmentEquipment[c.Environment]
	}
	if len(source) == 0 {
		return nil
	}
	allowed := make(map[string]bool, len(source))
	for _, eq := range source {
		allowed[strings.ToLower(eq)] = true
	}
	return allowed
}

// SelectExercise picks the best-scoring exercise for a blueprint slot from
// the candidate pool. Candidates already used in the plan are skipped, so the
// same exercise is never assigned twice within one generated plan. Returns
// ErrNoCandidate when the pool is empty after filtering; the caller decides
// whether to skip the slot or abort.
func SelectExercise(slot BlueprintSlot, pool []domain.Exercise, constraints SelectionConstraints, used map[string]bool) (*domain.Exercise, error) {
	candidates := filterPool(slot, pool, constraints, used, true)
	if len(candidates) == 0 && slot.Subpattern != "" {
		// No exact subpattern candidate; fall back to the whole pattern.
		candidates = filterPool(slot, pool, constraints, used, false)
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidate
	}

	// Deterministic: stable sort by score desc then name asc, take the top.
	sort.Slice(candidates, func(i, j int) bool {
		si := scoreCandidate(candidates[i], slot, constraints)
		sj := scoreCandidate(candidates[j], slot, constraints)
		if si != sj {
			return si > sj
		}
		return candidates[i].Name < candidates[j].Name
	})

	best := candidates[0]
	return &best, nil
}

func filterPool(slot BlueprintSlot, pool []domain.Exercise, c SelectionConstraints, used map[string]bool, matchSubpattern bool) []domain.Exercise {
	allowed := c.allowedEquipment()
	excluded := make(map[string]bool, len(c.ExcludeExercises))
	for _, name := range c.ExcludeExercises {
		excluded[strings.ToLower(name)] = true
	}

	var out []domain.Exercise
	for _, ex := range pool {
		if ex.MovementPattern != string(slot.Pattern) {
			continue
		}
		if matchSubpattern && slot.Subpattern != "" && ex.MovementSubpattern != slot.Subpattern {
			continue
		}
		if used[strings.ToLower(ex.Name)] {
			continue
		}
		if excluded[strings.ToLower(ex.Name)] {
			continue
		}
		if allowed != nil && ex.Equipment != "" && !allowed[strings.ToLower(ex.Equipment)] {
			continue
		}
		if restricted(ex, c.MovementRestrictions) {
			continue
		}
		// Novices never get exercises tagged Advanced.
		if c.Experience == ExperienceNovice && strings.EqualFold(ex.Difficulty, "Advanced") {
			continue
		}
		out = append(out, ex)
	}
	return out
}

func restricted(ex domain.Exercise, restrictions []string) bool {
	for _, r := range restrictions {
		if strings.EqualFold(ex.MovementPattern, r) || strings.EqualFold(ex.MovementSubpattern, r) {
			return true
		}
	}
	return false
}

// scoreCandidate ranks a filtered candidate for the slot. The heuristic is
// goal-sensitive: strength favors free-weight compounds for main slots,
// hypertrophy tolerates machines and cables for accessories.
func scoreCandidate(ex domain.Exercise, slot BlueprintSlot, c SelectionConstraints) int {
	score := 0

	if slot.Subpattern != "" && ex.MovementSubpattern == slot.Subpattern {
		score += 2
	}

	freeWeight := ex.Equipment == "Barbell" || ex.Equipment == "Dumbbell" || ex.Equipment == "Kettlebell"
	switch slot.Role {
	case RoleMain:
		if ex.IsCompound() {
			score += 3
		}
		if ex.Equipment == "Barbell" {
			score++
		}
	case RoleAccessory:
		if !ex.IsCompound() {
			score += 2
		}
	}

	switch c.Goal {
	case GoalStrength:
		if freeWeight && ex.IsCompound() {
			score += 3
		}
		if ex.Equipment == "Machine" {
			score--
		}
	case GoalHypertrophy:
		if slot.Role == RoleAccessory && (ex.Equipment == "Machine" || ex.Equipment == "Cable") {
			score++
		}
	case GoalEndurance:
		if ex.Equipment == "Bodyweight" {
			score++
		}
	}

	if strings.EqualFold(ex.Difficulty, string(c.Experience)) {
		score++
	}

	return score
}
