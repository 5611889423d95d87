package planner

import "strings"

// classifierRule matches an exercise by name keywords and, optionally, by its
// primary muscle group. Rules are evaluated in order; the first match wins.
type classifierRule struct {
	Keywords   []string // any-of, matched against the lowercased name
	Muscles    []string // if non-empty, primary muscle must also be one of these
	Pattern    Pattern
	Subpattern string
}

// classifierRules is the ordered rule table. Hinge keywords come before squat
// keywords so "Romanian Deadlift" and "Stiff Leg Deadlift" never fall through
// to a squat match, and named presses are resolved before the generic "press".
var classifierRules = []classifierRule{
	// hinge
	{Keywords: []string{"deadlift", "good morning", "hip thrust", "glute bridge", "pull-through", "pull through", "swing", "back extension", "hyperextension"}, Pattern: PatternHinge, Subpattern: "hip_hinge"},
	{Keywords: []string{"rdl", "romanian"}, Pattern: PatternHinge, Subpattern: "hip_hinge"},

	// squat and knee-dominant single-leg work
	{Keywords: []string{"lunge", "split squat", "step-up", "step up", "pistol"}, Pattern: PatternSquat, Subpattern: "lunge"},
	{Keywords: []string{"squat", "leg press", "hack"}, Pattern: PatternSquat, Subpattern: "bilateral"},

	// vertical push before the generic bench/press keywords
	{Keywords: []string{"overhead press", "shoulder press", "military press", "push press", "arnold press", "ohp", "handstand"}, Pattern: PatternVerticalPush, Subpattern: "overhead_press"},

	// horizontal push
	{Keywords: []string{"bench", "push-up", "push up", "pushup", "chest press", "floor press", "dip"}, Pattern: PatternHorizontalPush, Subpattern: "press"},
	{Keywords: []string{"fly", "flye", "crossover", "pec deck"}, Pattern: PatternHorizontalPush, Subpattern: "fly"},

	// vertical pull
	{Keywords: []string{"pulldown", "pull-down", "pull-up", "pull up", "pullup", "chin-up", "chin up", "chinup", "lat prayer"}, Pattern: PatternVerticalPull, Subpattern: "pulldown"},

	// horizontal pull
	{Keywords: []string{"row", "face pull", "rear delt", "reverse fly", "shrug"}, Pattern: PatternHorizontalPull, Subpattern: "row"},

	// core
	{Keywords: []string{"plank", "crunch", "sit-up", "sit up", "situp", "rollout", "dead bug", "bird dog", "pallof", "woodchop", "leg raise", "hanging knee", "ab wheel", "side bend"}, Pattern: PatternCore, Subpattern: "anti_extension"},

	// muscle-group fallbacks for unrecognised names
	{Keywords: nil, Muscles: []string{"Quadriceps"}, Pattern: PatternSquat, Subpattern: "bilateral"},
	{Keywords: nil, Muscles: []string{"Hamstrings", "Glutes", "Lower Back"}, Pattern: PatternHinge, Subpattern: "hip_hinge"},
	{Keywords: nil, Muscles: []string{"Chest"}, Pattern: PatternHorizontalPush, Subpattern: "press"},
	{Keywords: nil, Muscles: []string{"Lats", "Back"}, Pattern: PatternVerticalPull, Subpattern: "pulldown"},
	{Keywords: nil, Muscles: []string{"Abs", "Obliques"}, Pattern: PatternCore, Subpattern: "anti_extension"},
}

// Classify maps an exercise's name and primary muscle group to a movement
// pattern and subpattern. It is deterministic and idempotent: the catalog
// backfill job relies on re-runs producing identical tags. Unmatched
// exercises fall back to isolation.
func Classify(name, primaryMuscle string) (Pattern, string) {
	lowered := strings.ToLower(name)
	for _, rule := range classifierRules {
		if rule.matches(lowered, primaryMuscle) {
			return rule.Pattern, rule.Subpattern
		}
	}
	return PatternIsolation, ""
}

func (r classifierRule) matches(loweredName, primaryMuscle string) bool {
	if len(r.Keywords) > 0 {
		found := false
		for _, kw := range r.Keywords {
			if strings.Contains(loweredName, kw) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(r.Muscles) > 0 {
		found := false
		for _, m := range r.Muscles {
			if strings.EqualFold(primaryMuscle, m) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	// A rule with neither keywords nor muscles would match everything.
	return len(r.Keywords) > 0 || len(r.Muscles) > 0
}
