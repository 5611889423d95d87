// internal/domain/workout_log.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutLogEntry is a realized instance of a UserSelection. The planned_*
// fields are copied from the plan when it is exported to the log; the scored_*
// fields are filled in as the user records actual performance. Progression
// suggestions are computed from the most recent entries per exercise and are
// never persisted.
type WorkoutLogEntry struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`

	Routine      string `bson:"routine" json:"routine"`
	ExerciseName string `bson:"exerciseName" json:"exerciseName"`

	PlannedSets    int      `bson:"plannedSets" json:"plannedSets"`
	PlannedMinReps int      `bson:"plannedMinReps" json:"plannedMinReps"`
	PlannedMaxReps int      `bson:"plannedMaxReps" json:"plannedMaxReps"`
	PlannedWeight  *float64 `bson:"plannedWeight,omitempty" json:"plannedWeight,omitempty"`
	PlannedRIR     *int     `bson:"plannedRir,omitempty" json:"plannedRir,omitempty"`

	ScoredSets    *int     `bson:"scoredSets,omitempty" json:"scoredSets,omitempty"`
	ScoredMinReps *int     `bson:"scoredMinReps,omitempty" json:"scoredMinReps,omitempty"`
	ScoredMaxReps *int     `bson:"scoredMaxReps,omitempty" json:"scoredMaxReps,omitempty"`
	ScoredWeight  *float64 `bson:"scoredWeight,omitempty" json:"scoredWeight,omitempty"`

	// Effort reported for the session. Both may be absent; progression
	// evaluation treats that case according to the configured policy.
	RIR *int     `bson:"rir,omitempty" json:"rir,omitempty"`
	RPE *float64 `bson:"rpe,omitempty" json:"rpe,omitempty"`

	SessionDate time.Time  `bson:"sessionDate" json:"sessionDate"`
	ScoredAt    *time.Time `bson:"scoredAt,omitempty" json:"scoredAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsScored reports whether actual performance has been recorded.
func (w *WorkoutLogEntry) IsScored() bool {
	return w.ScoredMaxReps != nil
}
