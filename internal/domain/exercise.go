// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mechanic distinguishes compound from isolation movements.
type Mechanic string

const (
	MechanicCompound  Mechanic = "Compound"
	MechanicIsolation Mechanic = "Isolation"
)

// Force is the coarse force direction of an exercise.
type Force string

const (
	ForcePush   Force = "Push"
	ForcePull   Force = "Pull"
	ForceStatic Force = "Static"
)

// Exercise is one row of the exercise catalog. The catalog is reference data:
// seeded by the import endpoint, touched afterwards only by maintenance jobs
// (pattern backfill). Name is the unique key.
type Exercise struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	Name            string `bson:"name" json:"name"`
	PrimaryMuscle   string `bson:"primaryMuscle" json:"primaryMuscle"` // e.g., "Chest", "Quadriceps"
	SecondaryMuscle string `bson:"secondaryMuscle,omitempty" json:"secondaryMuscle,omitempty"`
	TertiaryMuscle  string `bson:"tertiaryMuscle,omitempty" json:"tertiaryMuscle,omitempty"`

	Equipment string   `bson:"equipment,omitempty" json:"equipment,omitempty"` // e.g., "Barbell", "Dumbbell", "Machine", "Cable", "Bodyweight"
	Mechanic  Mechanic `bson:"mechanic,omitempty" json:"mechanic,omitempty"`
	Force     Force    `bson:"force,omitempty" json:"force,omitempty"`

	// MovementPattern/Subpattern are auto-populated by the classifier when an
	// exercise is imported without tags, so classification must stay
	// deterministic (re-running the backfill yields the same tags).
	MovementPattern    string `bson:"movementPattern,omitempty" json:"movementPattern,omitempty"`
	MovementSubpattern string `bson:"movementSubpattern,omitempty" json:"movementSubpattern,omitempty"`

	Difficulty string `bson:"difficulty,omitempty" json:"difficulty,omitempty"` // "Novice", "Intermediate", "Advanced"

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsCompound reports whether the exercise is a compound movement.
func (e *Exercise) IsCompound() bool {
	return e.Mechanic == MechanicCompound
}

// Muscles returns the non-empty muscle groups of the exercise, primary first.
func (e *Exercise) Muscles() []string {
	muscles := make([]string, 0, 3)
	for _, m := range []string{e.PrimaryMuscle, e.SecondaryMuscle, e.TertiaryMuscle} {
		if m != "" {
			muscles = append(muscles, m)
		}
	}
	return muscles
}
