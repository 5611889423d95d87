// internal/domain/selection.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SlotRole marks whether a plan row is a main lift or an accessory.
type SlotRole string

const (
	RoleMain      SlotRole = "main"
	RoleAccessory SlotRole = "accessory"
)

// UserSelection is one exercise of a user's current workout plan, keyed by
// routine label ("A", "B", ...). Rows are written by the plan generator or
// created manually, mutated by the edit endpoints and replaced wholesale on
// overwrite/restore.
type UserSelection struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`

	Routine      string `bson:"routine" json:"routine"` // "A".."E"
	ExerciseName string `bson:"exerciseName" json:"exerciseName"`

	// Denormalized from the catalog so coverage analysis and merge-mode
	// generation do not need a catalog lookup per row.
	MovementPattern    string   `bson:"movementPattern,omitempty" json:"movementPattern,omitempty"`
	MovementSubpattern string   `bson:"movementSubpattern,omitempty" json:"movementSubpattern,omitempty"`
	Mechanic           Mechanic `bson:"mechanic,omitempty" json:"mechanic,omitempty"`
	PrimaryMuscle      string   `bson:"primaryMuscle,omitempty" json:"primaryMuscle,omitempty"`
	Role               SlotRole `bson:"role,omitempty" json:"role,omitempty"`

	Sets    int      `bson:"sets" json:"sets"`
	MinReps int      `bson:"minReps" json:"minReps"`
	MaxReps int      `bson:"maxReps" json:"maxReps"`
	RIR     *int     `bson:"rir,omitempty" json:"rir,omitempty"`
	RPE     *float64 `bson:"rpe,omitempty" json:"rpe,omitempty"`
	Weight  *float64 `bson:"weight,omitempty" json:"weight,omitempty"`

	ExerciseOrder int `bson:"exerciseOrder" json:"exerciseOrder"` // position within the routine

	// SupersetGroup links exactly two selections of the same routine that are
	// performed back-to-back. Nil means the row is not part of a superset.
	SupersetGroup *string `bson:"supersetGroup,omitempty" json:"supersetGroup,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
