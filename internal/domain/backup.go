// internal/domain/backup.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanBackup is a named snapshot of a user's full selection set. Restoring a
// backup replaces the current plan routine by routine, under the same
// per-routine write guarantee as plan generation.
type PlanBackup struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`

	Label string `bson:"label" json:"label"` // generated UUID, stable handle for restore
	Name  string `bson:"name" json:"name"`   // user-supplied description

	Selections []UserSelection `bson:"selections" json:"selections"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
