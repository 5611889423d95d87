package mongo

import (
	"context"
	"errors"
	"time"

	"avihayshai/hypertrophy-toolbox/internal/domain"
	"avihayshai/hypertrophy-toolbox/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseCollectionName = "exercises"

// filterFieldToBSON translates whitelisted filter field names to document
// keys. Anything not in this map is silently dropped; the service layer has
// already rejected unknown fields, this is the second gate.
var filterFieldToBSON = map[string]string{
	"name":                "name",
	"primary_muscle":      "primaryMuscle",
	"secondary_muscle":    "secondaryMuscle",
	"tertiary_muscle":     "tertiaryMuscle",
	"equipment":           "equipment",
	"mechanic":            "mechanic",
	"force":               "force",
	"movement_pattern":    "movementPattern",
	"movement_subpattern": "movementSubpattern",
	"difficulty":          "difficulty",
}

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new exercise catalog repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// Upsert bulk-imports catalog rows keyed by name. Existing rows are updated,
// new ones inserted; returns the number of rows written.
func (r *mongoExerciseRepository) Upsert(ctx context.Context, exercises []domain.Exercise) (int, error) {
	if len(exercises) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	models := make([]mongo.WriteModel, 0, len(exercises))
	for _, ex := range exercises {
		if ex.Name == "" {
			return 0, errors.New("exercise name is required")
		}
		update := bson.M{
			"$set": bson.M{
				"primaryMuscle":      ex.PrimaryMuscle,
				"secondaryMuscle":    ex.SecondaryMuscle,
				"tertiaryMuscle":     ex.TertiaryMuscle,
				"equipment":          ex.Equipment,
				"mechanic":           ex.Mechanic,
				"force":              ex.Force,
				"movementPattern":    ex.MovementPattern,
				"movementSubpattern": ex.MovementSubpattern,
				"difficulty":         ex.Difficulty,
				"updatedAt":          now,
			},
			"$setOnInsert": bson.M{
				"name":      ex.Name,
				"createdAt": now,
			},
		}
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"name": ex.Name}).
			SetUpdate(update).
			SetUpsert(true))
	}

	result, err := r.collection.BulkWrite(ctx, models)
	if err != nil {
		return 0, err
	}
	return upsertedRowCount(result), nil
}

// upsertedRowCount counts the rows a bulk upsert touched: inserts plus
// matched existing rows. MatchedCount already covers every modified document,
// so ModifiedCount must not be added on top of it.
func upsertedRowCount(result *mongo.BulkWriteResult) int {
	return int(result.UpsertedCount + result.MatchedCount)
}

// GetByName retrieves one catalog row by its unique name.
func (r *mongoExerciseRepository) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// List returns catalog rows matching the filter, sorted by name. Only
// whitelisted fields participate in the query.
func (r *mongoExerciseRepository) List(ctx context.Context, filter repository.ExerciseFilter) ([]domain.Exercise, error) {
	query := bson.M{}
	for field, value := range filter.Fields {
		if key, ok := filterFieldToBSON[field]; ok {
			query[key] = value
		}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exercises []domain.Exercise
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// ListUntagged returns rows missing a movement pattern; the backfill job
// classifies and tags them.
func (r *mongoExerciseRepository) ListUntagged(ctx context.Context) ([]domain.Exercise, error) {
	query := bson.M{"$or": bson.A{
		bson.M{"movementPattern": bson.M{"$exists": false}},
		bson.M{"movementPattern": ""},
	}}

	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exercises []domain.Exercise
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// SetMovementPattern tags one row with its classified pattern.
func (r *mongoExerciseRepository) SetMovementPattern(ctx context.Context, name, pattern, subpattern string) error {
	update := bson.M{"$set": bson.M{
		"movementPattern":    pattern,
		"movementSubpattern": subpattern,
		"updatedAt":          time.Now().UTC(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"name": name}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Name is the catalog's unique key.
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "movementPattern", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "primaryMuscle", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
