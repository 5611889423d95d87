package mongo

import (
	"context"
	"errors"
	"time"

	"avihayshai/hypertrophy-toolbox/internal/domain"
	"avihayshai/hypertrophy-toolbox/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutLogCollectionName = "workout_log"

// mongoWorkoutLogRepository implements repository.WorkoutLogRepository
type mongoWorkoutLogRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutLogRepository creates a new workout log repository backed by MongoDB.
func NewMongoWorkoutLogRepository(db *mongo.Database) repository.WorkoutLogRepository {
	return &mongoWorkoutLogRepository{
		collection: db.Collection(workoutLogCollectionName),
	}
}

// InsertMany appends a batch of log entries, typically one plan export.
func (r *mongoWorkoutLogRepository) InsertMany(ctx context.Context, entries []domain.WorkoutLogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(entries))
	for i := range entries {
		if entries[i].ExerciseName == "" || entries[i].UserID == primitive.NilObjectID {
			return errors.New("exercise name and user ID are required")
		}
		entries[i].ID = primitive.NewObjectID()
		entries[i].CreatedAt = now
		entries[i].UpdatedAt = now
		docs = append(docs, entries[i])
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// GetByID retrieves one log entry, scoped to its owner.
func (r *mongoWorkoutLogRepository) GetByID(ctx context.Context, userID, id primitive.ObjectID) (*domain.WorkoutLogEntry, error) {
	var entry domain.WorkoutLogEntry
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// ListByUser returns the full log, newest session first.
func (r *mongoWorkoutLogRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLogEntry, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "sessionDate", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.WorkoutLogEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListByExercise returns the most recent entries for one exercise, newest
// first. The progression engine reads its history through this.
func (r *mongoWorkoutLogRepository) ListByExercise(ctx context.Context, userID primitive.ObjectID, exerciseName string, limit int) ([]domain.WorkoutLogEntry, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "sessionDate", Value: -1}})
	if limit > 0 {
		findOptions = findOptions.SetLimit(int64(limit))
	}

	filter := bson.M{"userId": userID, "exerciseName": exerciseName}
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.WorkoutLogEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Update records actual performance on an entry.
func (r *mongoWorkoutLogRepository) Update(ctx context.Context, entry *domain.WorkoutLogEntry) error {
	if entry.ID == primitive.NilObjectID {
		return errors.New("log entry ID is required for update")
	}

	filter := bson.M{"_id": entry.ID, "userId": entry.UserID}
	update := bson.M{
		"$set": bson.M{
			"scoredSets":    entry.ScoredSets,
			"scoredMinReps": entry.ScoredMinReps,
			"scoredMaxReps": entry.ScoredMaxReps,
			"scoredWeight":  entry.ScoredWeight,
			"rir":           entry.RIR,
			"rpe":           entry.RPE,
			"scoredAt":      entry.ScoredAt,
			"updatedAt":     time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes one log entry, scoped to its owner.
func (r *mongoWorkoutLogRepository) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWorkoutLogIndexes creates necessary indexes for the workout_log collection.
func EnsureWorkoutLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "exerciseName", Value: 1}, {Key: "sessionDate", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "sessionDate", Value: -1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
