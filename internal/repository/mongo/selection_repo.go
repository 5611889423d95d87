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

const selectionCollectionName = "user_selections"

// mongoSelectionRepository implements repository.SelectionRepository
type mongoSelectionRepository struct {
	collection *mongo.Collection
}

// NewMongoSelectionRepository creates a new plan selection repository backed by MongoDB.
func NewMongoSelectionRepository(db *mongo.Database) repository.SelectionRepository {
	return &mongoSelectionRepository{
		collection: db.Collection(selectionCollectionName),
	}
}

// Create inserts a single manually added plan row.
func (r *mongoSelectionRepository) Create(ctx context.Context, sel *domain.UserSelection) (primitive.ObjectID, error) {
	if sel.ExerciseName == "" || sel.Routine == "" || sel.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("exercise name, routine and user ID are required")
	}

	sel.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	sel.CreatedAt = now
	sel.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, sel)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves one selection, scoped to its owner.
func (r *mongoSelectionRepository) GetByID(ctx context.Context, userID, id primitive.ObjectID) (*domain.UserSelection, error) {
	var sel domain.UserSelection
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&sel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &sel, nil
}

// ListByUser returns the user's whole plan, ordered by routine then position.
func (r *mongoSelectionRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.UserSelection, error) {
	return r.list(ctx, bson.M{"userId": userID})
}

// ListByRoutine returns one routine's rows in exercise order.
func (r *mongoSelectionRepository) ListByRoutine(ctx context.Context, userID primitive.ObjectID, routine string) ([]domain.UserSelection, error) {
	return r.list(ctx, bson.M{"userId": userID, "routine": routine})
}

func (r *mongoSelectionRepository) list(ctx context.Context, filter bson.M) ([]domain.UserSelection, error) {
	findOptions := options.Find().SetSort(bson.D{
		{Key: "routine", Value: 1},
		{Key: "exerciseOrder", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var selections []domain.UserSelection
	if err = cursor.All(ctx, &selections); err != nil {
		return nil, err
	}
	return selections, nil
}

// Update modifies the prescription fields of an existing selection. Owner and
// routine are fixed at creation.
func (r *mongoSelectionRepository) Update(ctx context.Context, sel *domain.UserSelection) error {
	if sel.ID == primitive.NilObjectID {
		return errors.New("selection ID is required for update")
	}

	filter := bson.M{"_id": sel.ID, "userId": sel.UserID}
	update := bson.M{
		"$set": bson.M{
			"sets":          sel.Sets,
			"minReps":       sel.MinReps,
			"maxReps":       sel.MaxReps,
			"rir":           sel.RIR,
			"rpe":           sel.RPE,
			"weight":        sel.Weight,
			"exerciseOrder": sel.ExerciseOrder,
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

// Delete removes one selection, scoped to its owner.
func (r *mongoSelectionRepository) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ReplaceRoutine swaps all rows of one routine inside a single transaction.
// This is the per-routine atomicity boundary: generation or restore of a
// multi-routine plan commits routine by routine, so a failure leaves earlier
// routines written and later ones untouched, but never a torn routine.
func (r *mongoSelectionRepository) ReplaceRoutine(ctx context.Context, userID primitive.ObjectID, routine string, rows []domain.UserSelection) error {
	if routine == "" || userID == primitive.NilObjectID {
		return errors.New("routine and user ID are required")
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(rows))
	for i := range rows {
		rows[i].ID = primitive.NewObjectID()
		rows[i].UserID = userID
		rows[i].Routine = routine
		rows[i].CreatedAt = now
		rows[i].UpdatedAt = now
		docs = append(docs, rows[i])
	}

	client := r.collection.Database().Client()
	session, err := client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.collection.DeleteMany(sc, bson.M{"userId": userID, "routine": routine}); err != nil {
			return nil, err
		}
		if len(docs) == 0 {
			return nil, nil
		}
		_, err := r.collection.InsertMany(sc, docs)
		return nil, err
	})
	return err
}

// SetSupersetGroup tags the given rows with a shared superset group. The
// service layer has already verified there are exactly two rows from the
// same routine.
func (r *mongoSelectionRepository) SetSupersetGroup(ctx context.Context, userID primitive.ObjectID, ids []primitive.ObjectID, group string) error {
	filter := bson.M{"_id": bson.M{"$in": ids}, "userId": userID}
	update := bson.M{"$set": bson.M{
		"supersetGroup": group,
		"updatedAt":     time.Now().UTC(),
	}}

	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount != int64(len(ids)) {
		return repository.ErrUpdateFailed
	}
	return nil
}

// ClearSupersetGroup removes the tag from every row carrying the group.
func (r *mongoSelectionRepository) ClearSupersetGroup(ctx context.Context, userID primitive.ObjectID, group string) error {
	filter := bson.M{"userId": userID, "supersetGroup": group}
	update := bson.M{
		"$unset": bson.M{"supersetGroup": ""},
		"$set":   bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureSelectionIndexes creates necessary indexes for the user_selections collection.
func EnsureSelectionIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "routine", Value: 1}, {Key: "exerciseOrder", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "supersetGroup", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
