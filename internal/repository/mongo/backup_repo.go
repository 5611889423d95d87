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

const backupCollectionName = "plan_backups"

// mongoBackupRepository implements repository.BackupRepository
type mongoBackupRepository struct {
	collection *mongo.Collection
}

// NewMongoBackupRepository creates a new plan backup repository backed by MongoDB.
func NewMongoBackupRepository(db *mongo.Database) repository.BackupRepository {
	return &mongoBackupRepository{
		collection: db.Collection(backupCollectionName),
	}
}

// Create stores a snapshot of the user's selections.
func (r *mongoBackupRepository) Create(ctx context.Context, backup *domain.PlanBackup) (primitive.ObjectID, error) {
	if backup.Label == "" || backup.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("backup label and user ID are required")
	}

	backup.ID = primitive.NewObjectID()
	backup.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, backup)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// ListByUser returns the user's snapshots, newest first.
func (r *mongoBackupRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.PlanBackup, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var backups []domain.PlanBackup
	if err = cursor.All(ctx, &backups); err != nil {
		return nil, err
	}
	return backups, nil
}

// GetByLabel retrieves one snapshot by its label, scoped to its owner.
func (r *mongoBackupRepository) GetByLabel(ctx context.Context, userID primitive.ObjectID, label string) (*domain.PlanBackup, error) {
	var backup domain.PlanBackup
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "label": label}).Decode(&backup)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &backup, nil
}

// Delete removes one snapshot.
func (r *mongoBackupRepository) Delete(ctx context.Context, userID primitive.ObjectID, label string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID, "label": label})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureBackupIndexes creates necessary indexes for the plan_backups collection.
func EnsureBackupIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "label", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
