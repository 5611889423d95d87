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

const artifactCollectionName = "export_artifacts"

// mongoArtifactRepository implements repository.ArtifactRepository
type mongoArtifactRepository struct {
	collection *mongo.Collection
}

// NewMongoArtifactRepository creates a new export artifact repository backed by MongoDB.
func NewMongoArtifactRepository(db *mongo.Database) repository.ArtifactRepository {
	return &mongoArtifactRepository{
		collection: db.Collection(artifactCollectionName),
	}
}

// Create stores metadata for an uploaded workbook.
func (r *mongoArtifactRepository) Create(ctx context.Context, artifact *domain.ExportArtifact) (primitive.ObjectID, error) {
	if artifact.S3ObjectKey == "" || artifact.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("object key and user ID are required")
	}

	artifact.ID = primitive.NewObjectID()
	artifact.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, artifact)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves one artifact, scoped to its owner.
func (r *mongoArtifactRepository) GetByID(ctx context.Context, userID, id primitive.ObjectID) (*domain.ExportArtifact, error) {
	var artifact domain.ExportArtifact
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&artifact)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &artifact, nil
}

// ListByUser returns the user's export history, newest first.
func (r *mongoArtifactRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.ExportArtifact, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var artifacts []domain.ExportArtifact
	if err = cursor.All(ctx, &artifacts); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// EnsureArtifactIndexes creates necessary indexes for the export_artifacts collection.
func EnsureArtifactIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
