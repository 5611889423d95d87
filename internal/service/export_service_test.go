package service_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"avihayshai/hypertrophy-toolbox/internal/domain"
	"avihayshai/hypertrophy-toolbox/internal/export"
	"avihayshai/hypertrophy-toolbox/internal/repository"
	"avihayshai/hypertrophy-toolbox/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeArtifactRepo struct {
	artifacts map[primitive.ObjectID]domain.ExportArtifact
}

func newFakeArtifactRepo() *fakeArtifactRepo {
	return &fakeArtifactRepo{artifacts: make(map[primitive.ObjectID]domain.ExportArtifact)}
}

func (r *fakeArtifactRepo) Create(_ context.Context, artifact *domain.ExportArtifact) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	artifact.ID = id
	r.artifacts[id] = *artifact
	return id, nil
}

func (r *fakeArtifactRepo) GetByID(_ context.Context, userID, id primitive.ObjectID) (*domain.ExportArtifact, error) {
	a, ok := r.artifacts[id]
	if !ok || a.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *fakeArtifactRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.ExportArtifact, error) {
	var out []domain.ExportArtifact
	for _, a := range r.artifacts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeFileStorage struct {
	uploads map[string][]byte
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{uploads: make(map[string][]byte)}
}

func (s *fakeFileStorage) UploadObject(_ context.Context, objectKey, _ string, body io.Reader, _ int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.uploads[objectKey] = data
	return nil
}

func (s *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/" + objectKey, nil
}

func (s *fakeFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	delete(s.uploads, objectKey)
	return nil
}

func newExportFixture(t *testing.T) (service.ExportService, *fakeSelectionRepo, *fakeWorkoutLogRepo, *fakeFileStorage, primitive.ObjectID) {
	t.Helper()
	selRepo := newFakeSelectionRepo()
	logRepo := newFakeWorkoutLogRepo()
	artifactRepo := newFakeArtifactRepo()
	fs := newFakeFileStorage()
	svc := service.NewExportService(selRepo, logRepo, artifactRepo, fs)
	return svc, selRepo, logRepo, fs, primitive.NewObjectID()
}

func TestExportService_ExportPlan(t *testing.T) {
	svc, selRepo, _, fs, userID := newExportFixture(t)
	ctx := context.Background()

	_, err := svc.ExportPlan(ctx, userID)
	assert.ErrorIs(t, err, service.ErrNothingToReport)

	seedSelection(t, selRepo, userID, "A", "Barbell Back Squat")

	result, err := svc.ExportPlan(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, domain.ExportKindPlan, result.Artifact.Kind)
	assert.Equal(t, export.XLSXContentType, result.Artifact.ContentType)
	assert.True(t, strings.HasPrefix(result.Artifact.S3ObjectKey, "exports/"+userID.Hex()+"/"), result.Artifact.S3ObjectKey)
	assert.True(t, strings.HasSuffix(result.Artifact.FileName, ".xlsx"))
	assert.Contains(t, result.DownloadURL, result.Artifact.S3ObjectKey)

	data, ok := fs.uploads[result.Artifact.S3ObjectKey]
	require.True(t, ok, "the workbook was uploaded")
	assert.Equal(t, result.Artifact.Size, int64(len(data)))

	artifacts, err := svc.ListArtifacts(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, artifacts, 1)
}

func TestExportService_ExportLog(t *testing.T) {
	svc, _, logRepo, _, userID := newExportFixture(t)
	ctx := context.Background()

	_, err := svc.ExportLog(ctx, userID)
	assert.ErrorIs(t, err, service.ErrNothingToReport)

	entries := []domain.WorkoutLogEntry{{
		UserID: userID, Routine: "A", ExerciseName: "Barbell Bench Press",
		PlannedSets: 4, PlannedMinReps: 6, PlannedMaxReps: 10,
		SessionDate: time.Now().UTC(),
	}}
	require.NoError(t, logRepo.InsertMany(ctx, entries))

	result, err := svc.ExportLog(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.ExportKindLog, result.Artifact.Kind)
}

func TestExportService_ArtifactDownloadURL(t *testing.T) {
	svc, selRepo, _, _, userID := newExportFixture(t)
	ctx := context.Background()

	seedSelection(t, selRepo, userID, "A", "Barbell Back Squat")
	result, err := svc.ExportPlan(ctx, userID)
	require.NoError(t, err)

	url, err := svc.ArtifactDownloadURL(ctx, userID, result.Artifact.ID)
	require.NoError(t, err)
	assert.Contains(t, url, result.Artifact.S3ObjectKey)

	_, err = svc.ArtifactDownloadURL(ctx, userID, primitive.NewObjectID())
	assert.ErrorIs(t, err, service.ErrArtifactNotFound)

	_, err = svc.ArtifactDownloadURL(ctx, primitive.NewObjectID(), result.Artifact.ID)
	assert.ErrorIs(t, err, service.ErrArtifactNotFound)
}
