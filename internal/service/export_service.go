package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"avihayshai/hypertrophy-toolbox/internal/domain"
	"avihayshai/hypertrophy-toolbox/internal/export"
	"avihayshai/hypertrophy-toolbox/internal/repository"
	"avihayshai/hypertrophy-toolbox/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrArtifactNotFound = errors.New("export artifact not found")
	ErrNothingToReport  = errors.New("nothing to export")
)

// ExportResult is an artifact plus a short-lived download URL.
type ExportResult struct {
	Artifact    domain.ExportArtifact `json:"artifact"`
	DownloadURL string                `json:"downloadUrl"`
}

// ExportService turns the plan or the workout log into an xlsx workbook,
// stores it in object storage and hands back a presigned download URL.
type ExportService interface {
	ExportPlan(ctx context.Context, userID primitive.ObjectID) (*ExportResult, error)
	ExportLog(ctx context.Context, userID primitive.ObjectID) (*ExportResult, error)
	ListArtifacts(ctx context.Context, userID primitive.ObjectID) ([]domain.ExportArtifact, error)
	ArtifactDownloadURL(ctx context.Context, userID, artifactID primitive.ObjectID) (string, error)
}

// exportService implements the ExportService interface.
type exportService struct {
	selectionRepo  repository.SelectionRepository
	workoutLogRepo repository.WorkoutLogRepository
	artifactRepo   repository.ArtifactRepository
	fileStorage    storage.FileStorage
}

// NewExportService creates a new instance of exportService.
func NewExportService(
	selectionRepo repository.SelectionRepository,
	workoutLogRepo repository.WorkoutLogRepository,
	artifactRepo repository.ArtifactRepository,
	fileStorage storage.FileStorage,
) ExportService {
	return &exportService{
		selectionRepo:  selectionRepo,
		workoutLogRepo: workoutLogRepo,
		artifactRepo:   artifactRepo,
		fileStorage:    fileStorage,
	}
}

// ExportPlan writes the user's current plan to a workbook.
func (s *exportService) ExportPlan(ctx context.Context, userID primitive.ObjectID) (*ExportResult, error) {
	selections, err := s.selectionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(selections) == 0 {
		return nil, ErrNothingToReport
	}

	buf, err := export.PlanWorkbook(selections)
	if err != nil {
		return nil, fmt.Errorf("failed to build plan workbook: %w", err)
	}
	return s.store(ctx, userID, domain.ExportKindPlan, buf)
}

// ExportLog writes the user's workout log to a workbook.
func (s *exportService) ExportLog(ctx context.Context, userID primitive.ObjectID) (*ExportResult, error) {
	entries, err := s.workoutLogRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNothingToReport
	}

	buf, err := export.LogWorkbook(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to build log workbook: %w", err)
	}
	return s.store(ctx, userID, domain.ExportKindLog, buf)
}

// ListArtifacts returns the user's export history.
func (s *exportService) ListArtifacts(ctx context.Context, userID primitive.ObjectID) ([]domain.ExportArtifact, error) {
	return s.artifactRepo.ListByUser(ctx, userID)
}

// ArtifactDownloadURL re-issues a presigned URL for an earlier export.
func (s *exportService) ArtifactDownloadURL(ctx context.Context, userID, artifactID primitive.ObjectID) (string, error) {
	artifact, err := s.artifactRepo.GetByID(ctx, userID, artifactID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrArtifactNotFound
		}
		return "", err
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, artifact.S3ObjectKey, storage.DefaultPresignedURLExpiry)
}

// store uploads the workbook, records the artifact and presigns a download.
func (s *exportService) store(ctx context.Context, userID primitive.ObjectID, kind domain.ExportKind, buf *bytes.Buffer) (*ExportResult, error) {
	now := time.Now().UTC()
	fileName := fmt.Sprintf("%s-%s.xlsx", kind, now.Format("2006-01-02"))
	objectKey := fmt.Sprintf("exports/%s/%s/%s.xlsx", userID.Hex(), kind, uuid.NewString())
	size := int64(buf.Len())

	if err := s.fileStorage.UploadObject(ctx, objectKey, export.XLSXContentType, bytes.NewReader(buf.Bytes()), size); err != nil {
		return nil, fmt.Errorf("failed to upload workbook: %w", err)
	}

	artifact := &domain.ExportArtifact{
		UserID:      userID,
		Kind:        kind,
		S3ObjectKey: objectKey,
		FileName:    fileName,
		ContentType: export.XLSXContentType,
		Size:        size,
	}
	id, err := s.artifactRepo.Create(ctx, artifact)
	if err != nil {
		return nil, err
	}
	artifact.ID = id

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign download url: %w", err)
	}

	return &ExportResult{Artifact: *artifact, DownloadURL: url}, nil
}
