package api

import (
	"errors"
	"net/http"

	"avihayshai/hypertrophy-toolbox/internal/domain"
	"avihayshai/hypertrophy-toolbox/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExportHandler holds the export service dependency.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// --- Handler Methods ---

// ExportPlan writes the current plan to a workbook and returns a download URL.
func (h *ExportHandler) ExportPlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.exportService.ExportPlan(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNothingToReport) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to export plan.")
		}
		return
	}
	c.JSON(http.StatusCreated, result)
}

// ExportLog writes the workout log to a workbook and returns a download URL.
func (h *ExportHandler) ExportLog(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.exportService.ExportLog(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNothingToReport) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to export workout log.")
		}
		return
	}
	c.JSON(http.StatusCreated, result)
}

// ListArtifacts returns the user's export history.
func (h *ExportHandler) ListArtifacts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	artifacts, err := h.exportService.ListArtifacts(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve export artifacts.")
		return
	}
	if artifacts == nil {
		c.JSON(http.StatusOK, []domain.ExportArtifact{})
		return
	}
	c.JSON(http.StatusOK, artifacts)
}

// ArtifactDownloadURL re-issues a presigned URL for an earlier export.
func (h *ExportHandler) ArtifactDownloadURL(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	artifactID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid artifact ID format.")
		return
	}

	url, err := h.exportService.ArtifactDownloadURL(c.Request.Context(), userID, artifactID)
	if err != nil {
		if errors.Is(err, service.ErrArtifactNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to presign download URL.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}
