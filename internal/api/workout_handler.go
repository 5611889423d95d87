package api

import (
	"errors"
	"net/http"
	"time"

	"avihayshai/hypertrophy-toolbox/internal/domain"
	"avihayshai/hypertrophy-toolbox/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- DTOs for API (Data Transfer Objects) ---

// ExportToLogRequest copies planned prescriptions into the log. An empty
// routine exports the whole plan.
type ExportToLogRequest struct {
	Routine     string     `json:"routine" binding:"omitempty,oneof=A B C D E"`
	SessionDate *time.Time `json:"sessionDate"`
}

// RecordPerformanceRequest fills in the scored side of one log entry.
type RecordPerformanceRequest struct {
	ScoredSets    *int     `json:"scoredSets" binding:"omitempty,min=1"`
	ScoredMinReps *int     `json:"scoredMinReps" binding:"omitempty,min=1"`
	ScoredMaxReps int      `json:"scoredMaxReps" binding:"required,min=1"`
	ScoredWeight  *float64 `json:"scoredWeight"`
	RIR           *int     `json:"rir"`
	RPE           *float64 `json:"rpe"`
}

// --- Handler Methods ---

// ExportToLog creates unscored log entries from the current plan.
func (h *WorkoutHandler) ExportToLog(c *gin.Context) {
	var req ExportToLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var sessionDate time.Time
	if req.SessionDate != nil {
		sessionDate = *req.SessionDate
	}

	entries, err := h.workoutService.ExportPlanToLog(c.Request.Context(), userID, req.Routine, sessionDate)
	if err != nil {
		if errors.Is(err, service.ErrNothingToExport) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to export plan to log.")
		}
		return
	}
	c.JSON(http.StatusCreated, entries)
}

// ListLog returns the user's workout log.
func (h *WorkoutHandler) ListLog(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.workoutService.ListLog(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workout log.")
		return
	}
	if entries == nil {
		c.JSON(http.StatusOK, []domain.WorkoutLogEntry{})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// RecordPerformance scores one log entry.
func (h *WorkoutHandler) RecordPerformance(c *gin.Context) {
	var req RecordPerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid log entry ID format.")
		return
	}

	entry, err := h.workoutService.RecordPerformance(c.Request.Context(), userID, entryID, service.ScoreInput{
		ScoredSets:    req.ScoredSets,
		ScoredMinReps: req.ScoredMinReps,
		ScoredMaxReps: req.ScoredMaxReps,
		ScoredWeight:  req.ScoredWeight,
		RIR:           req.RIR,
		RPE:           req.RPE,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrLogEntryNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to record performance.")
		}
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteLogEntry removes one entry from the log.
func (h *WorkoutHandler) DeleteLogEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid log entry ID format.")
		return
	}

	if err := h.workoutService.DeleteLogEntry(c.Request.Context(), userID, entryID); err != nil {
		if errors.Is(err, service.ErrLogEntryNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete log entry.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// SessionSummaries groups the log by training day.
func (h *WorkoutHandler) SessionSummaries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	summaries, err := h.workoutService.SessionSummaries(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to summarize sessions.")
		return
	}
	if summaries == nil {
		c.JSON(http.StatusOK, []service.SessionSummary{})
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// WeeklySummaries groups the log by ISO week and muscle.
func (h *WorkoutHandler) WeeklySummaries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	summaries, err := h.workoutService.WeeklySummaries(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to summarize weeks.")
		return
	}
	if summaries == nil {
		c.JSON(http.StatusOK, []service.WeeklySummary{})
		return
	}
	c.JSON(http.StatusOK, summaries)
}
