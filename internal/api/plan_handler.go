package api

import (
	"errors"
	"net/http"

	"avihayshai/hypertrophy-toolbox/internal/domain"
	"avihayshai/hypertrophy-toolbox/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs for API (Data Transfer Objects) ---

// AddSelectionRequest adds one manually chosen exercise to a routine.
type AddSelectionRequest struct {
	Routine       string   `json:"routine" binding:"required,oneof=A B C D E"`
	ExerciseName  string   `json:"exerciseName" binding:"required"`
	Role          string   `json:"role" binding:"omitempty,oneof=main accessory"`
	Sets          int      `json:"sets" binding:"required,min=1"`
	MinReps       int      `json:"minReps" binding:"required,min=1"`
	MaxReps       int      `json:"maxReps" binding:"required,min=1"`
	RIR           *int     `json:"rir"`
	RPE           *float64 `json:"rpe"`
	Weight        *float64 `json:"weight"`
	ExerciseOrder int      `json:"exerciseOrder"`
}

// UpdateSelectionRequest edits the prescription of one plan row.
type UpdateSelectionRequest struct {
	Sets          int      `json:"sets" binding:"required,min=1"`
	MinReps       int      `json:"minReps" binding:"required,min=1"`
	MaxReps       int      `json:"maxReps" binding:"required,min=1"`
	RIR           *int     `json:"rir"`
	RPE           *float64 `json:"rpe"`
	Weight        *float64 `json:"weight"`
	ExerciseOrder int      `json:"exerciseOrder"`
}

// LinkSupersetRequest pairs two selections of the same routine.
type LinkSupersetRequest struct {
	FirstID  string `json:"firstId" binding:"required"`
	SecondID string `json:"secondId" binding:"required"`
}

// BackupRequest names a plan snapshot.
type BackupRequest struct {
	Name string `json:"name" binding:"required"`
}

// --- Handler Methods ---

// ListSelections returns the user's whole plan.
func (h *PlanHandler) ListSelections(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	selections, err := h.planService.ListSelections(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plan.")
		return
	}
	if selections == nil {
		c.JSON(http.StatusOK, []domain.UserSelection{})
		return
	}
	c.JSON(http.StatusOK, selections)
}

// AddSelection appends one exercise to a routine.
func (h *PlanHandler) AddSelection(c *gin.Context) {
	var req AddSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	sel := domain.UserSelection{
		Routine:       req.Routine,
		ExerciseName:  req.ExerciseName,
		Role:          domain.SlotRole(req.Role),
		Sets:          req.Sets,
		MinReps:       req.MinReps,
		MaxReps:       req.MaxReps,
		RIR:           req.RIR,
		RPE:           req.RPE,
		Weight:        req.Weight,
		ExerciseOrder: req.ExerciseOrder,
	}

	created, err := h.planService.AddSelection(c.Request.Context(), userID, sel)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to add selection.")
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateSelection edits one plan row.
func (h *PlanHandler) UpdateSelection(c *gin.Context) {
	var req UpdateSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	selectionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid selection ID format.")
		return
	}

	updated, err := h.planService.UpdateSelection(
		c.Request.Context(), userID, selectionID,
		req.Sets, req.MinReps, req.MaxReps, req.ExerciseOrder,
		req.RIR, req.RPE, req.Weight,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSelectionNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update selection.")
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteSelection removes one plan row.
func (h *PlanHandler) DeleteSelection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	selectionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid selection ID format.")
		return
	}

	if err := h.planService.DeleteSelection(c.Request.Context(), userID, selectionID); err != nil {
		if errors.Is(err, service.ErrSelectionNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete selection.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// LinkSuperset tags two selections as a superset pair.
func (h *PlanHandler) LinkSuperset(c *gin.Context) {
	var req LinkSupersetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	firstID, err := primitive.ObjectIDFromHex(req.FirstID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid first selection ID format.")
		return
	}
	secondID, err := primitive.ObjectIDFromHex(req.SecondID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid second selection ID format.")
		return
	}

	group, err := h.planService.LinkSuperset(c.Request.Context(), userID, firstID, secondID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSupersetInvalid):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSelectionNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to link superset.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"supersetGroup": group})
}

// UnlinkSuperset removes a superset tag from its members.
func (h *PlanHandler) UnlinkSuperset(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	group := c.Param("group")

	if err := h.planService.UnlinkSuperset(c.Request.Context(), userID, group); err != nil {
		switch {
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSelectionNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to unlink superset.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// BackupPlan snapshots the current plan.
func (h *PlanHandler) BackupPlan(c *gin.Context) {
	var req BackupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	backup, err := h.planService.BackupPlan(c.Request.Context(), userID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to back up plan.")
		}
		return
	}
	c.JSON(http.StatusCreated, backup)
}

// ListBackups returns the user's plan snapshots.
func (h *PlanHandler) ListBackups(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	backups, err := h.planService.ListBackups(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve backups.")
		return
	}
	if backups == nil {
		c.JSON(http.StatusOK, []domain.PlanBackup{})
		return
	}
	c.JSON(http.StatusOK, backups)
}

// RestorePlan replaces the current plan with a snapshot.
func (h *PlanHandler) RestorePlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	label := c.Param("label")

	restored, err := h.planService.RestorePlan(c.Request.Context(), userID, label)
	if err != nil {
		var persistErr *service.PersistenceError
		switch {
		case errors.Is(err, service.ErrBackupNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.As(err, &persistErr):
			abortWithError(c, http.StatusInternalServerError, persistErr.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to restore plan.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"restored": restored})
}

// DeleteBackup removes a snapshot.
func (h *PlanHandler) DeleteBackup(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	label := c.Param("label")

	if err := h.planService.DeleteBackup(c.Request.Context(), userID, label); err != nil {
		if errors.Is(err, service.ErrBackupNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete backup.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}
