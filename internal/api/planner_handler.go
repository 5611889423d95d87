package api

import (
	"errors"
	"net/http"

	"avihayshai/hypertrophy-toolbox/internal/planner"
	"avihayshai/hypertrophy-toolbox/internal/service"

	"github.com/gin-gonic/gin"
)

// PlannerHandler holds the planner service dependency.
type PlannerHandler struct {
	plannerService service.PlannerService
}

// NewPlannerHandler creates a new PlannerHandler.
func NewPlannerHandler(plannerService service.PlannerService) *PlannerHandler {
	return &PlannerHandler{plannerService: plannerService}
}

// --- DTOs for API (Data Transfer Objects) ---

// GeneratePlanRequest is the JSON contract of the plan generator.
type GeneratePlanRequest struct {
	TrainingDays         int      `json:"training_days" binding:"required,min=1,max=5"`
	Environment          string   `json:"environment"`
	Experience           string   `json:"experience_level"`
	Goal                 string   `json:"goal"`
	VolumeScale          float64  `json:"volume_scale"`
	EquipmentWhitelist   []string `json:"equipment_whitelist"`
	ExcludeExercises     []string `json:"exclude_exercises"`
	MovementRestrictions []string `json:"movement_restrictions"`
	PriorityMuscles      []string `json:"priority_muscles"`
	TimeBudgetMinutes    int      `json:"time_budget_minutes"`
	MergeMode            bool     `json:"merge_mode"`
	Overwrite            bool     `json:"overwrite"`
	Persist              bool     `json:"persist"`
}

// GeneratePlanResponse carries the generated plan plus roll-up figures.
type GeneratePlanResponse struct {
	RoutineOrder   []string                      `json:"routineOrder"`
	Routines       map[string][]planner.PlanItem `json:"routines"`
	TotalExercises int                           `json:"totalExercises"`
	SetsPerRoutine map[string]int                `json:"setsPerRoutine"`
	Warnings       []string                      `json:"warnings,omitempty"`
	Persisted      bool                          `json:"persisted"`
}

// --- Handler Methods ---

// GeneratePlan runs the auto starter plan generator.
func (h *PlannerHandler) GeneratePlan(c *gin.Context) {
	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cfg := planner.GenerateConfig{
		TrainingDays:         req.TrainingDays,
		Environment:          planner.Environment(req.Environment),
		Experience:           planner.Experience(req.Experience),
		Goal:                 planner.Goal(req.Goal),
		VolumeScale:          req.VolumeScale,
		EquipmentWhitelist:   req.EquipmentWhitelist,
		ExcludeExercises:     req.ExcludeExercises,
		MovementRestrictions: req.MovementRestrictions,
		PriorityMuscles:      req.PriorityMuscles,
		TimeBudgetMinutes:    req.TimeBudgetMinutes,
		MergeMode:            req.MergeMode,
		Overwrite:            req.Overwrite,
		Persist:              req.Persist,
	}

	result, err := h.plannerService.Generate(c.Request.Context(), userID, cfg)
	if err != nil {
		var validationErr *planner.ValidationError
		var persistErr *service.PersistenceError
		switch {
		case errors.As(err, &validationErr):
			abortWithError(c, http.StatusBadRequest, validationErr.Error())
		case errors.As(err, &persistErr):
			// The plan was generated but writing it stopped partway through.
			// Routines already written stay written.
			abortWithError(c, http.StatusInternalServerError, persistErr.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate plan.")
		}
		return
	}

	plan := result.Plan
	c.JSON(http.StatusOK, GeneratePlanResponse{
		RoutineOrder:   plan.RoutineOrder,
		Routines:       plan.Routines,
		TotalExercises: plan.TotalExercises(),
		SetsPerRoutine: plan.SetsPerRoutine(),
		Warnings:       plan.Warnings,
		Persisted:      result.Persisted,
	})
}

// Coverage analyzes the user's stored plan for volume and balance issues.
func (h *PlannerHandler) Coverage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	report, err := h.plannerService.Coverage(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to analyze plan coverage.")
		return
	}
	c.JSON(http.StatusOK, report)
}

// Progression suggests the next prescription for one exercise based on the
// user's recent log history.
func (h *PlannerHandler) Progression(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	exerciseName := c.Param("name")
	experience := planner.Experience(c.Query("experience_level"))

	suggestion, err := h.plannerService.Progression(c.Request.Context(), userID, exerciseName, experience)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to compute progression suggestion.")
		}
		return
	}
	c.JSON(http.StatusOK, suggestion)
}
