package api

import (
	"errors"
	"net/http"

	"avihayshai/hypertrophy-toolbox/internal/domain"
	"avihayshai/hypertrophy-toolbox/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler holds the catalog service dependency.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// --- DTOs for API (Data Transfer Objects) ---

// SeedExerciseRequest is one catalog row of a seed/import payload. Pattern
// tags are optional; untagged rows are classified on import.
type SeedExerciseRequest struct {
	Name               string `json:"name" binding:"required"`
	PrimaryMuscle      string `json:"primaryMuscle" binding:"required"`
	SecondaryMuscle    string `json:"secondaryMuscle"`
	TertiaryMuscle     string `json:"tertiaryMuscle"`
	Equipment          string `json:"equipment"`
	Mechanic           string `json:"mechanic" binding:"omitempty,oneof=Compound Isolation"`
	Force              string `json:"force" binding:"omitempty,oneof=Push Pull Static"`
	MovementPattern    string `json:"movementPattern"`
	MovementSubpattern string `json:"movementSubpattern"`
	Difficulty         string `json:"difficulty" binding:"omitempty,oneof=Novice Intermediate Advanced"`
}

type SeedExercisesRequest struct {
	Exercises []SeedExerciseRequest `json:"exercises" binding:"required,min=1,dive"`
}

// --- Handler Methods ---

// ListExercises returns catalog rows matching the query parameters. Every
// query parameter is treated as an exact-match filter and must name a
// whitelisted field; anything else is rejected.
func (h *CatalogHandler) ListExercises(c *gin.Context) {
	filter := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 && values[0] != "" {
			filter[key] = values[0]
		}
	}

	exercises, err := h.catalogService.ListExercises(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises.")
		}
		return
	}

	if exercises == nil {
		c.JSON(http.StatusOK, []domain.Exercise{})
		return
	}
	c.JSON(http.StatusOK, exercises)
}

// GetExercise returns one catalog row by name.
func (h *CatalogHandler) GetExercise(c *gin.Context) {
	name := c.Param("name")
	exercise, err := h.catalogService.GetExercise(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercise.")
		}
		return
	}
	c.JSON(http.StatusOK, exercise)
}

// FilterFields lists the catalog fields that ListExercises accepts.
func (h *CatalogHandler) FilterFields(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fields": h.catalogService.AllowedFilterFields()})
}

// SeedExercises imports catalog rows, upserting by name. Admin only.
func (h *CatalogHandler) SeedExercises(c *gin.Context) {
	var req SeedExercisesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercises := make([]domain.Exercise, len(req.Exercises))
	for i, row := range req.Exercises {
		exercises[i] = domain.Exercise{
			Name:               row.Name,
			PrimaryMuscle:      row.PrimaryMuscle,
			SecondaryMuscle:    row.SecondaryMuscle,
			TertiaryMuscle:     row.TertiaryMuscle,
			Equipment:          row.Equipment,
			Mechanic:           domain.Mechanic(row.Mechanic),
			Force:              domain.Force(row.Force),
			MovementPattern:    row.MovementPattern,
			MovementSubpattern: row.MovementSubpattern,
			Difficulty:         row.Difficulty,
		}
	}

	count, err := h.catalogService.SeedExercises(c.Request.Context(), exercises)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to seed exercises.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"upserted": count})
}

// BackfillPatterns re-runs the movement classifier over untagged catalog
// rows. Admin only.
func (h *CatalogHandler) BackfillPatterns(c *gin.Context) {
	count, err := h.catalogService.BackfillPatterns(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to backfill movement patterns.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tagged": count})
}
