package api

import (
	"net/http"

	"avihayshai/hypertrophy-toolbox/internal/domain"
	"avihayshai/hypertrophy-toolbox/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	catalogService service.CatalogService,
	plannerService service.PlannerService,
	planService service.PlanService,
	workoutService service.WorkoutService,
	exportService service.ExportService,
) {
	authHandler := NewAuthHandler(authService)
	catalogHandler := NewCatalogHandler(catalogService)
	plannerHandler := NewPlannerHandler(plannerService)
	planHandler := NewPlanHandler(planService)
	workoutHandler := NewWorkoutHandler(workoutService)
	exportHandler := NewExportHandler(exportService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// --- Exercise Catalog ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", catalogHandler.ListExercises)
			exerciseGroup.GET("/filter-fields", catalogHandler.FilterFields)
			exerciseGroup.GET("/:name", catalogHandler.GetExercise)

			// Catalog maintenance is admin only.
			exerciseGroup.POST("/seed", RoleMiddleware(domain.RoleAdmin), catalogHandler.SeedExercises)
			exerciseGroup.POST("/backfill-patterns", RoleMiddleware(domain.RoleAdmin), catalogHandler.BackfillPatterns)
		}

		// --- Plan Generation and Analysis ---
		plannerGroup := protected.Group("/planner")
		{
			plannerGroup.POST("/generate", plannerHandler.GeneratePlan)
			plannerGroup.GET("/coverage", plannerHandler.Coverage)
			plannerGroup.GET("/progression/:name", plannerHandler.Progression)
		}

		// --- Plan Rows, Supersets and Backups ---
		planGroup := protected.Group("/plan")
		{
			planGroup.GET("/selections", planHandler.ListSelections)
			planGroup.POST("/selections", planHandler.AddSelection)
			planGroup.PUT("/selections/:id", planHandler.UpdateSelection)
			planGroup.DELETE("/selections/:id", planHandler.DeleteSelection)

			planGroup.POST("/supersets", planHandler.LinkSuperset)
			planGroup.DELETE("/supersets/:group", planHandler.UnlinkSuperset)

			planGroup.POST("/backups", planHandler.BackupPlan)
			planGroup.GET("/backups", planHandler.ListBackups)
			planGroup.POST("/backups/:label/restore", planHandler.RestorePlan)
			planGroup.DELETE("/backups/:label", planHandler.DeleteBackup)
		}

		// --- Workout Log ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("/log/export", workoutHandler.ExportToLog)
			workoutGroup.GET("/log", workoutHandler.ListLog)
			workoutGroup.PUT("/log/:id/score", workoutHandler.RecordPerformance)
			workoutGroup.DELETE("/log/:id", workoutHandler.DeleteLogEntry)
			workoutGroup.GET("/summary/sessions", workoutHandler.SessionSummaries)
			workoutGroup.GET("/summary/weekly", workoutHandler.WeeklySummaries)
		}

		// --- Spreadsheet Exports ---
		exportGroup := protected.Group("/exports")
		{
			exportGroup.POST("/plan", exportHandler.ExportPlan)
			exportGroup.POST("/log", exportHandler.ExportLog)
			exportGroup.GET("", exportHandler.ListArtifacts)
			exportGroup.GET("/:id/url", exportHandler.ArtifactDownloadURL)
		}
	}
}
