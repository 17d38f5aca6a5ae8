package routes

import (
	"net/http"
	"time"

	"pulsefolio/handlers"
	"pulsefolio/middleware"
	"pulsefolio/models"
	"pulsefolio/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes registers every HTTP route on the engine. Session resolution
// runs on everything; access decisions are made per group by RequireRole.
func SetupRoutes(r *gin.Engine, bundle *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(utils.ErrorHandler())
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimiter())
	r.Use(middleware.SessionMiddleware(bundle.Sessions))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// Public surface: account creation, sign-in, and the questionnaire
	// instrument itself (readable before authentication).
	api.POST("/users/register", handlers.RegisterHandler(bundle))
	api.POST("/users/login", handlers.LoginHandler(bundle))
	api.GET("/assessment/questions", handlers.GetQuestionsHandler(bundle))

	// Any authenticated session.
	authed := api.Group("")
	authed.Use(middleware.RequireRole(bundle.Gate, models.RoleUser))
	{
		authed.POST("/users/logout", handlers.LogoutHandler(bundle))
		authed.GET("/users/me", handlers.GetMeHandler(bundle))
		authed.PUT("/users/me", handlers.UpdateMeHandler(bundle))
		authed.PUT("/users/me/password", handlers.UpdatePasswordHandler(bundle))

		authed.POST("/assessment", handlers.SubmitAssessmentHandler(bundle))

		authed.GET("/dashboard/analyses", handlers.DashboardAnalysesHandler(bundle))
		authed.GET("/dashboard/signals", handlers.DashboardSignalsHandler(bundle))
		authed.GET("/analyses/day/:date", handlers.AnalysesByDayHandler(bundle))

		authed.GET("/access/watch", handlers.WatchAccessHandler(bundle))
	}

	// Analyst authoring surface.
	analyst := api.Group("")
	analyst.Use(middleware.RequireRole(bundle.Gate, models.RoleAnalyst))
	{
		analyst.GET("/analyses", handlers.ListAnalysesHandler(bundle))
		analyst.GET("/analyses/:id", handlers.GetAnalysisHandler(bundle))
		analyst.POST("/analyses", handlers.CreateAnalysisHandler(bundle))
		analyst.PUT("/analyses/:id", handlers.UpdateAnalysisHandler(bundle))
		analyst.DELETE("/analyses/:id", handlers.DeleteAnalysisHandler(bundle))

		analyst.GET("/signals", handlers.ListSignalsHandler(bundle))
		analyst.POST("/signals", handlers.CreateSignalHandler(bundle))
		analyst.PUT("/signals/:id", handlers.UpdateSignalHandler(bundle))
		analyst.PUT("/signals/:id/status", handlers.UpdateSignalStatusHandler(bundle))
		analyst.DELETE("/signals/:id", handlers.DeleteSignalHandler(bundle))
	}

	// Admin surface.
	admin := api.Group("/admin")
	admin.Use(middleware.RequireRole(bundle.Gate, models.RoleAdmin))
	{
		admin.GET("/users", handlers.ListUsersHandler(bundle))
		admin.PUT("/users/:id/role", handlers.UpdateUserRoleHandler(bundle))
		admin.DELETE("/users/:id", handlers.DeleteUserHandler(bundle))
	}
}
