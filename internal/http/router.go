package http

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/projectgate-backend/internal/domain"
	httpH "github.com/yungbote/projectgate-backend/internal/http/handlers"
	httpMW "github.com/yungbote/projectgate-backend/internal/http/middleware"
	"github.com/yungbote/projectgate-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthMiddleware *httpMW.AuthMiddleware

	AuthHandler       *httpH.AuthHandler
	SubmissionHandler *httpH.SubmissionHandler
	TeacherHandler    *httpH.TeacherHandler
	ProjectHandler    *httpH.ProjectHandler
	DashboardHandler  *httpH.DashboardHandler
	AIHandler         *httpH.AIHandler
	HealthHandler     *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
		if cfg.DashboardHandler != nil {
			api.GET("/alumni/top-projects", cfg.DashboardHandler.TopAlumniProjects)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.GET("/me", cfg.AuthHandler.Me)
		}

		if cfg.SubmissionHandler != nil {
			protected.POST("/projects/submit", cfg.SubmissionHandler.Submit)
			protected.GET("/student/submissions", cfg.SubmissionHandler.MySubmissions)
		}

		if cfg.TeacherHandler != nil && cfg.AuthMiddleware != nil {
			teacher := protected.Group("/teacher")
			teacher.Use(cfg.AuthMiddleware.RequireCapability(domain.CapReviewSubmissions))
			teacher.GET("/submissions", cfg.TeacherHandler.StudentList)
			teacher.PATCH("/submissions/:id", cfg.TeacherHandler.Review)
			teacher.GET("/appointed", cfg.TeacherHandler.Appointed)
			teacher.GET("/unappointed", cfg.TeacherHandler.Unappointed)
			teacher.GET("/approved-projects", cfg.TeacherHandler.ApprovedProjects)
		}

		if cfg.ProjectHandler != nil {
			protected.PATCH("/projects/archive/:project_id", cfg.ProjectHandler.Archive)
			protected.PATCH("/projects/progress/update/:submission_id", cfg.ProjectHandler.UpdateProgress)
			protected.GET("/projects/progress/:submission_id", cfg.ProjectHandler.GetProgress)
			if cfg.AuthMiddleware != nil {
				protected.GET("/projects/all",
					cfg.AuthMiddleware.RequireCapability(domain.CapViewAnalytics),
					cfg.ProjectHandler.AllProjects)
			}
		}

		if cfg.DashboardHandler != nil {
			if cfg.AuthMiddleware != nil {
				protected.GET("/analytics",
					cfg.AuthMiddleware.RequireCapability(domain.CapViewAnalytics),
					cfg.DashboardHandler.Analytics)
			}
			protected.GET("/leaderboard", cfg.DashboardHandler.Leaderboard)
			protected.GET("/alumni/my-projects", cfg.DashboardHandler.MyProjects)
		}

		if cfg.AIHandler != nil {
			protected.POST("/ai/chat", cfg.AIHandler.Chat)
			protected.POST("/ai/viva", cfg.AIHandler.Viva)
			protected.POST("/ai/viva/evaluate", cfg.AIHandler.VivaEvaluate)
		}
	}

	return r
}
