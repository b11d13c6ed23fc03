package app

import (
	"github.com/yungbote/projectgate-backend/internal/http/handlers"
	"github.com/yungbote/projectgate-backend/internal/platform/logger"
)

type Handlers struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Submission *handlers.SubmissionHandler
	Teacher    *handlers.TeacherHandler
	Project    *handlers.ProjectHandler
	Dashboard  *handlers.DashboardHandler
	AI         *handlers.AIHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     handlers.NewHealthHandler(),
		Auth:       handlers.NewAuthHandler(s.Auth),
		Submission: handlers.NewSubmissionHandler(s.Submission, s.Dashboard),
		Teacher:    handlers.NewTeacherHandler(s.Auth, s.Lifecycle, s.Dashboard),
		Project:    handlers.NewProjectHandler(s.Auth, s.Lifecycle, s.Dashboard),
		Dashboard:  handlers.NewDashboardHandler(s.Dashboard),
		AI:         handlers.NewAIHandler(s.Analyzer, s.Transcriber, s.Submission, s.Lifecycle),
	}
}
