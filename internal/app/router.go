package app

import (
	"github.com/yungbote/projectgate-backend/internal/http"
	"github.com/yungbote/projectgate-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, h Handlers, mw Middleware) *http.Server {
	log.Info("Wiring router...")
	return http.NewServer(http.RouterConfig{
		Log:               log,
		AuthMiddleware:    mw.Auth,
		AuthHandler:       h.Auth,
		SubmissionHandler: h.Submission,
		TeacherHandler:    h.Teacher,
		ProjectHandler:    h.Project,
		DashboardHandler:  h.Dashboard,
		AIHandler:         h.AI,
		HealthHandler:     h.Health,
	})
}
