package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/projectgate-backend/internal/platform/logger"
	"github.com/yungbote/projectgate-backend/internal/services"
)

type Services struct {
	Analyzer    services.AnalyzerService
	Transcriber services.Transcriber
	Submission  services.SubmissionService
	Lifecycle   services.LifecycleService
	Dashboard   services.DashboardService
	Auth        services.AuthService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, c Clients) Services {
	log.Info("Wiring services...")

	analyzer := services.NewAnalyzerService(log, c.Gemini)

	var transcriber services.Transcriber
	if c.Speech != nil {
		transcriber = services.NewTranscriber(log, c.Speech)
	}

	return Services{
		Analyzer:    analyzer,
		Transcriber: transcriber,
		Submission:  services.NewSubmissionService(db, log, r.Submission, r.Group, analyzer, transcriber, c.Bucket),
		Lifecycle:   services.NewLifecycleService(db, log, r.Submission, r.Project, r.Team, r.Group, r.User),
		Dashboard:   services.NewDashboardService(log, r.Submission, r.Project, r.User, r.Group, c.Cache),
		Auth:        services.NewAuthService(db, log, r.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
	}
}
