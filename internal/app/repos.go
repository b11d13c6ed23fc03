package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/projectgate-backend/internal/data/repos"
	"github.com/yungbote/projectgate-backend/internal/platform/logger"
)

type Repos struct {
	User       repos.UserRepo
	Group      repos.GroupRepo
	Submission repos.SubmissionRepo
	Project    repos.ProjectRepo
	Team       repos.TeamRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:       repos.NewUserRepo(db, log),
		Group:      repos.NewGroupRepo(db, log),
		Submission: repos.NewSubmissionRepo(db, log),
		Project:    repos.NewProjectRepo(db, log),
		Team:       repos.NewTeamRepo(db, log),
	}
}
