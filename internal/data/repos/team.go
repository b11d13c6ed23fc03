package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/projectgate-backend/internal/domain"
	"github.com/yungbote/projectgate-backend/internal/platform/logger"
)

type TeamRepo interface {
	Create(ctx context.Context, tx *gorm.DB, teams []*domain.Team) ([]*domain.Team, error)
	GetByProjectIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*domain.Team, error)
	AddMembers(ctx context.Context, tx *gorm.DB, teamID uuid.UUID, members []*domain.User) error
	IsMemberOf(ctx context.Context, tx *gorm.DB, teamID, userID uuid.UUID) (bool, error)
}

type teamRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTeamRepo(db *gorm.DB, baseLog *logger.Logger) TeamRepo {
	return &teamRepo{db: db, log: baseLog.With("repo", "TeamRepo")}
}

func (r *teamRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *teamRepo) Create(ctx context.Context, tx *gorm.DB, teams []*domain.Team) ([]*domain.Team, error) {
	if len(teams) == 0 {
		return []*domain.Team{}, nil
	}
	if err := r.conn(tx).WithContext(ctx).Create(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepo) GetByProjectIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*domain.Team, error) {
	var results []*domain.Team
	if len(projectIDs) == 0 {
		return results, nil
	}
	if err := r.conn(tx).WithContext(ctx).
		Preload("Members").
		Where("project_id IN ?", projectIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *teamRepo) AddMembers(ctx context.Context, tx *gorm.DB, teamID uuid.UUID, members []*domain.User) error {
	if len(members) == 0 {
		return nil
	}
	team := domain.Team{ID: teamID}
	return r.conn(tx).WithContext(ctx).
		Model(&team).
		Association("Members").
		Append(members)
}

func (r *teamRepo) IsMemberOf(ctx context.Context, tx *gorm.DB, teamID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Table("team_members").
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
