package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/projectgate-backend/internal/domain"
	"github.com/yungbote/projectgate-backend/internal/platform/logger"
)

// StatusCount and CategoryCount are analytics read-model rows.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type ProjectRepo interface {
	Create(ctx context.Context, tx *gorm.DB, projects []*domain.Project) ([]*domain.Project, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Project, error)
	// GetByIDForUpdate takes a row lock; callers must hold a transaction.
	GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Project, error)
	GetBySubmissionIDs(ctx context.Context, tx *gorm.DB, submissionIDs []uuid.UUID) ([]*domain.Project, error)
	ListByStatuses(ctx context.Context, tx *gorm.DB, statuses []domain.ProjectStatus) ([]*domain.Project, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status domain.ProjectStatus, completedAt *time.Time) error
	UpdateProgress(ctx context.Context, tx *gorm.DB, id uuid.UUID, progress int) error
	CountByStatus(ctx context.Context, tx *gorm.DB) ([]StatusCount, error)
	CountByCategory(ctx context.Context, tx *gorm.DB) ([]CategoryCount, error)
	// TopCompletedByInnovation joins the submission scores onto completed
	// projects, highest innovation first.
	TopCompletedByInnovation(ctx context.Context, tx *gorm.DB, limit int) ([]*domain.Project, error)
}

type projectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	return &projectRepo{db: db, log: baseLog.With("repo", "ProjectRepo")}
}

func (r *projectRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *projectRepo) Create(ctx context.Context, tx *gorm.DB, projects []*domain.Project) ([]*domain.Project, error) {
	if len(projects) == 0 {
		return []*domain.Project{}, nil
	}
	if err := r.conn(tx).WithContext(ctx).Create(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Project, error) {
	var results []*domain.Project
	if len(ids) == 0 {
		return results, nil
	}
	if err := r.conn(tx).WithContext(ctx).
		Preload("Submission").
		Preload("Submission.Student").
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *projectRepo) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Project, error) {
	var p domain.Project
	if err := r.conn(tx).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) GetBySubmissionIDs(ctx context.Context, tx *gorm.DB, submissionIDs []uuid.UUID) ([]*domain.Project, error) {
	var results []*domain.Project
	if len(submissionIDs) == 0 {
		return results, nil
	}
	if err := r.conn(tx).WithContext(ctx).
		Where("submission_id IN ?", submissionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *projectRepo) ListByStatuses(ctx context.Context, tx *gorm.DB, statuses []domain.ProjectStatus) ([]*domain.Project, error) {
	var results []*domain.Project
	if len(statuses) == 0 {
		return results, nil
	}
	if err := r.conn(tx).WithContext(ctx).
		Preload("Submission").
		Preload("Submission.Student").
		Where("status IN ?", statuses).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *projectRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status domain.ProjectStatus, completedAt *time.Time) error {
	updates := map[string]any{"status": string(status)}
	if completedAt != nil {
		updates["completed_at"] = *completedAt
	}
	return r.conn(tx).WithContext(ctx).
		Model(&domain.Project{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *projectRepo) UpdateProgress(ctx context.Context, tx *gorm.DB, id uuid.UUID, progress int) error {
	return r.conn(tx).WithContext(ctx).
		Model(&domain.Project{}).
		Where("id = ?", id).
		Update("progress_percentage", progress).Error
}

func (r *projectRepo) CountByStatus(ctx context.Context, tx *gorm.DB) ([]StatusCount, error) {
	var results []StatusCount
	if err := r.conn(tx).WithContext(ctx).
		Model(&domain.Project{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status ASC").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *projectRepo) CountByCategory(ctx context.Context, tx *gorm.DB) ([]CategoryCount, error) {
	var results []CategoryCount
	if err := r.conn(tx).WithContext(ctx).
		Model(&domain.Project{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("category ASC").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *projectRepo) TopCompletedByInnovation(ctx context.Context, tx *gorm.DB, limit int) ([]*domain.Project, error) {
	if limit <= 0 {
		limit = 5
	}
	var results []*domain.Project
	if err := r.conn(tx).WithContext(ctx).
		Preload("Submission").
		Joins("JOIN submission s ON s.id = project.submission_id").
		Where("project.status = ?", string(domain.ProjectCompleted)).
		Order("s.innovation_score DESC NULLS LAST").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
