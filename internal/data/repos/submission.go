package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/projectgate-backend/internal/domain"
	"github.com/yungbote/projectgate-backend/internal/platform/logger"
)

type SubmissionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, subs []*domain.Submission) ([]*domain.Submission, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Submission, error)
	// GetByIDForUpdate takes a row lock; callers must hold a transaction.
	GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Submission, error)
	// ListCorpus returns every submission counted as prior art: all statuses
	// except Rejected, oldest first, student preloaded.
	ListCorpus(ctx context.Context, tx *gorm.DB) ([]*domain.Submission, error)
	ListByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*domain.Submission, error)
	ListByStudentAndStatuses(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, statuses []domain.SubmissionStatus) ([]*domain.Submission, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*domain.Submission, error)
	ListByGroupIDsWithStatus(ctx context.Context, tx *gorm.DB, groupIDs []uuid.UUID, status domain.SubmissionStatus) ([]*domain.Submission, error)
	ListExcludingGroupIDs(ctx context.Context, tx *gorm.DB, groupIDs []uuid.UUID) ([]*domain.Submission, error)
	ListByStatusesTopScored(ctx context.Context, tx *gorm.DB, statuses []domain.SubmissionStatus, limit int) ([]*domain.Submission, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status domain.SubmissionStatus) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type submissionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubmissionRepo(db *gorm.DB, baseLog *logger.Logger) SubmissionRepo {
	return &submissionRepo{db: db, log: baseLog.With("repo", "SubmissionRepo")}
}

func (r *submissionRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *submissionRepo) Create(ctx context.Context, tx *gorm.DB, subs []*domain.Submission) ([]*domain.Submission, error) {
	if len(subs) == 0 {
		return []*domain.Submission{}, nil
	}
	if err := r.conn(tx).WithContext(ctx).Create(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *submissionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Submission, error) {
	var results []*domain.Submission
	if len(ids) == 0 {
		return results, nil
	}
	if err := r.conn(tx).WithContext(ctx).
		Preload("Student").
		Preload("Group").
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *submissionRepo) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Submission, error) {
	var sub domain.Submission
	if err := r.conn(tx).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepo) ListCorpus(ctx context.Context, tx *gorm.DB) ([]*domain.Submission, error) {
	var results []*domain.Submission
	if err := r.conn(tx).WithContext(ctx).
		Preload("Student").
		Where("status <> ?", string(domain.SubmissionRejected)).
		Order("submitted_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *submissionRepo) ListByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*domain.Submission, error) {
	var results []*domain.Submission
	if len(studentIDs) == 0 {
		return results, nil
	}
	if err := r.conn(tx).WithContext(ctx).
		Preload("Group").
		Where("student_id IN ?", studentIDs).
		Order("submitted_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *submissionRepo) ListByStudentAndStatuses(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, statuses []domain.SubmissionStatus) ([]*domain.Submission, error) {
	var results []*domain.Submission
	if len(statuses) == 0 {
		return results, nil
	}
	if err := r.conn(tx).WithContext(ctx).
		Preload("Group").
		Where("student_id = ? AND status IN ?", studentID, statuses).
		Order("submitted_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *submissionRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*domain.Submission, error) {
	var results []*domain.Submission
	if err := r.conn(tx).WithContext(ctx).
		Preload("Student").
		Preload("Group").
		Order("submitted_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *submissionRepo) ListByGroupIDsWithStatus(ctx context.Context, tx *gorm.DB, groupIDs []uuid.UUID, status domain.SubmissionStatus) ([]*domain.Submission, error) {
	var results []*domain.Submission
	if len(groupIDs) == 0 {
		return results, nil
	}
	if err := r.conn(tx).WithContext(ctx).
		Preload("Student").
		Preload("Group").
		Where("group_id IN ? AND status = ?", groupIDs, string(status)).
		Order("submitted_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *submissionRepo) ListExcludingGroupIDs(ctx context.Context, tx *gorm.DB, groupIDs []uuid.UUID) ([]*domain.Submission, error) {
	var results []*domain.Submission
	q := r.conn(tx).WithContext(ctx).
		Preload("Student").
		Preload("Group").
		Order("submitted_at DESC")
	if len(groupIDs) > 0 {
		q = q.Where("group_id IS NULL OR group_id NOT IN ?", groupIDs)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *submissionRepo) ListByStatusesTopScored(ctx context.Context, tx *gorm.DB, statuses []domain.SubmissionStatus, limit int) ([]*domain.Submission, error) {
	var results []*domain.Submission
	if len(statuses) == 0 {
		return results, nil
	}
	if limit <= 0 {
		limit = 10
	}
	if err := r.conn(tx).WithContext(ctx).
		Preload("Student").
		Where("status IN ?", statuses).
		Order("innovation_score DESC NULLS LAST").
		Order("relevance_score DESC NULLS LAST").
		Order("feasibility_score DESC NULLS LAST").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *submissionRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status domain.SubmissionStatus) error {
	return r.conn(tx).WithContext(ctx).
		Model(&domain.Submission{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

func (r *submissionRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&domain.Submission{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
