package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/projectgate-backend/internal/domain"
	"github.com/yungbote/projectgate-backend/internal/platform/logger"
)

// LeaderboardEntry is a read-model row: one student and the summed innovation
// score of their completed projects.
type LeaderboardEntry struct {
	UserID          uuid.UUID `json:"user_id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	TotalInnovation float64   `json:"total_innovation"`
}

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, users []*domain.User) ([]*domain.User, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*domain.User, error)
	GetByEmails(ctx context.Context, tx *gorm.DB, emails []string) ([]*domain.User, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.User, error)
	LeaderboardTop(ctx context.Context, tx *gorm.DB, limit int) ([]LeaderboardEntry, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *userRepo) Create(ctx context.Context, tx *gorm.DB, users []*domain.User) ([]*domain.User, error) {
	if len(users) == 0 {
		return []*domain.User{}, nil
	}
	if err := r.conn(tx).WithContext(ctx).Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*domain.User, error) {
	var results []*domain.User
	if len(userIDs) == 0 {
		return results, nil
	}
	if err := r.conn(tx).WithContext(ctx).
		Where("id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userRepo) GetByEmails(ctx context.Context, tx *gorm.DB, emails []string) ([]*domain.User, error) {
	var results []*domain.User
	if len(emails) == 0 {
		return results, nil
	}
	if err := r.conn(tx).WithContext(ctx).
		Where("email IN ?", emails).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&domain.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.User, error) {
	var results []*domain.User
	if err := r.conn(tx).WithContext(ctx).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userRepo) LeaderboardTop(ctx context.Context, tx *gorm.DB, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	var results []LeaderboardEntry
	err := r.conn(tx).WithContext(ctx).Raw(`
		SELECT u.id AS user_id, u.full_name, u.email,
		       SUM(s.innovation_score) AS total_innovation
		FROM "user" u
		JOIN team_members tm ON tm.user_id = u.id
		JOIN team t ON t.id = tm.team_id
		JOIN project p ON p.id = t.project_id AND p.status = ?
		JOIN submission s ON s.id = p.submission_id
		WHERE s.innovation_score IS NOT NULL
		GROUP BY u.id, u.full_name, u.email
		ORDER BY total_innovation DESC
		LIMIT ?`,
		string(domain.ProjectCompleted), limit,
	).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
