package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/projectgate-backend/internal/domain"
	"github.com/yungbote/projectgate-backend/internal/platform/logger"
)

type GroupRepo interface {
	Create(ctx context.Context, tx *gorm.DB, groups []*domain.Group) ([]*domain.Group, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, groupIDs []uuid.UUID) ([]*domain.Group, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Group, error)
	ListStudentGroups(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.Group, error)
	ListTeacherGroups(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.Group, error)
	AddStudents(ctx context.Context, tx *gorm.DB, groupID uuid.UUID, users []*domain.User) error
	AddTeachers(ctx context.Context, tx *gorm.DB, groupID uuid.UUID, users []*domain.User) error
	IsTeacherOf(ctx context.Context, tx *gorm.DB, groupID, userID uuid.UUID) (bool, error)
}

type groupRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGroupRepo(db *gorm.DB, baseLog *logger.Logger) GroupRepo {
	return &groupRepo{db: db, log: baseLog.With("repo", "GroupRepo")}
}

func (r *groupRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *groupRepo) Create(ctx context.Context, tx *gorm.DB, groups []*domain.Group) ([]*domain.Group, error) {
	if len(groups) == 0 {
		return []*domain.Group{}, nil
	}
	if err := r.conn(tx).WithContext(ctx).Create(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *groupRepo) GetByIDs(ctx context.Context, tx *gorm.DB, groupIDs []uuid.UUID) ([]*domain.Group, error) {
	var results []*domain.Group
	if len(groupIDs) == 0 {
		return results, nil
	}
	if err := r.conn(tx).WithContext(ctx).
		Where("id IN ?", groupIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *groupRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Group, error) {
	var results []*domain.Group
	if err := r.conn(tx).WithContext(ctx).
		Preload("Teachers").
		Preload("Students").
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *groupRepo) ListStudentGroups(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.Group, error) {
	var results []*domain.Group
	if err := r.conn(tx).WithContext(ctx).
		Joins(`JOIN group_students gs ON gs.group_id = "group".id`).
		Where("gs.user_id = ?", userID).
		Order(`"group".name ASC`).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *groupRepo) ListTeacherGroups(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.Group, error) {
	var results []*domain.Group
	if err := r.conn(tx).WithContext(ctx).
		Joins(`JOIN group_teachers gt ON gt.group_id = "group".id`).
		Where("gt.user_id = ?", userID).
		Order(`"group".name ASC`).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *groupRepo) AddStudents(ctx context.Context, tx *gorm.DB, groupID uuid.UUID, users []*domain.User) error {
	if len(users) == 0 {
		return nil
	}
	g := domain.Group{ID: groupID}
	return r.conn(tx).WithContext(ctx).Model(&g).Association("Students").Append(users)
}

func (r *groupRepo) AddTeachers(ctx context.Context, tx *gorm.DB, groupID uuid.UUID, users []*domain.User) error {
	if len(users) == 0 {
		return nil
	}
	g := domain.Group{ID: groupID}
	return r.conn(tx).WithContext(ctx).Model(&g).Association("Teachers").Append(users)
}

func (r *groupRepo) IsTeacherOf(ctx context.Context, tx *gorm.DB, groupID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Table("group_teachers").
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
