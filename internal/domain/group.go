package domain

import (
	"time"

	"github.com/google/uuid"
)

// Group is a teacher/student cohort. Submissions attach to the group the
// student submitted under; reviewers must teach that group.
type Group struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	Teachers    []*User   `gorm:"many2many:group_teachers" json:"teachers,omitempty"`
	Students    []*User   `gorm:"many2many:group_students" json:"students,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Group) TableName() string { return "group" }
