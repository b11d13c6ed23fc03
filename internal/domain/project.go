package domain

import (
	"time"

	"github.com/google/uuid"
)

// Project is the tracked effort created exactly once per approved submission.
// Title and abstract are copied at creation time and never rewritten.
type Project struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SubmissionID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex" json:"submission_id"`
	Submission   *Submission `gorm:"constraint:OnDelete:CASCADE;foreignKey:SubmissionID;references:ID" json:"submission,omitempty"`

	Title    string          `gorm:"not null;column:title" json:"title"`
	Abstract string          `gorm:"not null;column:abstract" json:"abstract"`
	Category ProjectCategory `gorm:"not null;column:category;default:Other" json:"category"`

	Status             ProjectStatus `gorm:"not null;column:status;default:In Progress;index" json:"status"`
	ProgressPercentage int           `gorm:"not null;column:progress_percentage;default:0" json:"progress_percentage"`
	FinalReportKey     string        `gorm:"column:final_report_key" json:"final_report_key,omitempty"`

	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Project) TableName() string { return "project" }
