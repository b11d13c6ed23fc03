package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Submission is a student's proposed project idea. It is only persisted after
// the originality gate admits it; quality scores stay null until analysis has
// run.
type Submission struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID uuid.UUID  `gorm:"type:uuid;not null;index" json:"student_id"`
	Student   *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`
	GroupID   *uuid.UUID `gorm:"type:uuid;index" json:"group_id,omitempty"`
	Group     *Group     `gorm:"constraint:OnDelete:SET NULL;foreignKey:GroupID;references:ID" json:"group,omitempty"`

	Title        string `gorm:"not null;column:title" json:"title"`
	AbstractText string `gorm:"not null;column:abstract_text" json:"abstract_text"`

	// Opaque blob-store keys; the files themselves live in the bucket.
	AbstractKey string `gorm:"column:abstract_key" json:"abstract_key,omitempty"`
	AudioKey    string `gorm:"column:audio_key" json:"audio_key,omitempty"`

	TranscribedText string `gorm:"column:transcribed_text" json:"transcribed_text,omitempty"`

	// Embedding is a placeholder kept for future similarity reuse; the gate
	// currently re-queries the oracle with full corpus text.
	Embedding datatypes.JSON `gorm:"type:jsonb;column:embedding" json:"embedding,omitempty"`

	RelevanceScore   *float64 `gorm:"column:relevance_score" json:"relevance_score,omitempty"`
	FeasibilityScore *float64 `gorm:"column:feasibility_score" json:"feasibility_score,omitempty"`
	InnovationScore  *float64 `gorm:"column:innovation_score" json:"innovation_score,omitempty"`

	Status      SubmissionStatus `gorm:"not null;column:status;default:Submitted;index" json:"status"`
	SubmittedAt time.Time        `gorm:"not null;default:now();index" json:"submitted_at"`
	UpdatedAt   time.Time        `gorm:"not null;default:now()" json:"updated_at"`
}

func (Submission) TableName() string { return "submission" }
