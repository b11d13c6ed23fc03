package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/projectgate-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string, role domain.Role) *domain.User {
	tb.Helper()
	u := &domain.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "pw",
		FullName: "Test User",
		Role:     role,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedGroup(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, teachers, students []*domain.User) *domain.Group {
	tb.Helper()
	g := &domain.Group{
		ID:       uuid.New(),
		Name:     name,
		Teachers: teachers,
		Students: students,
	}
	if err := tx.WithContext(ctx).Create(g).Error; err != nil {
		tb.Fatalf("seed group: %v", err)
	}
	return g
}

func SeedSubmission(tb testing.TB, ctx context.Context, tx *gorm.DB, studentID uuid.UUID, groupID *uuid.UUID, title string, status domain.SubmissionStatus) *domain.Submission {
	tb.Helper()
	s := &domain.Submission{
		ID:           uuid.New(),
		StudentID:    studentID,
		GroupID:      groupID,
		Title:        title,
		AbstractText: "An abstract for " + title,
		Status:       status,
		SubmittedAt:  time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed submission: %v", err)
	}
	return s
}

func SeedSubmissionScored(tb testing.TB, ctx context.Context, tx *gorm.DB, studentID uuid.UUID, title string, status domain.SubmissionStatus, relevance, feasibility, innovation float64) *domain.Submission {
	tb.Helper()
	s := SeedSubmission(tb, ctx, tx, studentID, nil, title, status)
	if err := tx.WithContext(ctx).Model(s).Updates(map[string]any{
		"relevance_score":   relevance,
		"feasibility_score": feasibility,
		"innovation_score":  innovation,
	}).Error; err != nil {
		tb.Fatalf("score submission: %v", err)
	}
	s.RelevanceScore = &relevance
	s.FeasibilityScore = &feasibility
	s.InnovationScore = &innovation
	return s
}

func SeedProject(tb testing.TB, ctx context.Context, tx *gorm.DB, submissionID uuid.UUID, title string, status domain.ProjectStatus) *domain.Project {
	tb.Helper()
	p := &domain.Project{
		ID:           uuid.New(),
		SubmissionID: submissionID,
		Title:        title,
		Abstract:     "An abstract for " + title,
		Category:     domain.CategoryOther,
		Status:       status,
	}
	if status == domain.ProjectCompleted || status == domain.ProjectArchived {
		now := time.Now().UTC()
		p.CompletedAt = &now
		p.ProgressPercentage = 100
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed project: %v", err)
	}
	return p
}

func SeedTeam(tb testing.TB, ctx context.Context, tx *gorm.DB, projectID uuid.UUID, members []*domain.User) *domain.Team {
	tb.Helper()
	t := &domain.Team{
		ID:        uuid.New(),
		ProjectID: projectID,
		Members:   members,
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed team: %v", err)
	}
	return t
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }

func PtrFloat(v float64) *float64 { return &v }
