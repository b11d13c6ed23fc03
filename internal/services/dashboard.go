package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/projectgate-backend/internal/data/repos"
	"github.com/yungbote/projectgate-backend/internal/domain"
	"github.com/yungbote/projectgate-backend/internal/platform/logger"
	"github.com/yungbote/projectgate-backend/internal/platform/redis"
)

const (
	analyticsCacheKey   = "dashboard:analytics"
	leaderboardCacheKey = "dashboard:leaderboard"
	dashboardCacheTTL   = 60 * time.Second
)

// StudentRow is one line of the teacher's student dashboard: a submission
// joined with the progress of its project, when one exists.
type StudentRow struct {
	Submission *domain.Submission `json:"submission"`
	Progress   int                `json:"progress"`
	HasProject bool               `json:"has_project"`
}

type Analytics struct {
	StatusCounts   []repos.StatusCount   `json:"status_counts"`
	CategoryCounts []repos.CategoryCount `json:"category_counts"`
	TopCompleted   []*domain.Project     `json:"top_completed"`
}

type DashboardService interface {
	// PendingQueue lists Submitted submissions in the groups the teacher teaches.
	PendingQueue(ctx context.Context, teacherID uuid.UUID) ([]*domain.Submission, error)
	// UnappointedQueue lists submissions outside the teacher's groups,
	// including submissions with no group at all.
	UnappointedQueue(ctx context.Context, teacherID uuid.UUID) ([]*domain.Submission, error)
	StudentList(ctx context.Context) ([]StudentRow, error)
	// StudentDashboard is StudentList narrowed to one student's submissions.
	StudentDashboard(ctx context.Context, studentID uuid.UUID) ([]StudentRow, error)
	ApprovedProjects(ctx context.Context) ([]*domain.Project, error)
	AllProjects(ctx context.Context) ([]*domain.Project, error)
	Leaderboard(ctx context.Context) ([]repos.LeaderboardEntry, error)
	TopAlumniProjects(ctx context.Context) ([]*domain.Submission, error)
	MyProjects(ctx context.Context, studentID uuid.UUID) ([]*domain.Submission, error)
	Analytics(ctx context.Context) (*Analytics, error)
}

type dashboardService struct {
	log         *logger.Logger
	subRepo     repos.SubmissionRepo
	projectRepo repos.ProjectRepo
	userRepo    repos.UserRepo
	groupRepo   repos.GroupRepo
	cache       redis.Cache
}

func NewDashboardService(
	log *logger.Logger,
	subRepo repos.SubmissionRepo,
	projectRepo repos.ProjectRepo,
	userRepo repos.UserRepo,
	groupRepo repos.GroupRepo,
	cache redis.Cache,
) DashboardService {
	return &dashboardService{
		log:         log.With("service", "DashboardService"),
		subRepo:     subRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		groupRepo:   groupRepo,
		cache:       cache,
	}
}

func (s *dashboardService) teacherGroupIDs(ctx context.Context, teacherID uuid.UUID) ([]uuid.UUID, error) {
	groups, err := s.groupRepo.ListTeacherGroups(ctx, nil, teacherID)
	if err != nil {
		return nil, fmt.Errorf("load teacher groups: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	return ids, nil
}

func (s *dashboardService) PendingQueue(ctx context.Context, teacherID uuid.UUID) ([]*domain.Submission, error) {
	ids, err := s.teacherGroupIDs(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*domain.Submission{}, nil
	}
	return s.subRepo.ListByGroupIDsWithStatus(ctx, nil, ids, domain.SubmissionSubmitted)
}

func (s *dashboardService) UnappointedQueue(ctx context.Context, teacherID uuid.UUID) ([]*domain.Submission, error) {
	ids, err := s.teacherGroupIDs(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return s.subRepo.ListExcludingGroupIDs(ctx, nil, ids)
}

func (s *dashboardService) StudentList(ctx context.Context) ([]StudentRow, error) {
	subs, err := s.subRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return s.joinProgress(ctx, subs)
}

func (s *dashboardService) StudentDashboard(ctx context.Context, studentID uuid.UUID) ([]StudentRow, error) {
	subs, err := s.subRepo.ListByStudentIDs(ctx, nil, []uuid.UUID{studentID})
	if err != nil {
		return nil, fmt.Errorf("list student submissions: %w", err)
	}
	return s.joinProgress(ctx, subs)
}

func (s *dashboardService) joinProgress(ctx context.Context, subs []*domain.Submission) ([]StudentRow, error) {
	subIDs := make([]uuid.UUID, 0, len(subs))
	for _, sub := range subs {
		subIDs = append(subIDs, sub.ID)
	}
	projects, err := s.projectRepo.GetBySubmissionIDs(ctx, nil, subIDs)
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	progressBySub := make(map[uuid.UUID]int, len(projects))
	for _, p := range projects {
		progressBySub[p.SubmissionID] = p.ProgressPercentage
	}

	rows := make([]StudentRow, 0, len(subs))
	for _, sub := range subs {
		progress, ok := progressBySub[sub.ID]
		rows = append(rows, StudentRow{Submission: sub, Progress: progress, HasProject: ok})
	}
	return rows, nil
}

// ApprovedProjects lists every project that cleared review, whatever stage of
// its lifecycle it has reached since.
func (s *dashboardService) ApprovedProjects(ctx context.Context) ([]*domain.Project, error) {
	return s.projectRepo.ListByStatuses(ctx, nil, []domain.ProjectStatus{
		domain.ProjectInProgress, domain.ProjectCompleted, domain.ProjectArchived,
	})
}

func (s *dashboardService) AllProjects(ctx context.Context) ([]*domain.Project, error) {
	return s.projectRepo.ListByStatuses(ctx, nil, []domain.ProjectStatus{
		domain.ProjectInProgress, domain.ProjectCompleted, domain.ProjectArchived,
	})
}

func (s *dashboardService) Leaderboard(ctx context.Context) ([]repos.LeaderboardEntry, error) {
	if s.cache != nil {
		var cached []repos.LeaderboardEntry
		if err := s.cache.GetJSON(ctx, leaderboardCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	entries, err := s.userRepo.LeaderboardTop(ctx, nil, 10)
	if err != nil {
		return nil, fmt.Errorf("leaderboard query: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, leaderboardCacheKey, entries, dashboardCacheTTL); err != nil {
			s.log.Warn("leaderboard cache write failed", "error", err)
		}
	}
	return entries, nil
}

func (s *dashboardService) TopAlumniProjects(ctx context.Context) ([]*domain.Submission, error) {
	return s.subRepo.ListByStatusesTopScored(ctx, nil,
		[]domain.SubmissionStatus{domain.SubmissionCompleted, domain.SubmissionArchived}, 10)
}

func (s *dashboardService) MyProjects(ctx context.Context, studentID uuid.UUID) ([]*domain.Submission, error) {
	return s.subRepo.ListByStudentAndStatuses(ctx, nil, studentID,
		[]domain.SubmissionStatus{domain.SubmissionCompleted, domain.SubmissionArchived})
}

func (s *dashboardService) Analytics(ctx context.Context) (*Analytics, error) {
	if s.cache != nil {
		var cached Analytics
		if err := s.cache.GetJSON(ctx, analyticsCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	statusCounts, err := s.projectRepo.CountByStatus(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	categoryCounts, err := s.projectRepo.CountByCategory(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("count by category: %w", err)
	}
	top, err := s.projectRepo.TopCompletedByInnovation(ctx, nil, 5)
	if err != nil {
		return nil, fmt.Errorf("top completed: %w", err)
	}

	out := &Analytics{
		StatusCounts:   statusCounts,
		CategoryCounts: categoryCounts,
		TopCompleted:   top,
	}
	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, analyticsCacheKey, out, dashboardCacheTTL); err != nil {
			s.log.Warn("analytics cache write failed", "error", err)
		}
	}
	return out, nil
}
