package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/projectgate-backend/internal/data/repos"
	"github.com/yungbote/projectgate-backend/internal/domain"
	"github.com/yungbote/projectgate-backend/internal/pkg/apperr"
	"github.com/yungbote/projectgate-backend/internal/platform/logger"
)

type LifecycleService interface {
	// Review is a teacher's one-shot verdict on a Submitted submission.
	// Approval creates the Project and its Team in the same transaction.
	Review(ctx context.Context, reviewer *domain.User, submissionID uuid.UUID, decision domain.SubmissionStatus) (*domain.Submission, error)
	// Archive moves a project forward: In Progress -> Completed -> Archived.
	// The terminal status is mirrored onto the linked submission.
	Archive(ctx context.Context, actor *domain.User, projectID uuid.UUID, target domain.ProjectStatus) (*domain.Project, error)
	UpdateProgress(ctx context.Context, studentID, submissionID uuid.UUID, progress int) (*domain.Project, error)
	GetProgress(ctx context.Context, submissionID uuid.UUID) (int, error)
}

type lifecycleService struct {
	db          *gorm.DB
	log         *logger.Logger
	subRepo     repos.SubmissionRepo
	projectRepo repos.ProjectRepo
	teamRepo    repos.TeamRepo
	groupRepo   repos.GroupRepo
	userRepo    repos.UserRepo
}

func NewLifecycleService(
	db *gorm.DB,
	log *logger.Logger,
	subRepo repos.SubmissionRepo,
	projectRepo repos.ProjectRepo,
	teamRepo repos.TeamRepo,
	groupRepo repos.GroupRepo,
	userRepo repos.UserRepo,
) LifecycleService {
	return &lifecycleService{
		db:          db,
		log:         log.With("service", "LifecycleService"),
		subRepo:     subRepo,
		projectRepo: projectRepo,
		teamRepo:    teamRepo,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
	}
}

func (s *lifecycleService) Review(ctx context.Context, reviewer *domain.User, submissionID uuid.UUID, decision domain.SubmissionStatus) (*domain.Submission, error) {
	if !reviewer.Role.Can(domain.CapReviewSubmissions) {
		return nil, apperr.New(apperr.KindAuthorization, apperr.CodeNotYourGroup,
			"only teachers review submissions")
	}
	if !decision.IsReviewDecision() {
		return nil, apperr.New(apperr.KindValidation, apperr.CodeInvalidStatus,
			"decision must be Approved or Rejected")
	}

	var reviewed *domain.Submission
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub, err := s.subRepo.GetByIDForUpdate(ctx, tx, submissionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindNotFound, apperr.CodeNotFound, "submission not found")
			}
			return fmt.Errorf("lock submission: %w", err)
		}

		if sub.GroupID != nil {
			teaches, terr := s.groupRepo.IsTeacherOf(ctx, tx, *sub.GroupID, reviewer.ID)
			if terr != nil {
				return fmt.Errorf("check group teachers: %w", terr)
			}
			if !teaches {
				return apperr.New(apperr.KindAuthorization, apperr.CodeNotYourGroup,
					"submission belongs to a group you do not teach")
			}
		}

		if sub.Status != domain.SubmissionSubmitted {
			return apperr.New(apperr.KindConflict, apperr.CodeAlreadyReviewed,
				"submission has already been reviewed")
		}

		if err := s.subRepo.UpdateStatus(ctx, tx, sub.ID, decision); err != nil {
			return fmt.Errorf("update submission status: %w", err)
		}
		sub.Status = decision

		if decision == domain.SubmissionApproved {
			project := &domain.Project{
				ID:           uuid.New(),
				SubmissionID: sub.ID,
				Title:        sub.Title,
				Abstract:     sub.AbstractText,
				Category:     domain.CategoryOther,
				Status:       domain.ProjectInProgress,
			}
			if _, err := s.projectRepo.Create(ctx, tx, []*domain.Project{project}); err != nil {
				return fmt.Errorf("create project: %w", err)
			}

			students, err := s.userRepo.GetByIDs(ctx, tx, []uuid.UUID{sub.StudentID})
			if err != nil {
				return fmt.Errorf("load submitting student: %w", err)
			}
			if len(students) == 0 {
				return fmt.Errorf("submitting student %s not found", sub.StudentID)
			}
			team := &domain.Team{
				ID:        uuid.New(),
				ProjectID: project.ID,
				Members:   students,
			}
			if _, err := s.teamRepo.Create(ctx, tx, []*domain.Team{team}); err != nil {
				return fmt.Errorf("create team: %w", err)
			}
		}

		reviewed = sub
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("submission reviewed",
		"submission_id", submissionID,
		"reviewer_id", reviewer.ID,
		"decision", string(decision))
	return reviewed, nil
}

func (s *lifecycleService) Archive(ctx context.Context, actor *domain.User, projectID uuid.UUID, target domain.ProjectStatus) (*domain.Project, error) {
	if !actor.Role.Can(domain.CapArchiveProjects) {
		return nil, apperr.New(apperr.KindAuthorization, apperr.CodeNotYourGroup,
			"you may not change project status")
	}
	if !target.Valid() || target == domain.ProjectInProgress {
		return nil, apperr.New(apperr.KindValidation, apperr.CodeInvalidStatus,
			"target must be Completed or Archived")
	}

	var updated *domain.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := s.projectRepo.GetByIDForUpdate(ctx, tx, projectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindNotFound, apperr.CodeNotFound, "project not found")
			}
			return fmt.Errorf("lock project: %w", err)
		}

		if !project.Status.CanTransitionTo(target) {
			return apperr.New(apperr.KindValidation, apperr.CodeInvalidTransition,
				fmt.Sprintf("cannot move %s to %s", project.Status, target)).
				WithMeta("from", string(project.Status)).
				WithMeta("to", string(target))
		}

		var completedAt *time.Time
		if target == domain.ProjectCompleted {
			now := time.Now().UTC()
			completedAt = &now
		}
		if err := s.projectRepo.UpdateStatus(ctx, tx, project.ID, target, completedAt); err != nil {
			return fmt.Errorf("update project status: %w", err)
		}
		project.Status = target
		if completedAt != nil {
			project.CompletedAt = completedAt
		}

		if mirror, ok := target.MirrorSubmissionStatus(); ok {
			if err := s.subRepo.UpdateStatus(ctx, tx, project.SubmissionID, mirror); err != nil {
				return fmt.Errorf("mirror submission status: %w", err)
			}
		}

		updated = project
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("project transitioned",
		"project_id", projectID,
		"actor_id", actor.ID,
		"status", string(target))
	return updated, nil
}

func (s *lifecycleService) UpdateProgress(ctx context.Context, studentID, submissionID uuid.UUID, progress int) (*domain.Project, error) {
	if progress < 0 || progress > 100 {
		return nil, apperr.New(apperr.KindValidation, apperr.CodeInvalidProgress,
			"progress must be between 0 and 100")
	}

	subs, err := s.subRepo.GetByIDs(ctx, nil, []uuid.UUID{submissionID})
	if err != nil {
		return nil, fmt.Errorf("load submission: %w", err)
	}
	if len(subs) == 0 {
		return nil, apperr.New(apperr.KindNotFound, apperr.CodeNotFound, "submission not found")
	}
	if subs[0].StudentID != studentID {
		return nil, apperr.New(apperr.KindAuthorization, apperr.CodeNotOwner,
			"only the submitting student updates progress")
	}

	projects, err := s.projectRepo.GetBySubmissionIDs(ctx, nil, []uuid.UUID{submissionID})
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	if len(projects) == 0 {
		return nil, apperr.New(apperr.KindValidation, apperr.CodeNotApprovedYet,
			"submission has no approved project yet")
	}
	project := projects[0]

	if err := s.projectRepo.UpdateProgress(ctx, nil, project.ID, progress); err != nil {
		return nil, fmt.Errorf("update progress: %w", err)
	}
	project.ProgressPercentage = progress
	return project, nil
}

func (s *lifecycleService) GetProgress(ctx context.Context, submissionID uuid.UUID) (int, error) {
	projects, err := s.projectRepo.GetBySubmissionIDs(ctx, nil, []uuid.UUID{submissionID})
	if err != nil {
		return 0, fmt.Errorf("load project: %w", err)
	}
	if len(projects) == 0 {
		return 0, nil
	}
	return projects[0].ProgressPercentage, nil
}
