package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/projectgate-backend/internal/data/repos"
	"github.com/yungbote/projectgate-backend/internal/domain"
	"github.com/yungbote/projectgate-backend/internal/pkg/apperr"
	"github.com/yungbote/projectgate-backend/internal/platform/gcp"
	"github.com/yungbote/projectgate-backend/internal/platform/logger"
)

// SubmitInput is everything a student may hand over in one submission.
// AbstractFile and AudioFile are optional raw uploads.
type SubmitInput struct {
	Title         string
	AbstractText  string
	GroupID       *uuid.UUID
	AbstractFile  []byte
	AbstractName  string
	AudioFile     []byte
	AudioMimeType string
}

// SubmitResult reports either the admitted submission or the oracle's verdict
// when admission was refused at the door.
type SubmitResult struct {
	Submission *domain.Submission
	Evaluation Evaluation
}

type SubmissionService interface {
	Submit(ctx context.Context, studentID uuid.UUID, input SubmitInput) (*SubmitResult, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
}

type submissionService struct {
	db          *gorm.DB
	log         *logger.Logger
	subRepo     repos.SubmissionRepo
	groupRepo   repos.GroupRepo
	analyzer    AnalyzerService
	transcriber Transcriber
	bucket      gcp.BucketService
}

func NewSubmissionService(
	db *gorm.DB,
	log *logger.Logger,
	subRepo repos.SubmissionRepo,
	groupRepo repos.GroupRepo,
	analyzer AnalyzerService,
	transcriber Transcriber,
	bucket gcp.BucketService,
) SubmissionService {
	return &submissionService{
		db:          db,
		log:         log.With("service", "SubmissionService"),
		subRepo:     subRepo,
		groupRepo:   groupRepo,
		analyzer:    analyzer,
		transcriber: transcriber,
		bucket:      bucket,
	}
}

func (s *submissionService) Submit(ctx context.Context, studentID uuid.UUID, input SubmitInput) (*SubmitResult, error) {
	groupID, err := s.resolveGroup(ctx, studentID, input.GroupID)
	if err != nil {
		return nil, err
	}

	abstract := strings.TrimSpace(input.AbstractText)
	transcribed := ""
	if len(input.AudioFile) > 0 && s.transcriber != nil {
		text, terr := s.transcriber.Transcribe(ctx, input.AudioFile, input.AudioMimeType)
		if terr != nil {
			// Best effort; a failed transcription falls back to the typed abstract.
			s.log.Warn("audio transcription failed", "error", terr)
		} else {
			transcribed = strings.TrimSpace(text)
		}
	}

	candidate := transcribed
	if candidate == "" {
		candidate = abstract
	}
	if candidate == "" {
		return nil, apperr.New(apperr.KindValidation, apperr.CodeMissingContent,
			"provide an abstract or an audio recording")
	}

	prior, err := s.subRepo.ListCorpus(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("load submission corpus: %w", err)
	}
	corpus := make([]CorpusEntry, 0, len(prior))
	for _, p := range prior {
		student := ""
		if p.Student != nil {
			student = p.Student.FullName
		}
		corpus = append(corpus, CorpusEntry{Title: p.Title, Student: student, Abstract: p.AbstractText})
	}

	ev := s.analyzer.Evaluate(ctx, input.Title, candidate, corpus)
	if ev.Blocked() {
		blockErr := apperr.New(apperr.KindConflict, apperr.CodeBlockedHighSimilarity,
			"too similar to an existing project").
			WithMeta("similarity_score", ev.SimilarityScore).
			WithMeta("suggestions", ev.FullReport)
		if ev.MostSimilar != nil {
			blockErr = blockErr.WithMeta("similar_project", ev.MostSimilar)
		}
		return &SubmitResult{Evaluation: ev}, blockErr
	}

	sub := &domain.Submission{
		ID:              uuid.New(),
		StudentID:       studentID,
		GroupID:         groupID,
		Title:           input.Title,
		AbstractText:    candidate,
		TranscribedText: transcribed,
		Embedding:       s.analyzer.Embedding(candidate),
		Status:          domain.SubmissionSubmitted,
		SubmittedAt:     time.Now().UTC(),
	}
	if ev.Status != StatusOracleFailure {
		sub.RelevanceScore = &ev.Relevance
		sub.FeasibilityScore = &ev.Feasibility
		sub.InnovationScore = &ev.Innovation
	}

	if s.bucket == nil && (len(input.AbstractFile) > 0 || len(input.AudioFile) > 0) {
		s.log.Warn("bucket unavailable, dropping uploaded artifacts", "submission_id", sub.ID)
	}
	if s.bucket != nil && len(input.AbstractFile) > 0 {
		key := sub.ID.String() + "/" + sanitizeName(input.AbstractName, "abstract.pdf")
		if uerr := s.bucket.UploadFile(ctx, gcp.BucketCategoryAbstract, key, bytes.NewReader(input.AbstractFile)); uerr != nil {
			return nil, fmt.Errorf("upload abstract artifact: %w", uerr)
		}
		sub.AbstractKey = key
	}
	if s.bucket != nil && len(input.AudioFile) > 0 {
		key := sub.ID.String() + "/" + audioName(input.AudioMimeType)
		if uerr := s.bucket.UploadFile(ctx, gcp.BucketCategoryAudio, key, bytes.NewReader(input.AudioFile)); uerr != nil {
			return nil, fmt.Errorf("upload audio artifact: %w", uerr)
		}
		sub.AudioKey = key
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, cerr := s.subRepo.Create(ctx, tx, []*domain.Submission{sub})
		return cerr
	}); err != nil {
		return nil, fmt.Errorf("persist submission: %w", err)
	}

	s.log.Info("submission admitted",
		"submission_id", sub.ID,
		"student_id", studentID,
		"similarity", ev.SimilarityScore)
	return &SubmitResult{Submission: sub, Evaluation: ev}, nil
}

// resolveGroup picks the group the submission attaches to. An explicit choice
// is verified against membership; with exactly one membership it defaults;
// with several an explicit group_id is required.
func (s *submissionService) resolveGroup(ctx context.Context, studentID uuid.UUID, explicit *uuid.UUID) (*uuid.UUID, error) {
	groups, err := s.groupRepo.ListStudentGroups(ctx, nil, studentID)
	if err != nil {
		return nil, fmt.Errorf("load student groups: %w", err)
	}
	if len(groups) == 0 {
		return nil, apperr.New(apperr.KindValidation, apperr.CodeNoGroupMembership,
			"you are not assigned to any group")
	}
	if explicit != nil {
		for _, g := range groups {
			if g.ID == *explicit {
				return explicit, nil
			}
		}
		return nil, apperr.New(apperr.KindAuthorization, apperr.CodeNotYourGroup,
			"you are not a member of the selected group")
	}
	if len(groups) == 1 {
		id := groups[0].ID
		return &id, nil
	}
	return nil, apperr.New(apperr.KindValidation, apperr.CodeGroupRequired,
		"you belong to several groups; pass group_id")
}

func (s *submissionService) Get(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	subs, err := s.subRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("load submission: %w", err)
	}
	if len(subs) == 0 {
		return nil, apperr.New(apperr.KindNotFound, apperr.CodeNotFound, "submission not found")
	}
	return subs[0], nil
}

func sanitizeName(name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	name = strings.ReplaceAll(name, "/", "_")
	return name
}

func audioName(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "wav"):
		return "recording.wav"
	case strings.Contains(mimeType, "ogg"):
		return "recording.ogg"
	case strings.Contains(mimeType, "flac"):
		return "recording.flac"
	default:
		return "recording.mp3"
	}
}
