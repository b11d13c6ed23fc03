package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/projectgate-backend/internal/data/repos"
	"github.com/yungbote/projectgate-backend/internal/data/repos/testutil"
	"github.com/yungbote/projectgate-backend/internal/domain"
	"github.com/yungbote/projectgate-backend/internal/pkg/apperr"
	"github.com/yungbote/projectgate-backend/internal/platform/gcp"
)

type fakeAnalyzer struct {
	evaluation Evaluation
	corpusSeen []CorpusEntry
}

func (f *fakeAnalyzer) Evaluate(ctx context.Context, title, abstract string, corpus []CorpusEntry) Evaluation {
	f.corpusSeen = corpus
	return f.evaluation
}
func (f *fakeAnalyzer) Chat(ctx context.Context, prompt string) string { return "" }
func (f *fakeAnalyzer) GenerateVivaQuestions(ctx context.Context, title, abstract string, progress int) []string {
	return nil
}
func (f *fakeAnalyzer) EvaluateVivaAnswer(ctx context.Context, question, answer, abstract string) VivaAssessment {
	return VivaAssessment{}
}
func (f *fakeAnalyzer) Embedding(text string) datatypes.JSON {
	return datatypes.JSON([]byte("[]"))
}

type fakeBucket struct {
	uploads map[string][]byte
}

func (f *fakeBucket) UploadFile(ctx context.Context, category gcp.BucketCategory, key string, file io.Reader) error {
	if f.uploads == nil {
		f.uploads = map[string][]byte{}
	}
	data, _ := io.ReadAll(file)
	f.uploads[string(category)+"/"+key] = data
	return nil
}
func (f *fakeBucket) DownloadFile(ctx context.Context, category gcp.BucketCategory, key string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}
func (f *fakeBucket) DeleteFile(ctx context.Context, category gcp.BucketCategory, key string) error {
	return nil
}
func (f *fakeBucket) GetPublicURL(category gcp.BucketCategory, key string) string { return "" }

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	return f.text, f.err
}

func newSubmissionFixture(t *testing.T, ev Evaluation) (SubmissionService, *fakeAnalyzer, *fakeBucket, repos.SubmissionRepo, *domain.User, *domain.Group, context.Context) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	student := testutil.SeedUser(t, ctx, tx, uuid.NewString()+"@example.com", domain.RoleStudent)
	group := testutil.SeedGroup(t, ctx, tx, "Gatekeeper "+uuid.NewString(), nil, []*domain.User{student})

	subRepo := repos.NewSubmissionRepo(tx, log)
	groupRepo := repos.NewGroupRepo(tx, log)
	analyzer := &fakeAnalyzer{evaluation: ev}
	bucket := &fakeBucket{}
	svc := NewSubmissionService(tx, log, subRepo, groupRepo, analyzer, &fakeTranscriber{}, bucket)
	return svc, analyzer, bucket, subRepo, student, group, ctx
}

func TestSubmitAdmitsOriginalIdea(t *testing.T) {
	ev := Evaluation{Status: StatusOriginalPassed, SimilarityScore: 0.2, Relevance: 7, Feasibility: 8, Innovation: 9}
	svc, _, _, subRepo, student, group, ctx := newSubmissionFixture(t, ev)

	res, err := svc.Submit(ctx, student.ID, SubmitInput{Title: "Fresh", AbstractText: "A new idea."})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Submission == nil || res.Submission.Status != domain.SubmissionSubmitted {
		t.Fatalf("unexpected submission: %+v", res.Submission)
	}
	if res.Submission.GroupID == nil || *res.Submission.GroupID != group.ID {
		t.Fatalf("single membership must default the group: %+v", res.Submission.GroupID)
	}
	if res.Submission.InnovationScore == nil || *res.Submission.InnovationScore != 9 {
		t.Fatalf("scores not attached: %+v", res.Submission)
	}

	stored, err := subRepo.ListByStudentIDs(ctx, nil, []uuid.UUID{student.ID})
	if err != nil || len(stored) != 1 {
		t.Fatalf("expected one persisted submission, got %d (%v)", len(stored), err)
	}
}

func TestSubmitBlockedLeavesNoRow(t *testing.T) {
	ev := Evaluation{
		Status:          StatusBlockedHighSimilarity,
		SimilarityScore: 0.9,
		FullReport:      "try these features",
		MostSimilar:     &SimilarProject{Title: "Prior", Student: "someone", Abstract: "old"},
	}
	svc, _, bucket, subRepo, student, _, ctx := newSubmissionFixture(t, ev)

	res, err := svc.Submit(ctx, student.ID, SubmitInput{
		Title:        "Copycat",
		AbstractText: "Same old idea.",
		AbstractFile: []byte("pdf bytes"),
		AbstractName: "abstract.pdf",
	})
	if err == nil {
		t.Fatalf("expected block, got %+v", res)
	}
	ae, ok := apperr.As(err)
	if !ok || ae.Code != apperr.CodeBlockedHighSimilarity {
		t.Fatalf("expected blocked_high_similarity, got %v", err)
	}
	if ae.HTTPStatus() != 409 {
		t.Fatalf("expected 409, got %d", ae.HTTPStatus())
	}
	if ae.Meta["similar_project"] == nil || ae.Meta["suggestions"] != "try these features" {
		t.Fatalf("meta missing: %+v", ae.Meta)
	}

	stored, err := subRepo.ListByStudentIDs(ctx, nil, []uuid.UUID{student.ID})
	if err != nil || len(stored) != 0 {
		t.Fatalf("blocked submission must leave no row, got %d (%v)", len(stored), err)
	}
	if len(bucket.uploads) != 0 {
		t.Fatalf("blocked submission must leave no blobs, got %v", bucket.uploads)
	}
}

func TestSubmitRequiresContent(t *testing.T) {
	svc, _, _, _, student, _, ctx := newSubmissionFixture(t, Evaluation{Status: StatusOriginalPassed})

	_, err := svc.Submit(ctx, student.ID, SubmitInput{Title: "Empty"})
	if !apperr.IsCode(err, apperr.CodeMissingContent) {
		t.Fatalf("expected missing_content, got %v", err)
	}
}

func TestSubmitRequiresGroupMembership(t *testing.T) {
	svc, _, _, _, _, _, ctx := newSubmissionFixture(t, Evaluation{Status: StatusOriginalPassed})

	_, err := svc.Submit(ctx, uuid.New(), SubmitInput{Title: "X", AbstractText: "Y"})
	if !apperr.IsCode(err, apperr.CodeNoGroupMembership) {
		t.Fatalf("expected no_group_membership, got %v", err)
	}
}

func TestSubmitRejectsForeignGroup(t *testing.T) {
	svc, _, _, _, student, _, ctx := newSubmissionFixture(t, Evaluation{Status: StatusOriginalPassed})

	other := uuid.New()
	_, err := svc.Submit(ctx, student.ID, SubmitInput{Title: "X", AbstractText: "Y", GroupID: &other})
	if !apperr.IsCode(err, apperr.CodeNotYourGroup) {
		t.Fatalf("expected not_your_group, got %v", err)
	}
}

func TestSubmitTranscriptionFailureFallsBack(t *testing.T) {
	ev := Evaluation{Status: StatusOriginalPassed, SimilarityScore: 0.1}
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	student := testutil.SeedUser(t, ctx, tx, uuid.NewString()+"@example.com", domain.RoleStudent)
	testutil.SeedGroup(t, ctx, tx, "Fallback "+uuid.NewString(), nil, []*domain.User{student})

	svc := NewSubmissionService(tx, log,
		repos.NewSubmissionRepo(tx, log),
		repos.NewGroupRepo(tx, log),
		&fakeAnalyzer{evaluation: ev},
		&fakeTranscriber{err: errors.New("speech down")},
		&fakeBucket{})

	res, err := svc.Submit(ctx, student.ID, SubmitInput{
		Title:        "Audio",
		AbstractText: "typed abstract",
		AudioFile:    []byte("wav"),
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Submission.AbstractText != "typed abstract" || res.Submission.TranscribedText != "" {
		t.Fatalf("expected typed abstract fallback: %+v", res.Submission)
	}
}
