package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/projectgate-backend/internal/domain"
	"github.com/yungbote/projectgate-backend/internal/pkg/apperr"
	"github.com/yungbote/projectgate-backend/internal/pkg/ctxutil"
	"github.com/yungbote/projectgate-backend/internal/services"
)

type fakeSubmissionService struct {
	result    *services.SubmitResult
	err       error
	lastInput services.SubmitInput
}

func (f *fakeSubmissionService) Submit(ctx context.Context, studentID uuid.UUID, input services.SubmitInput) (*services.SubmitResult, error) {
	f.lastInput = input
	if f.err != nil {
		return f.result, f.err
	}
	return f.result, nil
}

func (f *fakeSubmissionService) Get(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	return nil, apperr.New(apperr.KindNotFound, apperr.CodeNotFound, "submission not found")
}

func submitRouter(svc services.SubmissionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{
			UserID: uuid.New(),
			Role:   string(domain.RoleStudent),
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	h := NewSubmissionHandler(svc, nil)
	r.POST("/api/projects/submit", h.Submit)
	return r
}

func multipartSubmit(t *testing.T, fields map[string]string) (*http.Request, error) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	req := httptest.NewRequest(http.MethodPost, "/api/projects/submit", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req, nil
}

func TestSubmitHandlerCreated(t *testing.T) {
	sub := &domain.Submission{ID: uuid.New(), Title: "Fresh", Status: domain.SubmissionSubmitted}
	svc := &fakeSubmissionService{result: &services.SubmitResult{
		Submission: sub,
		Evaluation: services.Evaluation{Status: services.StatusOriginalPassed, SimilarityScore: 0.1},
	}}
	r := submitRouter(svc)

	req, err := multipartSubmit(t, map[string]string{
		"title":         "Fresh",
		"abstract_text": "A new idea.",
	})
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Submission domain.Submission `json:"submission"`
		Analysis   struct {
			OriginalityStatus string  `json:"originality_status"`
			SimilarityScore   float64 `json:"similarity_score"`
		} `json:"analysis"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Submission.ID != sub.ID || body.Analysis.OriginalityStatus != services.StatusOriginalPassed {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if svc.lastInput.Title != "Fresh" || svc.lastInput.AbstractText != "A new idea." {
		t.Fatalf("input not forwarded: %+v", svc.lastInput)
	}
}

func TestSubmitHandlerBlockedConflict(t *testing.T) {
	blockErr := apperr.New(apperr.KindConflict, apperr.CodeBlockedHighSimilarity, "too similar to an existing project").
		WithMeta("similarity_score", 0.9).
		WithMeta("suggestions", "try these features").
		WithMeta("similar_project", services.SimilarProject{Title: "Prior", Student: "someone", Abstract: "old"})
	svc := &fakeSubmissionService{err: blockErr}
	r := submitRouter(svc)

	req, err := multipartSubmit(t, map[string]string{
		"title":         "Copycat",
		"abstract_text": "Same old idea.",
	})
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Error struct {
			Code string         `json:"code"`
			Meta map[string]any `json:"meta"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error.Code != apperr.CodeBlockedHighSimilarity {
		t.Fatalf("unexpected code: %s", rec.Body.String())
	}
	if body.Error.Meta["suggestions"] != "try these features" || body.Error.Meta["similar_project"] == nil {
		t.Fatalf("meta not carried: %s", rec.Body.String())
	}
}

func TestSubmitHandlerValidationError(t *testing.T) {
	svc := &fakeSubmissionService{err: apperr.New(apperr.KindValidation, apperr.CodeMissingContent, "provide an abstract or an audio recording")}
	r := submitRouter(svc)

	req, err := multipartSubmit(t, map[string]string{"title": "Empty"})
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSubmitHandlerBadGroupID(t *testing.T) {
	svc := &fakeSubmissionService{}
	r := submitRouter(svc)

	req, err := multipartSubmit(t, map[string]string{
		"title":         "X",
		"abstract_text": "Y",
		"group_id":      "not-a-uuid",
	})
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}
