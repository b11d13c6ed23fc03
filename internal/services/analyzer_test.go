package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yungbote/projectgate-backend/internal/platform/logger"
)

type scriptedLLM struct {
	replies []string
	errs    []error
	prompts []string
	calls   int
}

func (s *scriptedLLM) GenerateText(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	i := s.calls
	s.calls++
	var reply string
	if i < len(s.replies) {
		reply = s.replies[i]
	}
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	return reply, err
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func sampleCorpus() []CorpusEntry {
	return []CorpusEntry{
		{Title: "Smart Attendance", Student: "asha", Abstract: "Face recognition attendance."},
		{Title: "Crop Doctor", Student: "ravi", Abstract: "Leaf disease detection."},
	}
}

func TestEvaluateBlocksAboveThreshold(t *testing.T) {
	llm := &scriptedLLM{replies: []string{
		"SCORE: 0.85 | INDEX: 1",
		"Relevance: 7\nFeasibility: 6\nInnovation: 5\nSUGGESTIONS: add offline mode",
	}}
	a := NewAnalyzerService(testLogger(t), llm)

	ev := a.Evaluate(context.Background(), "Plant Scanner", "Detect leaf diseases.", sampleCorpus())
	if !ev.Blocked() {
		t.Fatalf("expected blocked, got %+v", ev)
	}
	if ev.Status != StatusBlockedHighSimilarity {
		t.Fatalf("expected %s, got %s", StatusBlockedHighSimilarity, ev.Status)
	}
	if ev.SimilarityScore != 0.85 {
		t.Fatalf("expected similarity 0.85, got %v", ev.SimilarityScore)
	}
	if ev.MostSimilar == nil || ev.MostSimilar.Title != "Crop Doctor" {
		t.Fatalf("expected most similar Crop Doctor, got %+v", ev.MostSimilar)
	}
	if ev.Relevance != 7 || ev.Feasibility != 6 || ev.Innovation != 5 {
		t.Fatalf("unexpected scores: %+v", ev)
	}
}

func TestEvaluateExactThresholdPasses(t *testing.T) {
	llm := &scriptedLLM{replies: []string{
		"SCORE: 0.60 | INDEX: 0",
		"Relevance: 8\nFeasibility: 8\nInnovation: 9",
	}}
	a := NewAnalyzerService(testLogger(t), llm)

	ev := a.Evaluate(context.Background(), "New Idea", "Something fresh.", sampleCorpus())
	if ev.Blocked() {
		t.Fatalf("score equal to threshold must pass, got %+v", ev)
	}
	if ev.Status != StatusOriginalPassed {
		t.Fatalf("expected %s, got %s", StatusOriginalPassed, ev.Status)
	}
}

func TestEvaluateDiscardsOutOfRangeIndex(t *testing.T) {
	llm := &scriptedLLM{replies: []string{
		"SCORE: 0.90 | INDEX: 42",
		"Relevance: 1\nFeasibility: 1\nInnovation: 1",
	}}
	a := NewAnalyzerService(testLogger(t), llm)

	ev := a.Evaluate(context.Background(), "X", "Y", sampleCorpus())
	if ev.MostSimilar != nil {
		t.Fatalf("out-of-range index must be discarded, got %+v", ev.MostSimilar)
	}
	if !ev.Blocked() {
		t.Fatalf("similarity verdict must still hold: %+v", ev)
	}
}

func TestEvaluateMalformedSimilarityReply(t *testing.T) {
	llm := &scriptedLLM{replies: []string{
		"I cannot help with that.",
		"Relevance: 6\nFeasibility: 7\nInnovation: 8",
	}}
	a := NewAnalyzerService(testLogger(t), llm)

	ev := a.Evaluate(context.Background(), "X", "Y", sampleCorpus())
	if ev.SimilarityScore != 0 || ev.MostSimilar != nil {
		t.Fatalf("malformed reply must degrade to zero similarity: %+v", ev)
	}
	if ev.Status != StatusOriginalPassed || ev.Innovation != 8 {
		t.Fatalf("quality pass must still run: %+v", ev)
	}
}

func TestEvaluateEmptyCorpusSkipsSimilarityCall(t *testing.T) {
	llm := &scriptedLLM{replies: []string{
		"Relevance: 5\nFeasibility: 5\nInnovation: 5",
	}}
	a := NewAnalyzerService(testLogger(t), llm)

	ev := a.Evaluate(context.Background(), "X", "Y", nil)
	if llm.calls != 1 {
		t.Fatalf("expected a single oracle call, got %d", llm.calls)
	}
	if ev.SimilarityScore != 0 || ev.Status != StatusOriginalPassed {
		t.Fatalf("unexpected evaluation: %+v", ev)
	}
}

func TestEvaluateQualityFailureDegrades(t *testing.T) {
	llm := &scriptedLLM{
		replies: []string{"SCORE: 0.20 | INDEX: 0", ""},
		errs:    []error{nil, errors.New("rate limited")},
	}
	a := NewAnalyzerService(testLogger(t), llm)

	ev := a.Evaluate(context.Background(), "X", "Y", sampleCorpus())
	if ev.Status != StatusOracleFailure {
		t.Fatalf("expected %s, got %s", StatusOracleFailure, ev.Status)
	}
	if ev.SimilarityScore != 0.20 {
		t.Fatalf("similarity verdict must survive quality failure: %+v", ev)
	}
	if ev.Relevance != 0 || ev.Feasibility != 0 || ev.Innovation != 0 {
		t.Fatalf("expected zero scores: %+v", ev)
	}
	if !strings.Contains(ev.FullReport, "rate limited") {
		t.Fatalf("report must carry the error text: %q", ev.FullReport)
	}
}

func TestChatFallback(t *testing.T) {
	llm := &scriptedLLM{errs: []error{errors.New("down")}}
	a := NewAnalyzerService(testLogger(t), llm)

	got := a.Chat(context.Background(), "hello")
	if got != "Sorry, I am unable to answer that right now." {
		t.Fatalf("unexpected fallback: %q", got)
	}
}

func TestGenerateVivaQuestionsStaging(t *testing.T) {
	cases := []struct {
		progress int
		want     string
	}{
		{10, "Initial Design & Concepts"},
		{30, "Mid-Review & Implementation"},
		{79, "Mid-Review & Implementation"},
		{80, "Final Review"},
	}
	for _, tc := range cases {
		llm := &scriptedLLM{replies: []string{"1. What is the goal?\n2. Why this stack?"}}
		a := NewAnalyzerService(testLogger(t), llm)

		got := a.GenerateVivaQuestions(context.Background(), "T", "A", tc.progress)
		if len(got) != 2 || got[0] != "1. What is the goal?" {
			t.Fatalf("progress %d: unexpected questions %+v", tc.progress, got)
		}
		if !strings.Contains(llm.prompts[0], tc.want) {
			t.Fatalf("progress %d: prompt missing stage %q", tc.progress, tc.want)
		}
	}
}

func TestGenerateVivaQuestionsFallback(t *testing.T) {
	llm := &scriptedLLM{replies: []string{"no numbered lines here"}}
	a := NewAnalyzerService(testLogger(t), llm)

	got := a.GenerateVivaQuestions(context.Background(), "T", "A", 50)
	if len(got) != 1 || got[0] != "Failed to generate viva questions." {
		t.Fatalf("unexpected fallback: %+v", got)
	}
}

func TestEvaluateVivaAnswer(t *testing.T) {
	llm := &scriptedLLM{replies: []string{"Score: 7.5 /10\nFeedback: Solid grasp of the design."}}
	a := NewAnalyzerService(testLogger(t), llm)

	got := a.EvaluateVivaAnswer(context.Background(), "Why Go?", "Because of concurrency.", "abstract")
	if got.Score != "7.5" {
		t.Fatalf("unexpected score: %+v", got)
	}
	if got.Feedback != "Solid grasp of the design." {
		t.Fatalf("unexpected feedback: %+v", got)
	}
}

func TestEvaluateVivaAnswerEchoedQuestion(t *testing.T) {
	llm := &scriptedLLM{}
	a := NewAnalyzerService(testLogger(t), llm)

	got := a.EvaluateVivaAnswer(context.Background(), "Why Go?", "  Why Go? ", "abstract")
	if got.Score != "0/10" {
		t.Fatalf("expected echoed answer short-circuit, got %+v", got)
	}
	if llm.calls != 0 {
		t.Fatalf("echoed answer must not reach the oracle")
	}
}

func TestEvaluateVivaAnswerUnparseableReply(t *testing.T) {
	llm := &scriptedLLM{replies: []string{"Great answer overall."}}
	a := NewAnalyzerService(testLogger(t), llm)

	got := a.EvaluateVivaAnswer(context.Background(), "Q", "A", "abstract")
	if got.Score != "N/A" || got.Feedback != "No feedback provided." {
		t.Fatalf("unexpected defaults: %+v", got)
	}
}
