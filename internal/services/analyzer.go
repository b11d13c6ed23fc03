package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/datatypes"

	"github.com/yungbote/projectgate-backend/internal/clients/gemini"
	"github.com/yungbote/projectgate-backend/internal/platform/logger"
)

// SimilarityBlockThreshold is the similarity score above which a new
// submission is refused admission.
const SimilarityBlockThreshold = 0.60

const (
	StatusOriginalPassed        = "ORIGINAL_PASSED"
	StatusBlockedHighSimilarity = "BLOCKED_HIGH_SIMILARITY"
	StatusOracleFailure         = "API_FAIL"
)

// CorpusEntry is one prior submission handed to the oracle as prior art.
type CorpusEntry struct {
	Title    string
	Student  string
	Abstract string
}

// SimilarProject identifies the closest prior submission when one was found.
type SimilarProject struct {
	Title    string `json:"title"`
	Student  string `json:"student"`
	Abstract string `json:"abstract_text"`
}

// Evaluation is the oracle's verdict. It is always a usable value; oracle
// failure degrades to zero scores with StatusOracleFailure, never an error.
type Evaluation struct {
	Status          string
	SimilarityScore float64
	Relevance       float64
	Feasibility     float64
	Innovation      float64
	FullReport      string
	MostSimilar     *SimilarProject
}

// Blocked reports whether the similarity verdict refuses admission.
func (e Evaluation) Blocked() bool {
	return e.SimilarityScore > SimilarityBlockThreshold
}

type VivaAssessment struct {
	Score    string `json:"score"`
	Feedback string `json:"feedback"`
}

type AnalyzerService interface {
	Evaluate(ctx context.Context, title, abstract string, corpus []CorpusEntry) Evaluation
	Chat(ctx context.Context, prompt string) string
	GenerateVivaQuestions(ctx context.Context, title, abstract string, progress int) []string
	EvaluateVivaAnswer(ctx context.Context, question, answer, abstract string) VivaAssessment
	// Embedding returns the stored placeholder vector. Embeddings are kept as
	// a schema slot only; similarity runs through the text oracle.
	Embedding(text string) datatypes.JSON
}

type analyzerService struct {
	log *logger.Logger
	llm gemini.TextGenerator
}

func NewAnalyzerService(log *logger.Logger, llm gemini.TextGenerator) AnalyzerService {
	return &analyzerService{
		log: log.With("service", "AnalyzerService"),
		llm: llm,
	}
}

var (
	reSimilarityScore = regexp.MustCompile(`SCORE:\s*(\d+\.\d+)`)
	reSimilarityIndex = regexp.MustCompile(`INDEX:\s*(\d+)`)
	reRelevance       = regexp.MustCompile(`(?i)relevance.*:\s*(\d+(\.\d+)?)`)
	reFeasibility     = regexp.MustCompile(`(?i)feasibility.*:\s*(\d+(\.\d+)?)`)
	reInnovation      = regexp.MustCompile(`(?i)innovation.*:\s*(\d+(\.\d+)?)`)
	reVivaQuestion    = regexp.MustCompile(`\d+\.\s*.*`)
	reVivaScore       = regexp.MustCompile(`Score:\s*(\d+(\.\d+)?)\s*/10`)
	reVivaFeedback    = regexp.MustCompile(`Feedback:([\s\S]*)`)
)

func (a *analyzerService) Evaluate(ctx context.Context, title, abstract string, corpus []CorpusEntry) Evaluation {
	ev := Evaluation{Status: StatusOriginalPassed}

	if len(corpus) > 0 {
		var numbered strings.Builder
		for i, entry := range corpus {
			fmt.Fprintf(&numbered, "%d: %q\n---\n", i, entry.Abstract)
		}

		similarityPrompt := fmt.Sprintf(`You are a semantic analysis engine. A new project idea has been submitted.

NEW IDEA: %q

ARCHIVED IDEAS (Numbered List):
%s

Your task:
1. Find the single project that is most conceptually similar.
2. Return only two values in one line:
   SCORE: [highest_score] | INDEX: [number]`, abstract, numbered.String())

		reply, err := a.llm.GenerateText(ctx, similarityPrompt)
		if err != nil {
			a.log.Warn("similarity check failed", "error", err)
		} else {
			if m := reSimilarityScore.FindStringSubmatch(reply); m != nil {
				if v, perr := strconv.ParseFloat(m[1], 64); perr == nil {
					ev.SimilarityScore = v
				}
			}
			if m := reSimilarityIndex.FindStringSubmatch(reply); m != nil {
				if idx, perr := strconv.Atoi(m[1]); perr == nil && idx >= 0 && idx < len(corpus) {
					ev.MostSimilar = &SimilarProject{
						Title:    corpus[idx].Title,
						Student:  corpus[idx].Student,
						Abstract: corpus[idx].Abstract,
					}
				}
			}
		}
	}

	var suggestionPrompt string
	if ev.SimilarityScore > SimilarityBlockThreshold {
		ev.Status = StatusBlockedHighSimilarity
		suggestionPrompt = fmt.Sprintf("The project '%s' is too similar (Score: %.2f). Suggest 5-6 new unique features to make it original.", title, ev.SimilarityScore)
	} else {
		suggestionPrompt = fmt.Sprintf("The project '%s' is original. Suggest 5 advanced or innovative features to enhance it.", title)
	}

	analysisPrompt := fmt.Sprintf(`You are a college professor analyzing a project idea.
Title: %s
Abstract: %s
Originality: %s (Score: %.2f)

Provide:
1. SCORES (Rate 1-10):
   - Relevance:
   - Feasibility:
   - Innovation:

2. SUGGESTIONS: %s`, title, abstract, ev.Status, ev.SimilarityScore, suggestionPrompt)

	reply, err := a.llm.GenerateText(ctx, analysisPrompt)
	if err != nil {
		a.log.Warn("quality analysis failed", "error", err)
		ev.Status = StatusOracleFailure
		ev.FullReport = fmt.Sprintf("AI analysis failed. Error: %v", err)
		return ev
	}

	ev.FullReport = strings.TrimSpace(reply)
	ev.Relevance = scrapeScore(reRelevance, ev.FullReport)
	ev.Feasibility = scrapeScore(reFeasibility, ev.FullReport)
	ev.Innovation = scrapeScore(reInnovation, ev.FullReport)
	return ev
}

func scrapeScore(re *regexp.Regexp, text string) float64 {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return v
}

func (a *analyzerService) Chat(ctx context.Context, prompt string) string {
	reply, err := a.llm.GenerateText(ctx, prompt)
	if err != nil {
		a.log.Warn("chat failed", "error", err)
		return "Sorry, I am unable to answer that right now."
	}
	return strings.TrimSpace(reply)
}

func (a *analyzerService) GenerateVivaQuestions(ctx context.Context, title, abstract string, progress int) []string {
	var stage, focus string
	switch {
	case progress < 30:
		stage = "Initial Design & Concepts"
		focus = "fundamental concepts and design choices"
	case progress < 80:
		stage = "Mid-Review & Implementation"
		focus = "implementation status and encountered challenges"
	default:
		stage = "Final Review"
		focus = "technical details, optimization, and deployment"
	}

	prompt := fmt.Sprintf(`You are a strict examiner for %s.
Project Title: %s
Abstract: %s
Progress: %d%%

Generate 5 numbered viva questions focusing on %s.`, stage, title, abstract, progress, focus)

	reply, err := a.llm.GenerateText(ctx, prompt)
	if err != nil {
		a.log.Warn("viva question generation failed", "error", err)
		return []string{"Failed to generate viva questions."}
	}

	var questions []string
	for _, q := range reVivaQuestion.FindAllString(reply, -1) {
		if q = strings.TrimSpace(q); q != "" {
			questions = append(questions, q)
		}
	}
	if len(questions) == 0 {
		return []string{"Failed to generate viva questions."}
	}
	return questions
}

func (a *analyzerService) EvaluateVivaAnswer(ctx context.Context, question, answer, abstract string) VivaAssessment {
	if strings.TrimSpace(answer) == strings.TrimSpace(question) {
		return VivaAssessment{Score: "0/10", Feedback: "Your answer is just the question repeated."}
	}

	prompt := fmt.Sprintf(`Project Abstract: %s
Question: %s
Answer: %s

Evaluate the answer (Score out of 10) and provide feedback.`, abstract, question, answer)

	reply, err := a.llm.GenerateText(ctx, prompt)
	if err != nil {
		a.log.Warn("viva evaluation failed", "error", err)
		return VivaAssessment{Score: "N/A", Feedback: "Failed to evaluate answer."}
	}

	reply = strings.TrimSpace(reply)
	out := VivaAssessment{Score: "N/A", Feedback: "No feedback provided."}
	if m := reVivaScore.FindStringSubmatch(reply); m != nil {
		out.Score = strings.TrimSpace(m[1])
	}
	if m := reVivaFeedback.FindStringSubmatch(reply); m != nil {
		out.Feedback = strings.Trim(strings.TrimSpace(m[1]), "*")
	}
	return out
}

func (a *analyzerService) Embedding(text string) datatypes.JSON {
	return datatypes.JSON([]byte("[]"))
}
