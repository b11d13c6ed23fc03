package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/projectgate-backend/internal/http/response"
	"github.com/yungbote/projectgate-backend/internal/services"
)

type AIHandler struct {
	analyzer          services.AnalyzerService
	transcriber       services.Transcriber
	submissionService services.SubmissionService
	lifecycleService  services.LifecycleService
}

func NewAIHandler(
	analyzer services.AnalyzerService,
	transcriber services.Transcriber,
	submissionService services.SubmissionService,
	lifecycleService services.LifecycleService,
) *AIHandler {
	return &AIHandler{
		analyzer:          analyzer,
		transcriber:       transcriber,
		submissionService: submissionService,
		lifecycleService:  lifecycleService,
	}
}

// Chat answers a free-form prompt. A multipart audio_file is transcribed
// first; otherwise the prompt field (form or JSON) is used directly.
func (ah *AIHandler) Chat(c *gin.Context) {
	prompt := ""

	if fh, err := c.FormFile("audio_file"); err == nil {
		if ah.transcriber == nil {
			response.RespondError(c, http.StatusServiceUnavailable, "transcription_unavailable", nil)
			return
		}
		data, _, rerr := readUpload(fh)
		if rerr != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", rerr)
			return
		}
		text, terr := ah.transcriber.Transcribe(c.Request.Context(), data, fh.Header.Get("Content-Type"))
		if terr != nil {
			response.RespondError(c, http.StatusBadRequest, "transcription_failed", terr)
			return
		}
		prompt = text
	} else if p := c.PostForm("prompt"); p != "" {
		prompt = p
	} else {
		var req struct {
			Prompt string `json:"prompt"`
		}
		if err := c.ShouldBindJSON(&req); err == nil {
			prompt = req.Prompt
		}
	}

	if strings.TrimSpace(prompt) == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", nil)
		return
	}

	reply := ah.analyzer.Chat(c.Request.Context(), prompt)
	response.RespondOK(c, gin.H{"prompt": prompt, "reply": reply})
}

// Viva generates stage-appropriate questions for a submission's project.
func (ah *AIHandler) Viva(c *gin.Context) {
	var req struct {
		SubmissionID string `json:"submission_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	submissionID, err := uuid.Parse(req.SubmissionID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	sub, err := ah.submissionService.Get(c.Request.Context(), submissionID)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	progress, err := ah.lifecycleService.GetProgress(c.Request.Context(), submissionID)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}

	questions := ah.analyzer.GenerateVivaQuestions(c.Request.Context(), sub.Title, sub.AbstractText, progress)
	response.RespondOK(c, gin.H{
		"questions": questions,
		"progress":  progress,
	})
}

func (ah *AIHandler) VivaEvaluate(c *gin.Context) {
	var req struct {
		SubmissionID string `json:"submission_id"`
		Question     string `json:"question"`
		Answer       string `json:"answer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.Answer) == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", nil)
		return
	}

	abstract := ""
	if id, err := uuid.Parse(req.SubmissionID); err == nil {
		if sub, serr := ah.submissionService.Get(c.Request.Context(), id); serr == nil {
			abstract = sub.AbstractText
		}
	}

	assessment := ah.analyzer.EvaluateVivaAnswer(c.Request.Context(), req.Question, req.Answer, abstract)
	response.RespondOK(c, assessment)
}
