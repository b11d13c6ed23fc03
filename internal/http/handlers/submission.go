package handlers

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/projectgate-backend/internal/http/response"
	"github.com/yungbote/projectgate-backend/internal/pkg/ctxutil"
	"github.com/yungbote/projectgate-backend/internal/services"
)

type SubmissionHandler struct {
	submissionService services.SubmissionService
	dashboardService  services.DashboardService
}

func NewSubmissionHandler(submissionService services.SubmissionService, dashboardService services.DashboardService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		dashboardService:  dashboardService,
	}
}

// Submit accepts a multipart form: title, abstract_text, optional group_id,
// optional abstract_file and audio_file.
func (sh *SubmissionHandler) Submit(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())

	input := services.SubmitInput{
		Title:        c.PostForm("title"),
		AbstractText: c.PostForm("abstract_text"),
	}
	if raw := c.PostForm("group_id"); raw != "" {
		groupID, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		input.GroupID = &groupID
	}

	if fh, err := c.FormFile("abstract_file"); err == nil {
		data, name, rerr := readUpload(fh)
		if rerr != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", rerr)
			return
		}
		input.AbstractFile = data
		input.AbstractName = name
	}
	if fh, err := c.FormFile("audio_file"); err == nil {
		data, _, rerr := readUpload(fh)
		if rerr != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", rerr)
			return
		}
		input.AudioFile = data
		input.AudioMimeType = fh.Header.Get("Content-Type")
	}

	res, err := sh.submissionService.Submit(c.Request.Context(), rd.UserID, input)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"submission": res.Submission,
		"analysis": gin.H{
			"originality_status": res.Evaluation.Status,
			"similarity_score":   res.Evaluation.SimilarityScore,
			"full_report":        res.Evaluation.FullReport,
		},
	})
}

// MySubmissions returns the student's own submissions with joined project
// progress.
func (sh *SubmissionHandler) MySubmissions(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	rows, err := sh.dashboardService.StudentDashboard(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"submissions": rows})
}

func readUpload(fh *multipart.FileHeader) ([]byte, string, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, fh.Filename, nil
}
