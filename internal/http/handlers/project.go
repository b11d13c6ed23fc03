package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/projectgate-backend/internal/domain"
	"github.com/yungbote/projectgate-backend/internal/http/response"
	"github.com/yungbote/projectgate-backend/internal/pkg/ctxutil"
	"github.com/yungbote/projectgate-backend/internal/services"
)

type ProjectHandler struct {
	authService      services.AuthService
	lifecycleService services.LifecycleService
	dashboardService services.DashboardService
}

func NewProjectHandler(
	authService services.AuthService,
	lifecycleService services.LifecycleService,
	dashboardService services.DashboardService,
) *ProjectHandler {
	return &ProjectHandler{
		authService:      authService,
		lifecycleService: lifecycleService,
		dashboardService: dashboardService,
	}
}

func (ph *ProjectHandler) Archive(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	actor, err := ph.authService.CurrentUser(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	project, err := ph.lifecycleService.Archive(c.Request.Context(), actor,
		projectID, domain.ProjectStatus(req.Status))
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"project": project})
}

func (ph *ProjectHandler) UpdateProgress(c *gin.Context) {
	submissionID, err := uuid.Parse(c.Param("submission_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	var req struct {
		Progress *int `json:"progress"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.Progress == nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request",
			errors.New("progress (integer) is required"))
		return
	}

	rd := ctxutil.GetRequestData(c.Request.Context())
	project, err := ph.lifecycleService.UpdateProgress(c.Request.Context(), rd.UserID, submissionID, *req.Progress)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"project": project})
}

func (ph *ProjectHandler) GetProgress(c *gin.Context) {
	submissionID, err := uuid.Parse(c.Param("submission_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	progress, err := ph.lifecycleService.GetProgress(c.Request.Context(), submissionID)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"progress": progress})
}

func (ph *ProjectHandler) AllProjects(c *gin.Context) {
	projects, err := ph.dashboardService.AllProjects(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"projects": projects})
}
