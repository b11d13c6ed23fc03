package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/projectgate-backend/internal/domain"
	"github.com/yungbote/projectgate-backend/internal/http/response"
	"github.com/yungbote/projectgate-backend/internal/pkg/ctxutil"
	"github.com/yungbote/projectgate-backend/internal/services"
)

type TeacherHandler struct {
	authService      services.AuthService
	lifecycleService services.LifecycleService
	dashboardService services.DashboardService
}

func NewTeacherHandler(
	authService services.AuthService,
	lifecycleService services.LifecycleService,
	dashboardService services.DashboardService,
) *TeacherHandler {
	return &TeacherHandler{
		authService:      authService,
		lifecycleService: lifecycleService,
		dashboardService: dashboardService,
	}
}

// StudentList is the full dashboard: every submission joined with project
// progress.
func (th *TeacherHandler) StudentList(c *gin.Context) {
	rows, err := th.dashboardService.StudentList(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"students": rows})
}

func (th *TeacherHandler) Review(c *gin.Context) {
	submissionID, err := uuid.Parse(c.Param("id"))
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

	reviewer, err := th.authService.CurrentUser(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	sub, err := th.lifecycleService.Review(c.Request.Context(), reviewer,
		submissionID, domain.SubmissionStatus(req.Status))
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"submission": sub})
}

func (th *TeacherHandler) Appointed(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	subs, err := th.dashboardService.PendingQueue(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"submissions": subs})
}

func (th *TeacherHandler) Unappointed(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	subs, err := th.dashboardService.UnappointedQueue(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"submissions": subs})
}

func (th *TeacherHandler) ApprovedProjects(c *gin.Context) {
	projects, err := th.dashboardService.ApprovedProjects(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"projects": projects})
}
