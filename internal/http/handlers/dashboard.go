package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/projectgate-backend/internal/http/response"
	"github.com/yungbote/projectgate-backend/internal/pkg/ctxutil"
	"github.com/yungbote/projectgate-backend/internal/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (dh *DashboardHandler) Analytics(c *gin.Context) {
	analytics, err := dh.dashboardService.Analytics(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, analytics)
}

func (dh *DashboardHandler) Leaderboard(c *gin.Context) {
	entries, err := dh.dashboardService.Leaderboard(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"leaderboard": entries})
}

func (dh *DashboardHandler) TopAlumniProjects(c *gin.Context) {
	subs, err := dh.dashboardService.TopAlumniProjects(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"projects": subs})
}

func (dh *DashboardHandler) MyProjects(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	subs, err := dh.dashboardService.MyProjects(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"projects": subs})
}
