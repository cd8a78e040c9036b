package controller

import (
	"skilltree_backend/internal/service"
	"skilltree_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// Stats godoc
// @Summary 仪表盘统计
// @Tags 仪表盘
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.DashboardStats} "统计数据"
// @Failure 401 {object} util.Response "未认证"
// @Router /api/dashboard/stats [get]
func (c *DashboardController) Stats(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	stats, err := c.DashboardService.Stats(user)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
