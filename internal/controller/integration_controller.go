package controller

import (
	"skilltree_backend/internal/service"
	"skilltree_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type IntegrationController struct {
	IntegrationService *service.IntegrationService
}

func NewIntegrationController(integrationService *service.IntegrationService) *IntegrationController {
	return &IntegrationController{IntegrationService: integrationService}
}

// List godoc
// @Summary 外部平台接入状态
// @Tags 集成
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Connection} "平台列表"
// @Failure 401 {object} util.Response "未认证"
// @Router /api/integrations [get]
func (c *IntegrationController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	connections, err := c.IntegrationService.List(user.ID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, connections)
}

// Connect godoc
// @Summary 接入外部平台
// @Description 支持 github / linkedin / youtube，重复接入会刷新数据
// @Tags 集成
// @Produce  json
// @Security BearerAuth
// @Param   platform path string true "平台名"
// @Success 200 {object} util.Response{data=object} "接入成功"
// @Failure 400 {object} util.Response "不支持的平台"
// @Router /api/integrations/connect/{platform} [post]
func (c *IntegrationController) Connect(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	platform := ctx.Param("platform")
	data, err := c.IntegrationService.Connect(user.ID, platform)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": platform + " connected successfully", "mock_data": data})
}

// Sync godoc
// @Summary 同步平台数据
// @Tags 集成
// @Produce  json
// @Security BearerAuth
// @Param   platform path string true "平台名"
// @Success 200 {object} util.Response{data=object} "同步结果"
// @Failure 400 {object} util.Response "平台未接入"
// @Router /api/integrations/{platform}/sync [get]
func (c *IntegrationController) Sync(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	data, err := c.IntegrationService.Sync(user.ID, ctx.Param("platform"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Sync successful", "data": data})
}
