package controller

import (
	"skilltree_backend/internal/service"
	"skilltree_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AchievementController struct {
	AchievementService *service.AchievementService
}

func NewAchievementController(achievementService *service.AchievementService) *AchievementController {
	return &AchievementController{AchievementService: achievementService}
}

// List godoc
// @Summary 成就列表
// @Description 每次请求重新计算，包含未解锁的成就
// @Tags 成就
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.Achievement} "成就列表"
// @Failure 401 {object} util.Response "未认证"
// @Router /api/achievements [get]
func (c *AchievementController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	achievements, err := c.AchievementService.Evaluate(user)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, achievements)
}

// ActivityFeed godoc
// @Summary 最近动态
// @Description 最近 10 条技能完成记录，按完成时间倒序
// @Tags 成就
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.ActivityItem} "动态列表"
// @Failure 401 {object} util.Response "未认证"
// @Router /api/activity-feed [get]
func (c *AchievementController) ActivityFeed(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	feed, err := c.AchievementService.ActivityFeed(user.ID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, feed)
}
