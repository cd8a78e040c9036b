package controller

import (
	"skilltree_backend/internal/service"
	"skilltree_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AIController struct {
	AIService *service.AIService
}

func NewAIController(aiService *service.AIService) *AIController {
	return &AIController{AIService: aiService}
}

// GenerateLessonContentRequest 课程内容生成请求
// swagger:model GenerateLessonContentRequest
type GenerateLessonContentRequest struct {
	SkillName   string `json:"skill_name" binding:"required"`
	LessonTitle string `json:"lesson_title" binding:"required"`
}

// RecommendSkills godoc
// @Summary 技能推荐
// @Description 基于已完成技能推荐后续学习方向，生成耗时可能较长
// @Tags AI
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.RecommendationResult} "推荐结果"
// @Failure 502 {object} util.Response "生成服务不可用"
// @Router /api/ai/recommend-skills [post]
func (c *AIController) RecommendSkills(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	result, err := c.AIService.RecommendSkills(user.ID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// GenerateLessonContent godoc
// @Summary 生成课程内容
// @Description 为指定技能与主题生成课程正文
// @Tags AI
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body GenerateLessonContentRequest true "技能与主题"
// @Success 200 {object} util.Response{data=object} "生成的内容"
// @Failure 502 {object} util.Response "生成服务不可用"
// @Router /api/ai/generate-lesson-content [post]
func (c *AIController) GenerateLessonContent(ctx *gin.Context) {
	var req GenerateLessonContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	content, err := c.AIService.GenerateLessonContent(req.SkillName, req.LessonTitle)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"content": content})
}
