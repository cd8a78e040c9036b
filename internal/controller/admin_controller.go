package controller

import (
	"skilltree_backend/internal/model"
	"skilltree_backend/internal/service"
	"skilltree_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	AuthService  *service.AuthService
	SkillService *service.SkillService
	AIService    *service.AIService
}

func NewAdminController(authService *service.AuthService, skillService *service.SkillService, aiService *service.AIService) *AdminController {
	return &AdminController{
		AuthService:  authService,
		SkillService: skillService,
		AIService:    aiService,
	}
}

// CreateSkillRequest 新建技能请求
// swagger:model CreateSkillRequest
type CreateSkillRequest struct {
	Name          string           `json:"name" binding:"required"`
	Description   string           `json:"description"`
	Category      string           `json:"category" binding:"required"`
	Difficulty    model.Difficulty `json:"difficulty" binding:"required,oneof=beginner intermediate advanced"`
	Prerequisites []string         `json:"prerequisites"`
	XPValue       int              `json:"xp_value" binding:"required,gt=0"`
	Icon          string           `json:"icon"`
	Position      model.Position   `json:"position"`
}

// GenerateLessonsRequest 批量生成课程请求。
// skill_id 为空时用 new_skill_name 新建技能。
// swagger:model GenerateLessonsRequest
type GenerateLessonsRequest struct {
	SkillID           string           `json:"skill_id"`
	NewSkillName      string           `json:"new_skill_name"`
	NewSkillCategory  string           `json:"new_skill_category"`
	Topic             string           `json:"topic"`
	Difficulty        model.Difficulty `json:"difficulty"`
	XPPoints          int              `json:"xp_points"`
	LessonCount       int              `json:"lesson_count"`
	LearningObjective string           `json:"learning_objective"`
}

// PromoteMe godoc
// @Summary 把当前用户提升为管理员
// @Description 演示环境的自助提权入口
// @Tags 管理
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=object} "提升成功"
// @Failure 401 {object} util.Response "未认证"
// @Router /api/admin/promote-me [post]
func (c *AdminController) PromoteMe(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if err := c.AuthService.PromoteToAdmin(user.ID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "You are now an admin", "isAdmin": true})
}

// ListSkills godoc
// @Summary 技能列表（管理端）
// @Description 原始技能数据，不做用户状态推导
// @Tags 管理
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Skill} "技能列表"
// @Failure 403 {object} util.Response "非管理员"
// @Router /api/admin/skills [get]
func (c *AdminController) ListSkills(ctx *gin.Context) {
	skills, err := c.SkillService.ListAll()
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, skills)
}

// CreateSkill godoc
// @Summary 新建技能
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CreateSkillRequest true "技能信息"
// @Success 201 {object} util.Response{data=model.Skill} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "非管理员"
// @Router /api/admin/skills [post]
func (c *AdminController) CreateSkill(ctx *gin.Context) {
	var req CreateSkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	skill := &model.Skill{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Difficulty:    req.Difficulty,
		Prerequisites: req.Prerequisites,
		XPValue:       req.XPValue,
		Icon:          req.Icon,
		Position:      req.Position,
	}
	if err := c.SkillService.Create(ctx.Request.Context(), skill); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, skill)
}

// DeleteSkill godoc
// @Summary 删除技能
// @Description 只删除技能节点本身，已有的完成记录保留
// @Tags 管理
// @Produce  json
// @Security BearerAuth
// @Param   skill_id path string true "技能ID"
// @Success 200 {object} util.Response "删除成功"
// @Failure 404 {object} util.Response "技能不存在"
// @Router /api/admin/skills/{skill_id} [delete]
func (c *AdminController) DeleteSkill(ctx *gin.Context) {
	if err := c.SkillService.Delete(ctx.Request.Context(), ctx.Param("skill_id")); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Skill deleted"})
}

// GenerateLessons godoc
// @Summary 批量生成课程
// @Description 调用文本生成服务为技能生成课程并落库，可顺带新建技能
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body GenerateLessonsRequest true "生成参数"
// @Success 200 {object} util.Response{data=service.LessonGenerationResult} "生成的课程"
// @Failure 400 {object} util.Response "既没有 skill_id 也没有 new_skill_name"
// @Failure 404 {object} util.Response "技能不存在"
// @Failure 502 {object} util.Response "生成服务不可用"
// @Router /api/admin/lessons/generate [post]
func (c *AdminController) GenerateLessons(ctx *gin.Context) {
	var req GenerateLessonsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AIService.GenerateLessons(service.LessonGenerationInput{
		SkillID:           req.SkillID,
		NewSkillName:      req.NewSkillName,
		NewSkillCategory:  req.NewSkillCategory,
		Topic:             req.Topic,
		Difficulty:        req.Difficulty,
		XPPoints:          req.XPPoints,
		Count:             req.LessonCount,
		LearningObjective: req.LearningObjective,
	})
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
