package controller

import (
	"skilltree_backend/internal/service"
	"skilltree_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SkillController struct {
	SkillService       *service.SkillService
	ProgressionService *service.ProgressionService
	LessonService      *service.LessonService
}

func NewSkillController(skillService *service.SkillService, progressionService *service.ProgressionService, lessonService *service.LessonService) *SkillController {
	return &SkillController{
		SkillService:       skillService,
		ProgressionService: progressionService,
		LessonService:      lessonService,
	}
}

// ProgressRequest 进度更新请求
// swagger:model ProgressRequest
type ProgressRequest struct {
	ProgressPercent *int `json:"progress_percent" binding:"required"`
}

// List godoc
// @Summary 技能树
// @Description 返回全部技能并附带当前用户的推导状态（locked/available/in_progress/completed）
// @Tags 技能
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.SkillWithState} "技能列表"
// @Failure 401 {object} util.Response "未认证"
// @Router /api/skills [get]
func (c *SkillController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	skills, err := c.SkillService.ListForUser(ctx.Request.Context(), user.ID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, skills)
}

// Get godoc
// @Summary 单个技能详情
// @Tags 技能
// @Produce  json
// @Security BearerAuth
// @Param   skill_id path string true "技能ID"
// @Success 200 {object} util.Response{data=model.Skill} "技能详情"
// @Failure 404 {object} util.Response "技能不存在"
// @Router /api/skills/{skill_id} [get]
func (c *SkillController) Get(ctx *gin.Context) {
	skill, err := c.SkillService.GetByID(ctx.Param("skill_id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, skill)
}

// Start godoc
// @Summary 开始学习技能
// @Description 为当前用户创建进度记录，已开始过返回 400
// @Tags 技能
// @Produce  json
// @Security BearerAuth
// @Param   skill_id path string true "技能ID"
// @Success 200 {object} util.Response{data=model.SkillProgress} "开始成功"
// @Failure 400 {object} util.Response "已开始过"
// @Failure 404 {object} util.Response "技能不存在"
// @Router /api/user-skills/{skill_id}/start [post]
func (c *SkillController) Start(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	progress, err := c.ProgressionService.Start(user.ID, ctx.Param("skill_id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// UpdateProgress godoc
// @Summary 更新技能进度
// @Description 直接覆盖进度百分比
// @Tags 技能
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   skill_id path string true "技能ID"
// @Param   body body ProgressRequest true "进度"
// @Success 200 {object} util.Response{data=model.SkillProgress} "更新成功"
// @Failure 404 {object} util.Response "进度记录不存在"
// @Router /api/user-skills/{skill_id}/progress [put]
func (c *SkillController) UpdateProgress(ctx *gin.Context) {
	var req ProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	progress, err := c.ProgressionService.SetProgress(user.ID, ctx.Param("skill_id"), *req.ProgressPercent)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// Complete godoc
// @Summary 完成技能
// @Description 标记完成并结算经验与等级
// @Tags 技能
// @Produce  json
// @Security BearerAuth
// @Param   skill_id path string true "技能ID"
// @Success 200 {object} util.Response{data=service.CompletionResult} "完成结算"
// @Failure 404 {object} util.Response "技能或进度不存在"
// @Router /api/user-skills/{skill_id}/complete [post]
func (c *SkillController) Complete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	result, err := c.ProgressionService.CompleteSkill(user.ID, ctx.Param("skill_id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Lessons godoc
// @Summary 技能下的课程
// @Description 按课程顺序返回，附带当前用户的完成标记
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   skill_id path string true "技能ID"
// @Success 200 {object} util.Response{data=[]service.LessonWithProgress} "课程列表"
// @Failure 404 {object} util.Response "技能不存在"
// @Router /api/skills/{skill_id}/lessons [get]
func (c *SkillController) Lessons(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	lessons, err := c.LessonService.ListForUser(user.ID, ctx.Param("skill_id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// CompleteLesson godoc
// @Summary 完成课程
// @Description 幂等标记课程完成，并把已完成占比回写到技能进度
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   lesson_id path string true "课程ID"
// @Success 200 {object} util.Response{data=object} "完成后的技能进度"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/lessons/{lesson_id}/complete [post]
func (c *SkillController) CompleteLesson(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	percent, err := c.ProgressionService.CompleteLesson(user.ID, ctx.Param("lesson_id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Lesson completed", "progress_percent": percent})
}
