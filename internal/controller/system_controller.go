package controller

import (
	"skilltree_backend/internal/util"
	"skilltree_backend/pkg/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SystemController struct {
	DB *gorm.DB
}

func NewSystemController(db *gorm.DB) *SystemController {
	return &SystemController{DB: db}
}

// Health godoc
// @Summary 健康检查
// @Tags 系统
// @Produce  json
// @Success 200 {object} util.Response "服务正常"
// @Router /api/health [get]
func (c *SystemController) Health(ctx *gin.Context) {
	util.Success(ctx, gin.H{"status": "ok"})
}

// SeedData godoc
// @Summary 写入演示数据
// @Description 技能表非空时不重复写入
// @Tags 系统
// @Produce  json
// @Success 200 {object} util.Response "写入结果"
// @Router /api/seed-data [post]
func (c *SystemController) SeedData(ctx *gin.Context) {
	seeded, err := database.SeedSkillTree(c.DB)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if !seeded {
		util.Success(ctx, gin.H{"message": "Data already seeded"})
		return
	}
	util.Success(ctx, gin.H{"message": "Seed data created"})
}
