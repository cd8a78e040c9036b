package app

import (
	"skilltree_backend/docs"
	"skilltree_backend/internal/config"
	"skilltree_backend/internal/middleware"
	"skilltree_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config, s *services) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.system.Health)
		public.POST("/seed-data", c.system.SeedData)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
		public.POST("/auth/oauth/session", c.auth.ProviderSession)
		public.POST("/auth/logout", c.auth.Logout)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg, s.auth))
	{
		authGroup.GET("/auth/me", c.auth.Me)

		authGroup.GET("/skills", c.skill.List)
		authGroup.GET("/skills/:skill_id", c.skill.Get)
		authGroup.GET("/skills/:skill_id/lessons", c.skill.Lessons)
		authGroup.POST("/user-skills/:skill_id/start", c.skill.Start)
		authGroup.PUT("/user-skills/:skill_id/progress", c.skill.UpdateProgress)
		authGroup.POST("/user-skills/:skill_id/complete", c.skill.Complete)
		authGroup.POST("/lessons/:lesson_id/complete", c.skill.CompleteLesson)

		authGroup.POST("/ai/recommend-skills", c.ai.RecommendSkills)
		authGroup.POST("/ai/generate-lesson-content", c.ai.GenerateLessonContent)

		authGroup.GET("/integrations", c.integration.List)
		authGroup.POST("/integrations/connect/:platform", c.integration.Connect)
		authGroup.GET("/integrations/:platform/sync", c.integration.Sync)

		authGroup.GET("/dashboard/stats", c.dashboard.Stats)
		authGroup.GET("/achievements", c.achievement.List)
		authGroup.GET("/activity-feed", c.achievement.ActivityFeed)

		// 自助提权只要求登录，其余管理接口要求 admin 标记
		authGroup.POST("/admin/promote-me", c.admin.PromoteMe)

		admin := authGroup.Group("/admin")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.GET("/skills", c.admin.ListSkills)
			admin.POST("/skills", c.admin.CreateSkill)
			admin.DELETE("/skills/:skill_id", c.admin.DeleteSkill)
			admin.POST("/lessons/generate", c.admin.GenerateLessons)
		}
	}
}
