package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skilltree_backend/internal/config"
	"skilltree_backend/internal/controller"
	"skilltree_backend/internal/repository"
	"skilltree_backend/internal/service"
	"skilltree_backend/pkg/database"
	"skilltree_backend/pkg/logger"
	"skilltree_backend/pkg/monitoring"
	"skilltree_backend/pkg/security"
	"skilltree_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user           *repository.UserRepository
	skill          *repository.SkillRepository
	lesson         *repository.LessonRepository
	skillProgress  *repository.SkillProgressRepository
	lessonProgress *repository.LessonProgressRepository
	session        *repository.SessionRepository
	connection     *repository.ConnectionRepository
}

type services struct {
	auth        *service.AuthService
	skill       *service.SkillService
	lesson      *service.LessonService
	progression *service.ProgressionService
	achievement *service.AchievementService
	dashboard   *service.DashboardService
	ai          *service.AIService
	integration *service.IntegrationService
}

type controllers struct {
	auth        *controller.AuthController
	skill       *controller.SkillController
	achievement *controller.AchievementController
	dashboard   *controller.DashboardController
	ai          *controller.AIController
	integration *controller.IntegrationController
	admin       *controller.AdminController
	system      *controller.SystemController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:           repository.NewUserRepository(db),
		skill:          repository.NewSkillRepository(db),
		lesson:         repository.NewLessonRepository(db),
		skillProgress:  repository.NewSkillProgressRepository(db),
		lessonProgress: repository.NewLessonProgressRepository(db),
		session:        repository.NewSessionRepository(db),
		connection:     repository.NewConnectionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	provider := service.NewProviderClient(cfg.Session.ProviderURL)
	s.auth = service.NewAuthService(repos.user, repos.session, provider, cfg, logger.Log)
	s.skill = service.NewSkillService(repos.skill, repos.skillProgress, rdb, logger.Log)
	s.lesson = service.NewLessonService(repos.skill, repos.lesson, repos.lessonProgress)
	s.progression = service.NewProgressionService(
		repos.skill,
		repos.lesson,
		repos.skillProgress,
		repos.lessonProgress,
		repos.user,
		cfg.Progression.StrictProgress,
		logger.Log,
	)
	s.achievement = service.NewAchievementService(repos.skill, repos.skillProgress)
	s.dashboard = service.NewDashboardService(repos.skill, repos.skillProgress)
	s.ai = service.NewAIService(cfg.AI, repos.skill, repos.lesson, repos.skillProgress)
	s.integration = service.NewIntegrationService(repos.connection)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth, a.Config),
		skill:       controller.NewSkillController(s.skill, s.progression, s.lesson),
		achievement: controller.NewAchievementController(s.achievement),
		dashboard:   controller.NewDashboardController(s.dashboard),
		ai:          controller.NewAIController(s.ai),
		integration: controller.NewIntegrationController(s.integration),
		admin:       controller.NewAdminController(s.auth, s.skill, s.ai),
		system:      controller.NewSystemController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("skilltree-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg, services)

	return app
}

// ReloadConfig 配置文件热更新回调，只刷新运行期可安全替换的部分
func (a *App) ReloadConfig(newCfg *config.Config) {
	a.Config.Progression = newCfg.Progression
	a.Config.AI = newCfg.AI
	a.Config.RateLimit = newCfg.RateLimit

	a.services.progression.SetStrictProgress(newCfg.Progression.StrictProgress)
	a.services.ai.UpdateConfig(newCfg.AI)

	logger.Log.Info("Configuration reloaded")
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
