// @title SkillTree 后端 API
// @version 1.0
// @description 技能树学习平台的后端服务器。

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"skilltree_backend/internal/app"
	"skilltree_backend/internal/config"
	"skilltree_backend/pkg/configwatcher"
	"skilltree_backend/pkg/logger"
)

func main() {
	configDir := flag.String("config", "configs", "配置文件目录")
	watch := flag.Bool("watch-config", false, "监听配置文件变更并热加载")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *watch {
		go configwatcher.WatchConfig(*configDir+"/config.yaml", application.ReloadConfig)
	}

	application.Run()
}
