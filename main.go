// @title SousChef 后端 API
// @version 1.0
// @description SousChef 课程创作工作台的后端服务器。

// @contact.name API支持
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"
	"path/filepath"
	"souschef_backend/internal/app"
	"souschef_backend/internal/config"
	"souschef_backend/pkg/configwatcher"
	"souschef_backend/pkg/logger"
)

func main() {
	configDir := flag.String("config", "configs", "配置文件目录")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 配置热更新：持有 *Config 的组件（门禁密钥等）下次读取时生效
	go configwatcher.WatchConfig(filepath.Join(*configDir, "config.yaml"), cfg, func(newCfg interface{}) {
		if next, ok := newCfg.(*config.Config); ok {
			*cfg = *next
			logger.Log.Info("config reloaded")
		}
	})

	application.Run()
}
