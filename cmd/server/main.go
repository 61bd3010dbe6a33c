package main

import (
	"os"

	"github.com/Kabelo-07/recipe-service/config"
	"github.com/Kabelo-07/recipe-service/db"
	"github.com/Kabelo-07/recipe-service/logger"
	"github.com/Kabelo-07/recipe-service/route"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger.InitializeLogger()
	defer logger.Close()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/development.yaml"
	}
	cfg, err := config.ReadConfig(configPath)
	if err != nil {
		logger.Fatal("could not read configuration", zap.Error(err))
	}

	if err := db.InitDB(cfg); err != nil {
		logger.Fatal("could not connect to database", zap.Error(err))
	}
	defer db.Close()

	r := gin.New()
	r.Use(gin.Recovery())
	if err := route.SetupRoutes(r, db.GetDBInstance()); err != nil {
		logger.Fatal("could not set up routes", zap.Error(err))
	}

	logger.Info("starting server", zap.String("port", cfg.ServerConfig.Port))
	if err := r.Run(":" + cfg.ServerConfig.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
