package config

import (
	"os"

	"github.com/Kabelo-07/recipe-service/entity"
	"github.com/Kabelo-07/recipe-service/logger"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// ReadConfig reads the configuration from the YAML file
func ReadConfig(filePath string) (*entity.Config, error) {
	var config entity.Config

	data, err := os.ReadFile(filePath)
	if err != nil {
		logger.Error("unable to read config file", zap.String("path", filePath), zap.Error(err))
		return nil, err
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		logger.Error("unable to unmarshal YAML", zap.Error(err))
		return nil, err
	}

	if config.ServerConfig.Port == "" {
		config.ServerConfig.Port = "8080"
	}

	return &config, nil
}
