package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config reúne as configurações do console administrativo
type Config struct {
	BaseURL string        `mapstructure:"api_base_url"`
	Timeout time.Duration `mapstructure:"api_timeout"`
}

// LoadConfig lê admin.yaml (opcional) e as variáveis de ambiente
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("admin")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("api_base_url", "http://localhost:8080")
	v.SetDefault("api_timeout", 10*time.Second)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("ℹ️  admin.yaml not found, using environment and defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api_base_url cannot be empty")
	}

	return &cfg, nil
}
