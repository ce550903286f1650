// internal/workers/suggestions/fruit-advisor/config.go
package fruitadvisor

import (
	"time"

	"fruitcenter-events/internal/common/config"
)

type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	TopP        float64
	Timeout     time.Duration
}

func LoadConfig(api config.OpenRouterConfig) *Config {
	return &Config{
		BaseURL:     api.BaseURL,
		APIKey:      api.APIKey,
		Model:       api.Model,
		MaxTokens:   api.MaxTokens,
		Temperature: api.Temperature,
		TopP:        api.TopP,
		Timeout:     time.Duration(api.Timeout) * time.Millisecond,
	}
}
