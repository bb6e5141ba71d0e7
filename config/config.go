package config

import (
	"os"
	"strconv"
)

type Config struct {
	// Server configuration
	Host string
	Port string

	// OpenAI configuration
	OpenAIAPIKey        string
	OpenAIModel         string
	IntegrationProxyURL string

	// Dataset configuration
	DataDir string

	// Rate limiting for chat endpoints
	RateLimitPerMinute int
}

func Load() *Config {
	return &Config{
		Host:                getEnv("HOST", ""),
		Port:                getEnv("PORT", "8080"),
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:         getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		IntegrationProxyURL: getEnv("INTEGRATION_PROXY_URL", "https://integrations.emergentagent.com"),
		DataDir:             getEnv("DATA_DIR", "."),
		RateLimitPerMinute:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
