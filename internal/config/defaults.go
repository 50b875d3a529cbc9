package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.baseURL", "http://localhost:8000/api")
	v.SetDefault("app.name", "UK Customer Intelligence")
	v.SetDefault("env", "DEV")

	// Client request orchestration
	v.SetDefault("client.maxConcurrent", 5)
	v.SetDefault("client.searchDebounce", 300*time.Millisecond)
	v.SetDefault("client.minSearchLength", 2)
	v.SetDefault("client.searchTTL", time.Minute)
	v.SetDefault("client.detailTTL", 5*time.Minute)
	v.SetDefault("client.timeout", 30*time.Second)

	// UI routes
	v.SetDefault("routes.login", "/login")
	v.SetDefault("routes.base", "")

	// Credential storage
	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.path", defaultStoragePath())
	v.SetDefault("storage.redisAddr", "localhost:6379")
	v.SetDefault("storage.redisDB", 0)
	v.SetDefault("storage.redisPrefix", "ukci:")

	// Mock backend
	v.SetDefault("mock.port", 8000)
	v.SetDefault("mock.jwtSecret", "ukci-mock-secret")
	v.SetDefault("mock.tokenExpiry", time.Hour)
}

func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("api.baseURL", "UKCI_API_BASE_URL")
	_ = v.BindEnv("client.maxConcurrent", "UKCI_MAX_CONCURRENT")
	_ = v.BindEnv("storage.backend", "UKCI_STORAGE_BACKEND")
	_ = v.BindEnv("storage.path", "UKCI_STORAGE_PATH")
	_ = v.BindEnv("storage.redisAddr", "UKCI_REDIS_ADDR")
	_ = v.BindEnv("mock.port", "UKCI_MOCK_PORT")
	_ = v.BindEnv("mock.jwtSecret", "UKCI_MOCK_JWT_SECRET")
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "data", "credentials.json")
	}
	return filepath.Join(home, ".ukci", "credentials.json")
}
