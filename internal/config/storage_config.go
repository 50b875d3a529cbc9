package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

type StorageConfig interface {
	GetStorageBackend() string
	GetStoragePath() string
	GetRedisAddr() string
	GetRedisDB() int
	GetRedisPrefix() string
}

type Storage struct {
	v *viper.Viper
}

var _ StorageConfig = Storage{}

func (s Storage) GetStorageBackend() string {
	return getStringOrDefault(s.v, "storage.backend", BackendFile)
}

func (s Storage) GetStoragePath() string {
	return getStringOrDefault(s.v, "storage.path", defaultStoragePath())
}

func (s Storage) GetRedisAddr() string {
	return getStringOrDefault(s.v, "storage.redisAddr", "localhost:6379")
}

func (s Storage) GetRedisDB() int {
	return getIntOrDefault(s.v, "storage.redisDB", 0)
}

func (s Storage) GetRedisPrefix() string {
	return getStringOrDefault(s.v, "storage.redisPrefix", "ukci:")
}

type MockConfig interface {
	GetMockPort() int
	GetMockJWTSecret() string
	GetMockTokenExpiry() time.Duration
}

type Mock struct {
	v *viper.Viper
}

var _ MockConfig = Mock{}

func (m Mock) GetMockPort() int {
	return getIntOrDefault(m.v, "mock.port", 8000)
}

func (m Mock) GetMockJWTSecret() string {
	return getStringOrDefault(m.v, "mock.jwtSecret", "ukci-mock-secret")
}

func (m Mock) GetMockTokenExpiry() time.Duration {
	return getDurationOrDefault(m.v, "mock.tokenExpiry", time.Hour)
}
