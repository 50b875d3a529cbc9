package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type EnvVars struct {
	v *viper.Viper
}

var _ EnvConfig = EnvVars{}

// GetAPIBaseURL returns the REST backend base URL without a trailing slash.
func (e EnvVars) GetAPIBaseURL() string {
	return strings.TrimRight(getStringOrDefault(e.v, "api.baseURL", "http://localhost:8000/api"), "/")
}

func (e EnvVars) GetAppName() string {
	return getStringOrDefault(e.v, "app.name", "UK Customer Intelligence")
}

func (e EnvVars) GetEnv() string {
	return strings.ToUpper(getStringOrDefault(e.v, "env", "DEV"))
}

func (e EnvVars) IsVerbose() bool {
	return getBoolOrDefault(e.v, "verbose", false)
}

func getDurationOrDefault(v *viper.Viper, key string, defaultValue time.Duration) time.Duration {
	if v.IsSet(key) {
		return v.GetDuration(key)
	}
	return defaultValue
}

func getIntOrDefault(v *viper.Viper, key string, defaultValue int) int {
	if v.IsSet(key) {
		return v.GetInt(key)
	}
	return defaultValue
}

func getStringOrDefault(v *viper.Viper, key string, defaultValue string) string {
	if v.IsSet(key) && v.GetString(key) != "" {
		return v.GetString(key)
	}
	return defaultValue
}

func getBoolOrDefault(v *viper.Viper, key string, defaultValue bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return defaultValue
}
