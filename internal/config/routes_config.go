package config

import "github.com/spf13/viper"

type RoutesConfig interface {
	GetLoginPath() string
	GetBasePath() string
}

type Routes struct {
	v *viper.Viper
}

var _ RoutesConfig = Routes{}

func (r Routes) GetLoginPath() string {
	return getStringOrDefault(r.v, "routes.login", "/login")
}

// GetBasePath is the prefix the UI is mounted under, e.g. "/app".
func (r Routes) GetBasePath() string {
	return getStringOrDefault(r.v, "routes.base", "")
}
