package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	envVar     = "ENV"
	appNameVar = "APP_NAME"
	portVar    = "PORT"

	envDevelopment = "DEV"
)

type EnvVars struct {
	v *viper.Viper
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetAppName() string {
	return e.v.GetString(appNameVar)
}

func (e EnvVars) GetEnv() string {
	env := strings.ToUpper(e.v.GetString(envVar))
	if env == "" {
		return envDevelopment
	}
	return env
}

// GetPort returns the dev gateway listen address in ":port" form.
func (e EnvVars) GetPort() string {
	port := e.v.GetString(portVar)
	if port == "" || port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}
