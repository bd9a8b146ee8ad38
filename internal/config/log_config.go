package config

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	logLevelVar  = "LOG_LEVEL"
	logFormatVar = "LOG_FORMAT"
)

const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

type LogConfig interface {
	GetLogLevel() string
	GetLogFormat() string
}

type Logging struct {
	v *viper.Viper
}

var _ LogConfig = Logging{}

func (l Logging) GetLogLevel() string {
	return strings.ToLower(l.v.GetString(logLevelVar))
}

func (l Logging) GetLogFormat() string {
	if strings.ToLower(l.v.GetString(logFormatVar)) == LogFormatJSON {
		return LogFormatJSON
	}
	return LogFormatConsole
}
