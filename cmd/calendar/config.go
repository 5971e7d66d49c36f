package main

import (
	"fmt"
	"strings"

	"github.com/campusboard/calendar/internal/logger"
	internalhttp "github.com/campusboard/calendar/internal/server/http"
	"github.com/spf13/viper"
)

const envConfigPrefix = "$env:"

type CalendarConfig struct {
	WeekStart       string
	DefaultCategory string
	MaxEventsPerDay int
}

type Config struct {
	HTTPServer internalhttp.Config
	Logger     logger.Config
	Calendar   CalendarConfig
}

func NewConfig(configFile string) (Config, error) {
	config := Config{}
	viper.SetConfigFile(configFile)

	viper.SetDefault("httpServer.host", "127.0.0.1")
	viper.SetDefault("httpServer.port", "8005")
	viper.SetDefault("logger.level", "WARN")
	viper.SetDefault("calendar.weekStart", "sunday")
	viper.SetDefault("calendar.defaultCategory", "reminder")
	viper.SetDefault("calendar.maxEventsPerDay", "0")

	err := viper.ReadInConfig()
	if err != nil {
		return config, fmt.Errorf("failed to read config %q: %w", configFile, err)
	}
	keys := viper.AllKeys()
	for _, key := range keys {
		env := viper.GetString(key)
		if strings.HasPrefix(env, envConfigPrefix) {
			err := viper.BindEnv(key, env[len(envConfigPrefix):])
			if err != nil {
				return Config{}, fmt.Errorf("failed to prepare config: %w", err)
			}
		}
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return config, fmt.Errorf("unable to decode into config struct: %w", err)
	}
	return config, nil
}
