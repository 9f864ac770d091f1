package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	DBPath               string `envconfig:"DAYPLAN_DB" default:"./data/dayplan.db"`
	Timezone             string `envconfig:"DAYPLAN_TZ" default:"America/Sao_Paulo"`
	DesktopNotifications bool   `envconfig:"DAYPLAN_DESKTOP_NOTIFICATIONS" default:"true"`
	NotifyBuffer         int    `envconfig:"DAYPLAN_NOTIFY_BUFFER" default:"16"`
	TickSeconds          int    `envconfig:"DAYPLAN_TICK_SECONDS" default:"30"`
	LogLevel             string `envconfig:"DAYPLAN_LOG_LEVEL" default:"warn"` // debug|info|warn|error
}

// Load reads environment variables into Config and resolves the timezone,
// so a bad DAYPLAN_TZ fails at startup rather than at the first tick.
func Load() (Config, *time.Location, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, nil, err
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return cfg, nil, fmt.Errorf("config: unknown timezone %q: %w", cfg.Timezone, err)
	}
	return cfg, loc, nil
}
