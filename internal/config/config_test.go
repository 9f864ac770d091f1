package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DAYPLAN_TZ", "UTC")

	cfg, loc, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "./data/dayplan.db" {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
	if !cfg.DesktopNotifications {
		t.Fatal("desktop notifications disabled by default")
	}
	if cfg.NotifyBuffer != 16 || cfg.TickSeconds != 30 {
		t.Fatalf("engine defaults = %d/%d", cfg.NotifyBuffer, cfg.TickSeconds)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("log level = %q", cfg.LogLevel)
	}
	if loc != time.UTC {
		t.Fatalf("loc = %v, want UTC", loc)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DAYPLAN_DB", "/tmp/other.db")
	t.Setenv("DAYPLAN_TZ", "UTC")
	t.Setenv("DAYPLAN_DESKTOP_NOTIFICATIONS", "false")
	t.Setenv("DAYPLAN_NOTIFY_BUFFER", "4")
	t.Setenv("DAYPLAN_TICK_SECONDS", "5")
	t.Setenv("DAYPLAN_LOG_LEVEL", "debug")

	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/tmp/other.db" || cfg.DesktopNotifications || cfg.NotifyBuffer != 4 || cfg.TickSeconds != 5 || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	t.Setenv("DAYPLAN_TZ", "Mars/Olympus_Mons")
	if _, _, err := Load(); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}
