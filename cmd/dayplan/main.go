package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/dayplan/internal/config"
	"github.com/sandeepkv93/dayplan/internal/logger"
	"github.com/sandeepkv93/dayplan/internal/notify"
	"github.com/sandeepkv93/dayplan/internal/storage"
	"github.com/sandeepkv93/dayplan/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "dayplan failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, loc, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close() }()
	if err := storage.MigrateUp(repo.DB()); err != nil {
		return err
	}

	store := storage.NewStore(repo, log)
	engine, err := notify.NewEngine(store, store, loc, log, notify.Options{
		BufferSize:   cfg.NotifyBuffer,
		TickInterval: time.Duration(cfg.TickSeconds) * time.Second,
	})
	if err != nil {
		return err
	}
	engine.Start()
	defer engine.Stop()

	if len(os.Args) > 1 && os.Args[1] == "notify" {
		return runHeadless(engine, log, cfg.DesktopNotifications)
	}

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}
	model := update.NewModelWithRuntime(store, engine, loc, cfg.DesktopNotifications, notifier)
	program := tea.NewProgram(model)
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

// runHeadless consumes engine events without the TUI, for running dayplan
// as a background notifier.
func runHeadless(engine *notify.Engine, log *zap.Logger, desktop bool) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if desktop {
		notifier = update.ExecDesktopNotifier{}
	}

	for {
		select {
		case ev, ok := <-engine.C():
			if !ok {
				return nil
			}
			log.Info("notification", zap.String("rule", ev.RuleID), zap.String("message", ev.Message))
			if err := notifier.Send(update.Notification{Title: "dayplan", Body: ev.Message, Level: "info", At: ev.FiredAt}); err != nil {
				log.Warn("desktop notification failed", zap.Error(err))
			}
		case <-sigCh:
			return nil
		}
	}
}
