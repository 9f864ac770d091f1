package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sandeepkv93/dayplan/internal/model"
)

// Store joins the raw repository rows into domain values. Rows that fail
// conversion are skipped with a warning instead of poisoning the whole
// listing, so one corrupt record cannot take the agenda down.
type Store struct {
	repo Repository
	log  *zap.Logger
}

func NewStore(repo Repository, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{repo: repo, log: log}
}

// LoadItems returns every task with its recurrence rule attached.
func (s *Store) LoadItems(ctx context.Context) ([]model.Item, error) {
	tasks, err := s.repo.ListTasks(ctx, TaskListFilter{})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	recs, err := s.repo.ListRecurrences(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recurrences: %w", err)
	}
	byTask := make(map[string]RecurrenceRule, len(recs))
	for _, r := range recs {
		byTask[r.TaskID] = r
	}

	items := make([]model.Item, 0, len(tasks))
	for _, t := range tasks {
		var rec *RecurrenceRule
		if r, ok := byTask[t.ID]; ok {
			rec = &r
		}
		item, convErr := taskToModel(t, rec)
		if convErr != nil {
			s.log.Warn("skipping unreadable task", zap.String("id", t.ID), zap.Error(convErr))
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// CreateItem persists a new task and, when present, its recurrence rule.
func (s *Store) CreateItem(ctx context.Context, item model.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	if err := s.repo.CreateTask(ctx, taskFromModel(item, now)); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	if item.Recurrence != nil {
		rec := recurrenceFromModel(uuid.NewString(), item.ID, *item.Recurrence, now)
		if err := s.repo.CreateRecurrence(ctx, rec); err != nil {
			return fmt.Errorf("create recurrence: %w", err)
		}
	}
	return nil
}

// CompleteItem marks a task done and stamps its completion time.
func (s *Store) CompleteItem(ctx context.Context, id string) error {
	t, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	t.Status = string(model.StatusDone)
	t.CompletedAt = &now
	return s.repo.UpdateTask(ctx, t)
}

// DeleteItem removes a task; its recurrence rule cascades with it.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	return s.repo.DeleteTask(ctx, id)
}

// Rules returns every notification rule, active or not.
func (s *Store) Rules(ctx context.Context) ([]model.NotificationRule, error) {
	return s.listRules(ctx, NotificationListFilter{})
}

// ActiveRules returns the rules the engine should evaluate this tick.
func (s *Store) ActiveRules(ctx context.Context) ([]model.NotificationRule, error) {
	active := true
	return s.listRules(ctx, NotificationListFilter{Active: &active})
}

func (s *Store) listRules(ctx context.Context, filter NotificationListFilter) ([]model.NotificationRule, error) {
	rows, err := s.repo.ListNotificationRules(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list notification rules: %w", err)
	}
	rules := make([]model.NotificationRule, 0, len(rows))
	for _, row := range rows {
		rule, convErr := notificationToModel(row)
		if convErr != nil {
			s.log.Warn("skipping unreadable notification rule", zap.String("id", row.ID), zap.Error(convErr))
			continue
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// SaveRule inserts or replaces a notification rule.
func (s *Store) SaveRule(ctx context.Context, rule model.NotificationRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	row := notificationFromModel(rule, time.Now().UTC())
	err := s.repo.UpdateNotificationRule(ctx, row)
	if errors.Is(err, ErrNotFound) {
		return s.repo.CreateNotificationRule(ctx, row)
	}
	return err
}

// DeleteRule removes a notification rule and its fire record.
func (s *Store) DeleteRule(ctx context.Context, id string) error {
	return s.repo.DeleteNotificationRule(ctx, id)
}

// QuietConfig returns the stored quiet-hours settings. A database with no
// row yet behaves as quiet hours disabled.
func (s *Store) QuietConfig(ctx context.Context) (model.QuietConfig, error) {
	row, err := s.repo.GetQuietConfig(ctx)
	if errors.Is(err, ErrNotFound) {
		return model.QuietConfig{}, nil
	}
	if err != nil {
		return model.QuietConfig{}, fmt.Errorf("load quiet config: %w", err)
	}
	quiet, convErr := quietToModel(row)
	if convErr != nil {
		s.log.Warn("ignoring unreadable quiet config", zap.Error(convErr))
		return model.QuietConfig{}, nil
	}
	return quiet, nil
}

// SaveQuietConfig replaces the quiet-hours settings.
func (s *Store) SaveQuietConfig(ctx context.Context, quiet model.QuietConfig) error {
	if err := quiet.Validate(); err != nil {
		return err
	}
	return s.repo.SaveQuietConfig(ctx, quietFromModel(quiet, time.Now().UTC()))
}

// SetQuietEnabled flips the quiet-hours switch, keeping the stored window
// and day set untouched.
func (s *Store) SetQuietEnabled(ctx context.Context, enabled bool) error {
	quiet, err := s.QuietConfig(ctx)
	if err != nil {
		return err
	}
	if quiet.QuietStart == "" {
		quiet.QuietStart = "22:00"
	}
	if quiet.QuietEnd == "" {
		quiet.QuietEnd = "08:00"
	}
	quiet.QuietHoursEnabled = enabled
	return s.SaveQuietConfig(ctx, quiet)
}

func (s *Store) LastFired(ctx context.Context, ruleID string) (*time.Time, error) {
	return s.repo.LastFired(ctx, ruleID)
}

func (s *Store) MarkFired(ctx context.Context, ruleID string, at time.Time) error {
	return s.repo.MarkFired(ctx, ruleID, at)
}
