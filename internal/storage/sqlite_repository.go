package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, status, priority, start_date, due_date, start_time, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.Description, in.Status, in.Priority,
		in.StartDate, in.DueDate, in.StartTime, mustTime(in.CreatedAt), nullTime(in.CompletedAt),
	)
	return err
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, status, priority, start_date, due_date, start_time, created_at, completed_at
		FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, priority = ?, start_date = ?, due_date = ?, start_time = ?, completed_at = ?
		WHERE id = ?`,
		in.Title, in.Description, in.Status, in.Priority,
		in.StartDate, in.DueDate, in.StartTime, nullTime(in.CompletedAt), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error) {
	query := `SELECT id, title, description, status, priority, start_date, due_date, start_time, created_at, completed_at FROM tasks`
	args := make([]any, 0, 3)
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY created_at ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateRecurrence(ctx context.Context, in RecurrenceRule) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO recurrence_rules (id, task_id, rule_type, week_days, month_day, custom_dates, enabled, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.TaskID, in.RuleType, in.WeekDays, in.MonthDay, in.CustomDates, boolInt(in.Enabled), mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetRecurrenceForTask(ctx context.Context, taskID string) (RecurrenceRule, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, task_id, rule_type, week_days, month_day, custom_dates, enabled, created_at
		FROM recurrence_rules WHERE task_id = ?`, taskID)
	item, err := scanRecurrence(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RecurrenceRule{}, ErrNotFound
		}
		return RecurrenceRule{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateRecurrence(ctx context.Context, in RecurrenceRule) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE recurrence_rules
		SET task_id = ?, rule_type = ?, week_days = ?, month_day = ?, custom_dates = ?, enabled = ?
		WHERE id = ?`,
		in.TaskID, in.RuleType, in.WeekDays, in.MonthDay, in.CustomDates, boolInt(in.Enabled), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteRecurrence(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recurrence_rules WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListRecurrences(ctx context.Context) ([]RecurrenceRule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, task_id, rule_type, week_days, month_day, custom_dates, enabled, created_at
		FROM recurrence_rules ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RecurrenceRule, 0)
	for rows.Next() {
		item, scanErr := scanRecurrence(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateNotificationRule(ctx context.Context, in NotificationRule) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notification_rules (id, rule_type, fire_time, days_of_week, specific_date, message, is_active, linked_task_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.RuleType, in.FireTime, in.DaysOfWeek, in.SpecificDate, in.Message, boolInt(in.IsActive), in.LinkedTaskID, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetNotificationRule(ctx context.Context, id string) (NotificationRule, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, rule_type, fire_time, days_of_week, specific_date, message, is_active, linked_task_id, created_at
		FROM notification_rules WHERE id = ?`, id)
	item, err := scanNotification(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NotificationRule{}, ErrNotFound
		}
		return NotificationRule{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateNotificationRule(ctx context.Context, in NotificationRule) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notification_rules
		SET rule_type = ?, fire_time = ?, days_of_week = ?, specific_date = ?, message = ?, is_active = ?, linked_task_id = ?
		WHERE id = ?`,
		in.RuleType, in.FireTime, in.DaysOfWeek, in.SpecificDate, in.Message, boolInt(in.IsActive), in.LinkedTaskID, in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteNotificationRule(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notification_rules WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListNotificationRules(ctx context.Context, filter NotificationListFilter) ([]NotificationRule, error) {
	query := `SELECT id, rule_type, fire_time, days_of_week, specific_date, message, is_active, linked_task_id, created_at FROM notification_rules`
	args := make([]any, 0, 3)
	if filter.Active != nil {
		query += ` WHERE is_active = ?`
		args = append(args, boolInt(*filter.Active))
	}
	query += ` ORDER BY created_at ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]NotificationRule, 0)
	for rows.Next() {
		item, scanErr := scanNotification(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetQuietConfig(ctx context.Context) (QuietConfig, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT hours_enabled, quiet_start, quiet_end, quiet_days, updated_at
		FROM quiet_config WHERE id = 1`)
	var out QuietConfig
	var enabled int
	var updated string
	if err := row.Scan(&enabled, &out.QuietStart, &out.QuietEnd, &out.QuietDays, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return QuietConfig{}, ErrNotFound
		}
		return QuietConfig{}, err
	}
	updatedAt, err := parseRequiredTime(updated)
	if err != nil {
		return QuietConfig{}, err
	}
	out.HoursEnabled = enabled == 1
	out.UpdatedAt = updatedAt
	return out, nil
}

func (r *SQLiteRepository) SaveQuietConfig(ctx context.Context, in QuietConfig) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quiet_config (id, hours_enabled, quiet_start, quiet_end, quiet_days, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			hours_enabled = excluded.hours_enabled,
			quiet_start = excluded.quiet_start,
			quiet_end = excluded.quiet_end,
			quiet_days = excluded.quiet_days,
			updated_at = excluded.updated_at`,
		boolInt(in.HoursEnabled), in.QuietStart, in.QuietEnd, in.QuietDays, mustTime(in.UpdatedAt),
	)
	return err
}

func (r *SQLiteRepository) LastFired(ctx context.Context, ruleID string) (*time.Time, error) {
	row := r.db.QueryRowContext(ctx, `SELECT fired_at FROM notification_fires WHERE rule_id = ?`, ruleID)
	var fired string
	if err := row.Scan(&fired); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	at, err := parseRequiredTime(fired)
	if err != nil {
		return nil, err
	}
	return &at, nil
}

func (r *SQLiteRepository) MarkFired(ctx context.Context, ruleID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notification_fires (rule_id, fired_at) VALUES (?, ?)
		ON CONFLICT(rule_id) DO UPDATE SET fired_at = excluded.fired_at`,
		ruleID, mustTime(at),
	)
	return err
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (Task, error) {
	var out Task
	var created string
	var completed sql.NullString
	if err := s.Scan(&out.ID, &out.Title, &out.Description, &out.Status, &out.Priority,
		&out.StartDate, &out.DueDate, &out.StartTime, &created, &completed); err != nil {
		return Task{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Task{}, err
	}
	completedAt, err := parseNullableTime(completed)
	if err != nil {
		return Task{}, err
	}
	out.CreatedAt = createdAt
	out.CompletedAt = completedAt
	return out, nil
}

func scanRecurrence(s scanner) (RecurrenceRule, error) {
	var out RecurrenceRule
	var enabled int
	var created string
	if err := s.Scan(&out.ID, &out.TaskID, &out.RuleType, &out.WeekDays, &out.MonthDay,
		&out.CustomDates, &enabled, &created); err != nil {
		return RecurrenceRule{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return RecurrenceRule{}, err
	}
	out.Enabled = enabled == 1
	out.CreatedAt = createdAt
	return out, nil
}

func scanNotification(s scanner) (NotificationRule, error) {
	var out NotificationRule
	var active int
	var created string
	if err := s.Scan(&out.ID, &out.RuleType, &out.FireTime, &out.DaysOfWeek, &out.SpecificDate,
		&out.Message, &active, &out.LinkedTaskID, &created); err != nil {
		return NotificationRule{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return NotificationRule{}, err
	}
	out.IsActive = active == 1
	out.CreatedAt = createdAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
