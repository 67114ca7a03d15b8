package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/orbitlabs/orbit-backend/internal/models"
)

type timeLogRepository struct {
	db *sql.DB
}

// NewTimeLogRepository creates a new time log repository
func NewTimeLogRepository(db *sql.DB) TimeLogRepository {
	return &timeLogRepository{db: db}
}

const timeLogColumns = `id, activity_id, start_time, end_time, duration_hours, notes, created_at`

func (r *timeLogRepository) Create(ctx context.Context, timeLog *models.TimeLog) (*models.TimeLog, error) {
	var endTime sql.NullString
	if timeLog.EndTime != nil {
		endTime = sql.NullString{String: formatTime(*timeLog.EndTime), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO time_logs (`+timeLogColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		timeLog.ID, timeLog.ActivityID, formatTime(timeLog.StartTime), endTime,
		timeLog.Duration, timeLog.Notes, formatTime(timeLog.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create time log: %w", err)
	}
	return timeLog, nil
}

func (r *timeLogRepository) GetAll(ctx context.Context) ([]models.TimeLog, error) {
	return r.query(ctx, `SELECT `+timeLogColumns+` FROM time_logs ORDER BY start_time`)
}

func (r *timeLogRepository) GetByActivityID(ctx context.Context, activityID string) ([]models.TimeLog, error) {
	return r.query(ctx,
		`SELECT `+timeLogColumns+` FROM time_logs WHERE activity_id = ? ORDER BY start_time`, activityID)
}

func (r *timeLogRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM time_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete time log: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *timeLogRepository) query(ctx context.Context, query string, args ...any) ([]models.TimeLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list time logs: %w", err)
	}
	defer rows.Close()

	var timeLogs []models.TimeLog
	for rows.Next() {
		var (
			t                    models.TimeLog
			startTime, createdAt string
			endTime              sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.ActivityID, &startTime, &endTime, &t.Duration, &t.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan time log: %w", err)
		}

		t.StartTime = parseTime(startTime)
		t.CreatedAt = parseTime(createdAt)
		if endTime.Valid {
			end := parseTime(endTime.String)
			t.EndTime = &end
		}
		timeLogs = append(timeLogs, t)
	}
	return timeLogs, rows.Err()
}
