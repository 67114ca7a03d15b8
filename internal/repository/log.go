package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/orbitlabs/orbit-backend/internal/models"
)

type logRepository struct {
	db *sql.DB
}

// NewLogRepository creates a new log entry repository
func NewLogRepository(db *sql.DB) LogRepository {
	return &logRepository{db: db}
}

const logColumns = `id, metric_id, value_kind, value_num, value_text, timestamp, created_at`

func (r *logRepository) Create(ctx context.Context, entry *models.LogEntry) (*models.LogEntry, error) {
	kind, num, text := entry.Value.Parts()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO log_entries (`+logColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.MetricID, string(kind), num, text,
		formatTime(entry.Timestamp), formatTime(entry.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create log entry: %w", err)
	}
	return entry, nil
}

func (r *logRepository) GetByID(ctx context.Context, id string) (*models.LogEntry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+logColumns+` FROM log_entries WHERE id = ?`, id)

	entry, err := scanLogEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get log entry: %w", err)
	}
	return entry, nil
}

func (r *logRepository) GetAll(ctx context.Context) ([]models.LogEntry, error) {
	return r.query(ctx, `SELECT `+logColumns+` FROM log_entries ORDER BY timestamp`)
}

func (r *logRepository) GetByMetricID(ctx context.Context, metricID string) ([]models.LogEntry, error) {
	return r.query(ctx,
		`SELECT `+logColumns+` FROM log_entries WHERE metric_id = ? ORDER BY timestamp`, metricID)
}

func (r *logRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]models.LogEntry, error) {
	return r.query(ctx,
		`SELECT `+logColumns+` FROM log_entries WHERE timestamp >= ? AND timestamp <= ? ORDER BY timestamp`,
		formatTime(start), formatTime(end))
}

func (r *logRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM log_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete log entry: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByMetricID removes every entry for the metric; deleting a metric
// cascades through here.
func (r *logRepository) DeleteByMetricID(ctx context.Context, metricID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM log_entries WHERE metric_id = ?`, metricID)
	if err != nil {
		return fmt.Errorf("failed to delete log entries: %w", err)
	}
	return nil
}

func (r *logRepository) query(ctx context.Context, query string, args ...any) ([]models.LogEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list log entries: %w", err)
	}
	defer rows.Close()

	var entries []models.LogEntry
	for rows.Next() {
		entry, err := scanLogEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

func scanLogEntry(row rowScanner) (*models.LogEntry, error) {
	var (
		e                    models.LogEntry
		kind, text           string
		num                  float64
		timestamp, createdAt string
	)

	if err := row.Scan(&e.ID, &e.MetricID, &kind, &num, &text, &timestamp, &createdAt); err != nil {
		return nil, err
	}

	e.Value = models.ValueFromParts(models.ValueKind(kind), num, text)
	e.Timestamp = parseTime(timestamp)
	e.CreatedAt = parseTime(createdAt)
	return &e, nil
}
