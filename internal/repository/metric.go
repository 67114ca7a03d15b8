package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/orbitlabs/orbit-backend/internal/models"
)

// ErrNotFound marks a lookup that matched no row.
var ErrNotFound = errors.New("not found")

type metricRepository struct {
	db *sql.DB
}

// NewMetricRepository creates a new metric repository
func NewMetricRepository(db *sql.DB) MetricRepository {
	return &metricRepository{db: db}
}

const metricColumns = `id, label, kind, goal, frequency, color, widget, unit,
	range_json, options_json, dashboard_visible, display_order, created_at, updated_at`

func (r *metricRepository) Create(ctx context.Context, metric *models.MetricConfig) (*models.MetricConfig, error) {
	rangeJSON, optionsJSON, err := encodeMetricExtras(metric)
	if err != nil {
		return nil, err
	}

	var visible sql.NullBool
	if metric.DashboardVisible != nil {
		visible = sql.NullBool{Bool: *metric.DashboardVisible, Valid: true}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO metrics (`+metricColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		metric.ID, metric.Label, string(metric.Kind), metric.Goal, string(metric.Frequency),
		metric.Color, string(metric.Widget), metric.Unit,
		rangeJSON, optionsJSON, visible, metric.DisplayOrder,
		formatTime(metric.CreatedAt), formatTime(metric.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create metric: %w", err)
	}
	return metric, nil
}

func (r *metricRepository) GetByID(ctx context.Context, id string) (*models.MetricConfig, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+metricColumns+` FROM metrics WHERE id = ?`, id)

	metric, err := scanMetric(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get metric: %w", err)
	}
	return metric, nil
}

func (r *metricRepository) GetAll(ctx context.Context) ([]models.MetricConfig, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+metricColumns+` FROM metrics ORDER BY display_order, created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list metrics: %w", err)
	}
	defer rows.Close()

	var metrics []models.MetricConfig
	for rows.Next() {
		metric, err := scanMetric(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan metric: %w", err)
		}
		metrics = append(metrics, *metric)
	}
	return metrics, rows.Err()
}

func (r *metricRepository) Update(ctx context.Context, id string, metric *models.MetricConfig) (*models.MetricConfig, error) {
	rangeJSON, optionsJSON, err := encodeMetricExtras(metric)
	if err != nil {
		return nil, err
	}

	var visible sql.NullBool
	if metric.DashboardVisible != nil {
		visible = sql.NullBool{Bool: *metric.DashboardVisible, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE metrics SET label = ?, goal = ?, frequency = ?, color = ?, widget = ?,
			unit = ?, range_json = ?, options_json = ?, dashboard_visible = ?,
			display_order = ?, updated_at = ?
		WHERE id = ?`,
		metric.Label, metric.Goal, string(metric.Frequency), metric.Color, string(metric.Widget),
		metric.Unit, rangeJSON, optionsJSON, visible,
		metric.DisplayOrder, formatTime(metric.UpdatedAt), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update metric: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	return metric, nil
}

func (r *metricRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM metrics WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete metric: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMetric(row rowScanner) (*models.MetricConfig, error) {
	var (
		m                       models.MetricConfig
		kind, frequency, widget string
		rangeJSON, optionsJSON  string
		visible                 sql.NullBool
		createdAt, updatedAt    string
	)

	err := row.Scan(
		&m.ID, &m.Label, &kind, &m.Goal, &frequency, &m.Color, &widget, &m.Unit,
		&rangeJSON, &optionsJSON, &visible, &m.DisplayOrder, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.Kind = models.MetricKind(kind)
	m.Frequency = models.Frequency(frequency)
	m.Widget = models.WidgetKind(widget)

	if visible.Valid {
		v := visible.Bool
		m.DashboardVisible = &v
	}

	if rangeJSON != "" {
		var vr models.ValueRange
		if err := json.Unmarshal([]byte(rangeJSON), &vr); err != nil {
			return nil, fmt.Errorf("failed to decode range: %w", err)
		}
		m.Range = &vr
	}
	if optionsJSON != "" {
		if err := json.Unmarshal([]byte(optionsJSON), &m.Options); err != nil {
			return nil, fmt.Errorf("failed to decode options: %w", err)
		}
	}

	m.CreatedAt = parseTime(createdAt)
	m.UpdatedAt = parseTime(updatedAt)
	return &m, nil
}

func encodeMetricExtras(metric *models.MetricConfig) (rangeJSON, optionsJSON string, err error) {
	if metric.Range != nil {
		b, err := json.Marshal(metric.Range)
		if err != nil {
			return "", "", fmt.Errorf("failed to encode range: %w", err)
		}
		rangeJSON = string(b)
	}
	if len(metric.Options) > 0 {
		b, err := json.Marshal(metric.Options)
		if err != nil {
			return "", "", fmt.Errorf("failed to encode options: %w", err)
		}
		optionsJSON = string(b)
	}
	return rangeJSON, optionsJSON, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t.Local()
}
