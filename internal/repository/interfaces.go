package repository

import (
	"context"
	"time"

	"github.com/orbitlabs/orbit-backend/internal/models"
)

// MetricRepository defines the interface for metric config data access
type MetricRepository interface {
	Create(ctx context.Context, metric *models.MetricConfig) (*models.MetricConfig, error)
	GetByID(ctx context.Context, id string) (*models.MetricConfig, error)
	GetAll(ctx context.Context) ([]models.MetricConfig, error)
	Update(ctx context.Context, id string, metric *models.MetricConfig) (*models.MetricConfig, error)
	Delete(ctx context.Context, id string) error
}

// LogRepository defines the interface for log entry data access
type LogRepository interface {
	Create(ctx context.Context, entry *models.LogEntry) (*models.LogEntry, error)
	GetByID(ctx context.Context, id string) (*models.LogEntry, error)
	GetAll(ctx context.Context) ([]models.LogEntry, error)
	GetByMetricID(ctx context.Context, metricID string) ([]models.LogEntry, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]models.LogEntry, error)
	Delete(ctx context.Context, id string) error
	DeleteByMetricID(ctx context.Context, metricID string) error
}

// TimeLogRepository defines the interface for time log data access
type TimeLogRepository interface {
	Create(ctx context.Context, timeLog *models.TimeLog) (*models.TimeLog, error)
	GetAll(ctx context.Context) ([]models.TimeLog, error)
	GetByActivityID(ctx context.Context, activityID string) ([]models.TimeLog, error)
	Delete(ctx context.Context, id string) error
}

// ReportRepository defines the interface for report snapshot data access
type ReportRepository interface {
	Save(ctx context.Context, snapshot *models.ReportSnapshot) (*models.ReportSnapshot, error)
	GetAll(ctx context.Context) ([]models.ReportSnapshot, error)
	GetByID(ctx context.Context, id string) (*models.ReportSnapshot, error)
	Delete(ctx context.Context, id string) error
	Prune(ctx context.Context, keep int) error
}
