package service

import (
	"context"
	"time"

	"github.com/orbitlabs/orbit-backend/internal/models"
)

// MetricService defines the interface for metric config business logic
type MetricService interface {
	CreateMetric(ctx context.Context, req *models.CreateMetricRequest) (*models.MetricConfig, error)
	GetMetric(ctx context.Context, metricID string) (*models.MetricConfig, error)
	GetMetrics(ctx context.Context) ([]models.MetricConfig, error)
	UpdateMetric(ctx context.Context, metricID string, req *models.UpdateMetricRequest) (*models.MetricConfig, error)
	DeleteMetric(ctx context.Context, metricID string) error
}

// LogService defines the interface for log entry business logic
type LogService interface {
	CreateLog(ctx context.Context, req *models.CreateLogRequest) (*models.LogEntry, error)
	GetLogs(ctx context.Context) ([]models.LogEntry, error)
	GetMetricLogs(ctx context.Context, metricID string) ([]models.LogEntry, error)
	DeleteLog(ctx context.Context, logID string) error
	CreateTimeLog(ctx context.Context, req *models.CreateTimeLogRequest) (*models.TimeLog, error)
	GetTimeLogs(ctx context.Context) ([]models.TimeLog, error)
	DeleteTimeLog(ctx context.Context, timeLogID string) error
}

// DashboardService defines the interface for widget generation and system health
type DashboardService interface {
	GetWidgets(ctx context.Context, segment models.Segment, now time.Time) ([]models.Widget, error)
	GetSystemHealth(ctx context.Context, segment models.Segment, now time.Time) (*models.SystemHealth, error)
}

// AnalyticsService defines the interface for analytics business logic
type AnalyticsService interface {
	GetCorrelations(ctx context.Context, lagDays int) (map[string]models.Correlation, error)
	GetMomentum(ctx context.Context, now time.Time) (map[string]float64, error)
	GetAverages(ctx context.Context, windowDays int, now time.Time) (map[string]float64, error)
	GetComparisons(ctx context.Context, windowDays int, now time.Time) (map[string]models.WindowComparison, error)
	GetInsights(ctx context.Context, now time.Time) (map[string][]models.Insight, error)
}

// ReportService defines the interface for report generation and archival
type ReportService interface {
	GenerateReport(ctx context.Context, segment models.Segment, sections models.ReportSections, now time.Time) (*models.ReportSnapshot, error)
	GetReports(ctx context.Context) ([]models.ReportSnapshot, error)
	GetReport(ctx context.Context, reportID string) (*models.ReportSnapshot, error)
	DeleteReport(ctx context.Context, reportID string) error
}
