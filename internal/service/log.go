package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/orbitlabs/orbit-backend/internal/models"
	"github.com/orbitlabs/orbit-backend/internal/repository"
)

type logService struct {
	logRepo     repository.LogRepository
	metricRepo  repository.MetricRepository
	timeLogRepo repository.TimeLogRepository
}

// NewLogService creates a new log service
func NewLogService(logRepo repository.LogRepository, metricRepo repository.MetricRepository, timeLogRepo repository.TimeLogRepository) LogService {
	return &logService{
		logRepo:     logRepo,
		metricRepo:  metricRepo,
		timeLogRepo: timeLogRepo,
	}
}

// CreateLog validates the request before touching storage: a missing
// metric id, unknown metric, absent value, or malformed timestamp is
// rejected outright rather than stored half-formed.
func (s *logService) CreateLog(ctx context.Context, req *models.CreateLogRequest) (*models.LogEntry, error) {
	if req.MetricID == "" {
		return nil, fmt.Errorf("%w: metric_id is required", ErrValidation)
	}
	if req.Value == nil {
		return nil, fmt.Errorf("%w: value is required", ErrValidation)
	}
	if req.Timestamp == "" {
		return nil, fmt.Errorf("%w: timestamp is required", ErrValidation)
	}

	timestamp, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid timestamp: %v", ErrValidation, err)
	}

	if _, err := s.metricRepo.GetByID(ctx, req.MetricID); err != nil {
		return nil, err
	}

	entry := &models.LogEntry{
		ID:        uuid.NewString(),
		MetricID:  req.MetricID,
		Value:     *req.Value,
		Timestamp: timestamp,
		CreatedAt: time.Now(),
	}
	return s.logRepo.Create(ctx, entry)
}

func (s *logService) GetLogs(ctx context.Context) ([]models.LogEntry, error) {
	return s.logRepo.GetAll(ctx)
}

func (s *logService) GetMetricLogs(ctx context.Context, metricID string) ([]models.LogEntry, error) {
	return s.logRepo.GetByMetricID(ctx, metricID)
}

func (s *logService) DeleteLog(ctx context.Context, logID string) error {
	return s.logRepo.Delete(ctx, logID)
}

func (s *logService) CreateTimeLog(ctx context.Context, req *models.CreateTimeLogRequest) (*models.TimeLog, error) {
	if req.ActivityID == "" {
		return nil, fmt.Errorf("%w: activity_id is required", ErrValidation)
	}
	if req.StartTime == "" {
		return nil, fmt.Errorf("%w: start_time is required", ErrValidation)
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start_time: %v", ErrValidation, err)
	}

	timeLog := &models.TimeLog{
		ID:         uuid.NewString(),
		ActivityID: req.ActivityID,
		StartTime:  startTime,
		Duration:   req.Duration,
		Notes:      req.Notes,
		CreatedAt:  time.Now(),
	}

	if req.EndTime != "" {
		endTime, err := time.Parse(time.RFC3339, req.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end_time: %v", ErrValidation, err)
		}
		timeLog.EndTime = &endTime
		if timeLog.Duration == 0 {
			timeLog.Duration = endTime.Sub(startTime).Hours()
		}
	}

	return s.timeLogRepo.Create(ctx, timeLog)
}

func (s *logService) GetTimeLogs(ctx context.Context) ([]models.TimeLog, error) {
	return s.timeLogRepo.GetAll(ctx)
}

func (s *logService) DeleteTimeLog(ctx context.Context, timeLogID string) error {
	return s.timeLogRepo.Delete(ctx, timeLogID)
}
