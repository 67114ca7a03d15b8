package service

import (
	"context"
	"time"

	"github.com/orbitlabs/orbit-backend/internal/engine"
	"github.com/orbitlabs/orbit-backend/internal/models"
	"github.com/orbitlabs/orbit-backend/internal/repository"
)

type dashboardService struct {
	metricRepo  repository.MetricRepository
	logRepo     repository.LogRepository
	timeLogRepo repository.TimeLogRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(metricRepo repository.MetricRepository, logRepo repository.LogRepository, timeLogRepo repository.TimeLogRepository) DashboardService {
	return &dashboardService{
		metricRepo:  metricRepo,
		logRepo:     logRepo,
		timeLogRepo: timeLogRepo,
	}
}

func (s *dashboardService) GetWidgets(ctx context.Context, segment models.Segment, now time.Time) ([]models.Widget, error) {
	metrics, err := s.metricRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := s.logRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return engine.GenerateWidgets(metrics, logs, segment, now), nil
}

func (s *dashboardService) GetSystemHealth(ctx context.Context, segment models.Segment, now time.Time) (*models.SystemHealth, error) {
	metrics, err := s.metricRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := s.logRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	timeLogs, err := s.timeLogRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	health := engine.CalculateSystemHealth(metrics, logs, segment, timeLogs, now)
	return &health, nil
}
