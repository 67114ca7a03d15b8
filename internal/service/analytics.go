package service

import (
	"context"
	"time"

	"github.com/orbitlabs/orbit-backend/internal/engine"
	"github.com/orbitlabs/orbit-backend/internal/models"
	"github.com/orbitlabs/orbit-backend/internal/repository"
)

type analyticsService struct {
	metricRepo repository.MetricRepository
	logRepo    repository.LogRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(metricRepo repository.MetricRepository, logRepo repository.LogRepository) AnalyticsService {
	return &analyticsService{
		metricRepo: metricRepo,
		logRepo:    logRepo,
	}
}

func (s *analyticsService) load(ctx context.Context) ([]models.MetricConfig, []models.LogEntry, error) {
	metrics, err := s.metricRepo.GetAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	logs, err := s.logRepo.GetAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	return metrics, logs, nil
}

func (s *analyticsService) GetCorrelations(ctx context.Context, lagDays int) (map[string]models.Correlation, error) {
	metrics, logs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return engine.LaggedCorrelations(metrics, logs, lagDays), nil
}

func (s *analyticsService) GetMomentum(ctx context.Context, now time.Time) (map[string]float64, error) {
	metrics, logs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return engine.CalculateMomentum(metrics, logs, now), nil
}

func (s *analyticsService) GetAverages(ctx context.Context, windowDays int, now time.Time) (map[string]float64, error) {
	metrics, logs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return engine.RollingAverages(metrics, logs, windowDays, now), nil
}

func (s *analyticsService) GetComparisons(ctx context.Context, windowDays int, now time.Time) (map[string]models.WindowComparison, error) {
	metrics, logs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return engine.WindowComparisons(metrics, logs, windowDays, now), nil
}

func (s *analyticsService) GetInsights(ctx context.Context, now time.Time) (map[string][]models.Insight, error) {
	metrics, logs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return engine.GenerateInsights(metrics, logs, now), nil
}
