package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/orbitlabs/orbit-backend/internal/logger"
	"github.com/orbitlabs/orbit-backend/internal/models"
	"github.com/orbitlabs/orbit-backend/internal/repository"
)

// ErrValidation marks a request the caller can fix; handlers map it to a
// 400 response.
var ErrValidation = errors.New("validation failed")

type metricService struct {
	metricRepo repository.MetricRepository
	logRepo    repository.LogRepository
}

// NewMetricService creates a new metric service
func NewMetricService(metricRepo repository.MetricRepository, logRepo repository.LogRepository) MetricService {
	return &metricService{
		metricRepo: metricRepo,
		logRepo:    logRepo,
	}
}

func (s *metricService) CreateMetric(ctx context.Context, req *models.CreateMetricRequest) (*models.MetricConfig, error) {
	kind, err := models.ParseMetricKind(req.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	widget := models.WidgetKind(req.WidgetType)
	if req.WidgetType != "" && !widget.Valid() {
		return nil, fmt.Errorf("%w: unknown widget type %q", ErrValidation, req.WidgetType)
	}

	now := time.Now()
	metric := &models.MetricConfig{
		ID:               uuid.NewString(),
		Label:            req.Label,
		Kind:             kind,
		Goal:             req.Goal,
		Frequency:        models.Frequency(req.Frequency),
		Color:            req.Color,
		Widget:           widget,
		Unit:             req.Unit,
		Range:            req.Range,
		Options:          req.Options,
		DashboardVisible: req.DashboardVisible,
		DisplayOrder:     req.DisplayOrder,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	return s.metricRepo.Create(ctx, metric)
}

func (s *metricService) GetMetric(ctx context.Context, metricID string) (*models.MetricConfig, error) {
	return s.metricRepo.GetByID(ctx, metricID)
}

func (s *metricService) GetMetrics(ctx context.Context) ([]models.MetricConfig, error) {
	return s.metricRepo.GetAll(ctx)
}

func (s *metricService) UpdateMetric(ctx context.Context, metricID string, req *models.UpdateMetricRequest) (*models.MetricConfig, error) {
	metric, err := s.metricRepo.GetByID(ctx, metricID)
	if err != nil {
		return nil, err
	}

	if req.Label != nil {
		metric.Label = *req.Label
	}
	if req.Goal.Set {
		metric.Goal = 0
		if req.Goal.Valid {
			metric.Goal = req.Goal.Value
		}
	}
	if req.Frequency != nil {
		metric.Frequency = models.Frequency(*req.Frequency)
	}
	if req.Color.Set {
		metric.Color = ""
		if req.Color.Valid {
			metric.Color = req.Color.Value
		}
	}
	if req.WidgetType != nil {
		widget := models.WidgetKind(*req.WidgetType)
		if !widget.Valid() {
			return nil, fmt.Errorf("%w: unknown widget type %q", ErrValidation, *req.WidgetType)
		}
		metric.Widget = widget
	}
	if req.Unit.Set {
		metric.Unit = ""
		if req.Unit.Valid {
			metric.Unit = req.Unit.Value
		}
	}
	if req.Range != nil {
		metric.Range = req.Range
	}
	if req.Options != nil {
		metric.Options = req.Options
	}
	if req.DashboardVisible != nil {
		metric.DashboardVisible = req.DashboardVisible
	}
	if req.DisplayOrder != nil {
		metric.DisplayOrder = *req.DisplayOrder
	}
	metric.UpdatedAt = time.Now()

	return s.metricRepo.Update(ctx, metricID, metric)
}

// DeleteMetric removes the metric and cascades to its log entries so no
// orphaned observations survive.
func (s *metricService) DeleteMetric(ctx context.Context, metricID string) error {
	if err := s.metricRepo.Delete(ctx, metricID); err != nil {
		return err
	}

	if err := s.logRepo.DeleteByMetricID(ctx, metricID); err != nil {
		log := logger.FromContext(ctx)
		log.Warn("failed to cascade log deletion", logger.Err(err), logger.String("metric_id", metricID))
	}
	return nil
}
