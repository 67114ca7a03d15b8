package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/orbitlabs/orbit-backend/internal/engine"
	"github.com/orbitlabs/orbit-backend/internal/logger"
	"github.com/orbitlabs/orbit-backend/internal/models"
	"github.com/orbitlabs/orbit-backend/internal/repository"
)

// maxArchivedReports bounds the report archive; the oldest snapshots are
// pruned after each generation.
const maxArchivedReports = 50

type reportService struct {
	metricRepo repository.MetricRepository
	logRepo    repository.LogRepository
	reportRepo repository.ReportRepository
}

// NewReportService creates a new report service
func NewReportService(metricRepo repository.MetricRepository, logRepo repository.LogRepository, reportRepo repository.ReportRepository) ReportService {
	return &reportService{
		metricRepo: metricRepo,
		logRepo:    logRepo,
		reportRepo: reportRepo,
	}
}

func (s *reportService) GenerateReport(ctx context.Context, segment models.Segment, sections models.ReportSections, now time.Time) (*models.ReportSnapshot, error) {
	metrics, err := s.metricRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := s.logRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	data := engine.BuildReportData(metrics, logs, segment, now)
	content := engine.RenderReport(data, segment, len(metrics), len(logs), sections, now)

	snapshot := &models.ReportSnapshot{
		ID:        uuid.NewString(),
		Timestamp: now,
		Segment:   segment,
		Content:   content,
	}
	saved, err := s.reportRepo.Save(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	if err := s.reportRepo.Prune(ctx, maxArchivedReports); err != nil {
		log := logger.FromContext(ctx)
		log.Warn("failed to prune report archive", logger.Err(err))
	}
	return saved, nil
}

func (s *reportService) GetReports(ctx context.Context) ([]models.ReportSnapshot, error) {
	return s.reportRepo.GetAll(ctx)
}

func (s *reportService) GetReport(ctx context.Context, reportID string) (*models.ReportSnapshot, error) {
	return s.reportRepo.GetByID(ctx, reportID)
}

func (s *reportService) DeleteReport(ctx context.Context, reportID string) error {
	return s.reportRepo.Delete(ctx, reportID)
}
