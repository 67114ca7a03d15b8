package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/orbitlabs/orbit-backend/internal/models"
	"github.com/orbitlabs/orbit-backend/internal/repository"
)

var mockIDCounter int

func generateMockID() string {
	mockIDCounter++
	return fmt.Sprintf("mock-id-%d", mockIDCounter)
}

// mockMetricRepository is a mock implementation of MetricRepository for testing
type mockMetricRepository struct {
	metrics     map[string]*models.MetricConfig
	createCalls int
	updateCalls int
	deleteCalls int
}

func newMockMetricRepository() *mockMetricRepository {
	return &mockMetricRepository{
		metrics: make(map[string]*models.MetricConfig),
	}
}

func (m *mockMetricRepository) Create(ctx context.Context, metric *models.MetricConfig) (*models.MetricConfig, error) {
	m.createCalls++
	if metric.ID == "" {
		metric.ID = generateMockID()
	}
	m.metrics[metric.ID] = metric
	return metric, nil
}

func (m *mockMetricRepository) GetByID(ctx context.Context, id string) (*models.MetricConfig, error) {
	if metric, ok := m.metrics[id]; ok {
		return metric, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockMetricRepository) GetAll(ctx context.Context) ([]models.MetricConfig, error) {
	result := make([]models.MetricConfig, 0, len(m.metrics))
	for _, metric := range m.metrics {
		result = append(result, *metric)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockMetricRepository) Update(ctx context.Context, id string, metric *models.MetricConfig) (*models.MetricConfig, error) {
	m.updateCalls++
	if _, ok := m.metrics[id]; !ok {
		return nil, repository.ErrNotFound
	}
	m.metrics[id] = metric
	return metric, nil
}

func (m *mockMetricRepository) Delete(ctx context.Context, id string) error {
	m.deleteCalls++
	if _, ok := m.metrics[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.metrics, id)
	return nil
}

// mockLogRepository is a mock implementation of LogRepository for testing
type mockLogRepository struct {
	entries             map[string]*models.LogEntry
	createCalls         int
	deleteByMetricCalls int
}

func newMockLogRepository() *mockLogRepository {
	return &mockLogRepository{
		entries: make(map[string]*models.LogEntry),
	}
}

func (m *mockLogRepository) Create(ctx context.Context, entry *models.LogEntry) (*models.LogEntry, error) {
	m.createCalls++
	if entry.ID == "" {
		entry.ID = generateMockID()
	}
	m.entries[entry.ID] = entry
	return entry, nil
}

func (m *mockLogRepository) GetByID(ctx context.Context, id string) (*models.LogEntry, error) {
	if entry, ok := m.entries[id]; ok {
		return entry, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockLogRepository) GetAll(ctx context.Context) ([]models.LogEntry, error) {
	result := make([]models.LogEntry, 0, len(m.entries))
	for _, entry := range m.entries {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockLogRepository) GetByMetricID(ctx context.Context, metricID string) ([]models.LogEntry, error) {
	all, _ := m.GetAll(ctx)
	var result []models.LogEntry
	for _, entry := range all {
		if entry.MetricID == metricID {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (m *mockLogRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]models.LogEntry, error) {
	all, _ := m.GetAll(ctx)
	var result []models.LogEntry
	for _, entry := range all {
		if !entry.Timestamp.Before(start) && entry.Timestamp.Before(end) {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (m *mockLogRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.entries[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *mockLogRepository) DeleteByMetricID(ctx context.Context, metricID string) error {
	m.deleteByMetricCalls++
	for id, entry := range m.entries {
		if entry.MetricID == metricID {
			delete(m.entries, id)
		}
	}
	return nil
}

// mockTimeLogRepository is a mock implementation of TimeLogRepository for testing
type mockTimeLogRepository struct {
	timeLogs    map[string]*models.TimeLog
	createCalls int
}

func newMockTimeLogRepository() *mockTimeLogRepository {
	return &mockTimeLogRepository{
		timeLogs: make(map[string]*models.TimeLog),
	}
}

func (m *mockTimeLogRepository) Create(ctx context.Context, timeLog *models.TimeLog) (*models.TimeLog, error) {
	m.createCalls++
	if timeLog.ID == "" {
		timeLog.ID = generateMockID()
	}
	m.timeLogs[timeLog.ID] = timeLog
	return timeLog, nil
}

func (m *mockTimeLogRepository) GetAll(ctx context.Context) ([]models.TimeLog, error) {
	result := make([]models.TimeLog, 0, len(m.timeLogs))
	for _, timeLog := range m.timeLogs {
		result = append(result, *timeLog)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockTimeLogRepository) GetByActivityID(ctx context.Context, activityID string) ([]models.TimeLog, error) {
	all, _ := m.GetAll(ctx)
	var result []models.TimeLog
	for _, timeLog := range all {
		if timeLog.ActivityID == activityID {
			result = append(result, timeLog)
		}
	}
	return result, nil
}

func (m *mockTimeLogRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.timeLogs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.timeLogs, id)
	return nil
}

// mockReportRepository is a mock implementation of ReportRepository for testing
type mockReportRepository struct {
	reports    map[string]*models.ReportSnapshot
	saveCalls  int
	pruneCalls int
	pruneKeep  int
}

func newMockReportRepository() *mockReportRepository {
	return &mockReportRepository{
		reports: make(map[string]*models.ReportSnapshot),
	}
}

func (m *mockReportRepository) Save(ctx context.Context, snapshot *models.ReportSnapshot) (*models.ReportSnapshot, error) {
	m.saveCalls++
	if snapshot.ID == "" {
		snapshot.ID = generateMockID()
	}
	m.reports[snapshot.ID] = snapshot
	return snapshot, nil
}

func (m *mockReportRepository) GetAll(ctx context.Context) ([]models.ReportSnapshot, error) {
	result := make([]models.ReportSnapshot, 0, len(m.reports))
	for _, report := range m.reports {
		result = append(result, *report)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Timestamp.After(result[j].Timestamp) })
	return result, nil
}

func (m *mockReportRepository) GetByID(ctx context.Context, id string) (*models.ReportSnapshot, error) {
	if report, ok := m.reports[id]; ok {
		return report, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockReportRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.reports[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.reports, id)
	return nil
}

func (m *mockReportRepository) Prune(ctx context.Context, keep int) error {
	m.pruneCalls++
	m.pruneKeep = keep
	return nil
}
