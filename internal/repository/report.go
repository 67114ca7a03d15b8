package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/orbitlabs/orbit-backend/internal/models"
)

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new report snapshot repository
func NewReportRepository(db *sql.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Save(ctx context.Context, snapshot *models.ReportSnapshot) (*models.ReportSnapshot, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reports (id, timestamp, segment, content) VALUES (?, ?, ?, ?)`,
		snapshot.ID, formatTime(snapshot.Timestamp), string(snapshot.Segment), snapshot.Content,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	return snapshot, nil
}

func (r *reportRepository) GetAll(ctx context.Context) ([]models.ReportSnapshot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, timestamp, segment, content FROM reports ORDER BY timestamp DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var snapshots []models.ReportSnapshot
	for rows.Next() {
		snapshot, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		snapshots = append(snapshots, *snapshot)
	}
	return snapshots, rows.Err()
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*models.ReportSnapshot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, timestamp, segment, content FROM reports WHERE id = ?`, id)

	snapshot, err := scanReport(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return snapshot, nil
}

func (r *reportRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Prune keeps only the newest snapshots, bounding archive growth.
func (r *reportRepository) Prune(ctx context.Context, keep int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM reports WHERE id NOT IN (
			SELECT id FROM reports ORDER BY timestamp DESC LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("failed to prune reports: %w", err)
	}
	return nil
}

func scanReport(row rowScanner) (*models.ReportSnapshot, error) {
	var (
		s                  models.ReportSnapshot
		timestamp, segment string
	)
	if err := row.Scan(&s.ID, &timestamp, &segment, &s.Content); err != nil {
		return nil, err
	}
	s.Timestamp = parseTime(timestamp)
	s.Segment = models.Segment(segment)
	return &s, nil
}
