package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Treedy2020/FinalCheck/internal/domain"
)

// StoredReport is one persisted analysis run.
type StoredReport struct {
	ID           uuid.UUID               `json:"id"`
	DocumentName string                  `json:"documentName"`
	PageCount    int                     `json:"pageCount"`
	Overall      domain.Verdict          `json:"overall"`
	Report       domain.ComplianceReport `json:"report"`
	CreatedAt    time.Time               `json:"createdAt"`
}

// ReportSummary is the listing view without the full report body.
type ReportSummary struct {
	ID           uuid.UUID      `json:"id"`
	DocumentName string         `json:"documentName"`
	PageCount    int            `json:"pageCount"`
	Overall      domain.Verdict `json:"overall"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// ReportRepository handles report persistence.
type ReportRepository struct {
	db DB
}

// NewReportRepository creates a new report repository.
func NewReportRepository(db DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create persists a report and returns its assigned id.
func (r *ReportRepository) Create(ctx context.Context, rep domain.ComplianceReport) (uuid.UUID, error) {
	id := uuid.New()

	body, err := json.Marshal(rep)
	if err != nil {
		return uuid.Nil, domain.StorageError("marshal report", err)
	}

	query := `
		INSERT INTO reports (id, document_name, page_count, overall, report, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		id.String(), rep.DocumentName, rep.PageCount, string(rep.Overall),
		string(body), time.Now().UTC(),
	)
	if err != nil {
		return uuid.Nil, domain.StorageError("insert report", err)
	}
	return id, nil
}

// GetByID retrieves a stored report by id.
func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*StoredReport, error) {
	query := `
		SELECT id, document_name, page_count, overall, report, created_at
		FROM reports WHERE id = ?
	`
	var (
		rawID   string
		overall string
		body    string
		stored  StoredReport
	)
	err := r.db.QueryRowContext(ctx, query, id.String()).Scan(
		&rawID, &stored.DocumentName, &stored.PageCount, &overall, &body, &stored.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, domain.StorageError("query report", err)
	}

	stored.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, domain.StorageError("parse report id", err)
	}
	stored.Overall = domain.Verdict(overall)
	if err := json.Unmarshal([]byte(body), &stored.Report); err != nil {
		return nil, domain.StorageError("unmarshal report", err)
	}
	return &stored, nil
}

// List returns report summaries, newest first.
func (r *ReportRepository) List(ctx context.Context, limit int) ([]ReportSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, document_name, page_count, overall, created_at
		FROM reports
		ORDER BY created_at DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, domain.StorageError("list reports", err)
	}
	defer rows.Close()

	summaries := make([]ReportSummary, 0, limit)
	for rows.Next() {
		var (
			rawID   string
			overall string
			s       ReportSummary
		)
		if err := rows.Scan(&rawID, &s.DocumentName, &s.PageCount, &overall, &s.CreatedAt); err != nil {
			return nil, domain.StorageError("scan report row", err)
		}
		s.ID, err = uuid.Parse(rawID)
		if err != nil {
			return nil, domain.StorageError("parse report id", err)
		}
		s.Overall = domain.Verdict(overall)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageError("iterate report rows", err)
	}
	return summaries, nil
}

// Delete removes a stored report.
func (r *ReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id.String())
	if err != nil {
		return domain.StorageError("delete report", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
