package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/incident_reporter/internal/models"
	"github.com/shenikar/incident_reporter/internal/service"
)

type ExportRepository struct {
	db *pgxpool.Pool
}

func NewExportRepository(db *pgxpool.Pool) service.ExportRepository {
	return &ExportRepository{
		db: db,
	}
}

// Save добавляет запись о попытке выгрузки отчета
func (r *ExportRepository) Save(ctx context.Context, record *models.ExportRecord) error {
	query := `
		INSERT INTO report_exports (
			id, incident_id, reference_code, profile, outcome, valid,
			error_count, warning_count, page_count, byte_size, filename, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, COALESCE($12, NOW()))
		RETURNING created_at;
	`
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	var createdAt any
	if !record.CreatedAt.IsZero() {
		createdAt = record.CreatedAt
	}
	err := r.db.QueryRow(ctx, query,
		record.ID,
		record.IncidentID,
		record.ReferenceCode,
		record.Profile,
		record.Outcome,
		record.Valid,
		record.ErrorCount,
		record.WarningCount,
		record.PageCount,
		record.ByteSize,
		record.Filename,
		createdAt,
	).Scan(&record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save export record: %w", err)
	}
	return nil
}

// ListByIncident возвращает журнал выгрузок инцидента, новые сначала
func (r *ExportRepository) ListByIncident(ctx context.Context, incidentID uuid.UUID, page, pageSize int) ([]*models.ExportRecord, error) {
	// рассчитываем смещение
	offset := (page - 1) * pageSize

	query := `
		SELECT
			id,
			incident_id,
			reference_code,
			profile,
			outcome,
			valid,
			error_count,
			warning_count,
			page_count,
			byte_size,
			filename,
			created_at
		FROM report_exports
		WHERE incident_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.db.Query(ctx, query, incidentID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list export records: %w", err)
	}
	defer rows.Close()

	records := make([]*models.ExportRecord, 0)
	for rows.Next() {
		record := &models.ExportRecord{}
		err := rows.Scan(
			&record.ID,
			&record.IncidentID,
			&record.ReferenceCode,
			&record.Profile,
			&record.Outcome,
			&record.Valid,
			&record.ErrorCount,
			&record.WarningCount,
			&record.PageCount,
			&record.ByteSize,
			&record.Filename,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan export row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return records, nil
}
