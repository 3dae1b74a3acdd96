package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dforero/ecobarrio-api/internal/domain/entity"
	"github.com/dforero/ecobarrio-api/internal/domain/repository"
)

type ReportRepository struct {
	pool *pgxpool.Pool
}

func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

const reportColumns = `id, description, waste_type, photo_urls, status, neighborhood, address, direction_notes, created_at, updated_at`

func (r *ReportRepository) Create(ctx context.Context, rep *entity.Report) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO reports (description, waste_type, photo_urls, status, neighborhood, address, direction_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, rep.Description, rep.WasteType, rep.PhotoURLs, rep.Status, rep.Neighborhood, rep.Address, rep.DirectionNotes)
	return row.Scan(&rep.ID, &rep.CreatedAt, &rep.UpdatedAt)
}

func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*entity.Report, error) {
	rep := &entity.Report{}
	err := r.pool.QueryRow(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, id).Scan(
		&rep.ID, &rep.Description, &rep.WasteType, &rep.PhotoURLs, &rep.Status,
		&rep.Neighborhood, &rep.Address, &rep.DirectionNotes,
		&rep.CreatedAt, &rep.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *ReportRepository) List(ctx context.Context) ([]*entity.Report, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+reportColumns+` FROM reports ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := make([]*entity.Report, 0)
	for rows.Next() {
		rep := &entity.Report{}
		if err := rows.Scan(
			&rep.ID, &rep.Description, &rep.WasteType, &rep.PhotoURLs, &rep.Status,
			&rep.Neighborhood, &rep.Address, &rep.DirectionNotes,
			&rep.CreatedAt, &rep.UpdatedAt,
		); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

func (r *ReportRepository) UpdateStatus(ctx context.Context, id int64, status string) (*entity.Report, error) {
	rep := &entity.Report{}
	err := r.pool.QueryRow(ctx, `
		UPDATE reports SET status = $1, updated_at = now()
		WHERE id = $2
		RETURNING `+reportColumns+`
	`, status, id).Scan(
		&rep.ID, &rep.Description, &rep.WasteType, &rep.PhotoURLs, &rep.Status,
		&rep.Neighborhood, &rep.Address, &rep.DirectionNotes,
		&rep.CreatedAt, &rep.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rep, nil
}

var _ repository.ReportRepository = (*ReportRepository)(nil)
