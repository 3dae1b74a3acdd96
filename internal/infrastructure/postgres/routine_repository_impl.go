package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dforero/ecobarrio-api/internal/domain/entity"
	"github.com/dforero/ecobarrio-api/internal/domain/repository"
)

type RoutineRepository struct {
	pool *pgxpool.Pool
}

func NewRoutineRepository(pool *pgxpool.Pool) *RoutineRepository {
	return &RoutineRepository{pool: pool}
}

const routineColumns = `id, neighborhood, start_hour, end_hour, weekdays, created_at, updated_at`

func (r *RoutineRepository) Create(ctx context.Context, rt *entity.CollectionRoutine) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO collection_routines (neighborhood, start_hour, end_hour, weekdays)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, rt.Neighborhood, rt.StartHour, rt.EndHour, rt.Weekdays)
	return row.Scan(&rt.ID, &rt.CreatedAt, &rt.UpdatedAt)
}

func (r *RoutineRepository) GetByID(ctx context.Context, id int64) (*entity.CollectionRoutine, error) {
	rt := &entity.CollectionRoutine{}
	err := r.pool.QueryRow(ctx, `SELECT `+routineColumns+` FROM collection_routines WHERE id = $1`, id).Scan(
		&rt.ID, &rt.Neighborhood, &rt.StartHour, &rt.EndHour, &rt.Weekdays,
		&rt.CreatedAt, &rt.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *RoutineRepository) List(ctx context.Context) ([]*entity.CollectionRoutine, error) {
	return r.list(ctx, `SELECT `+routineColumns+` FROM collection_routines ORDER BY neighborhood, start_hour`)
}

func (r *RoutineRepository) ListByNeighborhood(ctx context.Context, neighborhood string) ([]*entity.CollectionRoutine, error) {
	return r.list(ctx, `SELECT `+routineColumns+` FROM collection_routines WHERE neighborhood = $1 ORDER BY start_hour`, neighborhood)
}

func (r *RoutineRepository) Update(ctx context.Context, rt *entity.CollectionRoutine) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE collection_routines
		SET neighborhood = $1, start_hour = $2, end_hour = $3, weekdays = $4, updated_at = now()
		WHERE id = $5
	`, rt.Neighborhood, rt.StartHour, rt.EndHour, rt.Weekdays, rt.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RoutineRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM collection_routines WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RoutineRepository) list(ctx context.Context, query string, args ...any) ([]*entity.CollectionRoutine, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routines := make([]*entity.CollectionRoutine, 0)
	for rows.Next() {
		rt := &entity.CollectionRoutine{}
		if err := rows.Scan(
			&rt.ID, &rt.Neighborhood, &rt.StartHour, &rt.EndHour, &rt.Weekdays,
			&rt.CreatedAt, &rt.UpdatedAt,
		); err != nil {
			return nil, err
		}
		routines = append(routines, rt)
	}
	return routines, rows.Err()
}

var _ repository.RoutineRepository = (*RoutineRepository)(nil)
