package repository

import (
	"context"

	"github.com/dforero/ecobarrio-api/internal/domain/entity"
)

// RoutineRepository defines persistence for collection schedules.
type RoutineRepository interface {
	Create(ctx context.Context, r *entity.CollectionRoutine) error
	GetByID(ctx context.Context, id int64) (*entity.CollectionRoutine, error)
	List(ctx context.Context) ([]*entity.CollectionRoutine, error)
	ListByNeighborhood(ctx context.Context, neighborhood string) ([]*entity.CollectionRoutine, error)
	Update(ctx context.Context, r *entity.CollectionRoutine) error
	Delete(ctx context.Context, id int64) error
}
