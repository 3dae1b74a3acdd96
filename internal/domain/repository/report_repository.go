package repository

import (
	"context"

	"github.com/dforero/ecobarrio-api/internal/domain/entity"
)

// ReportRepository defines persistence for citizen waste reports.
type ReportRepository interface {
	Create(ctx context.Context, r *entity.Report) error
	GetByID(ctx context.Context, id int64) (*entity.Report, error)
	List(ctx context.Context) ([]*entity.Report, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*entity.Report, error)
}
