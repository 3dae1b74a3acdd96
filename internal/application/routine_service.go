package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/dforero/ecobarrio-api/internal/domain/entity"
	repo "github.com/dforero/ecobarrio-api/internal/domain/repository"
)

var ErrRoutineNotFound = errors.New("collection routine not found")

// RoutineService manages neighborhood collection schedules.
type RoutineService struct {
	Repo   repo.RoutineRepository
	Logger *logrus.Logger
}

func NewRoutineService(routineRepo repo.RoutineRepository, logger *logrus.Logger) *RoutineService {
	return &RoutineService{Repo: routineRepo, Logger: logger}
}

type RoutineInput struct {
	Neighborhood string
	StartHour    string
	EndHour      string
	Weekdays     string
}

func (s *RoutineService) Create(ctx context.Context, in RoutineInput) (*entity.CollectionRoutine, error) {
	rt := &entity.CollectionRoutine{
		Neighborhood: in.Neighborhood,
		StartHour:    in.StartHour,
		EndHour:      in.EndHour,
		Weekdays:     in.Weekdays,
	}
	if err := s.Repo.Create(ctx, rt); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"routine_id": rt.ID, "neighborhood": rt.Neighborhood}).Info("collection routine created")
	return rt, nil
}

func (s *RoutineService) List(ctx context.Context) ([]*entity.CollectionRoutine, error) {
	return s.Repo.List(ctx)
}

// ListByNeighborhood returns ErrRoutineNotFound when the neighborhood has no
// schedule at all, matching the lookup contract of the mobile client.
func (s *RoutineService) ListByNeighborhood(ctx context.Context, neighborhood string) ([]*entity.CollectionRoutine, error) {
	routines, err := s.Repo.ListByNeighborhood(ctx, neighborhood)
	if err != nil {
		return nil, err
	}
	if len(routines) == 0 {
		return nil, ErrRoutineNotFound
	}
	return routines, nil
}

func (s *RoutineService) Update(ctx context.Context, id int64, in RoutineInput) (*entity.CollectionRoutine, error) {
	rt := &entity.CollectionRoutine{
		ID:           id,
		Neighborhood: in.Neighborhood,
		StartHour:    in.StartHour,
		EndHour:      in.EndHour,
		Weekdays:     in.Weekdays,
	}
	if err := s.Repo.Update(ctx, rt); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}
	got, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if got == nil {
		// Row deleted between the update and the re-read.
		return nil, ErrRoutineNotFound
	}
	return got, nil
}

func (s *RoutineService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrRoutineNotFound
		}
		return err
	}
	s.Logger.WithField("routine_id", id).Info("collection routine deleted")
	return nil
}
