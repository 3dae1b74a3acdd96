package application_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dforero/ecobarrio-api/internal/application"
	"github.com/dforero/ecobarrio-api/internal/domain/entity"
	repo "github.com/dforero/ecobarrio-api/internal/domain/repository"
)

type fakeRoutineRepo struct {
	mu       sync.Mutex
	nextID   int64
	routines map[int64]*entity.CollectionRoutine
}

func newFakeRoutineRepo() *fakeRoutineRepo {
	return &fakeRoutineRepo{routines: map[int64]*entity.CollectionRoutine{}}
}

func (f *fakeRoutineRepo) Create(_ context.Context, r *entity.CollectionRoutine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	r.ID = f.nextID
	cp := *r
	f.routines[r.ID] = &cp
	return nil
}

func (f *fakeRoutineRepo) GetByID(_ context.Context, id int64) (*entity.CollectionRoutine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.routines[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRoutineRepo) List(_ context.Context) ([]*entity.CollectionRoutine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.CollectionRoutine, 0, len(f.routines))
	for _, r := range f.routines {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRoutineRepo) ListByNeighborhood(_ context.Context, neighborhood string) ([]*entity.CollectionRoutine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.CollectionRoutine, 0)
	for _, r := range f.routines {
		if r.Neighborhood == neighborhood {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRoutineRepo) Update(_ context.Context, in *entity.CollectionRoutine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.routines[in.ID]
	if !ok {
		return repo.ErrNotFound
	}
	r.Neighborhood = in.Neighborhood
	r.StartHour = in.StartHour
	r.EndHour = in.EndHour
	r.Weekdays = in.Weekdays
	return nil
}

func (f *fakeRoutineRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.routines[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.routines, id)
	return nil
}

func newRoutineService() *application.RoutineService {
	return application.NewRoutineService(newFakeRoutineRepo(), quietLogger())
}

func TestRoutineLifecycle(t *testing.T) {
	svc := newRoutineService()
	ctx := context.Background()

	rt, err := svc.Create(ctx, application.RoutineInput{
		Neighborhood: "Centro",
		StartHour:    "06:00",
		EndHour:      "08:00",
		Weekdays:     "monday,wednesday",
	})
	require.NoError(t, err)
	require.NotZero(t, rt.ID)

	got, err := svc.Update(ctx, rt.ID, application.RoutineInput{
		Neighborhood: "Centro",
		StartHour:    "07:00",
		EndHour:      "09:00",
		Weekdays:     "monday,wednesday",
	})
	require.NoError(t, err)
	require.Equal(t, "07:00", got.StartHour)

	require.NoError(t, svc.Delete(ctx, rt.ID))
	require.ErrorIs(t, svc.Delete(ctx, rt.ID), application.ErrRoutineNotFound)
}

func TestRoutinesByNeighborhood(t *testing.T) {
	svc := newRoutineService()
	ctx := context.Background()

	_, err := svc.Create(ctx, application.RoutineInput{Neighborhood: "Centro", StartHour: "06:00", EndHour: "08:00", Weekdays: "monday"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, application.RoutineInput{Neighborhood: "Centro", StartHour: "14:00", EndHour: "16:00", Weekdays: "thursday"})
	require.NoError(t, err)

	routines, err := svc.ListByNeighborhood(ctx, "Centro")
	require.NoError(t, err)
	require.Len(t, routines, 2)

	_, err = svc.ListByNeighborhood(ctx, "Nowhere")
	require.ErrorIs(t, err, application.ErrRoutineNotFound)
}

// routine repo whose rows disappear right after a successful write,
// simulating a concurrent delete between the update and the re-read.
type vanishingRoutineRepo struct {
	*fakeRoutineRepo
}

func (v *vanishingRoutineRepo) Update(ctx context.Context, r *entity.CollectionRoutine) error {
	if err := v.fakeRoutineRepo.Update(ctx, r); err != nil {
		return err
	}
	return v.fakeRoutineRepo.Delete(ctx, r.ID)
}

func TestUpdateRoutineDeletedConcurrently(t *testing.T) {
	repo := &vanishingRoutineRepo{fakeRoutineRepo: newFakeRoutineRepo()}
	svc := application.NewRoutineService(repo, quietLogger())
	ctx := context.Background()

	rt, err := svc.Create(ctx, application.RoutineInput{
		Neighborhood: "Centro", StartHour: "06:00", EndHour: "08:00", Weekdays: "monday",
	})
	require.NoError(t, err)

	got, err := svc.Update(ctx, rt.ID, application.RoutineInput{
		Neighborhood: "Centro", StartHour: "07:00", EndHour: "09:00", Weekdays: "monday",
	})
	require.ErrorIs(t, err, application.ErrRoutineNotFound)
	require.Nil(t, got)
}

func TestUpdateUnknownRoutine(t *testing.T) {
	svc := newRoutineService()
	_, err := svc.Update(context.Background(), 404, application.RoutineInput{
		Neighborhood: "Centro", StartHour: "06:00", EndHour: "08:00", Weekdays: "monday",
	})
	require.ErrorIs(t, err, application.ErrRoutineNotFound)
}
