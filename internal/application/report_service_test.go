package application_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dforero/ecobarrio-api/internal/application"
	"github.com/dforero/ecobarrio-api/internal/domain/entity"
	repo "github.com/dforero/ecobarrio-api/internal/domain/repository"
)

type fakeReportRepo struct {
	mu      sync.Mutex
	nextID  int64
	reports map[int64]*entity.Report
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: map[int64]*entity.Report{}}
}

func (f *fakeReportRepo) Create(_ context.Context, r *entity.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	r.ID = f.nextID
	cp := *r
	f.reports[r.ID] = &cp
	return nil
}

func (f *fakeReportRepo) GetByID(_ context.Context, id int64) (*entity.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReportRepo) List(_ context.Context) ([]*entity.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Report, 0, len(f.reports))
	for _, r := range f.reports {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeReportRepo) UpdateStatus(_ context.Context, id int64, status string) (*entity.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	r.Status = status
	cp := *r
	return &cp, nil
}

type fakePhotoStore struct {
	mu    sync.Mutex
	saved []string
}

func (f *fakePhotoStore) Save(_ context.Context, filename, _ string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, filename)
	return fmt.Sprintf("/api/uploads/photo-%d.jpg", len(f.saved)), nil
}

func newReportService(store *fakePhotoStore) (*application.ReportService, *fakeReportRepo) {
	r := newFakeReportRepo()
	return application.NewReportService(r, store, quietLogger(), nil, ""), r
}

func TestCreateReportStoresPhotos(t *testing.T) {
	store := &fakePhotoStore{}
	svc, _ := newReportService(store)

	rep, err := svc.Create(context.Background(), application.CreateReportInput{
		Description:  "overflowing container on the corner",
		WasteType:    "organic",
		Neighborhood: "Centro",
		Address:      "Calle 10 # 5-23",
	}, []application.PhotoUpload{
		{Filename: "a.jpg", ContentType: "image/jpeg", Reader: strings.NewReader("jpegbytes")},
		{Filename: "b.jpg", ContentType: "image/jpeg", Reader: strings.NewReader("morebytes")},
	})
	require.NoError(t, err)
	require.Equal(t, entity.ReportStatusReported, rep.Status)
	require.Len(t, rep.PhotoURLs, 2)
	require.Equal(t, []string{"a.jpg", "b.jpg"}, store.saved)
}

func TestGetReportNotFound(t *testing.T) {
	svc, _ := newReportService(&fakePhotoStore{})
	_, err := svc.Get(context.Background(), 42)
	require.ErrorIs(t, err, application.ErrReportNotFound)
}

func TestUpdateReportStatus(t *testing.T) {
	svc, _ := newReportService(&fakePhotoStore{})
	rep, err := svc.Create(context.Background(), application.CreateReportInput{
		Description:  "debris pile",
		WasteType:    "construction",
		Neighborhood: "Centro",
		Address:      "Carrera 43",
	}, nil)
	require.NoError(t, err)

	got, err := svc.UpdateStatus(context.Background(), rep.ID, entity.ReportStatusResolved)
	require.NoError(t, err)
	require.Equal(t, entity.ReportStatusResolved, got.Status)

	_, err = svc.UpdateStatus(context.Background(), 9999, entity.ReportStatusResolved)
	require.ErrorIs(t, err, application.ErrReportNotFound)
}

func TestSearchWithoutElasticsearch(t *testing.T) {
	svc, _ := newReportService(&fakePhotoStore{})
	hits, err := svc.Search(context.Background(), "plastic", 10)
	require.NoError(t, err)
	require.Empty(t, hits)
}
