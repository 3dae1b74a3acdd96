package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/dforero/ecobarrio-api/internal/domain/entity"
	repo "github.com/dforero/ecobarrio-api/internal/domain/repository"
	"github.com/dforero/ecobarrio-api/internal/infrastructure/storage"
)

var ErrReportNotFound = errors.New("report not found")

// ReportService handles citizen waste reports: photo storage, persistence,
// and full-text search when Elasticsearch is configured.
type ReportService struct {
	Repo           repo.ReportRepository
	Photos         storage.PhotoStore
	Logger         *logrus.Logger
	ES             *elasticsearch.Client
	ESReportsIndex string
}

func NewReportService(reportRepo repo.ReportRepository, photos storage.PhotoStore, logger *logrus.Logger, es *elasticsearch.Client, esReportsIndex string) *ReportService {
	return &ReportService{
		Repo:           reportRepo,
		Photos:         photos,
		Logger:         logger,
		ES:             es,
		ESReportsIndex: esReportsIndex,
	}
}

type CreateReportInput struct {
	Description    string
	WasteType      string
	Neighborhood   string
	Address        string
	DirectionNotes string
}

// PhotoUpload is one multipart file attached to a report.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

func (s *ReportService) Create(ctx context.Context, in CreateReportInput, photos []PhotoUpload) (*entity.Report, error) {
	urls := make([]string, 0, len(photos))
	for _, p := range photos {
		url, err := s.Photos.Save(ctx, p.Filename, p.ContentType, p.Reader)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}

	rep := &entity.Report{
		Description:    in.Description,
		WasteType:      in.WasteType,
		PhotoURLs:      urls,
		Status:         entity.ReportStatusReported,
		Neighborhood:   in.Neighborhood,
		Address:        in.Address,
		DirectionNotes: in.DirectionNotes,
	}
	if err := s.Repo.Create(ctx, rep); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"report_id": rep.ID, "waste_type": rep.WasteType}).Info("report created")
	_ = s.indexReport(ctx, rep)
	return rep, nil
}

func (s *ReportService) List(ctx context.Context) ([]*entity.Report, error) {
	return s.Repo.List(ctx)
}

func (s *ReportService) Get(ctx context.Context, id int64) (*entity.Report, error) {
	rep, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, ErrReportNotFound
	}
	return rep, nil
}

func (s *ReportService) UpdateStatus(ctx context.Context, id int64, status string) (*entity.Report, error) {
	rep, err := s.Repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"report_id": id, "status": status}).Info("report status updated")
	_ = s.indexReport(ctx, rep)
	return rep, nil
}

func (s *ReportService) indexReport(ctx context.Context, rep *entity.Report) error {
	if s.ES == nil || s.ESReportsIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":           rep.ID,
		"description":  rep.Description,
		"waste_type":   rep.WasteType,
		"status":       rep.Status,
		"neighborhood": rep.Neighborhood,
		"address":      rep.Address,
		"created_at":   rep.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":   rep.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESReportsIndex,
		DocumentID: strconv.FormatInt(rep.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("report_id", rep.ID).Warn("es index failed")
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithFields(logrus.Fields{"status": res.Status(), "report_id": rep.ID}).Warn("es index response error")
	}
	return nil
}

// Search performs a multi_match query over description, waste type, and
// neighborhood. Returns an empty slice when Elasticsearch is not configured.
func (s *ReportService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESReportsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"description^2", "waste_type", "neighborhood"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESReportsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
