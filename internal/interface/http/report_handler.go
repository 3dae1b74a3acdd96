package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dforero/ecobarrio-api/internal/application"
	"github.com/dforero/ecobarrio-api/internal/domain/entity"
	"github.com/dforero/ecobarrio-api/pkg/response"
)

// ReportHandler exposes the citizen waste-report endpoints.
type ReportHandler struct {
	Svc        *application.ReportService
	Logger     *logrus.Logger
	UploadsDir string // serves locally stored photos; empty when GCS is used
}

func NewReportHandler(svc *application.ReportService, logger *logrus.Logger, uploadsDir string) *ReportHandler {
	return &ReportHandler{Svc: svc, Logger: logger, UploadsDir: uploadsDir}
}

func reportJSON(rep *entity.Report) gin.H {
	return gin.H{
		"id":              rep.ID,
		"description":     rep.Description,
		"waste_type":      rep.WasteType,
		"photo_urls":      rep.PhotoURLs,
		"status":          rep.Status,
		"neighborhood":    rep.Neighborhood,
		"address":         rep.Address,
		"direction_notes": rep.DirectionNotes,
		"created_at":      rep.CreatedAt,
		"updated_at":      rep.UpdatedAt,
	}
}

// Create POST /api/reports (multipart/form-data, bearer token required)
func (h *ReportHandler) Create(c *gin.Context) {
	description := strings.TrimSpace(c.PostForm("description"))
	wasteType := strings.TrimSpace(c.PostForm("waste_type"))
	neighborhood := strings.TrimSpace(c.PostForm("neighborhood"))
	address := strings.TrimSpace(c.PostForm("address"))
	directionNotes := strings.TrimSpace(c.PostForm("direction_notes"))

	details := map[string]string{}
	if description == "" {
		details["description"] = "is required"
	}
	if wasteType == "" {
		details["waste_type"] = "is required"
	}
	if neighborhood == "" {
		details["neighborhood"] = "is required"
	}
	if address == "" {
		details["address"] = "is required"
	}
	if len(details) > 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", details)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid multipart payload", nil)
		return
	}

	photos := make([]application.PhotoUpload, 0)
	for _, fh := range form.File["photos"] {
		f, err := fh.Open()
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "unreadable photo attachment", nil)
			return
		}
		defer func() { _ = f.Close() }()
		photos = append(photos, application.PhotoUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Reader:      f,
		})
	}

	rep, err := h.Svc.Create(c.Request.Context(), application.CreateReportInput{
		Description:    description,
		WasteType:      wasteType,
		Neighborhood:   neighborhood,
		Address:        address,
		DirectionNotes: directionNotes,
	}, photos)
	if err != nil {
		h.Logger.WithError(err).Error("create report failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to create report", nil)
		return
	}
	response.Success(c, http.StatusCreated, reportJSON(rep), "report created", nil)
}

// List GET /api/reports
func (h *ReportHandler) List(c *gin.Context) {
	reports, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list reports failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to retrieve reports", nil)
		return
	}
	out := make([]gin.H, 0, len(reports))
	for _, rep := range reports {
		out = append(out, reportJSON(rep))
	}
	response.Success(c, http.StatusOK, out, "reports", map[string]any{"count": len(out)})
}

// Get GET /api/reports/:id
func (h *ReportHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid report id", nil)
		return
	}
	rep, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrReportNotFound) {
			response.Error[any](c, http.StatusNotFound, "report not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get report failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to retrieve report", nil)
		return
	}
	response.Success(c, http.StatusOK, reportJSON(rep), "report", nil)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=reported in_progress resolved"`
}

// UpdateStatus PUT /api/reports/:id/status (bearer token required)
func (h *ReportHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid report id", nil)
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"status": "must be one of: reported, in_progress, resolved"})
		return
	}
	rep, err := h.Svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, application.ErrReportNotFound) {
			response.Error[any](c, http.StatusNotFound, "report not found", nil)
			return
		}
		h.Logger.WithError(err).Error("update report status failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to update report", nil)
		return
	}
	response.Success(c, http.StatusOK, reportJSON(rep), "report status updated", nil)
}

// Search GET /api/search/reports?q=...&size=... (bearer token required)
func (h *ReportHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("report search failed")
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

// Image GET /api/uploads/:name serves photos stored on local disk.
func (h *ReportHandler) Image(c *gin.Context) {
	if h.UploadsDir == "" {
		response.Error[any](c, http.StatusNotFound, "image not found", nil)
		return
	}
	name := filepath.Base(c.Param("name")) // strip any path traversal
	c.File(filepath.Join(h.UploadsDir, name))
}
