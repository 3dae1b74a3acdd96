package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dforero/ecobarrio-api/internal/application"
	"github.com/dforero/ecobarrio-api/internal/domain/entity"
	"github.com/dforero/ecobarrio-api/pkg/response"
	"github.com/dforero/ecobarrio-api/pkg/validation"
)

// RoutineHandler exposes the neighborhood collection-schedule endpoints.
type RoutineHandler struct {
	Svc    *application.RoutineService
	Logger *logrus.Logger
}

func NewRoutineHandler(svc *application.RoutineService, logger *logrus.Logger) *RoutineHandler {
	return &RoutineHandler{Svc: svc, Logger: logger}
}

type routineRequest struct {
	Neighborhood string `json:"neighborhood" binding:"required"`
	StartHour    string `json:"start_hour" binding:"required"`
	EndHour      string `json:"end_hour" binding:"required"`
	Weekdays     string `json:"weekdays" binding:"required"`
}

func routineJSON(rt *entity.CollectionRoutine) gin.H {
	return gin.H{
		"id":           rt.ID,
		"neighborhood": rt.Neighborhood,
		"start_hour":   rt.StartHour,
		"end_hour":     rt.EndHour,
		"weekdays":     rt.Weekdays,
		"created_at":   rt.CreatedAt,
		"updated_at":   rt.UpdatedAt,
	}
}

// Create POST /api/routines (bearer token required)
func (h *RoutineHandler) Create(c *gin.Context) {
	var req routineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	rt, err := h.Svc.Create(c.Request.Context(), application.RoutineInput{
		Neighborhood: req.Neighborhood,
		StartHour:    req.StartHour,
		EndHour:      req.EndHour,
		Weekdays:     req.Weekdays,
	})
	if err != nil {
		h.Logger.WithError(err).Error("create routine failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to create routine", nil)
		return
	}
	response.Success(c, http.StatusCreated, routineJSON(rt), "routine created", nil)
}

// List GET /api/routines
func (h *RoutineHandler) List(c *gin.Context) {
	routines, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list routines failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to retrieve routines", nil)
		return
	}
	out := make([]gin.H, 0, len(routines))
	for _, rt := range routines {
		out = append(out, routineJSON(rt))
	}
	response.Success(c, http.StatusOK, out, "routines", map[string]any{"count": len(out)})
}

// ByNeighborhood GET /api/routines/neighborhood/:name
func (h *RoutineHandler) ByNeighborhood(c *gin.Context) {
	routines, err := h.Svc.ListByNeighborhood(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, application.ErrRoutineNotFound) {
			response.Error[any](c, http.StatusNotFound, "no routines for neighborhood", nil)
			return
		}
		h.Logger.WithError(err).Error("routines by neighborhood failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to retrieve routines", nil)
		return
	}
	out := make([]gin.H, 0, len(routines))
	for _, rt := range routines {
		out = append(out, routineJSON(rt))
	}
	response.Success(c, http.StatusOK, out, "routines", map[string]any{"count": len(out)})
}

// Update PUT /api/routines/:id (bearer token required)
func (h *RoutineHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid routine id", nil)
		return
	}
	var req routineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	rt, err := h.Svc.Update(c.Request.Context(), id, application.RoutineInput{
		Neighborhood: req.Neighborhood,
		StartHour:    req.StartHour,
		EndHour:      req.EndHour,
		Weekdays:     req.Weekdays,
	})
	if err != nil {
		if errors.Is(err, application.ErrRoutineNotFound) {
			response.Error[any](c, http.StatusNotFound, "routine not found", nil)
			return
		}
		h.Logger.WithError(err).Error("update routine failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to update routine", nil)
		return
	}
	response.Success(c, http.StatusOK, routineJSON(rt), "routine updated", nil)
}

// Delete DELETE /api/routines/:id (bearer token required)
func (h *RoutineHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid routine id", nil)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, application.ErrRoutineNotFound) {
			response.Error[any](c, http.StatusNotFound, "routine not found", nil)
			return
		}
		h.Logger.WithError(err).Error("delete routine failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to delete routine", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "routine deleted", nil)
}
