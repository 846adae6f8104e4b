package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/eventflow/eventflow/internal/dto"
	"github.com/eventflow/eventflow/internal/models"
	"github.com/eventflow/eventflow/internal/service"
	"github.com/labstack/echo/v4"
)

// AdminHandler owns the moderation surface: event approval, refund
// moderation, categories, and the featured flag. All routes sit behind the
// admin role guard.
type AdminHandler struct {
	eventSvc    service.EventService
	refundSvc   service.RefundService
	categorySvc service.CategoryService
}

func NewAdminHandler(eventSvc service.EventService, refundSvc service.RefundService, categorySvc service.CategoryService) *AdminHandler {
	return &AdminHandler{
		eventSvc:    eventSvc,
		refundSvc:   refundSvc,
		categorySvc: categorySvc,
	}
}

func (h *AdminHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/events/pending", h.ListPendingEvents)
	g.POST("/events/:id/approve", h.ApproveEvent)
	g.POST("/events/:id/reject", h.RejectEvent)
	g.PUT("/events/:id/featured", h.SetFeatured)

	g.GET("/refunds/pending", h.ListPendingRefunds)
	g.POST("/refunds/:id/approve", h.ApproveRefund)
	g.POST("/refunds/:id/reject", h.RejectRefund)
	g.POST("/refunds/:id/process", h.ProcessRefund)

	g.POST("/categories", h.CreateCategory)
	g.GET("/categories", h.ListCategories)
	g.DELETE("/categories/:id", h.DeleteCategory)
}

func (h *AdminHandler) ListPendingEvents(c echo.Context) error {
	events, err := h.eventSvc.ListPending(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	resp := make([]dto.EventResponse, len(events))
	for i := range events {
		resp[i] = dto.ToEventResponse(&events[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) ApproveEvent(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}
	event, err := h.eventSvc.Approve(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *AdminHandler) RejectEvent(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	var req dto.RejectEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	event, err := h.eventSvc.Reject(c.Request().Context(), id, req.Reason)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *AdminHandler) SetFeatured(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	var req dto.SetFeaturedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	event, err := h.eventSvc.SetFeatured(c.Request().Context(), id, req.Featured)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *AdminHandler) ListPendingRefunds(c echo.Context) error {
	refunds, err := h.refundSvc.ListPending(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, refunds)
}

func (h *AdminHandler) ApproveRefund(c echo.Context) error {
	return h.refundAction(c, h.refundSvc.Approve)
}

func (h *AdminHandler) RejectRefund(c echo.Context) error {
	return h.refundAction(c, h.refundSvc.Reject)
}

func (h *AdminHandler) ProcessRefund(c echo.Context) error {
	return h.refundAction(c, h.refundSvc.Process)
}

func (h *AdminHandler) refundAction(c echo.Context, fn func(ctx context.Context, refundID uint) (*models.Refund, error)) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid refund id")
	}
	refund, err := fn(c.Request().Context(), uint(id))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, refund)
}

func (h *AdminHandler) CreateCategory(c echo.Context) error {
	var req dto.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	category, err := h.categorySvc.Create(c.Request().Context(), req.Name)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *AdminHandler) ListCategories(c echo.Context) error {
	categories, err := h.categorySvc.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *AdminHandler) DeleteCategory(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category id")
	}
	if err := h.categorySvc.Delete(c.Request().Context(), uint(id)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
