package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/eventflow/eventflow/internal/dto"
	"github.com/eventflow/eventflow/internal/middleware"
	"github.com/eventflow/eventflow/internal/models"
	"github.com/eventflow/eventflow/internal/service"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// RegisterPublicRoutes mounts the unauthenticated discovery surface.
func (h *EventHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("", h.PublicList)
	g.GET("/:slug", h.PublicShow)
}

// RegisterOrganizerRoutes mounts the authenticated management surface.
func (h *EventHandler) RegisterOrganizerRoutes(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("/mine", h.ListMine)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/start", h.Start)
	g.POST("/:id/complete", h.Complete)
	g.POST("/:id/cancel", h.Cancel)
}

func (h *EventHandler) Create(c echo.Context) error {
	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		Location:    req.Location,
		Capacity:    req.Capacity,
	}
	ticketTypes := make([]models.TicketType, len(req.TicketTypes))
	for i, tt := range req.TicketTypes {
		ticketTypes[i] = models.TicketType{
			Name:        tt.Name,
			Price:       tt.Price,
			Quantity:    tt.Quantity,
			SaleStartAt: tt.SaleStartAt,
			SaleEndAt:   tt.SaleEndAt,
			Description: tt.Description,
		}
	}

	created, err := h.svc.Create(c.Request().Context(), middleware.UserID(c), event, ticketTypes)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToEventResponse(created))
}

func (h *EventHandler) PublicList(c echo.Context) error {
	events, err := h.svc.PublicList(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	resp := make([]dto.EventResponse, len(events))
	for i := range events {
		resp[i] = dto.ToEventResponse(&events[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) PublicShow(c echo.Context) error {
	event, err := h.svc.PublicShow(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) ListMine(c echo.Context) error {
	events, err := h.svc.ListByOrganizer(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	resp := make([]dto.EventResponse, len(events))
	for i := range events {
		resp[i] = dto.ToEventResponse(&events[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) Update(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	event, err := h.svc.Update(c.Request().Context(), id, middleware.UserID(c), service.EventPatch{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) Delete(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id, middleware.UserID(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *EventHandler) Start(c echo.Context) error {
	return h.lifecycle(c, h.svc.Start)
}

func (h *EventHandler) Complete(c echo.Context) error {
	return h.lifecycle(c, h.svc.Complete)
}

func (h *EventHandler) Cancel(c echo.Context) error {
	return h.lifecycle(c, h.svc.Cancel)
}

func (h *EventHandler) lifecycle(c echo.Context, fn func(ctx context.Context, eventID uint, callerID string) (*models.Event, error)) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}
	event, err := fn(c.Request().Context(), id, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func eventID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}
	return uint(id), nil
}
