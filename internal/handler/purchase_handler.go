package handler

import (
	"net/http"
	"strconv"

	"github.com/eventflow/eventflow/internal/dto"
	"github.com/eventflow/eventflow/internal/middleware"
	"github.com/eventflow/eventflow/internal/models"
	"github.com/eventflow/eventflow/internal/service"
	"github.com/labstack/echo/v4"
)

type PurchaseHandler struct {
	purchaseSvc service.PurchaseService
	attendeeSvc service.AttendeeService
}

func NewPurchaseHandler(purchaseSvc service.PurchaseService, attendeeSvc service.AttendeeService) *PurchaseHandler {
	return &PurchaseHandler{purchaseSvc: purchaseSvc, attendeeSvc: attendeeSvc}
}

func (h *PurchaseHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/events/:id/purchase", h.Purchase)
	g.GET("/tickets", h.ListMyTickets)
	g.GET("/transactions", h.ListMyTransactions)
	g.GET("/transactions/:id", h.GetTransaction)
	g.GET("/events/:id/attendees", h.ListAttendees)
	g.POST("/attendees/:id/checkin", h.CheckIn)
	g.POST("/attendees/:id/noshow", h.MarkNoShow)
}

func (h *PurchaseHandler) Purchase(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	var req dto.PurchaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := h.purchaseSvc.Purchase(c.Request().Context(), service.PurchaseInput{
		UserID:        middleware.UserID(c),
		EventID:       id,
		TicketTypeID:  req.TicketTypeID,
		Quantity:      req.Quantity,
		TotalAmount:   req.TotalAmount,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToPurchaseResponse(result))
}

func (h *PurchaseHandler) ListMyTickets(c echo.Context) error {
	tickets, err := h.purchaseSvc.ListUserTickets(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	resp := make([]dto.TicketResponse, len(tickets))
	for i := range tickets {
		resp[i] = dto.ToTicketResponse(&tickets[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *PurchaseHandler) ListMyTransactions(c echo.Context) error {
	transactions, err := h.purchaseSvc.ListUserTransactions(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transactions)
}

func (h *PurchaseHandler) GetTransaction(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid transaction id")
	}
	transaction, err := h.purchaseSvc.GetTransaction(c.Request().Context(), uint(id))
	if err != nil {
		return httpError(err)
	}
	if transaction.UserID != middleware.UserID(c) {
		return echo.NewHTTPError(http.StatusNotFound, "transaction not found")
	}
	return c.JSON(http.StatusOK, transaction)
}

func (h *PurchaseHandler) ListAttendees(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	var status *models.AttendeeStatus
	if s := c.QueryParam("status"); s != "" {
		as := models.AttendeeStatus(s)
		status = &as
	}

	attendees, err := h.attendeeSvc.ListByEvent(c.Request().Context(), id, middleware.UserID(c), status)
	if err != nil {
		return httpError(err)
	}
	resp := make([]dto.AttendeeResponse, len(attendees))
	for i := range attendees {
		resp[i] = dto.ToAttendeeResponse(&attendees[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *PurchaseHandler) CheckIn(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid attendee id")
	}
	attendee, err := h.attendeeSvc.CheckIn(c.Request().Context(), uint(id), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToAttendeeResponse(attendee))
}

func (h *PurchaseHandler) MarkNoShow(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid attendee id")
	}
	attendee, err := h.attendeeSvc.MarkNoShow(c.Request().Context(), uint(id), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToAttendeeResponse(attendee))
}
