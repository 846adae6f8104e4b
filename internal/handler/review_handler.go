package handler

import (
	"net/http"
	"strconv"

	"github.com/eventflow/eventflow/internal/dto"
	"github.com/eventflow/eventflow/internal/middleware"
	"github.com/eventflow/eventflow/internal/service"
	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	reviewSvc       service.ReviewService
	refundSvc       service.RefundService
	announcementSvc service.AnnouncementService
}

func NewReviewHandler(reviewSvc service.ReviewService, refundSvc service.RefundService, announcementSvc service.AnnouncementService) *ReviewHandler {
	return &ReviewHandler{
		reviewSvc:       reviewSvc,
		refundSvc:       refundSvc,
		announcementSvc: announcementSvc,
	}
}

func (h *ReviewHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/events/:id/reviews", h.ListReviews)
}

func (h *ReviewHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/events/:id/reviews", h.CreateReview)
	g.POST("/refunds", h.RequestRefund)
	g.POST("/events/:id/announcements", h.CreateAnnouncement)
	g.GET("/events/:id/announcements", h.ListAnnouncements)
	g.POST("/announcements/:id/dispatch", h.DispatchAnnouncement)
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	var req dto.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	review, err := h.reviewSvc.Create(c.Request().Context(), middleware.UserID(c), id, req.Rating, req.Comment)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) ListReviews(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}
	reviews, err := h.reviewSvc.ListByEvent(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) RequestRefund(c echo.Context) error {
	var req dto.RefundRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	refund, err := h.refundSvc.Request(c.Request().Context(), middleware.UserID(c), req.TicketID, req.Reason)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, refund)
}

func (h *ReviewHandler) CreateAnnouncement(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	var req dto.CreateAnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	announcement, err := h.announcementSvc.Create(c.Request().Context(), id, middleware.UserID(c), req.Title, req.Message)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, announcement)
}

func (h *ReviewHandler) ListAnnouncements(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}
	announcements, err := h.announcementSvc.ListByEvent(c.Request().Context(), id, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, announcements)
}

func (h *ReviewHandler) DispatchAnnouncement(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid announcement id")
	}
	announcement, err := h.announcementSvc.Dispatch(c.Request().Context(), uint(id), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, announcement)
}
