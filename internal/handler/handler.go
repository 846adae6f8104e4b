package handler

import (
	"errors"
	"net/http"

	"github.com/eventflow/eventflow/internal/service"
	"github.com/labstack/echo/v4"
)

// httpError maps service sentinel errors onto HTTP status codes. Every
// handler funnels service failures through here so the mapping stays in one
// place.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrTicketTypeNotFound),
		errors.Is(err, service.ErrTicketNotFound),
		errors.Is(err, service.ErrAttendeeNotFound),
		errors.Is(err, service.ErrRefundNotFound),
		errors.Is(err, service.ErrAnnouncementNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrNotAttended):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrSaleWindowClosed),
		errors.Is(err, service.ErrEventNotOnSale),
		errors.Is(err, service.ErrTicketNotRefundable),
		errors.Is(err, service.ErrRefundNotApproved):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInsufficientInventory),
		errors.Is(err, service.ErrDuplicateReview),
		errors.Is(err, service.ErrDuplicateRefund),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrCategoryInUse):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
