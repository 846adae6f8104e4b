package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/eventflow/eventflow/internal/dto"
	"github.com/eventflow/eventflow/internal/models"
	"github.com/eventflow/eventflow/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// --- Mock RefundService ---

type mockRefundService struct {
	requestFn func(ctx context.Context, userID string, ticketID uint, reason string) (*models.Refund, error)
	approveFn func(ctx context.Context, refundID uint) (*models.Refund, error)
	rejectFn  func(ctx context.Context, refundID uint) (*models.Refund, error)
	processFn func(ctx context.Context, refundID uint) (*models.Refund, error)
	pendingFn func(ctx context.Context) ([]models.Refund, error)
}

func (m *mockRefundService) Request(ctx context.Context, userID string, ticketID uint, reason string) (*models.Refund, error) {
	return m.requestFn(ctx, userID, ticketID, reason)
}
func (m *mockRefundService) Approve(ctx context.Context, refundID uint) (*models.Refund, error) {
	return m.approveFn(ctx, refundID)
}
func (m *mockRefundService) Reject(ctx context.Context, refundID uint) (*models.Refund, error) {
	return m.rejectFn(ctx, refundID)
}
func (m *mockRefundService) Process(ctx context.Context, refundID uint) (*models.Refund, error) {
	return m.processFn(ctx, refundID)
}
func (m *mockRefundService) ListPending(ctx context.Context) ([]models.Refund, error) {
	return m.pendingFn(ctx)
}

// --- Mock CategoryService ---

type mockCategoryService struct {
	createFn func(ctx context.Context, name string) (*models.Category, error)
	listFn   func(ctx context.Context) ([]models.Category, error)
	deleteFn func(ctx context.Context, id uint) error
}

func (m *mockCategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	return m.createFn(ctx, name)
}
func (m *mockCategoryService) List(ctx context.Context) ([]models.Category, error) {
	return m.listFn(ctx)
}
func (m *mockCategoryService) Delete(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}

// --- Tests ---

func TestApproveEvent_Handler_Success(t *testing.T) {
	svc := &mockEventService{
		approveFn: func(ctx context.Context, eventID uint) (*models.Event, error) {
			return &models.Event{ID: eventID, Status: models.EventApproved}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/events/4/approve", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("4")

	h := NewAdminHandler(svc, nil, nil)
	err := h.ApproveEvent(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.EventResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.EventApproved, resp.Status)
}

func TestApproveEvent_Handler_NotPending(t *testing.T) {
	svc := &mockEventService{
		approveFn: func(ctx context.Context, eventID uint) (*models.Event, error) {
			return nil, service.ErrInvalidTransition
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/events/4/approve", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("4")

	h := NewAdminHandler(svc, nil, nil)
	err := h.ApproveEvent(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestRejectEvent_Handler_PassesReason(t *testing.T) {
	var gotReason string
	svc := &mockEventService{
		rejectFn: func(ctx context.Context, eventID uint, reason string) (*models.Event, error) {
			gotReason = reason
			return &models.Event{ID: eventID, Status: models.EventRejected, RejectReason: reason}, nil
		},
	}

	e := echo.New()
	body := `{"reason":"duplicate listing"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/events/4/reject", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("4")

	h := NewAdminHandler(svc, nil, nil)
	err := h.RejectEvent(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "duplicate listing", gotReason)
}

func TestProcessRefund_Handler_NotApproved(t *testing.T) {
	svc := &mockRefundService{
		processFn: func(ctx context.Context, refundID uint) (*models.Refund, error) {
			return nil, service.ErrRefundNotApproved
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/refunds/9/process", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("9")

	h := NewAdminHandler(nil, svc, nil)
	err := h.ProcessRefund(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestProcessRefund_Handler_Success(t *testing.T) {
	svc := &mockRefundService{
		processFn: func(ctx context.Context, refundID uint) (*models.Refund, error) {
			return &models.Refund{ID: refundID, Status: models.RefundProcessed}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/refunds/9/process", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("9")

	h := NewAdminHandler(nil, svc, nil)
	err := h.ProcessRefund(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.Refund
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.RefundProcessed, resp.Status)
}

func TestDeleteCategory_Handler_InUse(t *testing.T) {
	svc := &mockCategoryService{
		deleteFn: func(ctx context.Context, id uint) error {
			return service.ErrCategoryInUse
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/categories/2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("2")

	h := NewAdminHandler(nil, nil, svc)
	err := h.DeleteCategory(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestCreateCategory_Handler_Success(t *testing.T) {
	svc := &mockCategoryService{
		createFn: func(ctx context.Context, name string) (*models.Category, error) {
			return &models.Category{ID: 1, Name: name, Slug: "live-music"}, nil
		},
	}

	e := echo.New()
	body := `{"name":"Live Music"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/categories", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewAdminHandler(nil, nil, svc)
	err := h.CreateCategory(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
}
