package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/eventflow/eventflow/internal/dto"
	"github.com/eventflow/eventflow/internal/middleware"
	"github.com/eventflow/eventflow/internal/models"
	"github.com/eventflow/eventflow/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// --- Mock EventService ---

type mockEventService struct {
	createFn     func(ctx context.Context, organizerID string, event *models.Event, ticketTypes []models.TicketType) (*models.Event, error)
	approveFn    func(ctx context.Context, eventID uint) (*models.Event, error)
	rejectFn     func(ctx context.Context, eventID uint, reason string) (*models.Event, error)
	startFn      func(ctx context.Context, eventID uint, callerID string) (*models.Event, error)
	completeFn   func(ctx context.Context, eventID uint, callerID string) (*models.Event, error)
	cancelFn     func(ctx context.Context, eventID uint, callerID string) (*models.Event, error)
	updateFn     func(ctx context.Context, eventID uint, organizerID string, patch service.EventPatch) (*models.Event, error)
	deleteFn     func(ctx context.Context, eventID uint, organizerID string) error
	featuredFn   func(ctx context.Context, eventID uint, featured bool) (*models.Event, error)
	publicListFn func(ctx context.Context) ([]models.Event, error)
	publicShowFn func(ctx context.Context, slug string) (*models.Event, error)
	listMineFn   func(ctx context.Context, organizerID string) ([]models.Event, error)
	pendingFn    func(ctx context.Context) ([]models.Event, error)
}

func (m *mockEventService) Create(ctx context.Context, organizerID string, event *models.Event, ticketTypes []models.TicketType) (*models.Event, error) {
	return m.createFn(ctx, organizerID, event, ticketTypes)
}
func (m *mockEventService) Approve(ctx context.Context, eventID uint) (*models.Event, error) {
	return m.approveFn(ctx, eventID)
}
func (m *mockEventService) Reject(ctx context.Context, eventID uint, reason string) (*models.Event, error) {
	return m.rejectFn(ctx, eventID, reason)
}
func (m *mockEventService) Start(ctx context.Context, eventID uint, callerID string) (*models.Event, error) {
	return m.startFn(ctx, eventID, callerID)
}
func (m *mockEventService) Complete(ctx context.Context, eventID uint, callerID string) (*models.Event, error) {
	return m.completeFn(ctx, eventID, callerID)
}
func (m *mockEventService) Cancel(ctx context.Context, eventID uint, callerID string) (*models.Event, error) {
	return m.cancelFn(ctx, eventID, callerID)
}
func (m *mockEventService) Update(ctx context.Context, eventID uint, organizerID string, patch service.EventPatch) (*models.Event, error) {
	return m.updateFn(ctx, eventID, organizerID, patch)
}
func (m *mockEventService) Delete(ctx context.Context, eventID uint, organizerID string) error {
	return m.deleteFn(ctx, eventID, organizerID)
}
func (m *mockEventService) SetFeatured(ctx context.Context, eventID uint, featured bool) (*models.Event, error) {
	return m.featuredFn(ctx, eventID, featured)
}
func (m *mockEventService) PublicList(ctx context.Context) ([]models.Event, error) {
	return m.publicListFn(ctx)
}
func (m *mockEventService) PublicShow(ctx context.Context, slug string) (*models.Event, error) {
	return m.publicShowFn(ctx, slug)
}
func (m *mockEventService) ListByOrganizer(ctx context.Context, organizerID string) ([]models.Event, error) {
	return m.listMineFn(ctx, organizerID)
}
func (m *mockEventService) ListPending(ctx context.Context) ([]models.Event, error) {
	return m.pendingFn(ctx)
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, userID string) echo.Context {
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextUserID, userID)
	return c
}

// --- Tests ---

func TestCreateEvent_Handler_Success(t *testing.T) {
	var gotOrganizer string
	svc := &mockEventService{
		createFn: func(ctx context.Context, organizerID string, event *models.Event, ticketTypes []models.TicketType) (*models.Event, error) {
			gotOrganizer = organizerID
			event.ID = 1
			event.Slug = "summer-jazz-night"
			event.Status = models.EventPendingApproval
			return event, nil
		},
	}

	e := echo.New()
	body := `{"title":"Summer Jazz Night","category_id":3,"start_at":"2026-10-01T19:00:00Z","end_at":"2026-10-01T23:00:00Z","capacity":100,"ticket_types":[{"name":"General","price":"20","quantity":100,"sale_start_at":"2026-09-01T00:00:00Z","sale_end_at":"2026-10-01T00:00:00Z"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "org-1")

	h := NewEventHandler(svc)
	err := h.Create(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "org-1", gotOrganizer)

	var resp dto.EventResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, "summer-jazz-night", resp.Slug)
	assert.Equal(t, models.EventPendingApproval, resp.Status)
}

func TestCreateEvent_Handler_ValidationError(t *testing.T) {
	svc := &mockEventService{
		createFn: func(ctx context.Context, organizerID string, event *models.Event, ticketTypes []models.TicketType) (*models.Event, error) {
			return nil, service.ErrValidation
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(`{"title":""}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "org-1")

	h := NewEventHandler(svc)
	err := h.Create(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestPublicShow_Handler_Success(t *testing.T) {
	svc := &mockEventService{
		publicShowFn: func(ctx context.Context, slug string) (*models.Event, error) {
			return &models.Event{
				ID:     7,
				Title:  "Summer Jazz Night",
				Slug:   slug,
				Status: models.EventLive,
				TicketTypes: []models.TicketType{
					{ID: 1, Name: "General", Quantity: 100, Sold: 40},
				},
			}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/events/summer-jazz-night", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues("summer-jazz-night")

	h := NewEventHandler(svc)
	err := h.PublicShow(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.EventResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(7), resp.ID)
	assert.Len(t, resp.TicketTypes, 1)
	assert.Equal(t, 60, resp.TicketTypes[0].Available)
}

func TestPublicShow_Handler_HiddenEvent(t *testing.T) {
	svc := &mockEventService{
		publicShowFn: func(ctx context.Context, slug string) (*models.Event, error) {
			return nil, service.ErrEventNotFound
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/events/hidden-draft", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues("hidden-draft")

	h := NewEventHandler(svc)
	err := h.PublicShow(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestPublicList_Handler_Success(t *testing.T) {
	svc := &mockEventService{
		publicListFn: func(ctx context.Context) ([]models.Event, error) {
			return []models.Event{
				{ID: 1, Title: "One", Status: models.EventApproved},
				{ID: 2, Title: "Two", Status: models.EventLive},
			}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/events", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewEventHandler(svc)
	err := h.PublicList(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.EventResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestStartEvent_Handler_InvalidTransition(t *testing.T) {
	svc := &mockEventService{
		startFn: func(ctx context.Context, eventID uint, callerID string) (*models.Event, error) {
			return nil, service.ErrInvalidTransition
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/1/start", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "org-1")
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewEventHandler(svc)
	err := h.Start(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestStartEvent_Handler_Forbidden(t *testing.T) {
	svc := &mockEventService{
		startFn: func(ctx context.Context, eventID uint, callerID string) (*models.Event, error) {
			return nil, service.ErrForbidden
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/1/start", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "stranger")
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewEventHandler(svc)
	err := h.Start(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestCancelEvent_Handler_Success(t *testing.T) {
	svc := &mockEventService{
		cancelFn: func(ctx context.Context, eventID uint, callerID string) (*models.Event, error) {
			return &models.Event{ID: eventID, Status: models.EventCancelled}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/5/cancel", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "org-1")
	c.SetParamNames("id")
	c.SetParamValues("5")

	h := NewEventHandler(svc)
	err := h.Cancel(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.EventResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.EventCancelled, resp.Status)
}

func TestUpdateEvent_Handler_PatchPassthrough(t *testing.T) {
	var gotPatch service.EventPatch
	svc := &mockEventService{
		updateFn: func(ctx context.Context, eventID uint, organizerID string, patch service.EventPatch) (*models.Event, error) {
			gotPatch = patch
			return &models.Event{ID: eventID, Title: *patch.Title, Status: models.EventDraft}, nil
		},
	}

	e := echo.New()
	body := `{"title":"Renamed"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/events/3", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "org-1")
	c.SetParamNames("id")
	c.SetParamValues("3")

	h := NewEventHandler(svc)
	err := h.Update(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, gotPatch.Title)
	assert.Equal(t, "Renamed", *gotPatch.Title)
	assert.Nil(t, gotPatch.Description)
	assert.Nil(t, gotPatch.StartAt)
}

func TestDeleteEvent_Handler_Success(t *testing.T) {
	svc := &mockEventService{
		deleteFn: func(ctx context.Context, eventID uint, organizerID string) error {
			return nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/events/3", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "org-1")
	c.SetParamNames("id")
	c.SetParamValues("3")

	h := NewEventHandler(svc)
	err := h.Delete(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestEventHandler_InvalidID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/abc/start", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "org-1")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	h := NewEventHandler(nil)
	err := h.Start(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestListMine_Handler_UsesCaller(t *testing.T) {
	var gotCaller string
	svc := &mockEventService{
		listMineFn: func(ctx context.Context, organizerID string) ([]models.Event, error) {
			gotCaller = organizerID
			return []models.Event{{ID: 1, StartAt: time.Now()}}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/mine", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "org-9")

	h := NewEventHandler(svc)
	err := h.ListMine(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "org-9", gotCaller)
}
