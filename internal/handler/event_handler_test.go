package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonlab/agenda-api/internal/dto"
	"github.com/halcyonlab/agenda-api/internal/models"
	appErrors "github.com/halcyonlab/agenda-api/pkg/errors"
)

type fakeEventSrv struct {
	events []models.CalendarEvent
	event  *models.CalendarEvent
	err    error
}

func (f *fakeEventSrv) List(context.Context, string) ([]models.CalendarEvent, error) {
	return f.events, f.err
}

func (f *fakeEventSrv) Get(context.Context, string, string) (*models.CalendarEvent, error) {
	return f.event, f.err
}

func (f *fakeEventSrv) Create(context.Context, string, dto.CreateEventRequest) (*models.CalendarEvent, error) {
	return f.event, f.err
}

func (f *fakeEventSrv) Update(context.Context, string, string, dto.UpdateEventRequest) (*models.CalendarEvent, error) {
	return f.event, f.err
}

func (f *fakeEventSrv) Delete(context.Context, string, string) error {
	return f.err
}

func TestEventHandlerCreate(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	h := NewEventHandler(&fakeEventSrv{event: &models.CalendarEvent{ID: "e1", Title: "Gym", Start: start, End: start.Add(time.Hour)}})

	body := `{"title":"Gym","start":"2026-03-02T09:00:00Z","end":"2026-03-02T10:00:00Z"}`
	c, rec := authedContext(t, http.MethodPost, "/events", &body)
	h.Create(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	var event models.CalendarEvent
	require.NoError(t, json.Unmarshal(envelope.Data, &event))
	assert.Equal(t, "e1", event.ID)
}

func TestEventHandlerCreateRejectsMalformedBody(t *testing.T) {
	h := NewEventHandler(&fakeEventSrv{})

	body := `{"title":`
	c, rec := authedContext(t, http.MethodPost, "/events", &body)
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventHandlerGetNotFound(t *testing.T) {
	h := NewEventHandler(&fakeEventSrv{err: appErrors.ErrNotFound})

	c, rec := authedContext(t, http.MethodGet, "/events/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	h.Get(c)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "NOT_FOUND", envelope.Error["code"])
}

func TestEventHandlerDelete(t *testing.T) {
	h := NewEventHandler(&fakeEventSrv{})

	c, rec := authedContext(t, http.MethodDelete, "/events/e1", nil)
	c.Params = gin.Params{{Key: "id", Value: "e1"}}
	h.Delete(c)
	// Flush the buffered status; gin's engine does this after handlers run,
	// but handlers invoked directly on a test context never reach that step.
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestEventHandlerListRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewEventHandler(&fakeEventSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/events", nil)

	h.List(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
