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
)

type fakeSlotSrv struct {
	slot *dto.SlotResponse
	err  error
	req  dto.SlotSearchRequest
}

func (f *fakeSlotSrv) Search(_ context.Context, _ string, req dto.SlotSearchRequest) (*dto.SlotResponse, error) {
	f.req = req
	return f.slot, f.err
}

const slotSearchBody = `{"duration_min":60,"start_from":"2026-03-02T08:00:00Z","days":7,"day_start_hour":8,"day_end_hour":22}`

func TestSlotHandlerSearchRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewSlotHandler(&fakeSlotSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/slots/search", nil)

	h.Search(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSlotHandlerSearchFound(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	srv := &fakeSlotSrv{slot: &dto.SlotResponse{Start: start, End: start.Add(time.Hour)}}
	h := NewSlotHandler(srv)

	body := slotSearchBody
	c, rec := authedContext(t, http.MethodPost, "/slots/search", &body)
	h.Search(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	var slot dto.SlotResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &slot))
	assert.Equal(t, start, slot.Start)
	assert.Equal(t, 60, srv.req.DurationMin)
}

func TestSlotHandlerSearchNoSlot(t *testing.T) {
	h := NewSlotHandler(&fakeSlotSrv{})

	body := slotSearchBody
	c, rec := authedContext(t, http.MethodPost, "/slots/search", &body)
	h.Search(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data)
	assert.Equal(t, true, envelope.Meta["no_slot"])
	assert.NotEmpty(t, envelope.Meta["hint"])
}

func TestSlotHandlerSearchRejectsMalformedBody(t *testing.T) {
	h := NewSlotHandler(&fakeSlotSrv{})

	body := `{"duration_min":"sixty"}`
	c, rec := authedContext(t, http.MethodPost, "/slots/search", &body)
	h.Search(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
