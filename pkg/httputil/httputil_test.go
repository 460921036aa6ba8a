package httputil

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/paripprabhu/sneakopedia/pkg/errors"
	"github.com/paripprabhu/sneakopedia/pkg/logger"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	return httptest.NewRequest(http.MethodGet, "/api/v1/sneakers", nil)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, Response{Data: map[string]string{"hello": "world"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "world", data["hello"])
}

func TestWriteError_NotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, newRequest(t), apperrors.NotFound("sneaker", "s_404"), newTestLogger())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestWriteError_InvalidInput(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, newRequest(t), apperrors.InvalidInput("bad parameter"), newTestLogger())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
}

func TestWriteError_StoreFailureIsGeneric(t *testing.T) {
	rec := httptest.NewRecorder()
	err := fmt.Errorf("count sneakers: %w: dial tcp 10.3.2.1:5432: i/o timeout", apperrors.ErrServiceUnavail)
	WriteError(rec, newRequest(t), err, newTestLogger())

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SERVICE_UNAVAILABLE", resp.Error.Code)
	// Internal detail must not leak to the client.
	assert.NotContains(t, resp.Error.Message, "dial tcp")
	assert.Equal(t, "Something went wrong. Please try again.", resp.Error.Message)
}

func TestWriteError_UnknownErrorIsGeneric(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, newRequest(t), fmt.Errorf("pq: relation does not exist"), newTestLogger())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "relation")
}

func TestWriteError_IncludesRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := newRequest(t)
	req = req.WithContext(logger.WithCorrelationID(req.Context(), "corr-1"))
	WriteError(rec, req, apperrors.NotFound("sneaker", "s_1"), newTestLogger())

	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "corr-1", resp.Error.RequestID)
}
