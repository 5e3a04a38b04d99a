package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferloop/tabclean/internal/cleaner"
	"github.com/inferloop/tabclean/pkg/models"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	engine := cleaner.NewEngine(nil, logger)
	srv, err := NewServer(nil, engine, nil, logger)
	require.NoError(t, err)
	return srv
}

func TestNewServerRequiresEngine(t *testing.T) {
	_, err := NewServer(nil, nil, nil, logrus.New())
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.GetRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestVersionEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.GetRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version"`)
}

func TestCleanEndpoint(t *testing.T) {
	srv := newTestServer(t)

	payload := CleanRequest{
		Rows: []models.Row{
			{"amount": models.String("1,200"), "name": models.String(" Alice ")},
			{"amount": models.Absent(), "name": models.Absent()},
		},
		Profile: models.DatasetProfile{Columns: []models.ColumnDescriptor{
			{Name: "amount", Type: models.ColumnTypeNumeric},
			{Name: "name", Type: models.ColumnTypeText},
		}},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clean", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.GetRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result models.CleaningResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Rows, 2)
	assert.Equal(t, models.Number(1200), result.Rows[0]["amount"])
	assert.Equal(t, models.String("Alice"), result.Rows[0]["name"])
	assert.Equal(t, models.Number(1200), result.Rows[1]["amount"])
	assert.Equal(t, models.String("Alice"), result.Rows[1]["name"])
	require.Len(t, result.Report, 2)
	assert.Contains(t, result.Report[0], "imputed median 1200.00")
}

func TestCleanEndpointRejectsBadJSON(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clean", bytes.NewReader([]byte("{not json")))
	srv.GetRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_FORMAT")
}

func TestUnknownRouteReturns404(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.GetRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStopWithoutStart(t *testing.T) {
	srv := newTestServer(t)
	assert.NoError(t, srv.Stop(context.Background()))
}
