package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/incident_reporter/internal/config"
	reporterrors "github.com/shenikar/incident_reporter/internal/errors"
	"github.com/shenikar/incident_reporter/internal/models"
	"github.com/shenikar/incident_reporter/internal/render"
	"github.com/shenikar/incident_reporter/internal/service"
	"github.com/shenikar/incident_reporter/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var apiKeyHeader = map[string]string{"X-API-Key": "test-api-key"}

// newTestHandler создает новый экземпляр Handler с мокированным сервисом
func newTestHandler(t *testing.T) (*Handler, *mocks.MockReportService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockReportService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys:      []string{"test-api-key"},
		MaxBodyBytes: 64 << 10,
	}

	handler := NewHandler(mockService, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := handler.NewRouter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "# metrics\n")
	}))

	return handler, mockService, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func testRecord() *models.IncidentRecord {
	return &models.IncidentRecord{
		ID:             uuid.New(),
		ReferenceCode:  "INC-2026-0042",
		Category:       models.CategoryPersonalInjury,
		DateOfIncident: "2026-10-19",
		TimeOfIncident: "14:30",
		Location:       models.Location{ManualAddress: "Unit 4, Riverside Trading Estate, Leeds"},
		ReportedBy:     models.Person{Name: "Alex Morgan"},
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func TestValidateIncident_BaseRules(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	expected := models.ValidationResult{
		Valid:    true,
		Errors:   []models.Finding{},
		Warnings: []models.Finding{{Field: "attachments", Message: "No attachments", Section: "attachments"}},
	}

	mockService.EXPECT().ValidateForExport(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	mockService.EXPECT().
		Validate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *models.IncidentRecord) models.ValidationResult {
			assert.Equal(t, "INC-2026-0042", r.ReferenceCode)
			return expected
		}).Times(1)

	w := makeRequest(router, "POST", "/api/v1/incidents/validate", jsonBody(t, testRecord()), apiKeyHeader)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ValidationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.NotNil(t, resp.Errors)
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, "attachments", resp.Warnings[0].Field)
}

func TestValidateIncident_QueryFlagsSwitchToExport(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().Validate(gomock.Any(), gomock.Any()).Times(0)
	mockService.EXPECT().
		ValidateForExport(gomock.Any(), gomock.Any(), models.ExportOptions{SummaryOnly: true, IncludeSignatures: true}).
		Return(models.ValidationResult{
			Valid:  false,
			Errors: []models.Finding{{Field: "signatures.reporter", Message: "Reporter signature is required", Section: "signatures"}},
		}).Times(1)

	w := makeRequest(router, "POST", "/api/v1/incidents/validate?summaryOnly=true&includeSignatures=true",
		jsonBody(t, testRecord()), apiKeyHeader)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ValidationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, "signatures.reporter", resp.Errors[0].Field)
	assert.NotNil(t, resp.Warnings)
}

func TestValidateIncident_InvalidJSON(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().Validate(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "POST", "/api/v1/incidents/validate", bytes.NewBufferString(`{"category": "personal_injury"`), apiKeyHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestValidateIncident_BodyTooLarge(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().Validate(gomock.Any(), gomock.Any()).Times(0)

	record := testRecord()
	record.IncidentDescription.WhatHappened = strings.Repeat("x", 70<<10)
	w := makeRequest(router, "POST", "/api/v1/incidents/validate", jsonBody(t, record), apiKeyHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateReport_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := GenerateReportRequest{
		Incident: testRecord(),
		Options:  ExportOptionsRequest{SummaryOnly: true, IncludeSignatures: true},
	}

	mockService.EXPECT().
		Generate(gomock.Any(), gomock.Any(), models.ExportOptions{SummaryOnly: true, IncludeSignatures: true}, gomock.Any()).
		DoAndReturn(func(_ context.Context, r *models.IncidentRecord, _ models.ExportOptions, sink render.Sink) (*service.GeneratedReport, error) {
			_, err := sink.Write([]byte("%PDF-1.3 test"))
			require.NoError(t, err)
			return &service.GeneratedReport{
				Filename:   "Summary_INC-2026-0042_2026-10-19.pdf",
				Validation: models.ValidationResult{Valid: true, Warnings: []models.Finding{{Field: "attachments"}}},
				Render:     &render.Result{PageCount: 2, Bytes: 13},
			}, nil
		}).Times(1)

	w := makeRequest(router, "POST", "/api/v1/reports", jsonBody(t, reqBody), apiKeyHeader)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Summary_INC-2026-0042_2026-10-19.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "2", w.Header().Get(HeaderReportPages))
	assert.Equal(t, "1", w.Header().Get(HeaderReportWarnings))
	assert.Equal(t, "%PDF-1.3 test", w.Body.String())
}

func TestGenerateReport_ValidationFailure(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := GenerateReportRequest{Incident: testRecord()}

	mockService.EXPECT().
		Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&service.GeneratedReport{
			Validation: models.ValidationResult{
				Valid:  false,
				Errors: []models.Finding{{Field: "correctiveActions", Message: "At least one corrective action is required for an investigation report", Section: "correctiveActions"}},
			},
		}, reporterrors.ValidationFailed(1)).Times(1)

	w := makeRequest(router, "POST", "/api/v1/reports", jsonBody(t, reqBody), apiKeyHeader)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "incident record failed validation", resp.Error)
	assert.False(t, resp.Validation.Valid)
	assert.Equal(t, "correctiveActions", resp.Validation.Errors[0].Field)
}

func TestGenerateReport_MissingIncident(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/reports", bytes.NewBufferString(`{"options":{"summaryOnly":true}}`), apiKeyHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Incident")
}

func TestGenerateReport_IOFailureDoesNotLeakDetails(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := GenerateReportRequest{Incident: testRecord()}

	mockService.EXPECT().
		Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&service.GeneratedReport{}, fmt.Errorf("service: could not render report: %w",
			reporterrors.IOFailure("write", fmt.Errorf("/var/reports: disk full")))).Times(1)

	w := makeRequest(router, "POST", "/api/v1/reports", jsonBody(t, reqBody), apiKeyHeader)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestListExports_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	incidentID := uuid.New()
	records := []*models.ExportRecord{{
		ID:         uuid.New(),
		IncidentID: incidentID,
		Profile:    "Summary",
		Outcome:    "success",
		Valid:      true,
		PageCount:  2,
		CreatedAt:  time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC),
	}}

	mockService.EXPECT().ListExports(gomock.Any(), incidentID, 2, 5).Return(records, nil).Times(1)

	w := makeRequest(router, "GET", fmt.Sprintf("/api/v1/incidents/%s/exports?page=2&pageSize=5", incidentID), nil, apiKeyHeader)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []ExportRecordResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "success", resp[0].Outcome)
	assert.Equal(t, 2, resp[0].PageCount)
}

func TestListExports_InvalidID(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().ListExports(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/incidents/not-a-uuid/exports", nil, apiKeyHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid incident ID")
}

func TestListExports_AuditDisabled(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().ListExports(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, service.ErrAuditDisabled).Times(1)

	w := makeRequest(router, "GET", fmt.Sprintf("/api/v1/incidents/%s/exports", uuid.New()), nil, apiKeyHeader)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAPIKeyAuth(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().Validate(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/incidents/validate", jsonBody(t, testRecord()))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")

	w = makeRequest(router, "POST", "/api/v1/incidents/validate", jsonBody(t, testRecord()), map[string]string{"Authorization": "Bearer wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API key")
}

func TestAPIKeyAuth_DisabledWithoutKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockReportService(ctrl)
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	gin.SetMode(gin.TestMode)
	router := NewHandler(mockService, logger, &config.Config{}).NewRouter(nil)

	mockService.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(models.ValidationResult{Valid: true}).Times(1)

	w := makeRequest(router, "POST", "/api/v1/incidents/validate", jsonBody(t, testRecord()))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthCheck_NoAuth(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestMetricsRoute(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/metrics", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "# metrics")
}

func TestRecovery_PanicBecomesGeneric500(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().Validate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, *models.IncidentRecord) models.ValidationResult {
			panic("nil map write in rule")
		}).Times(1)

	w := makeRequest(router, "POST", "/api/v1/incidents/validate", jsonBody(t, testRecord()), apiKeyHeader)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestGzip_JSONResponsesCompressed(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil, map[string]string{"Accept-Encoding": "gzip"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
}
