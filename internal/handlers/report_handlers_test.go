package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fieldbook_backend/internal/models"
	"fieldbook_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubReportService returns canned results and records the inputs it saw.
type stubReportService struct {
	lastOwnerID int64
	lastReq     services.ReportRequest
	revenue     *models.RevenueReport
	export      *models.ReportExport
	err         error
}

func (s *stubReportService) RevenueReport(ctx context.Context, ownerID int64, req services.ReportRequest) (*models.RevenueReport, error) {
	s.lastOwnerID = ownerID
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.revenue, nil
}

func (s *stubReportService) BookingReport(ctx context.Context, ownerID int64, req services.ReportRequest) (*models.BookingReport, error) {
	s.lastOwnerID = ownerID
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingReport{}, nil
}

func (s *stubReportService) UserReport(ctx context.Context, ownerID int64, req services.ReportRequest) (*models.UserReport, error) {
	s.lastOwnerID = ownerID
	if s.err != nil {
		return nil, s.err
	}
	return &models.UserReport{}, nil
}

func (s *stubReportService) PerformanceReport(ctx context.Context, ownerID int64, req services.ReportRequest) (*models.PerformanceReport, error) {
	s.lastOwnerID = ownerID
	if s.err != nil {
		return nil, s.err
	}
	return &models.PerformanceReport{}, nil
}

func (s *stubReportService) ExportReport(ctx context.Context, ownerID int64, req services.ExportRequest) (*models.ReportExport, error) {
	s.lastOwnerID = ownerID
	if s.err != nil {
		return nil, s.err
	}
	return s.export, nil
}

func newReportTestRouter(stub *stubReportService, claimsUserID int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	if claimsUserID != 0 {
		engine.Use(func(c *gin.Context) { c.Set("userID", claimsUserID) })
	}
	h := NewReportHandler(stub)
	engine.GET("/reports/revenue", h.GetRevenueReport)
	engine.POST("/reports/export", h.ExportReport)
	return engine
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Error.Code
}

func TestGetRevenueReportSuccess(t *testing.T) {
	stub := &stubReportService{revenue: &models.RevenueReport{ReportID: "rev_20240315_000000"}}
	engine := newReportTestRouter(stub, 42)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/revenue?period=weekly", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(42), stub.lastOwnerID)
	assert.Equal(t, "weekly", stub.lastReq.Period)
	assert.Contains(t, w.Body.String(), "rev_20240315_000000")
}

func TestGetRevenueReportOwnerIDQueryOverridesClaims(t *testing.T) {
	stub := &stubReportService{revenue: &models.RevenueReport{}}
	engine := newReportTestRouter(stub, 42)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/revenue?owner_id=7", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), stub.lastOwnerID)
}

func TestGetRevenueReportDefaultsPeriodToMonthly(t *testing.T) {
	stub := &stubReportService{revenue: &models.RevenueReport{}}
	engine := newReportTestRouter(stub, 42)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/revenue", nil))

	assert.Equal(t, "monthly", stub.lastReq.Period)
}

func TestGetRevenueReportParsesDates(t *testing.T) {
	stub := &stubReportService{revenue: &models.RevenueReport{}}
	engine := newReportTestRouter(stub, 42)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/reports/revenue?period=custom&start_date=2024-02-01&end_date=2024-02-20", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, stub.lastReq.StartDate)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), *stub.lastReq.StartDate)

	// Malformed date is rejected before the service runs.
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/revenue?start_date=02-01-2024", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid owner", services.ErrInvalidOwner, http.StatusBadRequest, "INVALID_OWNER_ID"},
		{"invalid period", services.ErrInvalidPeriod, http.StatusBadRequest, "INVALID_PERIOD"},
		{"invalid date range", services.ErrInvalidDateRange, http.StatusBadRequest, "INVALID_DATE_RANGE"},
		{"data unavailable", services.ErrDataUnavailable, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{"computation fault", services.ErrComputationFault, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubReportService{err: tc.err}
			engine := newReportTestRouter(stub, 42)

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/revenue", nil))

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.wantCode, errorCode(t, w.Body.Bytes()))
		})
	}
}

func TestExportReportDownload(t *testing.T) {
	stub := &stubReportService{export: &models.ReportExport{
		FileName:    "revenue_report_20240315_000000.json",
		ContentType: "application/json",
		Data:        []byte(`{"report_id":"rev_20240315_000000"}`),
	}}
	engine := newReportTestRouter(stub, 42)

	body := strings.NewReader(`{"report_type":"revenue","format":"json","period":"monthly"}`)
	req := httptest.NewRequest(http.MethodPost, "/reports/export", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "revenue_report_20240315_000000.json")
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestExportReportRequiresReportType(t *testing.T) {
	stub := &stubReportService{}
	engine := newReportTestRouter(stub, 42)

	req := httptest.NewRequest(http.MethodPost, "/reports/export", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportReportUnsupportedFormat(t *testing.T) {
	stub := &stubReportService{err: services.ErrUnsupportedExport}
	engine := newReportTestRouter(stub, 42)

	body := strings.NewReader(`{"report_type":"revenue","format":"pdf"}`)
	req := httptest.NewRequest(http.MethodPost, "/reports/export", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNSUPPORTED_EXPORT", errorCode(t, w.Body.Bytes()))
}
