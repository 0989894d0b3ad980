package ui

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"analytico/internal/config"
)

const sampleCSV = "name,age,score\nalice,30,1.5\nbob,NA,2.5\ncarol,25,\n"

func testServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(&config.Config{
		Server:   config.ServerConfig{Port: "8080", GinMode: gin.TestMode},
		Pipeline: config.PipelineConfig{KNeighbors: 5, IQRThreshold: 1.5},
	})
	require.NoError(t, err)
	return s
}

func multipartUpload(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func TestWelcome(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message": "Welcome to Analytico!"}`, rec.Body.String())
}

func TestCSVToExcel_RejectsNonCSV(t *testing.T) {
	s := testServer(t)

	body, contentType := multipartUpload(t, "file", "report.txt", []byte("not a csv"))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/csv_to_excel_with_description/", body)
	req.Header.Set("Content-Type", contentType)
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail": "Only CSV files are allowed"}`, rec.Body.String())
}

func TestCSVToExcel_RejectsMissingFile(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/csv_to_excel_with_description/", nil)
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "A file upload is required")
}

func TestCSVToExcel_ReturnsWorkbook(t *testing.T) {
	s := testServer(t)

	body, contentType := multipartUpload(t, "file", "sales.csv", []byte(sampleCSV))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/csv_to_excel_with_description/", body)
	req.Header.Set("Content-Type", contentType)
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxMIME, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"),
		`filename="sales_with_summary_missing_values_and_outliers.xlsx"`)

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Summary")
	assert.Contains(t, f.GetSheetList(), "Cleaned Data")
}

func TestCSVToExcel_ProcessingError(t *testing.T) {
	s := testServer(t)

	// Invalid UTF-8 payloads fail decoding after the extension check.
	body, contentType := multipartUpload(t, "file", "bad.csv", []byte{0xff, 0xfe, 0xfd})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/csv_to_excel_with_description/", body)
	req.Header.Set("Content-Type", contentType)
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "An error occurred:")
}

func TestDashIndex_ShowsPrompt(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dash/", nil)
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please Upload data :)")
}

func TestDashUpload_RendersSummary(t *testing.T) {
	s := testServer(t)

	body, contentType := multipartUpload(t, "file", "sales.csv", []byte(sampleCSV))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/dash/upload", body)
	req.Header.Set("Content-Type", contentType)
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Statistics Summary Table")
	assert.Contains(t, rec.Body.String(), "data:image/png;base64,")
}

func TestDashUpload_ShowsInlineError(t *testing.T) {
	s := testServer(t)

	body, contentType := multipartUpload(t, "file", "bad.csv", []byte{0xff, 0xfe, 0xfd})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/dash/upload", body)
	req.Header.Set("Content-Type", contentType)
	s.Handler().ServeHTTP(rec, req)

	// Callback failures render inline, not as HTTP errors.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error processing file:")
}
