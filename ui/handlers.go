package ui

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"analytico/adapters/ingest"
	"analytico/domain/table"
	"analytico/internal/errors"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// reportSuffix is appended to the uploaded file's base name for the
// generated workbook.
const reportSuffix = "_with_summary_missing_values_and_outliers.xlsx"

func (s *Server) handleWelcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to Analytico!"})
}

// handleCSVToExcel accepts a multipart CSV upload and streams back the
// annotated workbook. Non-.csv filenames are rejected before the body is
// touched; every later failure is terminal and reported as a server error.
func (s *Server) handleCSVToExcel(c *gin.Context) {
	reqID := uuid.New().String()[:8]

	fileHeader, err := c.FormFile("file")
	if err != nil {
		s.invalidInput(c, reqID, errors.InvalidInput("A file upload is required"))
		return
	}

	filename := fileHeader.Filename
	if !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		s.invalidInput(c, reqID, errors.InvalidInput("Only CSV files are allowed"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.processingError(c, reqID, err)
		return
	}
	defer file.Close()

	tbl, err := ingest.Read(file)
	if err != nil {
		s.processingError(c, reqID, err)
		return
	}

	cleaned, err := s.pipeline.Run(tbl.Clone())
	if err != nil {
		s.processingError(c, reqID, err)
		return
	}

	var buf bytes.Buffer
	if err := s.writer.Write(tbl, cleaned, &buf); err != nil {
		s.processingError(c, reqID, err)
		return
	}

	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	excelName := base + reportSuffix
	log.Printf("[API %s] Converted %q: %d rows -> %s", reqID, filename, tbl.NumRows(), excelName)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", excelName))
	c.Data(http.StatusOK, xlsxMIME, buf.Bytes())
}

// invalidInput rejects a request before any processing, as a client error.
func (s *Server) invalidInput(c *gin.Context, reqID string, err *errors.AppError) {
	log.Printf("[API %s] Rejected request (%s): %s", reqID, err.Code, err.Message)
	c.JSON(http.StatusBadRequest, gin.H{"detail": err.Message})
}

func (s *Server) processingError(c *gin.Context, reqID string, err error) {
	log.Printf("[API %s] Processing failed: %v", reqID, err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"detail": fmt.Sprintf("An error occurred: %s", err),
	})
}

// handleDashIndex renders the dashboard shell with its upload prompt.
func (s *Server) handleDashIndex(c *gin.Context) {
	s.renderDash(c, dashView{Prompt: "Please Upload data :)"})
}

// handleDashUpload is the dashboard's single callback: it parses the upload
// and re-renders the page with the statistics table and missing-values
// chart, or an inline error message when decoding fails.
func (s *Server) handleDashUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		s.renderDash(c, dashView{Prompt: "Please Upload data :)"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.renderDash(c, dashView{Error: fmt.Sprintf("Error processing file: %v", err)})
		return
	}
	defer file.Close()

	tbl, err := ingest.Read(file)
	if err != nil {
		s.renderDash(c, dashView{Error: fmt.Sprintf("Error processing file: %v", err)})
		return
	}

	view, err := buildDashResult(fileHeader.Filename, tbl)
	if err != nil {
		s.renderDash(c, dashView{Error: fmt.Sprintf("Error processing file: %v", err)})
		return
	}
	s.renderDash(c, view)
}

func (s *Server) renderDash(c *gin.Context, view dashView) {
	html, err := s.renderTemplate("dash.html", view)
	if err != nil {
		log.Printf("[Dash] Template rendering failed: %v", err)
		c.String(http.StatusInternalServerError, "template error")
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, html)
}

// buildDashResult computes the view model for an uploaded table.
func buildDashResult(filename string, tbl *table.Table) (dashView, error) {
	summaries, chartB64, err := summarizeForDash(tbl)
	if err != nil {
		return dashView{}, err
	}
	return dashView{
		Filename:  filename,
		Summaries: summaries,
		ChartB64:  chartB64,
	}, nil
}
