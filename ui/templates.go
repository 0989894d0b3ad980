package ui

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"

	"analytico/domain/table"
	"analytico/internal/report"
)

//go:embed templates/*.html
var templatesFS embed.FS

// dashView is the view model for the dashboard page. Exactly one of Prompt,
// Error, or Summaries is meaningful at a time.
type dashView struct {
	Prompt    string
	Error     string
	Filename  string
	Summaries []report.ColumnSummary
	ChartB64  string
}

func (s *Server) loadTemplates() error {
	funcMap := template.FuncMap{
		"f4": func(v float64) string { return fmt.Sprintf("%.4f", v) },
	}
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	s.templates = tmpl
	return nil
}

func (s *Server) renderTemplate(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// summarizeForDash derives the dashboard artifacts from a parsed table: the
// descriptive-statistics rows and the missing-values chart as a base64 data
// URI payload.
func summarizeForDash(tbl *table.Table) ([]report.ColumnSummary, string, error) {
	summaries := report.Summarize(tbl)
	png, err := report.MissingValuesChart(report.MissingValueCounts(tbl))
	if err != nil {
		return nil, "", err
	}
	return summaries, base64.StdEncoding.EncodeToString(png), nil
}
