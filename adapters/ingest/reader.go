// Package ingest reads raw CSV input into typed tables. Column kinds are
// resolved exactly once here; downstream stages trust the schema tag.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"analytico/domain/table"
	"analytico/internal/errors"
)

// missingTokens are the cell spellings treated as missing values.
var missingTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
}

// Read parses CSV bytes from r into a typed table. The first row is the
// header. A column is numeric when it has at least one non-missing cell and
// every non-missing cell parses as a float; otherwise it is categorical.
func Read(r io.Reader) (*table.Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read input")
	}
	if !utf8.Valid(raw) {
		return nil, errors.DecodeError("file is not valid UTF-8 text")
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WithCode(errors.CodeDecodeError, errors.Wrap(err, "failed to parse CSV"))
	}
	if len(rows) < 2 {
		return nil, errors.DecodeError("CSV must have a header row and at least one data row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	nrows := len(rows) - 1
	tbl := table.New(nrows)

	for j, name := range headers {
		cells := make([]string, nrows)
		for i := 1; i < len(rows); i++ {
			if j < len(rows[i]) {
				cells[i-1] = strings.TrimSpace(rows[i][j])
			}
		}
		if err := addColumn(tbl, name, cells); err != nil {
			return nil, err
		}
	}

	log.Printf("[Ingest] Parsed table: %d columns, %d rows (%d numeric, %d categorical)",
		len(tbl.Fields), tbl.NumRows(), len(tbl.NumericFields()), len(tbl.CategoricalFields()))
	return tbl, nil
}

// ReadFile parses a CSV file on disk into a typed table.
func ReadFile(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()
	return Read(f)
}

// addColumn classifies a raw column and attaches it to the table.
func addColumn(tbl *table.Table, name string, cells []string) error {
	numeric := make([]float64, len(cells))
	isNumeric := true
	observed := 0
	for i, c := range cells {
		if missingTokens[c] {
			numeric[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			isNumeric = false
			break
		}
		numeric[i] = v
		observed++
	}

	if isNumeric && observed > 0 {
		return tbl.AddNumeric(name, numeric)
	}

	values := make([]string, len(cells))
	for i, c := range cells {
		if missingTokens[c] {
			continue
		}
		values[i] = c
	}
	if err := tbl.AddCategorical(name, values); err != nil {
		return fmt.Errorf("failed to add column: %w", err)
	}
	return nil
}
