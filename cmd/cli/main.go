// Standalone runner: reads the local CSV file, prints the original table,
// runs the cleaning pipeline, and prints the preprocessed table.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"

	"analytico/adapters/ingest"
	domain "analytico/domain/table"
	"analytico/internal/config"
	"analytico/internal/preprocess"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	tbl, err := ingest.ReadFile(cfg.Data.CSVFile)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", cfg.Data.CSVFile, err)
	}

	fmt.Println("Original Data:")
	printTable(os.Stdout, tbl)

	pipeline := &preprocess.Pipeline{
		KNeighbors:   cfg.Pipeline.KNeighbors,
		IQRThreshold: cfg.Pipeline.IQRThreshold,
	}
	cleaned, err := pipeline.Run(tbl)
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	fmt.Println("Preprocessed Data:")
	printTable(os.Stdout, cleaned)
}

func printTable(w io.Writer, tbl *domain.Table) {
	records := tbl.Records()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(records[0]))
	for i, col := range records[0] {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, rec := range records[1:] {
		row := make(table.Row, len(rec))
		for i, cell := range rec {
			row[i] = cell
		}
		t.AppendRow(row)
	}

	t.Render()
	fmt.Fprintf(w, "(%d rows)\n", tbl.NumRows())
}
