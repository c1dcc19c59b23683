package storage

import (
	"encoding/csv"
	"fmt"
	"os"

	"gmaps-scraper/models"
)

// CSVWriter writes each term's records to <dir>/google_maps_data_<term>.csv.
type CSVWriter struct {
	dir string
}

// NewCSVWriter returns a CSVWriter rooted at dir. The directory is created
// on first write.
func NewCSVWriter(dir string) *CSVWriter {
	return &CSVWriter{dir: dir}
}

func (c *CSVWriter) Name() string { return "csv" }

// Path returns the file a term is written to.
func (c *CSVWriter) Path(term string) string {
	return outputPath(c.dir, term, ".csv")
}

// Write creates (or truncates) the term's CSV file and writes the header
// row followed by one row per record.
func (c *CSVWriter) Write(term string, records []models.Business) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("csv: create output dir: %w", err)
	}

	path := c.Path(term)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	table := Flatten(records)
	w := csv.NewWriter(f)

	if err := w.Write(table.Header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	if err := w.WriteAll(table.StringRows()); err != nil {
		return fmt.Errorf("csv: write rows: %w", err)
	}

	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func (c *CSVWriter) Close() error { return nil }
