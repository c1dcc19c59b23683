package storage

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"gmaps-scraper/models"
)

const sheetName = "Sheet1"

// XLSXWriter writes each term's records to <dir>/google_maps_data_<term>.xlsx.
type XLSXWriter struct {
	dir string
}

// NewXLSXWriter returns an XLSXWriter rooted at dir.
func NewXLSXWriter(dir string) *XLSXWriter {
	return &XLSXWriter{dir: dir}
}

func (x *XLSXWriter) Name() string { return "xlsx" }

// Path returns the workbook a term is written to.
func (x *XLSXWriter) Path(term string) string {
	return outputPath(x.dir, term, ".xlsx")
}

// Write builds a single-sheet workbook with a header row and one row per
// record. Numeric fields are stored as numeric cells.
func (x *XLSXWriter) Write(term string, records []models.Business) error {
	if err := os.MkdirAll(x.dir, 0755); err != nil {
		return fmt.Errorf("xlsx: create output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	table := Flatten(records)

	header := make([]any, len(table.Header))
	for i, h := range table.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: write header: %w", err)
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx: cell name: %w", err)
		}
		row := row
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("xlsx: write row %d: %w", i+1, err)
		}
	}

	path := x.Path(term)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx: save %q: %w", path, err)
	}
	return nil
}

func (x *XLSXWriter) Close() error { return nil }
