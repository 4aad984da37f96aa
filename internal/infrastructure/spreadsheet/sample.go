package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"

	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
	"github.com/xuri/excelize/v2"
)

const sampleSheet = "Employees"

var sampleRows = [][]string{
	{"1", "John Doe", "john.doe@example.com"},
	{"2", "Jane Smith", "jane.smith@example.com"},
	{"3", "Alex Johnson", "alex.johnson@example.com"},
}

// SampleFilename is the download name of the template in the given format.
func SampleFilename(format Format) string {
	return "employee_sample." + string(format)
}

// WriteSample writes the upload template: the required header row followed
// by illustrative rows.
func WriteSample(w io.Writer, format Format) error {
	rows := make([][]string, 0, len(sampleRows)+1)
	rows = append(rows, domain.RequiredHeaders)
	rows = append(rows, sampleRows...)

	if format == FormatXLSX {
		return writeSampleXLSX(w, rows)
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write sample csv: %w", err)
	}
	return nil
}

func writeSampleXLSX(w io.Writer, rows [][]string) error {
	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName(book.GetSheetName(0), sampleSheet); err != nil {
		return fmt.Errorf("rename sample sheet: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, 0, len(row))
		for _, v := range row {
			values = append(values, v)
		}
		if err := book.SetSheetRow(sampleSheet, cell, &values); err != nil {
			return fmt.Errorf("write sample row %d: %w", i+1, err)
		}
	}

	if _, err := book.WriteTo(w); err != nil {
		return fmt.Errorf("write sample xlsx: %w", err)
	}
	return nil
}
