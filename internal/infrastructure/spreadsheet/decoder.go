package spreadsheet

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
	"github.com/xuri/excelize/v2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decoder turns an uploaded CSV or XLSX file into a cell grid. It checks
// structure only; content validation happens downstream.
type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

func (d *Decoder) Decode(upload domain.Upload) (domain.Grid, error) {
	format, err := DetectFormat(upload.Filename, upload.ContentType)
	if err != nil {
		return nil, err
	}
	if upload.Body == nil {
		return nil, fmt.Errorf("%w: empty body", domain.ErrDecode)
	}

	switch format {
	case FormatXLSX:
		return decodeXLSX(upload.Body)
	default:
		return decodeCSV(upload.Body)
	}
}

func decodeCSV(r io.Reader) (domain.Grid, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && string(head) == string(utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	// encoding/csv skips empty lines; they are put back as empty rows so row
	// numbers match the lines a user sees, as with XLSX gap rows.
	grid := domain.Grid{}
	lastLine := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
		}

		startLine, _ := reader.FieldPos(0)
		for gap := startLine - lastLine - 1; gap > 0; gap-- {
			grid = append(grid, []string{})
		}
		grid = append(grid, record)

		last := len(record) - 1
		endLine, _ := reader.FieldPos(last)
		lastLine = endLine + strings.Count(record[last], "\n")
	}
	return grid, nil
}

// decodeXLSX reads the first sheet only.
func decodeXLSX(r io.Reader) (domain.Grid, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", domain.ErrDecode)
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	return domain.Grid(rows), nil
}
