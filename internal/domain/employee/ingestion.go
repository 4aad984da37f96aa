package employee

import (
	"fmt"
	"io"
)

// RequiredHeaders is the column contract of an employee upload, in order.
var RequiredHeaders = []string{"s_no", "employee_name", "employee_email"}

// Grid is a decoded sheet: rows of cell values in sheet order.
type Grid [][]string

// RawRow is one data row read from the sheet, before any trimming.
type RawRow struct {
	SNo   string
	Name  string
	Email string
}

// RawRowFromCells maps a grid row onto the three contract positions.
// Missing trailing cells read as empty.
func RawRowFromCells(cells []string) RawRow {
	cell := func(i int) string {
		if i < len(cells) {
			return cells[i]
		}
		return ""
	}
	return RawRow{SNo: cell(0), Name: cell(1), Email: cell(2)}
}

type OutcomeKind int

const (
	OutcomeValid OutcomeKind = iota + 1
	OutcomeInvalid
	OutcomeDuplicate
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeValid:
		return "valid"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// Outcome is the classification of a single non-blank row.
// Row is the spreadsheet row number (header is row 1).
type Outcome struct {
	Kind   OutcomeKind
	Row    int
	Record Record
	Reason string
}

// Message renders the user-facing error line for invalid and duplicate rows.
func (o Outcome) Message() string {
	switch o.Kind {
	case OutcomeInvalid:
		return fmt.Sprintf("Row %d: %s", o.Row, o.Reason)
	case OutcomeDuplicate:
		return fmt.Sprintf("Row %d: Duplicate email - %s", o.Row, o.Record.Email)
	default:
		return ""
	}
}

// Report aggregates the outcomes of one upload.
// ValidCount+InvalidCount+DuplicateCount == TotalCount; blank rows are not counted.
type Report struct {
	ValidCount     int
	InvalidCount   int
	DuplicateCount int
	TotalCount     int
	Errors         []string
	Valid          []Record
}

// CanSubmit reports whether there is anything to send for onboarding.
func (r Report) CanSubmit() bool {
	return len(r.Valid) > 0
}

// Upload is a spreadsheet file handed to the ingestion pipeline.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type ImportRunStatus string

const (
	ImportRunParsed       ImportRunStatus = "parsed"
	ImportRunSubmitted    ImportRunStatus = "submitted"
	ImportRunSubmitFailed ImportRunStatus = "submit_failed"
	ImportRunCleared      ImportRunStatus = "cleared"
)

// PendingUpload is a parsed upload awaiting user confirmation. It lives until
// it is submitted or cleared, whichever comes first.
type PendingUpload struct {
	ID       string
	Filename string
	Report   Report
}
