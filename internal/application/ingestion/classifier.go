package ingestion

import (
	"strings"

	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
)

// firstDataRow is the spreadsheet row number of the first row after the header.
const firstDataRow = 2

// ClassifyRows partitions the post-header rows into valid, invalid and
// duplicate outcomes, in sheet order. Fully blank rows produce no outcome.
// The first occurrence of an email is valid; later ones are duplicates.
func ClassifyRows(rows [][]string) []domain.Outcome {
	seen := make(map[string]struct{})
	outcomes := make([]domain.Outcome, 0, len(rows))

	for i, cells := range rows {
		if blankCells(cells) {
			continue
		}

		raw := domain.RawRowFromCells(cells)
		rowNumber := i + firstDataRow
		record := domain.Record{
			Name:  strings.TrimSpace(raw.Name),
			Email: strings.TrimSpace(raw.Email),
		}

		if reason := missingFields(record); reason != "" {
			outcomes = append(outcomes, domain.Outcome{
				Kind:   domain.OutcomeInvalid,
				Row:    rowNumber,
				Record: record,
				Reason: reason,
			})
			continue
		}

		// emails are compared as submitted, without case folding
		if _, dup := seen[record.Email]; dup {
			outcomes = append(outcomes, domain.Outcome{
				Kind:   domain.OutcomeDuplicate,
				Row:    rowNumber,
				Record: record,
			})
			continue
		}

		seen[record.Email] = struct{}{}
		outcomes = append(outcomes, domain.Outcome{
			Kind:   domain.OutcomeValid,
			Row:    rowNumber,
			Record: record,
		})
	}

	return outcomes
}

func blankCells(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func missingFields(r domain.Record) string {
	switch {
	case r.Name == "" && r.Email == "":
		return "Missing name and email"
	case r.Name == "":
		return "Missing name"
	case r.Email == "":
		return "Missing email"
	default:
		return ""
	}
}
