package ingestion

import (
	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
)

type ReportOutput struct {
	Valid     int      `json:"valid"`
	Invalid   int      `json:"invalid"`
	Duplicate int      `json:"duplicate"`
	Total     int      `json:"total"`
	Errors    []string `json:"errors"`
	CanSubmit bool     `json:"can_submit"`
}

// BuildReport aggregates outcomes. Errors lists invalid rows first, then
// duplicate rows, each group in sheet order.
func BuildReport(outcomes []domain.Outcome) domain.Report {
	report := domain.Report{
		Errors: []string{},
		Valid:  []domain.Record{},
	}

	var duplicates []string
	for _, outcome := range outcomes {
		switch outcome.Kind {
		case domain.OutcomeValid:
			report.ValidCount++
			report.Valid = append(report.Valid, outcome.Record)
		case domain.OutcomeInvalid:
			report.InvalidCount++
			report.Errors = append(report.Errors, outcome.Message())
		case domain.OutcomeDuplicate:
			report.DuplicateCount++
			duplicates = append(duplicates, outcome.Message())
		}
	}

	report.Errors = append(report.Errors, duplicates...)
	report.TotalCount = report.ValidCount + report.InvalidCount + report.DuplicateCount
	return report
}

// Analyze runs header validation, classification and aggregation over a
// decoded grid. A schema failure classifies nothing.
func Analyze(grid domain.Grid) (domain.Report, []domain.Outcome, error) {
	if err := ValidateHeaders(grid); err != nil {
		return domain.Report{}, nil, err
	}

	outcomes := ClassifyRows(grid[1:])
	return BuildReport(outcomes), outcomes, nil
}

func NewReportOutput(report domain.Report) ReportOutput {
	errs := report.Errors
	if errs == nil {
		errs = []string{}
	}
	return ReportOutput{
		Valid:     report.ValidCount,
		Invalid:   report.InvalidCount,
		Duplicate: report.DuplicateCount,
		Total:     report.TotalCount,
		Errors:    errs,
		CanSubmit: report.CanSubmit(),
	}
}

func issuesOf(outcomes []domain.Outcome) []domain.Outcome {
	issues := make([]domain.Outcome, 0)
	for _, outcome := range outcomes {
		if outcome.Kind != domain.OutcomeValid {
			issues = append(issues, outcome)
		}
	}
	return issues
}
