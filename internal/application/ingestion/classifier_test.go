package ingestion_test

import (
	"errors"
	"reflect"
	"testing"

	app "github.com/mohammadpnp/roster-import/internal/application/ingestion"
	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
)

func header() []string {
	return []string{"s_no", "employee_name", "employee_email"}
}

func TestAnalyzeMixedSheet(t *testing.T) {
	t.Parallel()

	grid := domain.Grid{
		header(),
		{"1", "Jane", "jane@x.com"},
		{"2", "Bob", ""},
		{"3", "Janet", "jane@x.com"},
		{"", "  ", ""},
	}

	report, outcomes, err := app.Analyze(grid)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	if report.ValidCount != 1 || report.InvalidCount != 1 || report.DuplicateCount != 1 || report.TotalCount != 3 {
		t.Fatalf("unexpected counts: %+v", report)
	}

	want := []string{"Row 3: Missing email", "Row 4: Duplicate email - jane@x.com"}
	if !reflect.DeepEqual(report.Errors, want) {
		t.Fatalf("unexpected errors: %#v", report.Errors)
	}
	if len(report.Valid) != 1 || report.Valid[0] != (domain.Record{Name: "Jane", Email: "jane@x.com"}) {
		t.Fatalf("unexpected valid records: %+v", report.Valid)
	}
}

func TestClassifyFirstOccurrenceWins(t *testing.T) {
	t.Parallel()

	outcomes := app.ClassifyRows([][]string{
		{"1", "A", "same@x.com"},
		{"2", "B", " same@x.com "},
	})
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].Kind != domain.OutcomeValid || outcomes[0].Row != 2 {
		t.Fatalf("expected first row valid at row 2, got %+v", outcomes[0])
	}
	if outcomes[1].Kind != domain.OutcomeDuplicate || outcomes[1].Row != 3 {
		t.Fatalf("expected second row duplicate at row 3, got %+v", outcomes[1])
	}
}

func TestClassifyEmailIsCaseSensitive(t *testing.T) {
	t.Parallel()

	outcomes := app.ClassifyRows([][]string{
		{"1", "A", "Jane@x.com"},
		{"2", "B", "jane@x.com"},
	})
	for _, outcome := range outcomes {
		if outcome.Kind != domain.OutcomeValid {
			t.Fatalf("expected both rows valid, got %+v", outcome)
		}
	}
}

func TestClassifyMissingFieldMessages(t *testing.T) {
	t.Parallel()

	report := app.BuildReport(app.ClassifyRows([][]string{
		{"1", "", "a@x.com"},
		{"2", "", ""},
		{"3", "Bob"},
	}))

	want := []string{
		"Row 2: Missing name",
		"Row 3: Missing name and email",
		"Row 4: Missing email",
	}
	if !reflect.DeepEqual(report.Errors, want) {
		t.Fatalf("unexpected errors: %#v", report.Errors)
	}
}

func TestClassifyBlankRowsKeepNumbering(t *testing.T) {
	t.Parallel()

	outcomes := app.ClassifyRows([][]string{
		{"", "", ""},
		{},
		{"3", "Ann", "ann@x.com"},
	})
	if len(outcomes) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(outcomes))
	}
	if outcomes[0].Row != 4 {
		t.Fatalf("expected row 4, got %d", outcomes[0].Row)
	}
}

func TestReportListsInvalidBeforeDuplicates(t *testing.T) {
	t.Parallel()

	report := app.BuildReport(app.ClassifyRows([][]string{
		{"1", "A", "a@x.com"},
		{"2", "A", "a@x.com"},
		{"3", "", "c@x.com"},
	}))

	want := []string{"Row 4: Missing name", "Row 3: Duplicate email - a@x.com"}
	if !reflect.DeepEqual(report.Errors, want) {
		t.Fatalf("unexpected errors: %#v", report.Errors)
	}
}

func TestClassifyIsRepeatable(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"1", "A", "a@x.com"},
		{"2", "", "b@x.com"},
		{"3", "C", "a@x.com"},
		{"4", "D", "d@x.com"},
	}

	first := app.BuildReport(app.ClassifyRows(rows))
	second := app.BuildReport(app.ClassifyRows(rows))
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical reports, got %+v and %+v", first, second)
	}
}

func TestReportCountsAddUp(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"1", "A", "a@x.com"},
		{"", "", ""},
		{"2", "", ""},
		{"3", "B", "a@x.com"},
		{"4", "C", "c@x.com"},
		{"5", "C", "c@x.com"},
		{" ", " ", " "},
	}

	report := app.BuildReport(app.ClassifyRows(rows))
	if report.ValidCount+report.InvalidCount+report.DuplicateCount != report.TotalCount {
		t.Fatalf("counts do not add up: %+v", report)
	}
	if report.TotalCount != 5 {
		t.Fatalf("expected blank rows excluded, total=%d", report.TotalCount)
	}
}

func TestValidateHeadersReordered(t *testing.T) {
	t.Parallel()

	grid := domain.Grid{
		{"employee_name", "s_no", "employee_email"},
		{"Jane", "1", "jane@x.com"},
	}

	report, outcomes, err := app.Analyze(grid)
	if !errors.Is(err, domain.ErrInvalidSchema) {
		t.Fatalf("expected ErrInvalidSchema, got %v", err)
	}
	if len(outcomes) != 0 || report.TotalCount != 0 {
		t.Fatalf("expected nothing classified, got %d outcomes", len(outcomes))
	}
}

func TestValidateHeadersShape(t *testing.T) {
	t.Parallel()

	cases := map[string]domain.Grid{
		"empty":   {},
		"missing": {{"s_no", "employee_name"}},
		"extra":   {{"s_no", "employee_name", "employee_email", "phone"}},
	}
	for name, grid := range cases {
		if err := app.ValidateHeaders(grid); !errors.Is(err, domain.ErrInvalidSchema) {
			t.Fatalf("%s: expected ErrInvalidSchema, got %v", name, err)
		}
	}
}

func TestValidateHeadersNormalizes(t *testing.T) {
	t.Parallel()

	if err := app.ValidateHeaders(domain.Grid{{" S_No ", "Employee_Name", "EMPLOYEE_EMAIL "}}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
