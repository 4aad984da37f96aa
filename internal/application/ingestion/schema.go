package ingestion

import (
	"fmt"
	"strings"

	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
)

// ValidateHeaders checks the first grid row against the required column
// contract, position for position, after trimming and lower-casing.
func ValidateHeaders(grid domain.Grid) error {
	if len(grid) == 0 {
		return fmt.Errorf("%w: missing header row", domain.ErrInvalidSchema)
	}

	header := grid[0]
	if len(header) != len(domain.RequiredHeaders) {
		return fmt.Errorf("%w: expected %d columns, got %d", domain.ErrInvalidSchema, len(domain.RequiredHeaders), len(header))
	}

	for i, want := range domain.RequiredHeaders {
		if got := strings.ToLower(strings.TrimSpace(header[i])); got != want {
			return fmt.Errorf("%w: column %d must be %q, got %q", domain.ErrInvalidSchema, i+1, want, got)
		}
	}
	return nil
}
