package directory

import (
	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
)

type SelectionState string

const (
	SelectionEmpty   SelectionState = "empty"
	SelectionPartial SelectionState = "partial"
	SelectionFull    SelectionState = "full"
)

// Selection tracks the invitable rows picked on the current page. It only ever
// holds ids of pending employees from the rows it was last given; replacing
// the rows drops the selection.
type Selection struct {
	rows []domain.DirectoryEmployee
	ids  map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Replace swaps in a freshly loaded page and resets the selection.
func (s *Selection) Replace(rows []domain.DirectoryEmployee) {
	s.rows = append([]domain.DirectoryEmployee(nil), rows...)
	s.Clear()
}

func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
}

// Toggle flips one row. Rows off the page or not pending are rejected.
func (s *Selection) Toggle(employeeID string) error {
	row, ok := s.row(employeeID)
	if !ok {
		return ErrNotOnPage
	}
	if !row.Invitable() {
		return ErrNotInvitable
	}

	if _, selected := s.ids[employeeID]; selected {
		delete(s.ids, employeeID)
	} else {
		s.ids[employeeID] = struct{}{}
	}
	return nil
}

// ToggleAll moves between full and empty. From partial it selects every
// pending row on the page. A page with no pending rows stays empty.
func (s *Selection) ToggleAll() {
	if s.State() == SelectionFull {
		s.Clear()
		return
	}
	for _, row := range s.rows {
		if row.Invitable() {
			s.ids[row.ID] = struct{}{}
		}
	}
}

func (s *Selection) State() SelectionState {
	if len(s.ids) == 0 {
		return SelectionEmpty
	}
	if len(s.ids) == s.invitableCount() {
		return SelectionFull
	}
	return SelectionPartial
}

func (s *Selection) Selected(employeeID string) bool {
	_, ok := s.ids[employeeID]
	return ok
}

// IDs returns the selected ids in page order.
func (s *Selection) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for _, row := range s.rows {
		if s.Selected(row.ID) {
			ids = append(ids, row.ID)
		}
	}
	return ids
}

// Records maps the selection to name/email pairs from the loaded page.
func (s *Selection) Records() []domain.Record {
	records := make([]domain.Record, 0, len(s.ids))
	for _, row := range s.rows {
		if s.Selected(row.ID) {
			records = append(records, row.Record())
		}
	}
	return records
}

// CanSelectAll reports whether the page has anything to select.
func (s *Selection) CanSelectAll() bool {
	return s.invitableCount() > 0
}

func (s *Selection) row(employeeID string) (domain.DirectoryEmployee, bool) {
	for _, row := range s.rows {
		if row.ID == employeeID {
			return row, true
		}
	}
	return domain.DirectoryEmployee{}, false
}

func (s *Selection) invitableCount() int {
	n := 0
	for _, row := range s.rows {
		if row.Invitable() {
			n++
		}
	}
	return n
}
