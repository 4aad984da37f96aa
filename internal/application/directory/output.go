package directory

import (
	"time"
)

type EmployeeOutput struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	ProfileStatus string     `json:"profile_status"`
	LastActive    *time.Time `json:"last_active"`
	IsAccepted    bool       `json:"is_accepted"`
	InvitedOn     *time.Time `json:"invited_on"`
	AcceptedOn    *time.Time `json:"accepted_on"`
	Invitable     bool       `json:"invitable"`
	Selected      bool       `json:"selected"`
}

type PaginationOutput struct {
	CurrentPage int    `json:"current_page"`
	PrevPage    *int   `json:"prev_page"`
	NextPage    *int   `json:"next_page"`
	Result      string `json:"result"`
}

type FiltersOutput struct {
	Page       int    `json:"page"`
	Status     string `json:"status"`
	LastActive string `json:"last_active"`
	Search     string `json:"search"`
}

type SelectionOutput struct {
	State        SelectionState `json:"state"`
	IDs          []string       `json:"ids"`
	CanSelectAll bool           `json:"can_select_all"`
	CanInvite    bool           `json:"can_invite"`
}

type ViewOutput struct {
	ID               string           `json:"id"`
	Employees        []EmployeeOutput `json:"employees"`
	Pagination       PaginationOutput `json:"pagination"`
	Filters          FiltersOutput    `json:"filters"`
	Selection        SelectionOutput  `json:"selection"`
	Loading          bool             `json:"loading"`
	RedirectToSignIn bool             `json:"redirect_to_sign_in"`
	PendingDelete    *string          `json:"pending_delete"`
}

func newViewOutput(id string, snap EngineSnapshot, selection *Selection, pendingDelete string) ViewOutput {
	employees := make([]EmployeeOutput, 0, len(snap.Page.Employees))
	for _, e := range snap.Page.Employees {
		employees = append(employees, EmployeeOutput{
			ID:            e.ID,
			Name:          e.Name,
			Email:         e.Email,
			ProfileStatus: string(e.ProfileStatus),
			LastActive:    e.LastActive,
			IsAccepted:    e.IsAccepted,
			InvitedOn:     e.InvitedOn,
			AcceptedOn:    e.AcceptedOn,
			Invitable:     e.Invitable(),
			Selected:      selection.Selected(e.ID),
		})
	}

	out := ViewOutput{
		ID:        id,
		Employees: employees,
		Pagination: PaginationOutput{
			CurrentPage: snap.Page.Pagination.CurrentPage,
			PrevPage:    snap.Page.Pagination.PrevPage,
			NextPage:    snap.Page.Pagination.NextPage,
			Result:      snap.Page.Pagination.Result,
		},
		Filters: FiltersOutput{
			Page:       snap.Query.Page,
			Status:     string(snap.Query.Status),
			LastActive: string(snap.Query.LastActive),
			Search:     snap.Query.Search,
		},
		Selection: SelectionOutput{
			State:        selection.State(),
			IDs:          selection.IDs(),
			CanSelectAll: selection.CanSelectAll(),
			CanInvite:    len(selection.IDs()) > 0,
		},
		Loading:          snap.Loading,
		RedirectToSignIn: snap.Unauthorized,
	}
	if pendingDelete != "" {
		out.PendingDelete = &pendingDelete
	}
	return out
}
