package remote

import (
	"time"

	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
)

type employeePayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type batchRequest struct {
	Employees []employeePayload `json:"employees"`
}

func newBatchRequest(records []domain.Record) batchRequest {
	employees := make([]employeePayload, 0, len(records))
	for _, r := range records {
		employees = append(employees, employeePayload{Email: r.Email, Name: r.Name})
	}
	return batchRequest{Employees: employees}
}

type messageResponse struct {
	Message string `json:"message"`
}

type onboardResponse struct {
	Message         string `json:"message"`
	OnboardedResult *struct {
		TotalProcessed int `json:"totalProcessed"`
	} `json:"onboardedResult"`
}

type directoryEmployee struct {
	ID            string     `json:"id"`
	MongoID       string     `json:"_id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	ProfileStatus string     `json:"profileStatus"`
	LastActive    *time.Time `json:"lastActive"`
	IsAccepted    bool       `json:"isAccepted"`
	InvitedOn     *time.Time `json:"invitedOn"`
	AcceptedOn    *time.Time `json:"acceptedOn"`
}

type pagination struct {
	CurrentPage int    `json:"currentPage"`
	PrevPage    *int   `json:"prevPage"`
	NextPage    *int   `json:"nextPage"`
	Result      string `json:"result"`
}

type listResponse struct {
	Employees  []directoryEmployee `json:"employees"`
	Pagination pagination          `json:"pagination"`
}

func (r listResponse) toDomain() domain.Page {
	employees := make([]domain.DirectoryEmployee, 0, len(r.Employees))
	for _, e := range r.Employees {
		id := e.ID
		if id == "" {
			id = e.MongoID
		}
		employees = append(employees, domain.DirectoryEmployee{
			ID:            id,
			Name:          e.Name,
			Email:         e.Email,
			ProfileStatus: domain.ProfileStatus(e.ProfileStatus),
			LastActive:    e.LastActive,
			IsAccepted:    e.IsAccepted,
			InvitedOn:     e.InvitedOn,
			AcceptedOn:    e.AcceptedOn,
		})
	}

	return domain.Page{
		Employees: employees,
		Pagination: domain.Pagination{
			CurrentPage: r.Pagination.CurrentPage,
			PrevPage:    r.Pagination.PrevPage,
			NextPage:    r.Pagination.NextPage,
			Result:      r.Pagination.Result,
		},
	}
}
