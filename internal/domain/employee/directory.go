package employee

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

type ProfileStatus string

const (
	StatusComplete   ProfileStatus = "complete"
	StatusIncomplete ProfileStatus = "incomplete"
	StatusInactive   ProfileStatus = "inactive"
	StatusPending    ProfileStatus = "pending"
)

// FilterAll is the sentinel for "no constraint"; it is never sent upstream.
const FilterAll = "all"

type StatusFilter string

func (f StatusFilter) Valid() bool {
	switch f {
	case FilterAll, StatusFilter(StatusComplete), StatusFilter(StatusIncomplete),
		StatusFilter(StatusInactive), StatusFilter(StatusPending):
		return true
	}
	return false
}

type LastActiveFilter string

const (
	LastActive7Days  LastActiveFilter = "7d"
	LastActive30Days LastActiveFilter = "30d"
	LastActive90Days LastActiveFilter = "90d"
)

func (f LastActiveFilter) Valid() bool {
	switch f {
	case FilterAll, LastActive7Days, LastActive30Days, LastActive90Days:
		return true
	}
	return false
}

// DirectoryEmployee is owned by the remote directory; the client only reads it.
type DirectoryEmployee struct {
	ID            string
	Name          string
	Email         string
	ProfileStatus ProfileStatus
	LastActive    *time.Time
	IsAccepted    bool
	InvitedOn     *time.Time
	AcceptedOn    *time.Time
}

// Invitable reports whether the employee may be selected for invitation.
func (e DirectoryEmployee) Invitable() bool {
	return e.ProfileStatus == StatusPending
}

func (e DirectoryEmployee) Record() Record {
	return Record{Name: e.Name, Email: e.Email}
}

// Pagination is produced by the server; the client never computes it.
type Pagination struct {
	CurrentPage int
	PrevPage    *int
	NextPage    *int
	Result      string
}

type Page struct {
	Employees  []DirectoryEmployee
	Pagination Pagination
}

type ListQuery struct {
	Page       int
	Status     StatusFilter
	LastActive LastActiveFilter
	Search     string
}

// DefaultListQuery is the query a freshly opened directory view issues.
func DefaultListQuery() ListQuery {
	return ListQuery{Page: 1, Status: FilterAll, LastActive: FilterAll}
}

// Values encodes the query for the listing endpoint. The "all" sentinels and
// a blank search are omitted.
func (q ListQuery) Values() url.Values {
	page := q.Page
	if page < 1 {
		page = 1
	}

	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	if q.Status != "" && q.Status != FilterAll {
		values.Set("status", string(q.Status))
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		values.Set("search", search)
	}
	if q.LastActive != "" && q.LastActive != FilterAll {
		values.Set("lastActive", string(q.LastActive))
	}
	return values
}
