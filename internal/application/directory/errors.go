package directory

import "errors"

var (
	ErrViewNotFound    = errors.New("directory view not found")
	ErrViewClosed      = errors.New("directory view closed")
	ErrInvalidPage     = errors.New("invalid page")
	ErrInvalidFilter   = errors.New("invalid filter")
	ErrNotOnPage       = errors.New("employee is not on the current page")
	ErrNotInvitable    = errors.New("employee is not pending invitation")
	ErrNothingSelected = errors.New("no employees selected")
	ErrDeleteNotArmed  = errors.New("no delete awaiting confirmation")
	ErrFetchDirectory  = errors.New("failed to fetch employee directory")
	ErrInviteEmployees = errors.New("failed to invite employees")
	ErrDeleteEmployee  = errors.New("failed to delete employee")
)
