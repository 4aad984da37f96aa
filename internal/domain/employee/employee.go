package employee

import (
	"net/mail"
	"strings"
)

// Record is a single employee as submitted for onboarding or invitation.
type Record struct {
	Name  string
	Email string
}

// NewRecord builds a Record from single-entry form input.
func NewRecord(name, email string) (Record, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return Record{}, ErrInvalidEmployee
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return Record{}, ErrInvalidEmployee
	}

	return Record{Name: name, Email: email}, nil
}
