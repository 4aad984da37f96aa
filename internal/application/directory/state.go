package directory

import "sync"

// State is the session-scoped dashboard state handed to every component of a
// view. It is the only place the caller's credential is kept. The subject and
// organization are fixed when the view opens and identify its owner.
type State struct {
	subject      string
	organization string

	mu    sync.RWMutex
	token string
}

func NewState(token, subject, organization string) *State {
	return &State{token: token, subject: subject, organization: organization}
}

func (s *State) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken replaces the credential, e.g. after the caller refreshed it.
func (s *State) SetToken(token string) {
	if token == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *State) Subject() string {
	return s.subject
}

func (s *State) Organization() string {
	return s.organization
}

// OwnedBy reports whether the caller is the one the view was opened for.
func (s *State) OwnedBy(subject, organization string) bool {
	return s.subject == subject && s.organization == organization
}
