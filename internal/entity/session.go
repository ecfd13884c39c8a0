package entity

import "time"

// Session is either Authenticated or Anonymous.
type Session interface {
	isSession()
}

type Authenticated struct {
	User      User
	Role      Role
	TokenID   string
	ExpiresAt time.Time
}

type Anonymous struct{}

func (Authenticated) isSession() {}
func (Anonymous) isSession()     {}

func (a Authenticated) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// AsAuthenticated unwraps s. The second result is false for Anonymous.
func AsAuthenticated(s Session) (Authenticated, bool) {
	a, ok := s.(Authenticated)
	return a, ok
}
