package model

type Role string

const (
	RoleModerator Role = "moderator"
	RoleConductor Role = "conductor"
)

func (r Role) Valid() bool {
	return r == RoleModerator || r == RoleConductor
}

// Grants reports whether a session holding r may act as want. The moderator
// can do everything the conductor can.
func (r Role) Grants(want Role) bool {
	return r == want || r == RoleModerator
}
