package model

// Actor is the identity performing a command or query. It is built by the
// authentication middleware and never persisted; the zero value is the
// anonymous actor.
type Actor struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Staff bool   `json:"staff"`
}

// Anonymous reports whether the actor is unauthenticated.
func (a Actor) Anonymous() bool {
	return a.ID == 0
}
