package bot

// Gate decides whether a sender may use the bot. The allow-list is fixed
// at startup and never mutated, so lookups need no locking.
type Gate struct {
	allowed map[int64]struct{}
}

func NewGate(allowed map[int64]struct{}) *Gate {
	return &Gate{allowed: allowed}
}

// Allowed reports whether the sender id is on the allow-list.
func (g *Gate) Allowed(userID int64) bool {
	_, ok := g.allowed[userID]
	return ok
}
