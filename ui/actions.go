package ui

// actionState is the lifecycle of one user-triggered mutating request.
type actionState int

const (
	actionIdle actionState = iota
	actionPending
	actionSucceeded
	actionFailed
)

const (
	submitAction   = "submit"
	waitlistAction = "waitlist"
)

func agentAction(id string) string  { return "agent:" + id }
func bundleAction(id string) string { return "bundle:" + id }

// actionGuard tracks the state of every control by key. A control that is
// pending or has succeeded issues no further requests; a failed control
// may be retried.
type actionGuard map[string]actionState

func (g actionGuard) state(key string) actionState {
	return g[key]
}

// begin marks key pending and reports whether a request may be sent.
func (g actionGuard) begin(key string) bool {
	switch g[key] {
	case actionPending, actionSucceeded:
		return false
	}
	g[key] = actionPending
	return true
}

func (g actionGuard) finish(key string, err error) {
	if err != nil {
		g[key] = actionFailed
		return
	}
	g[key] = actionSucceeded
}

func (g actionGuard) reset(key string) {
	delete(g, key)
}
