package taskflow

import "fmt"

// Status tracks the lifecycle of the most recently initiated fetch. It is global to the collection, not per
// todo.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("%d", int(s))
	}
}

// State is the todo collection together with the status of the last fetch. Treat values returned by
// Store.State and Reduce as read-only snapshots; the Todos slice is never modified in place by this package,
// and callers shouldn't modify it either.
type State struct {
	Todos  []Todo
	Status Status

	// Message describing why the last fetch failed. Empty unless Status is StatusFailed.
	Error string

	// Token of the latest fetch that went pending. Outcomes of older fetches are ignored.
	fetchToken uint64
}

// NewState returns the state a store starts with: no todos, idle, no error.
func NewState() State {
	return State{Todos: []Todo{}, Status: StatusIdle}
}

func (s State) indexOf(id ID) int {
	for i := range s.Todos {
		if s.Todos[i].ID == id {
			return i
		}
	}
	return -1
}
