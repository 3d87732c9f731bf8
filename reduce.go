package taskflow

import "fmt"

// ActionType names what an action is about. The values match the action names the web front-end of
// TaskFlow uses, which makes wire logs and debug logs easy to correlate.
type ActionType string

const (
	ActionFetchTodos             ActionType = "todos/fetchTodos"
	ActionFetchTodosByCompletion ActionType = "todos/fetchTodosByCompletion"
	ActionAddTodo                ActionType = "todos/addTodo"
	ActionUpdateTodo             ActionType = "todos/updateTodo"
	ActionToggleTodoCompletion   ActionType = "todos/toggleTodoCompletion"
	ActionDeleteTodo             ActionType = "todos/deleteTodo"
	ActionClearTodos             ActionType = "todos/clearTodos"
)

// Phase is where an asynchronous action is in its life: it goes pending when the request is sent, and is
// then either fulfilled or rejected. Synchronous actions (clearTodos) are dispatched as fulfilled.
type Phase int

const (
	Pending Phase = iota
	Fulfilled
	Rejected
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("%d", int(p))
	}
}

// Action is what gets folded into the state by Reduce. Which payload field is meaningful depends on the
// type: Todos for fetches, Todo for add/update/toggle, ID for delete, Err for any rejection.
type Action struct {
	Type  ActionType
	Phase Phase

	// Token correlates the phases of a fetch. Zero means untracked, and the outcome always applies.
	Token uint64

	Todos []Todo
	Todo  Todo
	ID    ID
	Err   string
}

func (a Action) String() string {
	return fmt.Sprintf("%s/%v", a.Type, a.Phase)
}

// Reduce returns the state that results from applying action to s. It is a pure function: s, including the
// backing array of s.Todos, is left untouched. Unknown combinations of type and phase return s unchanged.
//
// A fulfilled fetch replaces the todos with the payload in order, except that an id repeated in the payload
// keeps only its first occurrence, so ids in the state stay unique.
func Reduce(s State, action Action) State {
	switch action.Type {
	case ActionFetchTodos, ActionFetchTodosByCompletion:
		return reduceFetch(s, action)
	case ActionAddTodo:
		if action.Phase == Fulfilled {
			if i := s.indexOf(action.Todo.ID); i >= 0 {
				s.Todos = replaced(s.Todos, i, action.Todo)
			} else {
				s.Todos = appended(s.Todos, action.Todo)
			}
		}
	case ActionUpdateTodo, ActionToggleTodoCompletion:
		if action.Phase == Fulfilled {
			if i := s.indexOf(action.Todo.ID); i >= 0 {
				s.Todos = replaced(s.Todos, i, action.Todo)
			}
		}
	case ActionDeleteTodo:
		if action.Phase == Fulfilled {
			if i := s.indexOf(action.ID); i >= 0 {
				s.Todos = removed(s.Todos, i)
			}
		}
	case ActionClearTodos:
		s.Todos = []Todo{}
	}
	return s
}

func reduceFetch(s State, action Action) State {
	switch action.Phase {
	case Pending:
		s.Status = StatusLoading
		s.Error = ""
		if action.Token != 0 {
			s.fetchToken = action.Token
		}
	case Fulfilled:
		if stale(s, action) {
			return s
		}
		s.Status = StatusSucceeded
		s.Error = ""
		s.Todos = distinct(action.Todos)
	case Rejected:
		if stale(s, action) {
			return s
		}
		s.Status = StatusFailed
		s.Error = action.Err
		if s.Error == "" {
			s.Error = errorMessage(nil)
		}
	}
	return s
}

func stale(s State, action Action) bool {
	return action.Token != 0 && action.Token != s.fetchToken
}

// distinct copies todos, dropping later entries whose id was already seen.
func distinct(todos []Todo) []Todo {
	out := make([]Todo, 0, len(todos))
	seen := make(map[ID]bool, len(todos))
	for _, t := range todos {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}

func appended(todos []Todo, t Todo) []Todo {
	out := make([]Todo, len(todos), len(todos)+1)
	copy(out, todos)
	return append(out, t)
}

func replaced(todos []Todo, i int, t Todo) []Todo {
	out := make([]Todo, len(todos))
	copy(out, todos)
	out[i] = t
	return out
}

func removed(todos []Todo, i int) []Todo {
	out := make([]Todo, 0, len(todos)-1)
	out = append(out, todos[:i]...)
	return append(out, todos[i+1:]...)
}
