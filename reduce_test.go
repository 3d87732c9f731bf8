package taskflow_test

import (
	"testing"

	"github.com/nicolagi/taskflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func todo(id int64, heading string, complete bool) taskflow.Todo {
	return taskflow.Todo{ID: taskflow.NewID(id), Heading: heading, Body: heading + " body", IsComplete: complete}
}

func reduceAll(s taskflow.State, actions ...taskflow.Action) taskflow.State {
	for _, a := range actions {
		s = taskflow.Reduce(s, a)
	}
	return s
}

func loaded(todos ...taskflow.Todo) taskflow.State {
	return taskflow.Reduce(taskflow.NewState(), taskflow.Action{
		Type:  taskflow.ActionFetchTodos,
		Phase: taskflow.Fulfilled,
		Todos: todos,
	})
}

func TestReduceFetchScenario(t *testing.T) {
	s := taskflow.NewState()
	assert.Equal(t, taskflow.StatusIdle, s.Status)
	assert.Empty(t, s.Error)
	assert.NotNil(t, s.Todos)
	assert.Len(t, s.Todos, 0)

	s = taskflow.Reduce(s, taskflow.Action{Type: taskflow.ActionFetchTodos, Phase: taskflow.Pending})
	assert.Equal(t, taskflow.StatusLoading, s.Status)

	a := taskflow.Todo{ID: taskflow.NewID(1), Heading: "A", Body: "b"}
	s = taskflow.Reduce(s, taskflow.Action{
		Type:  taskflow.ActionFetchTodos,
		Phase: taskflow.Fulfilled,
		Todos: []taskflow.Todo{a},
	})
	assert.Equal(t, taskflow.StatusSucceeded, s.Status)
	assert.Equal(t, []taskflow.Todo{a}, s.Todos)
}

func TestReduceFetchReplaces(t *testing.T) {
	s := loaded(todo(1, "a", false), todo(2, "b", true))
	for _, typ := range []taskflow.ActionType{taskflow.ActionFetchTodos, taskflow.ActionFetchTodosByCompletion} {
		payload := []taskflow.Todo{todo(3, "c", false)}
		next := reduceAll(s,
			taskflow.Action{Type: typ, Phase: taskflow.Pending},
			taskflow.Action{Type: typ, Phase: taskflow.Fulfilled, Todos: payload},
		)
		assert.Equal(t, taskflow.StatusSucceeded, next.Status)
		assert.Equal(t, payload, next.Todos)
	}

	empty := taskflow.Reduce(s, taskflow.Action{Type: taskflow.ActionFetchTodos, Phase: taskflow.Fulfilled})
	assert.NotNil(t, empty.Todos)
	assert.Len(t, empty.Todos, 0)
}

func TestReduceFetchDropsDuplicateIDs(t *testing.T) {
	first := todo(1, "first", false)
	s := loaded(first, todo(2, "b", false), todo(1, "again", true))
	assert.Equal(t, []taskflow.Todo{first, todo(2, "b", false)}, s.Todos)
}

func TestReduceFetchRejected(t *testing.T) {
	before := loaded(todo(1, "a", false))
	s := reduceAll(before,
		taskflow.Action{Type: taskflow.ActionFetchTodos, Phase: taskflow.Pending},
		taskflow.Action{Type: taskflow.ActionFetchTodos, Phase: taskflow.Rejected, Err: "Network error"},
	)
	assert.Equal(t, taskflow.StatusFailed, s.Status)
	assert.Equal(t, "Network error", s.Error)
	assert.Equal(t, before.Todos, s.Todos)

	// Retrying clears the error.
	s = taskflow.Reduce(s, taskflow.Action{Type: taskflow.ActionFetchTodos, Phase: taskflow.Pending})
	assert.Equal(t, taskflow.StatusLoading, s.Status)
	assert.Empty(t, s.Error)

	s = taskflow.Reduce(s, taskflow.Action{Type: taskflow.ActionFetchTodos, Phase: taskflow.Rejected})
	assert.Equal(t, "request failed", s.Error)
}

func TestReduceStaleFetch(t *testing.T) {
	older := []taskflow.Todo{todo(1, "old", false)}
	newer := []taskflow.Todo{todo(2, "new", true)}

	s := reduceAll(taskflow.NewState(),
		taskflow.Action{Type: taskflow.ActionFetchTodos, Phase: taskflow.Pending, Token: 1},
		taskflow.Action{Type: taskflow.ActionFetchTodosByCompletion, Phase: taskflow.Pending, Token: 2},
		taskflow.Action{Type: taskflow.ActionFetchTodosByCompletion, Phase: taskflow.Fulfilled, Token: 2, Todos: newer},
		taskflow.Action{Type: taskflow.ActionFetchTodos, Phase: taskflow.Fulfilled, Token: 1, Todos: older},
	)
	assert.Equal(t, taskflow.StatusSucceeded, s.Status)
	assert.Equal(t, newer, s.Todos)

	s = reduceAll(s,
		taskflow.Action{Type: taskflow.ActionFetchTodos, Phase: taskflow.Pending, Token: 3},
		taskflow.Action{Type: taskflow.ActionFetchTodos, Phase: taskflow.Pending, Token: 4},
		taskflow.Action{Type: taskflow.ActionFetchTodos, Phase: taskflow.Rejected, Token: 3, Err: "Network error"},
	)
	assert.Equal(t, taskflow.StatusLoading, s.Status)
	assert.Empty(t, s.Error)

	// Untracked outcomes always apply.
	s = taskflow.Reduce(s, taskflow.Action{Type: taskflow.ActionFetchTodos, Phase: taskflow.Fulfilled, Todos: older})
	assert.Equal(t, older, s.Todos)
}

func TestReduceAdd(t *testing.T) {
	s := loaded(todo(1, "a", false))
	s.Status = taskflow.StatusFailed
	s.Error = "Network error"

	x := taskflow.Todo{ID: taskflow.NewID(2), Heading: "X", Body: "Y"}
	next := taskflow.Reduce(s, taskflow.Action{Type: taskflow.ActionAddTodo, Phase: taskflow.Fulfilled, Todo: x})
	assert.Equal(t, []taskflow.Todo{todo(1, "a", false), x}, next.Todos)
	assert.Equal(t, taskflow.StatusFailed, next.Status)
	assert.Equal(t, "Network error", next.Error)

	// The input state is untouched.
	assert.Len(t, s.Todos, 1)

	same := taskflow.Reduce(next, taskflow.Action{Type: taskflow.ActionAddTodo, Phase: taskflow.Fulfilled, Todo: todo(2, "X2", false)})
	assert.Len(t, same.Todos, 2)
	assert.Equal(t, "X2", same.Todos[1].Heading)

	for _, phase := range []taskflow.Phase{taskflow.Pending, taskflow.Rejected} {
		assert.Equal(t, s, taskflow.Reduce(s, taskflow.Action{Type: taskflow.ActionAddTodo, Phase: phase, Todo: x, Err: "boom"}))
	}
}

func TestReduceUpdate(t *testing.T) {
	s := loaded(todo(1, "a", false), todo(2, "b", false), todo(3, "c", false))
	updated := taskflow.Todo{ID: taskflow.NewID(2), Heading: "B", IsComplete: true}

	for _, typ := range []taskflow.ActionType{taskflow.ActionUpdateTodo, taskflow.ActionToggleTodoCompletion} {
		next := taskflow.Reduce(s, taskflow.Action{Type: typ, Phase: taskflow.Fulfilled, Todo: updated})
		assert.Equal(t, []taskflow.Todo{todo(1, "a", false), updated, todo(3, "c", false)}, next.Todos)
		assert.Equal(t, "b", s.Todos[1].Heading)
	}

	missing := taskflow.Reduce(s, taskflow.Action{Type: taskflow.ActionUpdateTodo, Phase: taskflow.Fulfilled, Todo: todo(9, "z", true)})
	assert.Equal(t, s, missing)

	rejected := taskflow.Reduce(s, taskflow.Action{Type: taskflow.ActionUpdateTodo, Phase: taskflow.Rejected, Todo: updated, Err: "x"})
	assert.Equal(t, s, rejected)
}

func TestReduceDelete(t *testing.T) {
	s := loaded(todo(1, "a", false), todo(2, "b", true), todo(3, "c", false))

	next := taskflow.Reduce(s, taskflow.Action{Type: taskflow.ActionDeleteTodo, Phase: taskflow.Fulfilled, ID: taskflow.NewID(2)})
	assert.Equal(t, []taskflow.Todo{todo(1, "a", false), todo(3, "c", false)}, next.Todos)
	_, found := taskflow.SelectByID(next, taskflow.NewID(2))
	assert.False(t, found)
	assert.Len(t, s.Todos, 3)

	again := taskflow.Reduce(next, taskflow.Action{Type: taskflow.ActionDeleteTodo, Phase: taskflow.Fulfilled, ID: taskflow.NewID(2)})
	assert.Equal(t, next, again)

	other := taskflow.Reduce(s, taskflow.Action{Type: taskflow.ActionDeleteTodo, Phase: taskflow.Fulfilled, ID: taskflow.NewStringID("2")})
	assert.Len(t, other.Todos, 3)
}

func TestReduceClear(t *testing.T) {
	s := loaded(todo(1, "a", false))
	s = taskflow.Reduce(s, taskflow.Action{Type: taskflow.ActionFetchTodos, Phase: taskflow.Rejected, Err: "e"})
	next := taskflow.Reduce(s, taskflow.Action{Type: taskflow.ActionClearTodos, Phase: taskflow.Fulfilled})
	require.NotNil(t, next.Todos)
	assert.Len(t, next.Todos, 0)
	assert.Equal(t, taskflow.StatusFailed, next.Status)
	assert.Equal(t, "e", next.Error)
}

func TestReduceUnknownAction(t *testing.T) {
	s := loaded(todo(1, "a", false))
	assert.Equal(t, s, taskflow.Reduce(s, taskflow.Action{Type: "todos/unknown", Phase: taskflow.Fulfilled}))
}
