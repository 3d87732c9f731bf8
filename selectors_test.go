package taskflow_test

import (
	"testing"

	"github.com/nicolagi/taskflow"
	"github.com/stretchr/testify/assert"
)

func TestSelectorsPartition(t *testing.T) {
	states := []taskflow.State{
		taskflow.NewState(),
		loaded(todo(1, "a", false)),
		loaded(todo(1, "a", true), todo(2, "b", false), todo(3, "c", true), todo(4, "d", false)),
	}
	for _, s := range states {
		all := taskflow.SelectAll(s)
		completed := taskflow.SelectCompleted(s)
		incomplete := taskflow.SelectIncomplete(s)
		assert.Len(t, all, len(completed)+len(incomplete))
		for _, c := range completed {
			assert.True(t, c.IsComplete)
			assert.NotContains(t, incomplete, c)
			assert.Contains(t, all, c)
		}
		for _, i := range incomplete {
			assert.False(t, i.IsComplete)
			assert.Contains(t, all, i)
		}
	}

	s := states[2]
	assert.Equal(t, s.Todos, taskflow.SelectAll(s))
	assert.Equal(t, []taskflow.Todo{todo(1, "a", true), todo(3, "c", true)}, taskflow.SelectCompleted(s))
	assert.Equal(t, []taskflow.Todo{todo(2, "b", false), todo(4, "d", false)}, taskflow.SelectIncomplete(s))
}

func TestSelectByID(t *testing.T) {
	s := loaded(todo(1, "a", false), todo(2, "b", true))
	found, ok := taskflow.SelectByID(s, taskflow.NewID(2))
	assert.True(t, ok)
	assert.Equal(t, "b", found.Heading)
	_, ok = taskflow.SelectByID(s, taskflow.NewID(3))
	assert.False(t, ok)
	_, ok = taskflow.SelectByID(s, taskflow.NewStringID("2"))
	assert.False(t, ok)
}

func TestSelectStatusAndError(t *testing.T) {
	s := taskflow.Reduce(taskflow.NewState(), taskflow.Action{
		Type:  taskflow.ActionFetchTodos,
		Phase: taskflow.Rejected,
		Err:   "Request failed with status code 404",
	})
	assert.Equal(t, taskflow.StatusFailed, taskflow.SelectStatus(s))
	assert.Equal(t, "failed", taskflow.SelectStatus(s).String())
	assert.Equal(t, "Request failed with status code 404", taskflow.SelectError(s))
}

func TestSelectProgress(t *testing.T) {
	p := taskflow.SelectProgress(taskflow.NewState())
	assert.Equal(t, taskflow.Progress{}, p)
	assert.Equal(t, 0, p.Percent())

	p = taskflow.SelectProgress(loaded(todo(1, "a", true), todo(2, "b", false), todo(3, "c", false)))
	assert.Equal(t, taskflow.Progress{Total: 3, Completed: 1, Remaining: 2}, p)
	assert.Equal(t, 33, p.Percent())
	assert.Equal(t, []taskflow.ProgressEntry{
		{Name: "Completed", Value: 1, Percent: 33},
		{Name: "To Do", Value: 2, Percent: 67},
	}, p.Legend())

	testCases := []struct {
		completed, total, percent int
	}{
		{1, 2, 50},
		{1, 8, 13}, // 12.5 rounds up
		{3, 8, 38}, // 37.5 rounds up
		{2, 3, 67},
		{5, 5, 100},
		{0, 4, 0},
	}
	for _, tc := range testCases {
		p := taskflow.Progress{Total: tc.total, Completed: tc.completed, Remaining: tc.total - tc.completed}
		assert.Equal(t, tc.percent, p.Percent(), "%d/%d", tc.completed, tc.total)
	}
}
