package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/nicolagi/taskflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintTodos(t *testing.T) {
	var buf bytes.Buffer
	require.Nil(t, printTodos(&buf, nil, emptyMessage(false, true)))
	assert.Equal(t, "No to-do items found. Add some tasks to get started!\n", buf.String())

	buf.Reset()
	require.Nil(t, printTodos(&buf, []taskflow.Todo{
		{ID: taskflow.NewID(1), Heading: "Buy milk", CreatedAt: "2025-03-07"},
		{ID: taskflow.NewID(22), Heading: "Taxes", IsComplete: true},
	}, ""))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "1 "))
	assert.Contains(t, lines[0], "[ ]")
	assert.Contains(t, lines[0], "Mar 7, 2025")
	assert.Contains(t, lines[1], "[x]")
	assert.Contains(t, lines[1], "N/A")
}

func TestPrintTodo(t *testing.T) {
	var buf bytes.Buffer
	require.Nil(t, printTodo(&buf, taskflow.Todo{ID: taskflow.NewID(1), Heading: "Buy milk", Body: "2L", IsComplete: true, CreatedAt: "bad"}))
	assert.Equal(t, "Title: Buy milk\nStatus: Completed\nCreated: Invalid date\n\n2L\n", buf.String())
}

func TestPrintProgress(t *testing.T) {
	var buf bytes.Buffer
	require.Nil(t, printProgress(&buf, taskflow.Progress{}))
	assert.Equal(t, "No tasks yet. Get started by creating your first task.\n", buf.String())

	buf.Reset()
	require.Nil(t, printProgress(&buf, taskflow.Progress{Total: 4, Completed: 1, Remaining: 3}))
	out := buf.String()
	assert.Contains(t, out, " 25% completed")
	assert.Contains(t, out, "1 task ")
	assert.Contains(t, out, "3 tasks")
	assert.Contains(t, out, "(75%)")
}

func TestFetchError(t *testing.T) {
	cause := errors.New("fetch todos: connection refused")
	failed := taskflow.Reduce(taskflow.NewState(), taskflow.Action{
		Type:  taskflow.ActionFetchTodos,
		Phase: taskflow.Rejected,
		Err:   "Server error: 500",
	})
	assert.EqualError(t, fetchError(failed, cause), "Server error: 500")
	assert.Equal(t, cause, fetchError(taskflow.NewState(), cause))
}
