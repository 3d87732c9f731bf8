package taskflow_test

import (
	"testing"

	"github.com/nicolagi/taskflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headings(todos []taskflow.Todo) []string {
	var out []string
	for _, t := range todos {
		out = append(out, t.Heading)
	}
	return out
}

func TestSortTodos(t *testing.T) {
	base := []taskflow.Todo{
		{ID: taskflow.NewID(1), Heading: "pears", CreatedAt: "2025-03-02", UpdatedAt: "2025-03-05T10:00:00Z"},
		{ID: taskflow.NewID(2), Heading: "Apples", CreatedAt: "bogus"},
		{ID: taskflow.NewID(3), Heading: "figs", CreatedAt: "2025-03-01T08:00:00Z", UpdatedAt: "2025-03-09T10:00:00Z"},
		{ID: taskflow.NewID(4), Heading: "apples", CreatedAt: "2025-03-03"},
	}
	sorted := func(order taskflow.SortOrder) []string {
		todos := append([]taskflow.Todo(nil), base...)
		taskflow.SortTodos(todos, order)
		return headings(todos)
	}

	assert.Equal(t, []string{"pears", "Apples", "figs", "apples"}, sorted(taskflow.SortNone))
	assert.Equal(t, []string{"Apples", "apples", "figs", "pears"}, sorted(taskflow.SortHeading))
	assert.Equal(t, []string{"figs", "pears", "apples", "Apples"}, sorted(taskflow.SortCreated))
	assert.Equal(t, []string{"figs", "pears", "Apples", "apples"}, sorted(taskflow.SortUpdated))
}

func TestParseSortOrder(t *testing.T) {
	for in, expected := range map[string]taskflow.SortOrder{
		"":          taskflow.SortNone,
		"none":      taskflow.SortNone,
		" Heading ": taskflow.SortHeading,
		"created":   taskflow.SortCreated,
		"UPDATED":   taskflow.SortUpdated,
	} {
		order, err := taskflow.ParseSortOrder(in)
		require.Nil(t, err, in)
		assert.Equal(t, expected, order, in)
	}
	_, err := taskflow.ParseSortOrder("due")
	assert.NotNil(t, err)
}
