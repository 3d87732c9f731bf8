package taskflow_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/nicolagi/taskflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDMarshal(t *testing.T) {
	checkMarshal := func(in taskflow.ID, out string) {
		b, err := json.Marshal(in)
		require.Nil(t, err)
		assert.Equal(t, out, string(b))
	}

	checkMarshalErr := func(in taskflow.ID, expected error) {
		b, err := json.Marshal(in)
		require.Nil(t, b)
		assert.True(t, errors.Is(err, expected))
	}

	checkMarshal(taskflow.NewID(42), "42")
	checkMarshal(taskflow.NewStringID("abc-1"), `"abc-1"`)
	checkMarshalErr(taskflow.NewID(0), taskflow.ErrZeroID)
	checkMarshalErr(taskflow.NewStringID(""), taskflow.ErrZeroID)

	todo := taskflow.Todo{ID: taskflow.NewStringID("x1"), Heading: "h"}
	b, err := json.Marshal(todo)
	require.Nil(t, err)
	assert.Equal(t, `{"id":"x1","heading":"h","body":"","isComplete":false}`, string(b))
}

func TestIDUnmarshal(t *testing.T) {
	checkUnmarshal := func(in string, out taskflow.ID) {
		var actual taskflow.ID
		err := json.Unmarshal([]byte(in), &actual)
		require.Nil(t, err)
		assert.Equal(t, out, actual)
	}

	checkUnmarshalErr := func(in string, expected error) {
		var actual taskflow.ID
		err := json.Unmarshal([]byte(in), &actual)
		t.Logf("Error is: %v", err)
		assert.True(t, errors.Is(err, expected))
	}

	checkUnmarshal("42", taskflow.NewID(42))
	checkUnmarshal(`"abc-1"`, taskflow.NewStringID("abc-1"))
	checkUnmarshalErr("0", taskflow.ErrZeroID)
	checkUnmarshalErr(`""`, taskflow.ErrZeroID)
}

func TestIDEquality(t *testing.T) {
	assert.Equal(t, taskflow.NewID(7), taskflow.NewID(7))
	assert.NotEqual(t, taskflow.NewID(1), taskflow.NewStringID("1"))
	assert.Equal(t, taskflow.NewID(1).String(), taskflow.NewStringID("1").String())
	assert.True(t, taskflow.ID{}.IsZero())
	assert.False(t, taskflow.NewID(-3).IsZero())
}

func TestParseID(t *testing.T) {
	id, err := taskflow.ParseID(" 12 ")
	require.Nil(t, err)
	assert.Equal(t, taskflow.NewID(12), id)

	id, err = taskflow.ParseID("a7f")
	require.Nil(t, err)
	assert.Equal(t, taskflow.NewStringID("a7f"), id)

	_, err = taskflow.ParseID("0")
	assert.True(t, errors.Is(err, taskflow.ErrZeroID))
	_, err = taskflow.ParseID("  ")
	assert.True(t, errors.Is(err, taskflow.ErrZeroID))
}
