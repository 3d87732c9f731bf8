package taskflow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	todoSchemaURL  = "https://taskflow.local/schemas/todo.json"
	todosSchemaURL = "https://taskflow.local/schemas/todos.json"
)

// The API contract for a todo. Only the id is required: missing text fields decode as empty strings, and
// missing timestamps are fine. The legacy "completed" flag is allowed alongside "isComplete".
const todoSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["id"],
	"properties": {
		"id": {"type": ["integer", "string"]},
		"heading": {"type": "string"},
		"body": {"type": "string"},
		"isComplete": {"type": "boolean"},
		"completed": {"type": "boolean"},
		"created_at": {"type": ["string", "null"]},
		"updated_at": {"type": ["string", "null"]}
	}
}`

const todosSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "array",
	"items": {"$ref": "todo.json"}
}`

var schemas struct {
	once  sync.Once
	todo  *jsonschema.Schema
	todos *jsonschema.Schema
	err   error
}

func compileSchemas() {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(todoSchemaURL, strings.NewReader(todoSchema)); err != nil {
		schemas.err = fmt.Errorf("add todo schema: %w", err)
		return
	}
	if err := compiler.AddResource(todosSchemaURL, strings.NewReader(todosSchema)); err != nil {
		schemas.err = fmt.Errorf("add todos schema: %w", err)
		return
	}
	if schemas.todo, schemas.err = compiler.Compile(todoSchemaURL); schemas.err != nil {
		return
	}
	schemas.todos, schemas.err = compiler.Compile(todosSchemaURL)
}

// validateTodo checks b holds a single todo object.
func validateTodo(b []byte) error {
	schemas.once.Do(compileSchemas)
	if schemas.err != nil {
		return schemas.err
	}
	return validateAgainst(schemas.todo, b)
}

// validateTodos checks b holds an array of todo objects.
func validateTodos(b []byte) error {
	schemas.once.Do(compileSchemas)
	if schemas.err != nil {
		return schemas.err
	}
	return validateAgainst(schemas.todos, b)
}

func validateAgainst(schema *jsonschema.Schema, b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return err
	}
	if err := schema.Validate(v); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			return fmt.Errorf("%s", schemaErrorSummary(ve))
		}
		return err
	}
	return nil
}

// schemaErrorSummary flattens the cause tree into "location: message" lines.
func schemaErrorSummary(err *jsonschema.ValidationError) string {
	var lines []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			lines = append(lines, fmt.Sprintf("%s: %s", loc, e.Message))
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(err)
	return strings.Join(lines, "; ")
}
