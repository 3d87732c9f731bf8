package taskflow

import "strings"

type todoPredicate func(Todo) bool

func negate(p todoPredicate) todoPredicate {
	return func(t Todo) bool {
		return !p(t)
	}
}

// TodoScan filters a state's todos by a conjunction of predicates, e.g.,
//
//	s.Scan().WithComplete(false).WithText("milk").Results()
type TodoScan struct {
	todos      []Todo
	predicates []todoPredicate
}

// Scan starts a search over the todos in s.
func (s State) Scan() *TodoScan {
	return &TodoScan{todos: s.Todos}
}

// Not negates the last predicate added.  It will panic if no predicates were added.
func (scan *TodoScan) Not() *TodoScan {
	i := len(scan.predicates) - 1
	scan.predicates[i] = negate(scan.predicates[i])
	return scan
}

func (scan *TodoScan) WithComplete(value bool) *TodoScan {
	scan.predicates = append(scan.predicates, func(t Todo) bool {
		return t.IsComplete == value
	})
	return scan
}

// WithText looks for todos whose heading or body contains the given substring, case-insensitive.
func (scan *TodoScan) WithText(needle string) *TodoScan {
	needle = strings.ToLower(needle)
	scan.predicates = append(scan.predicates, func(t Todo) bool {
		return strings.Contains(strings.ToLower(t.Heading), needle) ||
			strings.Contains(strings.ToLower(t.Body), needle)
	})
	return scan
}

// WithID looks for todos whose id prints as text, whatever its representation.
func (scan *TodoScan) WithID(text string) *TodoScan {
	text = strings.TrimSpace(text)
	scan.predicates = append(scan.predicates, func(t Todo) bool {
		return t.ID.String() == text
	})
	return scan
}

// Results returns the matching todos in collection order.
func (scan *TodoScan) Results() []Todo {
	results := []Todo{}
	for _, t := range scan.todos {
		if scan.match(t) {
			results = append(results, t)
		}
	}
	return results
}

func (scan *TodoScan) match(t Todo) bool {
	for _, match := range scan.predicates {
		if !match(t) {
			return false
		}
	}
	return true
}

// Lookup finds a todo by the printed form of its id, which is what users type or click on.
func (s State) Lookup(text string) (Todo, bool) {
	results := s.Scan().WithID(text).Results()
	if len(results) == 0 {
		return Todo{}, false
	}
	return results[0], true
}
