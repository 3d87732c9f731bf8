package taskflow

import (
	"fmt"
	"sort"
	"strings"
)

// ByHeading sorts todos alphabetically by heading, case-insensitive.
type ByHeading []Todo

func (todos ByHeading) Len() int {
	return len(todos)
}

func (todos ByHeading) Swap(i, j int) {
	todos[i], todos[j] = todos[j], todos[i]
}

func (todos ByHeading) Less(i, j int) bool {
	return strings.ToLower(todos[i].Heading) < strings.ToLower(todos[j].Heading)
}

// ByCreated sorts todos by creation time, oldest first. Todos without a valid timestamp go last.
type ByCreated []Todo

func (todos ByCreated) Len() int {
	return len(todos)
}

func (todos ByCreated) Swap(i, j int) {
	todos[i], todos[j] = todos[j], todos[i]
}

func (todos ByCreated) Less(i, j int) bool {
	ti, oki := todos[i].Created()
	tj, okj := todos[j].Created()
	if oki != okj {
		return oki
	}
	return ti.Before(tj)
}

// ByUpdated sorts todos by last update, most recent first. Todos without a valid timestamp go last.
type ByUpdated []Todo

func (todos ByUpdated) Len() int {
	return len(todos)
}

func (todos ByUpdated) Swap(i, j int) {
	todos[i], todos[j] = todos[j], todos[i]
}

func (todos ByUpdated) Less(i, j int) bool {
	ti, oki := todos[i].Updated()
	tj, okj := todos[j].Updated()
	if oki != okj {
		return oki
	}
	return ti.After(tj)
}

// SortOrder selects one of the orderings above.
type SortOrder string

const (
	SortNone    SortOrder = "none"
	SortHeading SortOrder = "heading"
	SortCreated SortOrder = "created"
	SortUpdated SortOrder = "updated"
)

// ParseSortOrder accepts the names of the SortOrder constants. The empty string means SortNone.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return SortNone, nil
	case SortNone, SortHeading, SortCreated, SortUpdated:
		return o, nil
	default:
		return "", fmt.Errorf("unknown sort order %q", s)
	}
}

// SortTodos sorts todos in place, stably. SortNone keeps the collection order.
func SortTodos(todos []Todo, order SortOrder) {
	switch order {
	case SortHeading:
		sort.Stable(ByHeading(todos))
	case SortCreated:
		sort.Stable(ByCreated(todos))
	case SortUpdated:
		sort.Stable(ByUpdated(todos))
	}
}
