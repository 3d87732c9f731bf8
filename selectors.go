package taskflow

import "math"

// SelectAll returns every todo, in collection order.
func SelectAll(s State) []Todo {
	return append([]Todo{}, s.Todos...)
}

// SelectCompleted returns the todos marked complete, in collection order.
func SelectCompleted(s State) []Todo {
	return s.Scan().WithComplete(true).Results()
}

// SelectIncomplete returns the todos not marked complete, in collection order.
func SelectIncomplete(s State) []Todo {
	return s.Scan().WithComplete(false).Results()
}

// SelectByID returns the first todo with the given id.
func SelectByID(s State, id ID) (Todo, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.Todos[i], true
	}
	return Todo{}, false
}

func SelectStatus(s State) Status {
	return s.Status
}

// SelectError returns the message of the last failed fetch, or the empty string.
func SelectError(s State) string {
	return s.Error
}

// Progress summarizes how much of the collection is done.
type Progress struct {
	Total     int
	Completed int
	Remaining int
}

// ProgressEntry is one slice of the progress breakdown, e.g., for a legend or chart.
type ProgressEntry struct {
	Name    string
	Value   int
	Percent int
}

// SelectProgress counts completed and remaining todos.
func SelectProgress(s State) Progress {
	var p Progress
	for _, t := range s.Todos {
		if t.IsComplete {
			p.Completed++
		}
	}
	p.Total = len(s.Todos)
	p.Remaining = p.Total - p.Completed
	return p
}

// Percent is the share of completed todos, rounded to the nearest integer (halves round up). It is zero for
// an empty collection.
func (p Progress) Percent() int {
	return percent(p.Completed, p.Total)
}

// Legend breaks the progress into "Completed" and "To Do" entries, in that order. Both are always present,
// even with a zero value; a chart should skip zero entries itself.
func (p Progress) Legend() []ProgressEntry {
	return []ProgressEntry{
		{Name: "Completed", Value: p.Completed, Percent: percent(p.Completed, p.Total)},
		{Name: "To Do", Value: p.Remaining, Percent: percent(p.Remaining, p.Total)},
	}
}

func percent(n, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(n)*100/float64(total) + 0.5))
}
