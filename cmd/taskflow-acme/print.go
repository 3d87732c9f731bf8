package main

import (
	"fmt"
	"io"

	"github.com/nicolagi/taskflow"
	"github.com/nicolagi/taskflow/internal/tui"
)

func printFetchError(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "Error: %s\n\nGet to try again.\n", msg)
}

// fetchFailure is the message to show for a failed fetch. A superseded fetch leaves no error in the state,
// so the returned error stands in for it.
func fetchFailure(s taskflow.State, err error) string {
	if msg := taskflow.SelectError(s); msg != "" {
		return msg
	}
	return err.Error()
}

func printDashboard(w io.Writer, p taskflow.Progress) error {
	if p.Total == 0 {
		_, err := fmt.Fprint(w, "No tasks yet. Get started by creating your first task.\n\nAdd tasks to see your progress.\n")
		return err
	}
	_, _ = fmt.Fprintf(w, "Progress: %s completed\n\n", tui.ProgressBar(p.Completed, p.Total, p.Percent(), 20))
	_, _ = fmt.Fprintf(w, "Total Tasks: %d\n", p.Total)
	for _, e := range p.Legend() {
		_, _ = fmt.Fprintf(w, "%s: %d (%d%%)\n", e.Name, e.Value, e.Percent)
	}
	return nil
}

func printList(w io.Writer, todos []taskflow.Todo, order taskflow.SortOrder, empty string) error {
	if len(todos) == 0 {
		_, err := fmt.Fprintln(w, empty)
		return err
	}
	taskflow.SortTodos(todos, order)
	for _, t := range todos {
		_, _ = fmt.Fprintf(w, "%v\t%v\t%v\n", t.ID, taskflow.FormatDate(t.CreatedAt), t.Heading)
	}
	return nil
}

func printItemByID(w io.Writer, s taskflow.State, id taskflow.ID) error {
	todo, ok := taskflow.SelectByID(s, id)
	if !ok {
		return fmt.Errorf("print item: %v: %w", id, taskflow.ErrNotFound)
	}
	return printItem(w, todo)
}

func printItem(w io.Writer, t taskflow.Todo) error {
	status := "Active"
	if t.IsComplete {
		status = "Completed"
	}
	_, _ = fmt.Fprintf(w, "Title: %s\n", t.Heading)
	_, _ = fmt.Fprintf(w, "Status: %s\n", status)
	_, _ = fmt.Fprintf(w, "Created: %s\n", taskflow.FormatDate(t.CreatedAt))
	_, _ = fmt.Fprintf(w, "Updated: %s\n", taskflow.FormatDate(t.UpdatedAt))
	_, err := fmt.Fprintf(w, "\n%s\n", t.Body)
	return err
}

func printNewItem(w io.Writer) error {
	_, err := fmt.Fprint(w, "Title: \n\n")
	return err
}
