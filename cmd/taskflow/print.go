package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nicolagi/taskflow"
	"github.com/nicolagi/taskflow/internal/tui"
)

func ok(msg string) string {
	return tui.OK(msg)
}

func fail(msg string) string {
	return tui.Fail(msg)
}

// fetchError reports a failed fetch with the message the state recorded for it, falling back to err when
// the state has none.
func fetchError(s taskflow.State, err error) error {
	if msg := taskflow.SelectError(s); msg != "" {
		return errors.New(msg)
	}
	return err
}

func statusText(t taskflow.Todo) string {
	if t.IsComplete {
		return "Completed"
	}
	return "Active"
}

func printTodos(w io.Writer, todos []taskflow.Todo, empty string) error {
	if len(todos) == 0 {
		_, err := fmt.Fprintln(w, empty)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, t := range todos {
		box := "[ ]"
		if t.IsComplete {
			box = "[x]"
		}
		_, _ = fmt.Fprintf(tw, "%v\t%s\t%s\t%s\n", t.ID, box, t.Heading, taskflow.FormatDate(t.CreatedAt))
	}
	return tw.Flush()
}

func printTodo(w io.Writer, t taskflow.Todo) error {
	_, _ = fmt.Fprintf(w, "Title: %s\n", t.Heading)
	_, _ = fmt.Fprintf(w, "Status: %s\n", statusText(t))
	_, _ = fmt.Fprintf(w, "Created: %s\n", taskflow.FormatDate(t.CreatedAt))
	if t.UpdatedAt != "" {
		_, _ = fmt.Fprintf(w, "Updated: %s\n", taskflow.FormatDate(t.UpdatedAt))
	}
	_, err := fmt.Fprintf(w, "\n%s\n", t.Body)
	return err
}

func printProgress(w io.Writer, p taskflow.Progress) error {
	if p.Total == 0 {
		_, err := fmt.Fprintln(w, "No tasks yet. Get started by creating your first task.")
		return err
	}
	_, _ = fmt.Fprintf(w, "%s completed\n\n", tui.ProgressBar(p.Completed, p.Total, p.Percent(), 28))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Total Tasks\t%d\n", p.Total)
	for _, e := range p.Legend() {
		plural := "s"
		if e.Value == 1 {
			plural = ""
		}
		_, _ = fmt.Fprintf(tw, "%s\t%d task%s\t(%d%%)\n", e.Name, e.Value, plural, e.Percent)
	}
	return tw.Flush()
}
