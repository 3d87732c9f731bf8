package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nicolagi/taskflow"
	"github.com/nicolagi/taskflow/internal/tui"
	"github.com/spf13/cobra"
)

func lsCmd(flags *globalFlags) *cobra.Command {
	var (
		completed  bool
		incomplete bool
		search     string
		order      string
	)
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if completed && incomplete {
				return errors.New("--completed and --incomplete are mutually exclusive")
			}
			sortOrder, err := taskflow.ParseSortOrder(order)
			if err != nil {
				return err
			}
			store, err := newStore(cmd, flags)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			switch {
			case completed:
				err = store.FetchByCompletion(ctx, true)
			case incomplete:
				err = store.FetchByCompletion(ctx, false)
			default:
				err = store.FetchAll(ctx)
			}
			if err != nil {
				return fetchError(store.State(), err)
			}
			scan := store.State().Scan()
			if search != "" {
				scan.WithText(search)
			}
			todos := scan.Results()
			taskflow.SortTodos(todos, sortOrder)
			return printTodos(os.Stdout, todos, emptyMessage(completed, incomplete))
		},
	}
	cmd.Flags().BoolVarP(&completed, "completed", "c", false, "only completed tasks")
	cmd.Flags().BoolVarP(&incomplete, "incomplete", "i", false, "only tasks still to do")
	cmd.Flags().StringVarP(&search, "search", "s", "", "only tasks whose title or description contain this text")
	cmd.Flags().StringVar(&order, "sort", "none", "sort order (none, heading, created, updated)")
	return cmd
}

func emptyMessage(completed, incomplete bool) string {
	switch {
	case completed:
		return "No completed tasks yet."
	case incomplete:
		return "No to-do items found. Add some tasks to get started!"
	default:
		return "No tasks yet. Get started by creating your first task."
	}
}

func showCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newStore(cmd, flags)
			if err != nil {
				return err
			}
			todo, err := lookup(cmd, store, args[0])
			if err != nil {
				return err
			}
			return printTodo(os.Stdout, todo)
		},
	}
}

func addCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title> <description...>",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := taskflow.Input{
				Heading: args[0],
				Body:    strings.Join(args[1:], " "),
			}
			if err := in.Validate(); err != nil {
				return err
			}
			store, err := newStore(cmd, flags)
			if err != nil {
				return err
			}
			todo, err := store.Add(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("failed to create task: %w", err)
			}
			fmt.Println(ok(fmt.Sprintf("Task %q created successfully! (id %v)", todo.Heading, todo.ID)))
			return nil
		},
	}
}

func editCmd(flags *globalFlags) *cobra.Command {
	var heading, body string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title or description of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("heading") && !cmd.Flags().Changed("body") {
				return errors.New("nothing to change, use --heading and/or --body")
			}
			store, err := newStore(cmd, flags)
			if err != nil {
				return err
			}
			todo, err := lookup(cmd, store, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("heading") {
				todo.Heading = heading
			}
			if cmd.Flags().Changed("body") {
				todo.Body = body
			}
			if _, err := store.Update(cmd.Context(), todo); err != nil {
				return fmt.Errorf("failed to update task: %w", err)
			}
			fmt.Println(ok("updated"))
			return nil
		},
	}
	cmd.Flags().StringVar(&heading, "heading", "", "new title")
	cmd.Flags().StringVar(&body, "body", "", "new description")
	return cmd
}

func toggleCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a task complete, or active again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newStore(cmd, flags)
			if err != nil {
				return err
			}
			todo, err := lookup(cmd, store, args[0])
			if err != nil {
				return err
			}
			updated, err := store.ToggleCompletion(cmd.Context(), todo)
			if err != nil {
				return fmt.Errorf("failed to update task status: %w", err)
			}
			if updated.IsComplete {
				fmt.Println(ok("marked complete"))
			} else {
				fmt.Println(ok("marked active"))
			}
			return nil
		},
	}
}

func rmCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newStore(cmd, flags)
			if err != nil {
				return err
			}
			todo, err := lookup(cmd, store, args[0])
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), todo.ID); err != nil {
				return fmt.Errorf("failed to delete task: %w", err)
			}
			fmt.Println(ok("removed"))
			return nil
		},
	}
}

func statsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show progress over all tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newStore(cmd, flags)
			if err != nil {
				return err
			}
			if err := store.FetchAll(cmd.Context()); err != nil {
				return fetchError(store.State(), err)
			}
			return printProgress(os.Stdout, taskflow.SelectProgress(store.State()))
		},
	}
}

func tuiCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Manage tasks interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newStore(cmd, flags)
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), store)
		},
	}
}

// lookup fetches all todos and finds the one whose id prints as text.
func lookup(cmd *cobra.Command, store *taskflow.Store, text string) (taskflow.Todo, error) {
	if err := store.FetchAll(cmd.Context()); err != nil {
		return taskflow.Todo{}, fetchError(store.State(), err)
	}
	todo, found := store.State().Lookup(text)
	if !found {
		return taskflow.Todo{}, fmt.Errorf("task %s: %w", text, taskflow.ErrNotFound)
	}
	return todo, nil
}
