// Package tui is an interactive terminal interface to a taskflow.Store, built with Bubble Tea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nicolagi/taskflow"
)

type view int

const (
	viewDashboard view = iota // every todo, with progress
	viewTodo                  // incomplete todos
	viewCompleted             // completed todos
	viewCount
)

func (v view) String() string {
	switch v {
	case viewDashboard:
		return "Dashboard"
	case viewTodo:
		return "To Do"
	case viewCompleted:
		return "Completed"
	default:
		return fmt.Sprintf("%d", int(v))
	}
}

type inputMode int

const (
	inputNone inputMode = iota
	inputAddHeading
	inputAddBody
	inputEditHeading
)

var sortOrders = []taskflow.SortOrder{
	taskflow.SortNone,
	taskflow.SortHeading,
	taskflow.SortCreated,
	taskflow.SortUpdated,
}

// stateMsg carries a state published by the store.
type stateMsg struct {
	state taskflow.State
}

// resultMsg reports the outcome of an effect run by a command.
type resultMsg struct {
	op   string // "fetch", "add", "update", "toggle", "delete"
	todo taskflow.Todo
	err  error
}

// listItem adapts a todo to bubbles/list.Item.
type listItem struct {
	todo taskflow.Todo
}

func (i listItem) Title() string       { return i.todo.Heading }
func (i listItem) Description() string { return i.todo.Body }
func (i listItem) FilterValue() string { return i.todo.Heading + " " + i.todo.Body }

// itemDelegate renders one todo per line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	box := mutedStyle.Render(boxUnchecked)
	text := it.todo.Heading
	if it.todo.IsComplete {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	if body := firstLine(it.todo.Body); body != "" {
		text += " " + mutedStyle.Render("- "+body)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s", prefix, box, text)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if r := []rune(s); len(r) > 60 {
		s = string(r[:57]) + "..."
	}
	return s
}

// Model is the Bubble Tea model. It reads the store only through selectors on snapshots, and changes it
// only through the store's effect runners, which run as commands.
type Model struct {
	ctx   context.Context
	store *taskflow.Store
	state taskflow.State

	view  view
	order taskflow.SortOrder

	list list.Model
	ti   textinput.Model

	mode          inputMode
	draft         taskflow.Input
	editing       taskflow.Todo
	confirmDelete *taskflow.Todo

	notice    string
	noticeErr bool

	width, height int
}

// New creates a model showing the dashboard.
func New(ctx context.Context, store *taskflow.Store) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("task", "tasks")

	bindings := []key.Binding{
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
	}
	l.AdditionalShortHelpKeys = func() []key.Binding { return bindings }
	l.AdditionalFullHelpKeys = func() []key.Binding { return bindings }

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{
		ctx:   ctx,
		store: store,
		order: taskflow.SortNone,
		list:  l,
		ti:    ti,
	}
	m.setState(store.State())
	return m
}

// Run starts the interface on the terminal and returns when the user quits.
func Run(ctx context.Context, store *taskflow.Store) error {
	p := tea.NewProgram(New(ctx, store), tea.WithAltScreen(), tea.WithContext(ctx))
	unsubscribe := store.Subscribe(func(s taskflow.State) {
		p.Send(stateMsg{state: s})
	})
	defer unsubscribe()
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return m.fetch()
}

// Refresh returns the command fetching the todos of the current view.
func (m Model) Refresh() tea.Cmd {
	return m.fetch()
}

func (m *Model) setState(s taskflow.State) tea.Cmd {
	m.state = s
	var todos []taskflow.Todo
	switch m.view {
	case viewTodo:
		todos = taskflow.SelectIncomplete(s)
	case viewCompleted:
		todos = taskflow.SelectCompleted(s)
	default:
		todos = taskflow.SelectAll(s)
	}
	taskflow.SortTodos(todos, m.order)
	items := make([]list.Item, 0, len(todos))
	for _, t := range todos {
		items = append(items, listItem{todo: t})
	}
	return m.list.SetItems(items)
}

func (m Model) selected() (taskflow.Todo, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return taskflow.Todo{}, false
	}
	return it.todo, true
}

// fetch loads the todos the current view is about.
func (m Model) fetch() tea.Cmd {
	ctx, store, v := m.ctx, m.store, m.view
	return func() tea.Msg {
		var err error
		switch v {
		case viewTodo:
			err = store.FetchByCompletion(ctx, false)
		case viewCompleted:
			err = store.FetchByCompletion(ctx, true)
		default:
			err = store.FetchAll(ctx)
		}
		return resultMsg{op: "fetch", err: err}
	}
}

func (m Model) toggle(todo taskflow.Todo) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		updated, err := store.ToggleCompletion(ctx, todo)
		return resultMsg{op: "toggle", todo: updated, err: err}
	}
}

func (m Model) add(in taskflow.Input) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		created, err := store.Add(ctx, in)
		return resultMsg{op: "add", todo: created, err: err}
	}
}

func (m Model) update(todo taskflow.Todo) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		updated, err := store.Update(ctx, todo)
		return resultMsg{op: "update", todo: updated, err: err}
	}
}

func (m Model) remove(todo taskflow.Todo) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		err := store.Delete(ctx, todo.ID)
		return resultMsg{op: "delete", todo: todo, err: err}
	}
}

func (m *Model) setNotice(msg string, isErr bool) {
	m.notice, m.noticeErr = msg, isErr
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case stateMsg:
		cmd := m.setState(msg.state)
		return m, cmd
	case resultMsg:
		cmd := m.setState(m.store.State())
		m.onResult(msg)
		return m, cmd
	case tea.KeyMsg:
		if m.mode != inputNone {
			return m.updateInput(msg)
		}
		if m.confirmDelete != nil {
			todo := *m.confirmDelete
			m.confirmDelete = nil
			switch msg.String() {
			case "y", "Y", "enter":
				m.setNotice("", false)
				return m, m.remove(todo)
			}
			m.setNotice("Delete cancelled", false)
			return m, nil
		}
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "shift+tab":
			if msg.String() == "tab" {
				m.view = (m.view + 1) % viewCount
			} else {
				m.view = (m.view + viewCount - 1) % viewCount
			}
			m.setNotice("", false)
			m.resize()
			cmd := m.setState(m.state)
			return m, tea.Batch(cmd, m.fetch())
		case "r":
			m.setNotice("", false)
			return m, m.Refresh()
		case "s":
			for i, o := range sortOrders {
				if o == m.order {
					m.order = sortOrders[(i+1)%len(sortOrders)]
					break
				}
			}
			m.setNotice("Sorted by "+string(m.order), false)
			cmd := m.setState(m.state)
			return m, cmd
		case " ":
			if todo, ok := m.selected(); ok {
				return m, m.toggle(todo)
			}
			return m, nil
		case "a":
			m.mode = inputAddHeading
			m.draft = taskflow.Input{}
			m.ti.SetValue("")
			m.ti.Placeholder = "Task title..."
			m.resize()
			cmd := m.ti.Focus()
			return m, cmd
		case "e":
			if todo, ok := m.selected(); ok {
				m.mode = inputEditHeading
				m.editing = todo
				m.ti.SetValue(todo.Heading)
				m.ti.CursorEnd()
				m.ti.Placeholder = "Task title..."
				m.resize()
				cmd := m.ti.Focus()
				return m, cmd
			}
			return m, nil
		case "d":
			if todo, ok := m.selected(); ok {
				m.confirmDelete = &todo
				m.setNotice(fmt.Sprintf("Delete %q? This action cannot be undone. (y/n)", todo.Heading), false)
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) onResult(msg resultMsg) {
	if msg.err != nil {
		var ve *taskflow.ValidationError
		switch {
		case msg.op == "fetch":
			// Shown from the state, with the retry hint.
		case errors.As(msg.err, &ve):
			m.setNotice(ve.Error(), true)
		default:
			m.setNotice(fmt.Sprintf("Failed to %s task: %v", msg.op, msg.err), true)
		}
		return
	}
	switch msg.op {
	case "add":
		m.setNotice(fmt.Sprintf("Task %q created successfully!", msg.todo.Heading), false)
	case "update":
		m.setNotice("Task updated", false)
	case "toggle":
		if msg.todo.IsComplete {
			m.setNotice("Marked complete", false)
		} else {
			m.setNotice("Marked active", false)
		}
	case "delete":
		m.setNotice("Task deleted", false)
	}
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.endInput()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.ti.Value())
		switch m.mode {
		case inputAddHeading:
			if value == "" {
				m.setNotice("Title cannot be empty", true)
				return m, nil
			}
			m.draft.Heading = value
			m.mode = inputAddBody
			m.ti.SetValue("")
			m.ti.Placeholder = "Task description..."
			m.setNotice("", false)
			return m, nil
		case inputAddBody:
			m.draft.Body = value
			if err := m.draft.Validate(); err != nil {
				m.setNotice(err.Error(), true)
				return m, nil
			}
			in := m.draft
			m.endInput()
			return m, m.add(in)
		case inputEditHeading:
			todo := m.editing
			todo.Heading = value
			if err := todo.Validate(); err != nil {
				m.setNotice(err.Error(), true)
				return m, nil
			}
			m.endInput()
			return m, m.update(todo)
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) endInput() {
	m.mode = inputNone
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

// headerHeight is the number of lines View renders above the list.
func (m Model) headerHeight() int {
	h := 3 // tabs, counts, blank line
	if m.view == viewDashboard {
		h += 3 // bar, legend, blank line
	}
	if m.mode != inputNone {
		h += 4
	}
	return h + 1 // notice
}

func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	// The panel border and padding take two lines and four columns.
	m.list.SetSize(m.width-4, m.height-2-m.headerHeight())
}

func (m Model) View() string {
	var lines []string

	var tabs []string
	for v := view(0); v < viewCount; v++ {
		if v == m.view {
			tabs = append(tabs, activeTab.Render(v.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(v.String()))
		}
	}
	lines = append(lines, titleStyle.Render("TaskFlow")+"  "+strings.Join(tabs, " "))

	p := taskflow.SelectProgress(m.state)
	lines = append(lines, fmt.Sprintf("%s %d  %s %d  %s %d",
		successStyle.Render("✔"), p.Completed,
		pendingStyle.Render("•"), p.Remaining,
		accentStyle.Render("Total"), p.Total,
	))
	lines = append(lines, "")

	if m.view == viewDashboard {
		if p.Total == 0 {
			lines = append(lines, mutedStyle.Render("  0% completed"), mutedStyle.Render("Add tasks to see your progress"))
		} else {
			lines = append(lines, ProgressBar(p.Completed, p.Total, p.Percent(), 28)+" completed")
			var legend []string
			for _, e := range p.Legend() {
				plural := "s"
				if e.Value == 1 {
					plural = ""
				}
				legend = append(legend, fmt.Sprintf("%s: %d task%s (%d%%)", e.Name, e.Value, plural, e.Percent))
			}
			lines = append(lines, mutedStyle.Render(strings.Join(legend, "   ")))
		}
		lines = append(lines, "")
	}

	lines = append(lines, m.body())

	if m.mode != inputNone {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		title := "Add task: title"
		switch m.mode {
		case inputAddBody:
			title = fmt.Sprintf("Add task: description for %q", m.draft.Heading)
		case inputEditHeading:
			title = "Edit task title"
		}
		lines = append(lines, bar.Render(title+"\n"+m.ti.View()))
	}

	switch {
	case m.notice == "":
		lines = append(lines, "")
	case m.noticeErr:
		lines = append(lines, errorStyle.Render(m.notice))
	default:
		lines = append(lines, helpStyle.Render(m.notice))
	}
	return panelString(strings.Join(lines, "\n"))
}

func (m Model) body() string {
	switch taskflow.SelectStatus(m.state) {
	case taskflow.StatusLoading:
		return mutedStyle.Render("Loading your tasks...")
	case taskflow.StatusFailed:
		return errorStyle.Render("Error: "+taskflow.SelectError(m.state)) + "  " + helpStyle.Render("press r to try again")
	}
	if len(m.list.Items()) == 0 {
		switch m.view {
		case viewTodo:
			return mutedStyle.Render("No to-do items found. Add some tasks to get started!")
		case viewCompleted:
			return mutedStyle.Render("No completed tasks yet.")
		default:
			return mutedStyle.Render("No tasks yet. Press a to create your first task.")
		}
	}
	return m.list.View()
}
