package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"9fans.net/go/acme"
	"github.com/nicolagi/taskflow"
	log "github.com/sirupsen/logrus"
)

type windowMode int

const (
	modeDashboard windowMode = iota // /taskflow/dashboard
	modeTodos                       // /taskflow/todos
	modeCompleted                   // /taskflow/completed
	modeItem                        // /taskflow/items/$id
	modeNewItem                     // /taskflow/items/new
)

func (mode windowMode) String() string {
	switch mode {
	case modeDashboard:
		return "dashboard"
	case modeTodos:
		return "todos"
	case modeCompleted:
		return "completed"
	case modeItem:
		return "item"
	case modeNewItem:
		return "newItem"
	default:
		log.WithField("mode", int(mode)).Error("Missing mode string, returning as number")
		return fmt.Sprintf("%d", int(mode))
	}
}

func (mode windowMode) isList() bool {
	return mode == modeTodos || mode == modeCompleted
}

var all struct {
	sync.Mutex
	m map[*acme.Win]*window
}

type window struct {
	*acme.Win

	mode windowMode

	// Each window keeps its own state, so that a slow fetch in one window never lands in another.
	store *taskflow.Store

	itemID taskflow.ID        // For modeItem
	order  taskflow.SortOrder // For modeTodos and modeCompleted
}

// resetTag is used when a new window is created, or when transitioning a window from new item mode to item mode.
func (w *window) resetTag() {
	var tag string
	switch w.mode {
	case modeDashboard:
		tag = " Todos Completed New Get "
	case modeTodos, modeCompleted:
		tag = " Dashboard Todos Completed New Get Sort Toggle Zap "
	case modeItem:
		tag = " Dashboard Todos Completed New Get Put Toggle Zap "
	case modeNewItem:
		tag = " Dashboard Todos Completed Put "
	}
	_ = w.Ctl("cleartag")
	_ = w.Fprintf("tag", "%s", tag)
}

// exit is called after the window's event loop is over, i.e., the window has been closed in acme.
func (w *window) exit() {
	all.Lock()
	defer all.Unlock()
	if all.m[w.Win] == w {
		delete(all.m, w.Win)
	}
	if len(all.m) == 0 {
		os.Exit(0)
	}
}

// newWindow creates a window in acme without a specific purpose, and registers it in the global map of windows.
func newWindow(pathname string, mode windowMode) *window {
	all.Lock()
	defer all.Unlock()
	if all.m == nil {
		all.m = make(map[*acme.Win]*window)
	}

	logEntry := log.WithField("path", pathname)
	aw, err := acme.New()
	if err != nil {
		logEntry.WithField("cause", err).Warning("Could not create acme window")
		time.Sleep(10 * time.Millisecond)
		aw, err = acme.New()
		if err != nil {
			logEntry.WithField("cause", err).Fatal("Could not create acme window again")
		}
	}
	aw.SetErrorPrefix(pathname)
	_ = aw.Name("%s", pathname)

	w := &window{
		Win:   aw,
		mode:  mode,
		store: taskflow.NewStore(client),
		order: taskflow.SortNone,
	}
	all.m[w.Win] = w
	return w
}

func listTitle(mode windowMode) string {
	switch mode {
	case modeTodos:
		return "/taskflow/todos"
	case modeCompleted:
		return "/taskflow/completed"
	default:
		return "/taskflow/dashboard"
	}
}

func newListWindow(mode windowMode) {
	title := listTitle(mode)
	if acme.Show(title) != nil {
		return
	}
	w := newWindow(title, mode)
	w.resetTag()
	go w.load()
	go w.loop()
}

func itemTitle(id taskflow.ID) string {
	if id.IsZero() {
		return "/taskflow/items/new"
	}
	return "/taskflow/items/" + id.String()
}

func newItemWindow(id taskflow.ID) {
	title := itemTitle(id)
	mode := modeNewItem
	if !id.IsZero() {
		mode = modeItem
	}
	if acme.Show(title) != nil {
		return
	}
	w := newWindow(title, mode)
	w.itemID = id
	w.resetTag()
	go w.load()
	go w.loop()
}

// Look is invoked via button-3 click in acme. If text is the id of a task listed in the window, the task is
// opened. Otherwise return false to defer to other handlers.
func (w *window) Look(text string) bool {
	if !w.mode.isList() {
		return false
	}
	if todo, ok := w.store.State().Lookup(strings.TrimSpace(text)); ok {
		newItemWindow(todo.ID)
		return true
	}
	return false
}

func (w *window) fetch(ctx context.Context) error {
	switch w.mode {
	case modeDashboard, modeItem:
		return w.store.FetchAll(ctx)
	case modeTodos:
		return w.store.FetchByCompletion(ctx, false)
	case modeCompleted:
		return w.store.FetchByCompletion(ctx, true)
	}
	return nil
}

func (w *window) load() {
	var buf bytes.Buffer
	fetchErr := w.fetch(context.Background())
	var err error
	if fetchErr != nil {
		log.WithFields(log.Fields{
			"mode":  w.mode,
			"cause": fetchErr,
		}).Warning("Could not fetch tasks")
		printFetchError(&buf, fetchFailure(w.store.State(), fetchErr))
	} else {
		state := w.store.State()
		switch w.mode {
		case modeDashboard:
			err = printDashboard(&buf, taskflow.SelectProgress(state))
		case modeTodos:
			err = printList(&buf, taskflow.SelectIncomplete(state), w.order, "No to-do items found. Add some tasks to get started!")
		case modeCompleted:
			err = printList(&buf, taskflow.SelectCompleted(state), w.order, "No completed tasks yet.")
		case modeItem:
			err = printItemByID(&buf, state, w.itemID)
		case modeNewItem:
			err = printNewItem(&buf)
		}
	}
	w.Clear()
	if err != nil {
		_, _ = w.Write("body", []byte(err.Error()+"\n"))
	} else if w.mode.isList() && fetchErr == nil {
		w.PrintTabbed(buf.String())
		_ = w.Ctl("clean")
	} else {
		_, _ = w.Write("body", buf.Bytes())
		_ = w.Ctl("clean")
	}

	if err == nil && fetchErr == nil && (w.mode == modeItem || w.mode == modeNewItem) {
		_ = w.Addr("#7") // Past "Title: "
	} else {
		_ = w.Addr("0")
	}
	_ = w.Ctl("dot=addr")
	_ = w.Ctl("show")
}

// target resolves the task a command acts on: the window's own task, or the id given as argument.
func (w *window) target(arg string) (taskflow.Todo, error) {
	if arg == "" {
		if w.mode != modeItem {
			return taskflow.Todo{}, fmt.Errorf("an id is required in a %v window", w.mode)
		}
		arg = w.itemID.String()
	}
	todo, ok := w.store.State().Lookup(arg)
	if !ok {
		return taskflow.Todo{}, fmt.Errorf("task %s: %w", arg, taskflow.ErrNotFound)
	}
	return todo, nil
}

// Execute is triggered by button-2 click in acme.
func (w *window) Execute(cmd string) bool {
	verb, arg, _ := strings.Cut(strings.TrimSpace(cmd), " ")
	arg = strings.TrimSpace(arg)
	ctx := context.Background()
	switch verb {
	case "Dashboard":
		newListWindow(modeDashboard)
		return true
	case "Todos":
		newListWindow(modeTodos)
		return true
	case "Completed":
		newListWindow(modeCompleted)
		return true
	case "Get":
		w.load()
		return true
	case "New":
		newItemWindow(taskflow.ID{})
		return true
	case "Del":
		_ = w.Del(false)
		return true
	case "Sort":
		if !w.mode.isList() {
			w.Errf("Window mode does not allow sorting: %v", w.mode)
			return true
		}
		w.order = nextOrder(w.order)
		w.load()
		return true
	case "Toggle":
		todo, err := w.target(arg)
		if err != nil {
			w.Errf("Could not toggle: %v", err)
			return true
		}
		if _, err := w.store.ToggleCompletion(ctx, todo); err != nil {
			w.Errf("Failed to update task status: %v", err)
			return true
		}
		onItemPut(todo.ID)
		return true
	case "Zap":
		todo, err := w.target(arg)
		if err != nil {
			w.Errf("Could not delete: %v", err)
			return true
		}
		if err := w.store.Delete(ctx, todo.ID); err != nil {
			w.Errf("Failed to delete task: %v", err)
			return true
		}
		onItemZapped(todo.ID)
		return true
	case "Put":
		w.put(ctx)
		return true
	default:
		return false
	}
}

func (w *window) put(ctx context.Context) {
	data, err := w.ReadAll("body")
	if err != nil {
		w.Errf("Could not read window body: %v", err)
		return
	}
	heading, body := parseItem(data)
	switch w.mode {
	case modeNewItem:
		todo, err := w.store.Add(ctx, taskflow.Input{Heading: heading, Body: body})
		if err != nil {
			w.Errf("Failed to create task: %v", err)
			return
		}
		_ = w.Name("%s", itemTitle(todo.ID))
		w.mode = modeItem
		w.itemID = todo.ID
		w.resetTag()
		onItemPut(todo.ID)
	case modeItem:
		todo, err := w.target("")
		if err != nil {
			w.Errf("Could not update: %v", err)
			return
		}
		todo.Heading = heading
		todo.Body = body
		if _, err := w.store.Update(ctx, todo); err != nil {
			w.Errf("Failed to update task: %v", err)
			return
		}
		onItemPut(todo.ID)
	default:
		w.Errf("Put forbidden for this window mode: %v", w.mode)
	}
}

// parseItem reads back a window laid out by printItem: the title comes from the "Title:" line, the
// description is everything after the first blank line.
func parseItem(data []byte) (heading, body string) {
	head, rest, _ := strings.Cut(string(data), "\n\n")
	for _, line := range strings.Split(head, "\n") {
		if strings.HasPrefix(line, "Title:") {
			heading = strings.TrimSpace(line[len("Title:"):])
		}
	}
	return heading, strings.TrimSpace(rest)
}

func nextOrder(order taskflow.SortOrder) taskflow.SortOrder {
	switch order {
	case taskflow.SortNone:
		return taskflow.SortHeading
	case taskflow.SortHeading:
		return taskflow.SortCreated
	case taskflow.SortCreated:
		return taskflow.SortUpdated
	default:
		return taskflow.SortNone
	}
}

func (w *window) loop() {
	defer w.exit()
	w.EventLoop(w)
}

func onItemPut(id taskflow.ID) {
	all.Lock()
	defer all.Unlock()
	for _, w := range all.m {
		switch w.mode {
		case modeDashboard, modeTodos, modeCompleted:
			w.load()
		case modeItem:
			if w.itemID == id {
				w.load()
			}
		}
	}
}

func onItemZapped(id taskflow.ID) {
	all.Lock()
	defer all.Unlock()
	for _, w := range all.m {
		switch w.mode {
		case modeDashboard, modeTodos, modeCompleted:
			w.load()
		case modeItem:
			if w.itemID == id {
				_ = w.Del(true)
			}
		}
	}
}
