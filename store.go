package taskflow

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Store owns the todo collection. All changes go through Dispatch, which applies Reduce to one action at a
// time, so readers always observe a state that some sequence of whole actions produced.
//
// The methods named after operations (FetchAll, Add, Delete, ...) are effect runners: they dispatch the
// pending phase, make the remote call, and dispatch the outcome. They block until the call completes; front
// ends that must stay responsive call them from a goroutine. Fetches own the Status and Error fields;
// mutations don't touch them and report failure only through their return value.
type Store struct {
	api API

	// Serializes Dispatch, including the notification of subscribers, so that they observe states in
	// the order they were produced.
	dispatchMu sync.Mutex

	mu    sync.Mutex
	state State

	// Source of fetch tokens; see Action.Token.
	lastToken uint64

	subsMu sync.Mutex
	subs   map[int]func(State)
	nextID int
}

// NewStore creates a store in the initial state, backed by api for remote calls.
func NewStore(api API) *Store {
	return &Store{
		api:   api,
		state: NewState(),
		subs:  make(map[int]func(State)),
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) snapshot() State {
	st := s.state
	st.Todos = append([]Todo(nil), s.state.Todos...)
	if st.Todos == nil {
		st.Todos = []Todo{}
	}
	return st
}

// Subscribe registers fn to be called with the new state after every dispatched action. Calls happen on the
// dispatching goroutine, in dispatch order. fn may read the store but must not dispatch, and should return
// quickly. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, id)
	}
}

// Dispatch folds action into the state and notifies subscribers.
func (s *Store) Dispatch(action Action) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	s.state = Reduce(s.state, action)
	st := s.snapshot()
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"action": string(action.Type),
		"phase":  action.Phase.String(),
		"token":  action.Token,
		"status": st.Status.String(),
		"todos":  len(st.Todos),
	}).Debug("Dispatched")

	s.subsMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()
	for _, fn := range fns {
		fn(st)
	}
}

func (s *Store) newToken() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastToken++
	return s.lastToken
}

// FetchAll replaces the collection with every todo on the server.
func (s *Store) FetchAll(ctx context.Context) error {
	return s.fetch(ctx, ActionFetchTodos, s.api.ListAll)
}

// FetchByCompletion replaces the collection with the todos whose completion flag equals isComplete.
func (s *Store) FetchByCompletion(ctx context.Context, isComplete bool) error {
	return s.fetch(ctx, ActionFetchTodosByCompletion, func(ctx context.Context) ([]Todo, error) {
		return s.api.ListByCompletion(ctx, isComplete)
	})
}

func (s *Store) fetch(ctx context.Context, typ ActionType, list func(context.Context) ([]Todo, error)) error {
	token := s.newToken()
	s.Dispatch(Action{Type: typ, Phase: Pending, Token: token})
	todos, err := list(ctx)
	if err != nil {
		s.Dispatch(Action{Type: typ, Phase: Rejected, Token: token, Err: errorMessage(err)})
		return fmt.Errorf("%s: %w", typ, err)
	}
	s.Dispatch(Action{Type: typ, Phase: Fulfilled, Token: token, Todos: todos})
	return nil
}

// Add creates a todo on the server and appends it to the collection. Input is validated first; a
// *ValidationError means no request was made.
func (s *Store) Add(ctx context.Context, in Input) (Todo, error) {
	if err := in.Validate(); err != nil {
		return Todo{}, err
	}
	s.Dispatch(Action{Type: ActionAddTodo, Phase: Pending})
	todo, err := s.api.Create(ctx, in)
	if err != nil {
		s.Dispatch(Action{Type: ActionAddTodo, Phase: Rejected, Err: errorMessage(err)})
		return Todo{}, fmt.Errorf("%s: %w", ActionAddTodo, err)
	}
	s.Dispatch(Action{Type: ActionAddTodo, Phase: Fulfilled, Todo: todo})
	return todo, nil
}

// Update sends todo to the server and replaces the entry with the same id using the server's answer. If the
// collection has no such entry (e.g., a filtered fetch happened meanwhile), the collection is unchanged.
func (s *Store) Update(ctx context.Context, todo Todo) (Todo, error) {
	if err := todo.Validate(); err != nil {
		return Todo{}, err
	}
	return s.update(ctx, ActionUpdateTodo, todo)
}

// ToggleCompletion flips the completion flag of todo on the server. The argument is the todo as currently
// known, not the desired result.
func (s *Store) ToggleCompletion(ctx context.Context, todo Todo) (Todo, error) {
	return s.update(ctx, ActionToggleTodoCompletion, todo.Toggled())
}

func (s *Store) update(ctx context.Context, typ ActionType, todo Todo) (Todo, error) {
	s.Dispatch(Action{Type: typ, Phase: Pending, Todo: todo})
	updated, err := s.api.Update(ctx, todo)
	if err != nil {
		s.Dispatch(Action{Type: typ, Phase: Rejected, Todo: todo, Err: errorMessage(err)})
		return Todo{}, fmt.Errorf("%s: %w", typ, err)
	}
	s.Dispatch(Action{Type: typ, Phase: Fulfilled, Todo: updated})
	return updated, nil
}

// Delete removes the todo from the server and from the collection.
func (s *Store) Delete(ctx context.Context, id ID) error {
	s.Dispatch(Action{Type: ActionDeleteTodo, Phase: Pending, ID: id})
	removed, err := s.api.Remove(ctx, id)
	if err != nil {
		s.Dispatch(Action{Type: ActionDeleteTodo, Phase: Rejected, ID: id, Err: errorMessage(err)})
		return fmt.Errorf("%s: %w", ActionDeleteTodo, err)
	}
	s.Dispatch(Action{Type: ActionDeleteTodo, Phase: Fulfilled, ID: removed})
	return nil
}

// ClearTodos empties the collection without touching status or error.
func (s *Store) ClearTodos() {
	s.Dispatch(Action{Type: ActionClearTodos, Phase: Fulfilled})
}
