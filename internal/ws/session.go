package ws

import (
	"errors"
	"sync"

	"github.com/ignatzorin/localhire/internal/query"
)

// ErrUnknownAction возвращается на действие неизвестного типа.
var ErrUnknownAction = errors.New("unknown action")

// Session хранит состояние списка одного подключения.
type Session interface {
	// Snapshot возвращает текущую страницу выдачи.
	Snapshot() any
	// Apply применяет действие и возвращает новую страницу.
	Apply(a query.Action) (any, error)
}

// QuerySession - состояние списка поверх пайплайна.
type QuerySession[T any] struct {
	mu       sync.Mutex
	pipeline *query.Pipeline[T]
	state    query.State
	view     func(query.Result[T]) any
}

// NewQuerySession создаёт сессию в начальном состоянии.
func NewQuerySession[T any](p *query.Pipeline[T], view func(query.Result[T]) any) *QuerySession[T] {
	if view == nil {
		view = func(r query.Result[T]) any { return r }
	}
	return &QuerySession[T]{pipeline: p, state: p.Initial(), view: view}
}

func (s *QuerySession[T]) Snapshot() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(s.pipeline.Run(s.state))
}

func (s *QuerySession[T]) Apply(a query.Action) (any, error) {
	if !a.Type.Valid() {
		return nil, ErrUnknownAction
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.pipeline.Reduce(s.state, a)
	return s.view(s.pipeline.Run(s.state)), nil
}

// State возвращает текущее состояние.
func (s *QuerySession[T]) State() query.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
