package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/goliatone/go-sitecontent/internal/domain"
	"github.com/goliatone/go-sitecontent/internal/logging"
	"github.com/goliatone/go-sitecontent/pkg/interfaces"
)

// State is the resolved view of the current visitor. Resolved stays false
// until the identity provider has reported at least once, letting callers
// distinguish "signed out" from "still loading".
type State struct {
	Session  *interfaces.Session
	Actor    domain.Actor
	Resolved bool
}

// Service tracks the identity provider and resolves each session into an
// actor with a stored role. Role resolution fails closed: a missing user
// record or a failed lookup yields a regular visitor, never an admin.
type Service interface {
	State() State
	Actor() domain.Actor
	IsAdmin() bool
	Subscribe(fn func(State)) (unsubscribe func())
	WaitResolved(ctx context.Context) error
	Close()
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithLogger overrides the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLookupTimeout bounds each role lookup triggered by a session change.
func WithLookupTimeout(timeout time.Duration) ServiceOption {
	return func(s *service) {
		if timeout > 0 {
			s.lookupTimeout = timeout
		}
	}
}

type service struct {
	users  UserRepository
	logger interfaces.Logger

	lookupTimeout time.Duration

	mu          sync.RWMutex
	state       State
	subscribers map[int]func(State)
	nextSub     int

	resolved     chan struct{}
	resolvedOnce sync.Once

	unsubscribe func()
}

// NewService subscribes to the provider immediately; the provider contract
// guarantees an initial callback, so the service resolves even when nobody
// is signed in.
func NewService(provider interfaces.IdentityProvider, users UserRepository, opts ...ServiceOption) Service {
	s := &service{
		users:         users,
		logger:        logging.NoOp(),
		lookupTimeout: 10 * time.Second,
		subscribers:   make(map[int]func(State)),
		resolved:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if provider != nil {
		s.unsubscribe = provider.Subscribe(s.handleSession)
	}
	return s
}

// State returns the current resolved view.
func (s *service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Actor returns the current actor, zero while unresolved or signed out.
func (s *service) Actor() domain.Actor {
	return s.State().Actor
}

// IsAdmin reports whether the current actor holds the admin role.
func (s *service) IsAdmin() bool {
	return s.State().Actor.IsAdmin()
}

// Subscribe registers an observer that fires immediately with the current
// state and again on every change.
func (s *service) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	current := s.state
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// WaitResolved blocks until the first identity report lands or the context
// is done.
func (s *service) WaitResolved(ctx context.Context) error {
	select {
	case <-s.resolved:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close detaches from the identity provider.
func (s *service) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *service) handleSession(session *interfaces.Session) {
	state := State{Resolved: true}
	if session != nil {
		state.Session = session
		state.Actor = domain.Actor{
			UID:  session.UID,
			Role: s.resolveRole(session.UID),
		}
	}

	s.mu.Lock()
	s.state = state
	observers := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	s.resolvedOnce.Do(func() { close(s.resolved) })

	for _, fn := range observers {
		fn(state)
	}
}

func (s *service) resolveRole(uid string) domain.Role {
	if s.users == nil {
		return domain.RoleUser
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.lookupTimeout)
	defer cancel()

	record, err := s.users.GetByUID(ctx, uid)
	if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			s.logger.Warn("role lookup failed, treating session as regular visitor",
				"uid", uid, "error", err)
		}
		return domain.RoleUser
	}
	return domain.ParseRole(record.Role)
}
