package session

import (
	"context"
	"sync"

	"github.com/fieldday/scorekeeper/pkg/logger"
	"github.com/fieldday/scorekeeper/pkg/metrics"
)

const defaultCommandQueueSize = 64

// command is one operator action queued for sequential execution.
type command struct {
	fn   func(ctx context.Context) error
	ctx  context.Context
	done chan struct{}
	err  error
}

// Session wraps State with a bounded FIFO command queue drained by a
// single goroutine, so each operator action is fully processed before
// the next is accepted.
type Session struct {
	State *State

	mu      sync.RWMutex
	cmds    chan *command
	closed  bool
	drained chan struct{}

	log logger.Logger
}

// Option applies a configuration option to the Session.
type Option func(*Session)

// WithQueueSize bounds the command queue.
func WithQueueSize(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.cmds = make(chan *command, n)
		}
	}
}

// WithLogger sets a custom logger for the session.
func WithLogger(l logger.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a session around the given state and starts its command loop.
func New(state *State, opts ...Option) *Session {
	s := &Session{
		State:   state,
		cmds:    make(chan *command, defaultCommandQueueSize),
		drained: make(chan struct{}),
		log:     logger.Named("session"),
	}

	for _, opt := range opts {
		opt(s)
	}

	go s.run()

	return s
}

// run drains the command queue one command at a time.
func (s *Session) run() {
	defer close(s.drained)
	for cmd := range s.cmds {
		cmd.err = cmd.fn(cmd.ctx)
		close(cmd.done)
	}
}

// Do queues fn and waits for it to complete. Commands run strictly in
// submission order. Returns ErrBusy when the queue is full and ErrClosed
// after Close. A cancelled ctx stops the wait but not the command.
func (s *Session) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	cmd := &command{fn: fn, ctx: ctx, done: make(chan struct{})}

	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return ErrClosed
	}
	select {
	case s.cmds <- cmd:
		s.mu.RUnlock()
	default:
		s.mu.RUnlock()
		metrics.RecordCommandBackpressure()
		return ErrBusy
	}

	select {
	case <-cmd.done:
		return cmd.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting commands and waits for queued ones to finish.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.cmds)
	s.mu.Unlock()

	<-s.drained
}
