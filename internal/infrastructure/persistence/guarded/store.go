// Package guarded wraps a remote roster store with a circuit breaker so that an
// unreachable server fails store and load requests immediately.
package guarded

import (
	"context"
	"errors"
	"log/slog"

	"github.com/alem-hub/student-registry/internal/domain/roster"
	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/pkg/circuitbreaker"
)

// ErrUnavailable is returned while the circuit of the wrapped store is open.
var ErrUnavailable = shared.NewDomainError("store", "Guard", shared.ErrIO, "store is unavailable, try again later")

// Store is a roster.Store guarded by a circuit breaker.
type Store struct {
	next    roster.Store
	breaker *circuitbreaker.CircuitBreaker
}

// New wraps next. ErrNoData and context cancellation do not count as failures.
func New(next roster.Store, logger *slog.Logger, opts ...circuitbreaker.Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	base := []circuitbreaker.Option{
		circuitbreaker.WithIsFailure(isFailure),
		circuitbreaker.WithOnStateChange(func(name string, from, to circuitbreaker.State) {
			logger.Warn("store circuit changed",
				"store", name,
				"from", from.String(),
				"to", to.String(),
			)
		}),
	}

	return &Store{
		next:    next,
		breaker: circuitbreaker.New(next.Name(), append(base, opts...)...),
	}
}

// Name returns the name of the wrapped store.
func (s *Store) Name() string {
	return s.next.Name()
}

// State returns the circuit state.
func (s *Store) State() circuitbreaker.State {
	return s.breaker.State()
}

// Save implements roster.Store.
func (s *Store) Save(ctx context.Context, students []*student.Student) error {
	err := s.breaker.Execute(ctx, func(ctx context.Context) error {
		return s.next.Save(ctx, students)
	})
	return translate(err)
}

// Load implements roster.Store.
func (s *Store) Load(ctx context.Context) (*roster.Dump, error) {
	var dump *roster.Dump
	err := s.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		dump, err = s.next.Load(ctx)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	return dump, nil
}

func isFailure(err error) bool {
	return !errors.Is(err, shared.ErrNoData) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}

func translate(err error) error {
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return ErrUnavailable
	}
	return err
}
