package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	ctx := context.Background()
	clk := &clock{t: time.Unix(0, 0)}
	var transitions []string

	cb := New("store",
		WithFailureThreshold(2),
		WithCooldown(time.Minute),
		WithClock(clk.now),
		WithOnStateChange(func(_ string, from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		}),
	)

	boom := errors.New("boom")
	calls := 0
	failing := func(context.Context) error { calls++; return boom }

	assert.ErrorIs(t, cb.Execute(ctx, failing), boom)
	assert.Equal(t, StateClosed, cb.State())
	assert.ErrorIs(t, cb.Execute(ctx, failing), boom)
	assert.Equal(t, StateOpen, cb.State())

	assert.ErrorIs(t, cb.Execute(ctx, failing), ErrCircuitOpen)
	assert.Equal(t, 2, calls)

	clk.t = clk.t.Add(time.Minute)
	assert.NoError(t, cb.Execute(ctx, func(context.Context) error { return nil }))
	assert.Equal(t, StateClosed, cb.State())

	assert.Equal(t, []string{"closed->open", "open->half-open", "half-open->closed"}, transitions)
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	ctx := context.Background()
	clk := &clock{t: time.Unix(0, 0)}
	cb := New("store", WithFailureThreshold(1), WithCooldown(time.Second), WithClock(clk.now))

	boom := errors.New("boom")
	_ = cb.Execute(ctx, func(context.Context) error { return boom })
	assert.Equal(t, StateOpen, cb.State())

	clk.t = clk.t.Add(time.Second)
	assert.ErrorIs(t, cb.Execute(ctx, func(context.Context) error { return boom }), boom)
	assert.Equal(t, StateOpen, cb.State())
	assert.ErrorIs(t, cb.Execute(ctx, func(context.Context) error { return nil }), ErrCircuitOpen)
}

func TestCircuitBreaker_IgnoresNonFailures(t *testing.T) {
	ctx := context.Background()
	notCounted := errors.New("not counted")
	cb := New("store",
		WithFailureThreshold(1),
		WithIsFailure(func(err error) bool { return !errors.Is(err, notCounted) }),
	)

	assert.ErrorIs(t, cb.Execute(ctx, func(context.Context) error { return notCounted }), notCounted)
	assert.ErrorIs(t, cb.Execute(ctx, func(context.Context) error { return context.Canceled }), context.Canceled)
	assert.Equal(t, StateOpen, cb.State())

	cb.Reset()
	assert.Equal(t, StateClosed, cb.State())
}
