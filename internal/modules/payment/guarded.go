package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	circuit "github.com/rubyist/circuitbreaker"
)

// Guarded bounds every provider call with a timeout and stops calling a
// provider after threshold consecutive failures until the breaker half-opens.
// Provider calls run inside the store write lock, so a hung provider would
// otherwise stall every writer.
type Guarded struct {
	next    Provider
	timeout time.Duration
	breaker *circuit.Breaker
	log     *slog.Logger
}

func NewGuarded(next Provider, timeout time.Duration, threshold int64, log *slog.Logger) *Guarded {
	if log == nil {
		log = slog.Default()
	}
	return &Guarded{
		next:    next,
		timeout: timeout,
		breaker: circuit.NewConsecutiveBreaker(threshold),
		log:     log,
	}
}

func (g *Guarded) Name() string { return g.next.Name() }

func (g *Guarded) Initialize(ctx context.Context, req InitRequest) (InitResult, error) {
	return call(ctx, g, "initialize", func(ctx context.Context) (InitResult, error) {
		return g.next.Initialize(ctx, req)
	})
}

func (g *Guarded) Verify(ctx context.Context, req VerifyRequest) (VerifyResult, error) {
	return call(ctx, g, "verify", func(ctx context.Context) (VerifyResult, error) {
		return g.next.Verify(ctx, req)
	})
}

func (g *Guarded) Tripped() bool { return g.breaker.Tripped() }

func call[T any](ctx context.Context, g *Guarded, op string, fn func(context.Context) (T, error)) (T, error) {
	type outcome struct {
		val T
		err error
	}

	var result T
	err := g.breaker.Call(func() error {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		ch := make(chan outcome, 1)
		go func() {
			v, err := fn(callCtx)
			ch <- outcome{val: v, err: err}
		}()

		select {
		case o := <-ch:
			result = o.val
			return o.err
		case <-callCtx.Done():
			return fmt.Errorf("%w: %s %s after %s", ErrProviderTimeout, g.Name(), op, g.timeout)
		}
	}, 0)

	if errors.Is(err, circuit.ErrBreakerOpen) {
		g.log.Warn("payment provider circuit open", "provider", g.Name(), "op", op)
		return result, fmt.Errorf("%w: %s", ErrProviderUnavailable, g.Name())
	}
	if err != nil {
		g.log.Error("payment provider call failed", "provider", g.Name(), "op", op, "error", err)
	}
	return result, err
}
