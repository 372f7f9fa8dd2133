// Package event is a synchronous in-process signal bus.
//
// Listeners run one after another on the caller's goroutine. SendRobust
// isolates them: a listener that returns an error or panics is logged and
// skipped, and the sender never sees the failure.
package event

import (
	"context"
	"fmt"
	"sync"

	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"

	"go.uber.org/zap"
)

type Signal string

const OrderCreated Signal = "order_created"

type Listener struct {
	Name   string
	Handle func(ctx context.Context, payload any) error
}

// Result records the outcome of one listener call.
type Result struct {
	Listener string
	Err      error
}

type Dispatcher struct {
	mu        sync.RWMutex
	listeners map[Signal][]Listener
	metrics   *metrics.Registry
}

func NewDispatcher(reg *metrics.Registry) *Dispatcher {
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &Dispatcher{
		listeners: make(map[Signal][]Listener),
		metrics:   reg,
	}
}

func (d *Dispatcher) Connect(signal Signal, l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[signal] = append(d.listeners[signal], l)
}

func (d *Dispatcher) Listeners(signal Signal) []Listener {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]Listener(nil), d.listeners[signal]...)
}

// SendRobust calls every listener of signal and returns their outcomes.
// It never returns an error and never panics on behalf of a listener.
func (d *Dispatcher) SendRobust(ctx context.Context, signal Signal, payload any) []Result {
	listeners := d.Listeners(signal)
	results := make([]Result, 0, len(listeners))

	for _, l := range listeners {
		timer := metrics.StartTimer()
		err := call(ctx, l, payload)
		results = append(results, Result{Listener: l.Name, Err: err})

		if err != nil {
			d.metrics.Counter("event." + string(signal) + ".failed").Inc()
			logger.FromCtx(ctx).Warn("event listener failed",
				zap.String("signal", string(signal)),
				zap.String("listener", l.Name),
				zap.Duration("duration", timer.Duration()),
				zap.Error(err),
			)
			continue
		}
		d.metrics.Counter("event." + string(signal) + ".delivered").Inc()
		logger.FromCtx(ctx).Debug("event delivered",
			zap.String("signal", string(signal)),
			zap.String("listener", l.Name),
			zap.Duration("duration", timer.Duration()),
		)
	}

	return results
}

func call(ctx context.Context, l Listener, payload any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("listener panicked: %v", r)
		}
	}()
	return l.Handle(ctx, payload)
}
