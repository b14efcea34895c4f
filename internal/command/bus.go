package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/publicworks/portal/internal/result"
)

// Sentinel errors for bus construction and dispatch. Both indicate
// programming faults, not runtime conditions; ErrDuplicateHandler aborts
// startup and ErrUnroutable must never be shown to a user.
var (
	ErrUnroutable       = errors.New("command: no handler registered")
	ErrDuplicateHandler = errors.New("command: handler already registered")
)

// HandlerFunc handles one command and reports its outcome. Business failures
// ride inside the Result; the error channel is reserved for routing faults.
type HandlerFunc func(ctx context.Context, cmd Command) result.Result[any]

// Registration binds one command kind to one handler.
type Registration struct {
	kind    Kind
	handler HandlerFunc
}

// Handle adapts a handler taking the concrete command type into a
// Registration. The adapter performs the single type assertion so handlers
// never see a mistyped command.
func Handle[C Command](fn func(ctx context.Context, cmd C) result.Result[any]) Registration {
	var zero C
	return Registration{
		kind: zero.Kind(),
		handler: func(ctx context.Context, cmd Command) result.Result[any] {
			concrete, ok := cmd.(C)
			if !ok {
				// A kind claiming the wrong concrete type is the same class
				// of wiring fault as a missing registration.
				panic(fmt.Sprintf("command: %s dispatched with %T", cmd.Kind(), cmd))
			}
			return fn(ctx, concrete)
		},
	}
}

// Bus routes a command instance to its registered handler. The kind→handler
// table is built once at construction and never mutated, so Dispatch is safe
// to call concurrently from many sessions.
type Bus struct {
	handlers map[Kind]HandlerFunc
}

// NewBus builds the routing table. Registering two handlers for the same
// kind fails here, before any dispatch is possible.
func NewBus(regs ...Registration) (*Bus, error) {
	handlers := make(map[Kind]HandlerFunc, len(regs))
	for _, reg := range regs {
		if _, exists := handlers[reg.kind]; exists {
			return nil, fmt.Errorf("command.NewBus: %s: %w", reg.kind, ErrDuplicateHandler)
		}
		handlers[reg.kind] = reg.handler
	}
	return &Bus{handlers: handlers}, nil
}

// Dispatch invokes the single handler registered for cmd's kind and returns
// its Result unchanged. Dispatching an unregistered kind returns
// ErrUnroutable rather than a silently empty success.
func (b *Bus) Dispatch(ctx context.Context, cmd Command) (result.Result[any], error) {
	handler, ok := b.handlers[cmd.Kind()]
	if !ok {
		return result.Result[any]{}, fmt.Errorf("command.Dispatch: %s: %w", cmd.Kind(), ErrUnroutable)
	}
	return handler(ctx, cmd), nil
}
