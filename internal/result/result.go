// Package result defines the tagged outcome envelope returned by every
// command handler. A Result is either a success carrying typed data or a
// failure carrying a Failure; it is never both, so callers can branch on
// IsSuccess alone.
package result

// Kind classifies a handler failure. The set is closed: handlers never invent
// ad-hoc kinds, and the UI never parses Message to detect one.
type Kind string

const (
	KindInvalidCredentials Kind = "invalid_credentials"
	KindDuplicateEmail     Kind = "duplicate_email"
	KindValidationFailed   Kind = "validation_failed"
	KindTenantMismatch     Kind = "tenant_mismatch"
	KindPersistenceFailure Kind = "persistence_failure"
	KindUnauthenticated    Kind = "unauthenticated"
	KindRateLimited        Kind = "rate_limited"
)

// Failure describes why a command did not succeed. Field is set only for
// KindValidationFailed and names the offending command field.
type Failure struct {
	Kind    Kind
	Field   string
	Message string
}

func (f *Failure) Error() string {
	if f.Field != "" {
		return string(f.Kind) + ": " + f.Field + ": " + f.Message
	}
	return string(f.Kind) + ": " + f.Message
}

// Result is the outcome of one command. The zero value is a failure with no
// detail; construct values through OK, Fail, FailField or FromFailure.
type Result[T any] struct {
	ok      bool
	data    T
	failure *Failure
	message string
	banner  *Banner
}

// OK returns a successful Result carrying data.
func OK[T any](data T) Result[T] {
	return Result[T]{ok: true, data: data}
}

// Fail returns a failed Result of the given kind.
func Fail[T any](kind Kind, message string) Result[T] {
	return Result[T]{
		failure: &Failure{Kind: kind, Message: message},
		message: message,
	}
}

// FailField returns a validation failure naming the command field at fault.
func FailField[T any](field, message string) Result[T] {
	return Result[T]{
		failure: &Failure{Kind: KindValidationFailed, Field: field, Message: message},
		message: message,
	}
}

// FromFailure wraps an existing Failure, preserving its kind and field.
func FromFailure[T any](f *Failure) Result[T] {
	return Result[T]{failure: f, message: f.Message}
}

// WithMessage returns a copy with a human-readable message attached.
func (r Result[T]) WithMessage(message string) Result[T] {
	r.message = message
	return r
}

// WithBanner returns a copy carrying a UI banner describing the outcome.
func (r Result[T]) WithBanner(b *Banner) Result[T] {
	r.banner = b
	return r
}

// IsSuccess is the sole flow-control branch point for callers.
func (r Result[T]) IsSuccess() bool { return r.ok }

// Data returns the payload. On failure it is the zero value of T.
func (r Result[T]) Data() T { return r.data }

// Failure returns the failure detail, or nil on success.
func (r Result[T]) Failure() *Failure { return r.failure }

// Message returns the presentational message. Callers must not parse it.
func (r Result[T]) Message() string { return r.message }

// Banner returns the attached banner, or nil when the outcome needs none.
func (r Result[T]) Banner() *Banner { return r.banner }

// Erase converts a typed Result to Result[any] for transport through the
// command bus, preserving the success flag, failure, message and banner.
func Erase[T any](r Result[T]) Result[any] {
	out := Result[any]{
		ok:      r.ok,
		failure: r.failure,
		message: r.message,
		banner:  r.banner,
	}
	if r.ok {
		out.data = r.data
	}
	return out
}
