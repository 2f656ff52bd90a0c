package repository

// Outcome is the result of a repository operation: either a success
// carrying a value or a failure carrying an *Error. The zero value is a
// failure with no reason and should not be used.
type Outcome[T any] struct {
	value T
	err   *Error
	ok    bool
}

// Success wraps a value.
func Success[T any](v T) Outcome[T] {
	return Outcome[T]{value: v, ok: true}
}

// Failure wraps an error.
func Failure[T any](err *Error) Outcome[T] {
	return Outcome[T]{err: err}
}

// Ok reports whether the outcome is a success.
func (o Outcome[T]) Ok() bool { return o.ok }

// Value returns the success value, or the zero value for a failure.
func (o Outcome[T]) Value() T { return o.value }

// Err returns the failure, or nil for a success.
func (o Outcome[T]) Err() *Error {
	if o.ok {
		return nil
	}
	return o.err
}

// Reason returns the failure message, or "" for a success.
func (o Outcome[T]) Reason() string {
	if e := o.Err(); e != nil {
		return e.Error()
	}
	return ""
}

// Unwrap returns the value and a plain error, for callers that prefer the
// usual (value, error) pair.
func (o Outcome[T]) Unwrap() (T, error) {
	if o.ok {
		return o.value, nil
	}
	if o.err == nil {
		return o.value, &Error{Kind: KindTransport, Msg: "unknown failure"}
	}
	return o.value, o.err
}
