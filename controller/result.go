package controller

import (
	"errors"

	"library-client/backend"
)

// ErrMissingFields is the local validation failure: a required form field is empty.
var ErrMissingFields = errors.New("required field missing")

type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNotFound
	OutcomeInvalid
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeInvalid:
		return "invalid"
	default:
		return "failed"
	}
}

// Result is what every controller operation reports back, next to the view
// state it updates.
type Result[T any] struct {
	Outcome Outcome
	Data    T
	Err     error
}

func ok[T any](data T) Result[T] {
	return Result[T]{Outcome: OutcomeOK, Data: data}
}

func invalid[T any]() Result[T] {
	return Result[T]{Outcome: OutcomeInvalid, Err: ErrMissingFields}
}

// settle classifies a backend error. Only fetches of a single entity tell a
// 404 apart from other failures.
func settle[T any](data T, err error, notFoundAware bool) Result[T] {
	switch {
	case err == nil:
		return ok(data)
	case notFoundAware && backend.IsNotFound(err):
		return Result[T]{Outcome: OutcomeNotFound, Err: err}
	default:
		return Result[T]{Outcome: OutcomeFailed, Err: err}
	}
}
