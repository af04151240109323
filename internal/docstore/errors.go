package docstore

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind classifies a failure at the database boundary.
type Kind int

const (
	Internal Kind = iota
	Unavailable
	Unauthenticated
	PermissionDenied
	NotFound
	BatchLimit
	CommitFailed
	PartialCommit
)

func (k Kind) String() string {
	switch k {
	case Unavailable:
		return "unavailable"
	case Unauthenticated:
		return "unauthenticated"
	case PermissionDenied:
		return "permission denied"
	case NotFound:
		return "not found"
	case BatchLimit:
		return "batch limit exceeded"
	case CommitFailed:
		return "commit failed"
	case PartialCommit:
		return "partial commit"
	default:
		return "internal"
	}
}

// Error is a classified database error.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap classifies err and tags it with the operation that produced it.
// Already classified errors keep their kind.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: Classify(err), Op: op, Err: err}
}

// KindOf returns the kind of a classified error, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Classify maps gRPC status codes and context errors to a Kind.
func Classify(err error) Kind {
	if err == nil {
		return Internal
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Unavailable
	}
	st, ok := status.FromError(err)
	if !ok {
		return Internal
	}
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return Unavailable
	case codes.Unauthenticated:
		return Unauthenticated
	case codes.PermissionDenied:
		return PermissionDenied
	case codes.NotFound:
		return NotFound
	default:
		return Internal
	}
}
