package docstore

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"unavailable", status.Error(codes.Unavailable, "down"), Unavailable},
		{"deadline status", status.Error(codes.DeadlineExceeded, "slow"), Unavailable},
		{"context deadline", context.DeadlineExceeded, Unavailable},
		{"unauthenticated", status.Error(codes.Unauthenticated, "bad key"), Unauthenticated},
		{"permission", status.Error(codes.PermissionDenied, "no"), PermissionDenied},
		{"not found", status.Error(codes.NotFound, "gone"), NotFound},
		{"wrapped status", fmt.Errorf("iterating documents: %w", status.Error(codes.PermissionDenied, "no")), PermissionDenied},
		{"plain", errors.New("boom"), Internal},
		{"already classified", &Error{Kind: BatchLimit, Op: "x"}, BatchLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap("op", nil))

	cause := status.Error(codes.Unauthenticated, "expired")
	err := Wrap("listing users", cause)

	assert.Equal(t, Unauthenticated, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "listing users")
	assert.Contains(t, err.Error(), "unauthenticated")
}

func TestKindOf_Unclassified(t *testing.T) {
	assert.Equal(t, Internal, KindOf(errors.New("boom")))
	assert.Equal(t, PartialCommit, KindOf(fmt.Errorf("outer: %w", &Error{Kind: PartialCommit, Op: "x"})))
}
