// Package connectivity verifies that a service account can reach the
// database and read from it.
package connectivity

import (
	"context"
	"time"

	"cityapp-admin/internal/docstore"
)

// Status is the outcome of a connectivity check.
type Status int

const (
	OK Status = iota
	// DocumentMissing means the database answered but the probe document
	// doesn't exist. The credentials work.
	DocumentMissing
	AuthFailed
	PermissionDenied
	Unreachable
	Failed
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case DocumentMissing:
		return "connected, probe document missing"
	case AuthFailed:
		return "authentication failed"
	case PermissionDenied:
		return "permission denied"
	case Unreachable:
		return "unreachable"
	default:
		return "failed"
	}
}

// Connected reports whether the database accepted the credentials.
func (s Status) Connected() bool {
	return s == OK || s == DocumentMissing
}

// Report is the result of Check.
type Report struct {
	Status     Status
	Collection string
	DocID      string
	Fields     int
	Latency    time.Duration
	Err        error
}

const defaultTimeout = 30 * time.Second

// Check reads collection/docID under timeout (30s when not positive) and
// classifies the outcome.
func Check(ctx context.Context, store docstore.Store, collection, docID string, timeout time.Duration) Report {
	r := Report{Collection: collection, DocID: docID}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	doc, err := store.GetDocument(ctx, collection, docID)
	r.Latency = time.Since(start)
	r.Err = err
	if err == nil {
		r.Status = OK
		r.Fields = len(doc.Fields)
		return r
	}

	switch docstore.KindOf(err) {
	case docstore.NotFound:
		r.Status = DocumentMissing
	case docstore.Unauthenticated:
		r.Status = AuthFailed
	case docstore.PermissionDenied:
		r.Status = PermissionDenied
	case docstore.Unavailable:
		r.Status = Unreachable
	default:
		r.Status = Failed
	}
	return r
}
