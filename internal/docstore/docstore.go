// Package docstore defines the document database boundary used by the
// maintenance scripts.
package docstore

import (
	"context"

	"cityapp-admin/internal/model"
)

// MaxBatchOps is the maximum number of writes Firestore accepts in a single
// atomic batch.
const MaxBatchOps = 500

// Store is a document database the scripts read from and write to.
type Store interface {
	// ListDocuments returns every document currently in the collection.
	ListDocuments(ctx context.Context, collection string) ([]model.Document, error)

	// GetDocument returns a single document, or an error of kind NotFound.
	GetDocument(ctx context.Context, collection, id string) (model.Document, error)

	// NewBatch starts an empty write batch.
	NewBatch() Batch
}

// Batch is a group of writes committed atomically: either every write is
// applied or none is.
type Batch interface {
	// RemoveFields queues the deletion of the given top-level fields from a
	// document. Fields the document does not have are left alone.
	RemoveFields(collection, id string, fields []string)

	// Set queues a full overwrite of a document.
	Set(collection, id string, data map[string]any)

	// Len returns the number of queued writes.
	Len() int

	// Commit applies all queued writes.
	Commit(ctx context.Context) error
}
