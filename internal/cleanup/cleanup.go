// Package cleanup deletes deprecated fields from every document of a
// collection using atomic write batches.
package cleanup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cityapp-admin/internal/docstore"
	"cityapp-admin/internal/model"
)

const (
	defaultReadTimeout   = 60 * time.Second
	defaultCommitTimeout = 30 * time.Second
)

// Phase is the step a cleanup run is in, or ended in.
type Phase int

const (
	Idle Phase = iota
	Reading
	Composing
	Committing
	Done
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Reading:
		return "reading"
	case Composing:
		return "composing"
	case Committing:
		return "committing"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Options configures a cleanup run.
type Options struct {
	Collection string
	Fields     []string

	// BatchSize is the number of documents per atomic batch. Zero means
	// docstore.MaxBatchOps; larger values are refused.
	BatchSize int

	// ReadTimeout and CommitTimeout bound the snapshot read and each commit.
	ReadTimeout   time.Duration
	CommitTimeout time.Duration

	Logger *zap.SugaredLogger
}

// Result describes what a run did.
type Result struct {
	Phase Phase
	// FailedIn is the phase the run was in when it failed. Idle on success.
	FailedIn         Phase
	Scanned          int
	Batches          int
	CommittedBatches int
	CommittedDocs    int
}

// Run reads every document in the collection and deletes opts.Fields from
// each of them. Documents are split into sequential batches of at most
// BatchSize writes; each batch is atomic. If a batch fails after earlier
// ones were committed, the returned error has kind docstore.PartialCommit and
// the Result says how far the run got.
func Run(ctx context.Context, store docstore.Store, opts Options) (Result, error) {
	opts = withDefaults(opts)
	log := opts.Logger.With("collection", opts.Collection)
	res := Result{Phase: Idle}

	if opts.BatchSize > docstore.MaxBatchOps {
		res.fail()
		return res, &docstore.Error{
			Kind: docstore.BatchLimit,
			Op:   "cleanup " + opts.Collection,
			Err:  fmt.Errorf("batch size %d exceeds the limit of %d", opts.BatchSize, docstore.MaxBatchOps),
		}
	}

	res.Phase = Reading
	docs, err := readSnapshot(ctx, store, opts)
	if err != nil {
		res.fail()
		return res, err
	}
	res.Scanned = len(docs)
	log.Infof("Read %d documents", len(docs))

	res.Phase = Composing
	batches := compose(store, opts, docs)
	res.Batches = len(batches)
	log.Infof("Composed %d batches of up to %d writes", len(batches), opts.BatchSize)

	res.Phase = Committing
	for i, b := range batches {
		if err := commit(ctx, b, opts.CommitTimeout); err != nil {
			res.fail()
			log.Errorw("Batch commit failed",
				"batch", i+1, "batches", len(batches),
				"committed_docs", res.CommittedDocs, "error", err)
			return res, commitError(opts.Collection, i, len(batches), res.CommittedDocs, err)
		}
		res.CommittedBatches++
		res.CommittedDocs += b.Len()
		log.Infof("Committed batch %d/%d (%d documents)", i+1, len(batches), b.Len())
	}

	res.Phase = Done
	return res, nil
}

func (r *Result) fail() {
	r.FailedIn = r.Phase
	r.Phase = Failed
}

func withDefaults(opts Options) Options {
	if opts.Fields == nil {
		opts.Fields = FieldRemovalSet()
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = docstore.MaxBatchOps
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = defaultReadTimeout
	}
	if opts.CommitTimeout <= 0 {
		opts.CommitTimeout = defaultCommitTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	return opts
}

func readSnapshot(ctx context.Context, store docstore.Store, opts Options) ([]model.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, opts.ReadTimeout)
	defer cancel()

	docs, err := store.ListDocuments(ctx, opts.Collection)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", opts.Collection, err)
	}
	return docs, nil
}

// compose builds one RemoveFields write per document, chunked into batches.
// Nothing is sent to the database.
func compose(store docstore.Store, opts Options, docs []model.Document) []docstore.Batch {
	var batches []docstore.Batch
	for i := 0; i < len(docs); i += opts.BatchSize {
		end := i + opts.BatchSize
		if end > len(docs) {
			end = len(docs)
		}
		b := store.NewBatch()
		for _, doc := range docs[i:end] {
			b.RemoveFields(opts.Collection, doc.ID, opts.Fields)
		}
		batches = append(batches, b)
	}
	return batches
}

func commit(ctx context.Context, b docstore.Batch, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return b.Commit(ctx)
}

func commitError(collection string, failed, total, committedDocs int, err error) error {
	kind := docstore.CommitFailed
	if failed > 0 {
		kind = docstore.PartialCommit
	}
	op := fmt.Sprintf("cleanup %s: batch %d/%d (%d documents already committed)", collection, failed+1, total, committedDocs)
	switch docstore.KindOf(err) {
	case docstore.Unauthenticated, docstore.PermissionDenied, docstore.BatchLimit:
		if failed == 0 {
			kind = docstore.KindOf(err)
		}
	case docstore.Unavailable:
		// The server may have applied the batch before the deadline hit.
		op += ", outcome of this batch unknown"
		if failed == 0 {
			kind = docstore.Unavailable
		}
	}
	return &docstore.Error{Kind: kind, Op: op, Err: err}
}
