package docstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/btree"

	"cityapp-admin/internal/model"
)

const btreeDegree = 32

// MemStore is an in-memory Store. Documents are kept ordered by ID so
// listings are deterministic. Commits are all-or-nothing.
type MemStore struct {
	mu          sync.RWMutex
	collections map[string]*btree.BTreeG[model.Document]

	commits int
	failAt  int
	failErr error
	readErr error
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{collections: make(map[string]*btree.BTreeG[model.Document])}
}

func docLess(a, b model.Document) bool {
	return a.ID < b.ID
}

func (s *MemStore) tree(collection string) *btree.BTreeG[model.Document] {
	t, ok := s.collections[collection]
	if !ok {
		t = btree.NewG[model.Document](btreeDegree, docLess)
		s.collections[collection] = t
	}
	return t
}

// Put stores a copy of doc, replacing any document with the same ID.
func (s *MemStore) Put(collection string, doc model.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree(collection).ReplaceOrInsert(doc.Clone())
}

// Snapshot returns copies of all documents in a collection, ordered by ID.
func (s *MemStore) Snapshot(collection string) []model.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.collections[collection]
	if !ok {
		return nil
	}
	docs := make([]model.Document, 0, t.Len())
	t.Ascend(func(d model.Document) bool {
		docs = append(docs, d.Clone())
		return true
	})
	return docs
}

// FailCommit makes the n-th commit from now (1-based) fail with err without
// applying any of its writes.
func (s *MemStore) FailCommit(n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAt = s.commits + n
	s.failErr = err
}

// FailReads makes every read return err. A nil err clears it.
func (s *MemStore) FailReads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr = err
}

// Commits returns the number of successfully applied commits.
func (s *MemStore) Commits() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.commits
}

// ListDocuments implements Store.
func (s *MemStore) ListDocuments(ctx context.Context, collection string) ([]model.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, Wrap("listing "+collection, err)
	}
	s.mu.RLock()
	readErr := s.readErr
	s.mu.RUnlock()
	if readErr != nil {
		return nil, Wrap("listing "+collection, readErr)
	}
	docs := s.Snapshot(collection)
	if docs == nil {
		docs = []model.Document{}
	}
	return docs, nil
}

// GetDocument implements Store.
func (s *MemStore) GetDocument(ctx context.Context, collection, id string) (model.Document, error) {
	op := fmt.Sprintf("getting %s/%s", collection, id)
	if err := ctx.Err(); err != nil {
		return model.Document{}, Wrap(op, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.readErr != nil {
		return model.Document{}, Wrap(op, s.readErr)
	}
	t, ok := s.collections[collection]
	if !ok {
		return model.Document{}, &Error{Kind: NotFound, Op: op}
	}
	doc, found := t.Get(model.Document{ID: id})
	if !found {
		return model.Document{}, &Error{Kind: NotFound, Op: op}
	}
	return doc.Clone(), nil
}

// NewBatch implements Store.
func (s *MemStore) NewBatch() Batch {
	return &memBatch{store: s}
}

type memWrite struct {
	collection string
	id         string
	remove     []model.RemoveField
	set        map[string]any
}

type memBatch struct {
	store  *MemStore
	writes []memWrite
}

func (b *memBatch) RemoveFields(collection, id string, fields []string) {
	b.writes = append(b.writes, memWrite{collection: collection, id: id, remove: model.RemoveFields(fields...)})
}

func (b *memBatch) Set(collection, id string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	b.writes = append(b.writes, memWrite{collection: collection, id: id, set: data})
}

func (b *memBatch) Len() int {
	return len(b.writes)
}

func (b *memBatch) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return Wrap("committing batch", err)
	}
	if len(b.writes) > MaxBatchOps {
		return &Error{
			Kind: BatchLimit,
			Op:   "committing batch",
			Err:  fmt.Errorf("%d writes, limit is %d", len(b.writes), MaxBatchOps),
		}
	}

	s := b.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failErr != nil && s.commits+1 == s.failAt {
		err := s.failErr
		s.failErr = nil
		return Wrap("committing batch", err)
	}

	// Stage every write first so a rejected write leaves the store untouched.
	staged := make(map[string]map[string]model.Document)
	lookup := func(collection, id string) (model.Document, bool) {
		if docs, ok := staged[collection]; ok {
			if d, ok := docs[id]; ok {
				return d, true
			}
		}
		if t, ok := s.collections[collection]; ok {
			if d, ok := t.Get(model.Document{ID: id}); ok {
				return d.Clone(), true
			}
		}
		return model.Document{}, false
	}
	for _, w := range b.writes {
		var doc model.Document
		if w.set != nil {
			doc = model.Document{ID: w.id, Fields: w.set}.Clone()
		} else {
			d, ok := lookup(w.collection, w.id)
			if !ok {
				return &Error{
					Kind: NotFound,
					Op:   "committing batch",
					Err:  errors.New("no document to update: " + w.collection + "/" + w.id),
				}
			}
			for _, op := range w.remove {
				op.Apply(d.Fields)
			}
			doc = d
		}
		if staged[w.collection] == nil {
			staged[w.collection] = make(map[string]model.Document)
		}
		staged[w.collection][w.id] = doc
	}

	for collection, docs := range staged {
		t := s.tree(collection)
		for _, d := range docs {
			t.ReplaceOrInsert(d)
		}
	}
	s.commits++
	return nil
}
