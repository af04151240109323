package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"cityapp-admin/internal/docstore"
	"cityapp-admin/internal/model"
)

func TestDocID(t *testing.T) {
	tests := map[string]string{
		"Jundiaí":                  "jundiai",
		"Várzea Paulista":          "varzea-paulista",
		"Campo Limpo Paulista":     "campo-limpo-paulista",
		"São João da Boa Vista":    "sao-joao-da-boa-vista",
		"  Santa Bárbara d'Oeste ": "santa-barbara-d-oeste",
		"???":                      "",
	}
	for in, want := range tests {
		assert.Equal(t, want, DocID(in), in)
	}
}

func TestOfficialCities_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range OfficialCities {
		id := DocID(c.Name)
		require.NotEmpty(t, id, c.Name)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		assert.Len(t, c.IBGECode, 7, c.Name)
	}
}

func TestRun(t *testing.T) {
	s := docstore.NewMemStore()
	log := zaptest.NewLogger(t).Sugar()

	n, err := Run(context.Background(), s, "officialCities", OfficialCities, time.Second, log)
	require.NoError(t, err)
	assert.Equal(t, len(OfficialCities), n)

	doc, err := s.GetDocument(context.Background(), "officialCities", "jundiai")
	require.NoError(t, err)
	assert.Equal(t, "Jundiaí", doc.Fields["name"])
	assert.Equal(t, "3525904", doc.Fields["ibgeCode"])

	// Seeding again overwrites instead of duplicating.
	_, err = Run(context.Background(), s, "officialCities", OfficialCities, time.Second, log)
	require.NoError(t, err)
	assert.Len(t, s.Snapshot("officialCities"), len(OfficialCities))
}

func TestRun_OverwritesStaleFields(t *testing.T) {
	s := docstore.NewMemStore()
	s.Put("officialCities", model.Document{ID: "jundiai", Fields: map[string]any{"name": "Jundiai", "legacy": 1}})

	_, err := Run(context.Background(), s, "officialCities", OfficialCities[:1], 0, nil)
	require.NoError(t, err)

	doc, err := s.GetDocument(context.Background(), "officialCities", "jundiai")
	require.NoError(t, err)
	assert.False(t, doc.Has("legacy"))
}

func TestRun_DuplicateIDs(t *testing.T) {
	s := docstore.NewMemStore()
	cities := []model.City{{Name: "Jundiaí"}, {Name: "Jundiai"}}

	_, err := Run(context.Background(), s, "officialCities", cities, 0, nil)
	require.Error(t, err)
	assert.Zero(t, s.Commits())
}

func TestRun_CommitFailure(t *testing.T) {
	s := docstore.NewMemStore()
	s.FailCommit(1, errors.New("injected"))

	n, err := Run(context.Background(), s, "officialCities", OfficialCities, time.Second, nil)
	require.Error(t, err)
	assert.Zero(t, n)
	assert.Empty(t, s.Snapshot("officialCities"))
}

type stallingStore struct {
	*docstore.MemStore
}

func (s stallingStore) NewBatch() docstore.Batch {
	return stallingBatch{s.MemStore.NewBatch()}
}

type stallingBatch struct {
	docstore.Batch
}

func (b stallingBatch) Commit(ctx context.Context) error {
	<-ctx.Done()
	return docstore.Wrap("committing batch", ctx.Err())
}

func TestRun_CommitDeadline(t *testing.T) {
	mem := docstore.NewMemStore()

	start := time.Now()
	n, err := Run(context.Background(), stallingStore{mem}, "officialCities", OfficialCities, 20*time.Millisecond, nil)
	require.Error(t, err)

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, docstore.Unavailable, docstore.KindOf(err))
	assert.Zero(t, n)
	assert.Empty(t, mem.Snapshot("officialCities"))
}

func TestCommitWithTimeout_NonPositiveUsesDefault(t *testing.T) {
	var deadline time.Time
	b := deadlineBatch{Batch: docstore.NewMemStore().NewBatch(), seen: &deadline}

	require.NoError(t, commitWithTimeout(context.Background(), b, 0))
	require.False(t, deadline.IsZero(), "commit ran without a deadline")
	assert.WithinDuration(t, time.Now().Add(defaultCommitTimeout), deadline, 5*time.Second)
}

type deadlineBatch struct {
	docstore.Batch
	seen *time.Time
}

func (b deadlineBatch) Commit(ctx context.Context) error {
	*b.seen, _ = ctx.Deadline()
	return b.Batch.Commit(ctx)
}
