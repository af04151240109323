// Package seed writes the official city records.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"cityapp-admin/internal/docstore"
	"cityapp-admin/internal/model"
)

const defaultCommitTimeout = 30 * time.Second

// DocID returns the document ID for a city name: lowercase, accents removed,
// runs of non-alphanumerics collapsed to a single dash.
func DocID(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Run overwrites one document per city in the collection. Writes are grouped
// into atomic batches of at most docstore.MaxBatchOps, each committed under
// commitTimeout (30s when not positive). Re-running is safe.
func Run(ctx context.Context, store docstore.Store, collection string, cities []model.City, commitTimeout time.Duration, log *zap.SugaredLogger) (int, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	seen := make(map[string]string, len(cities))
	for _, c := range cities {
		id := DocID(c.Name)
		if id == "" {
			return 0, fmt.Errorf("city %q has an empty document ID", c.Name)
		}
		if prev, ok := seen[id]; ok {
			return 0, fmt.Errorf("cities %q and %q map to the same document ID %q", prev, c.Name, id)
		}
		seen[id] = c.Name
	}

	written := 0
	for i := 0; i < len(cities); i += docstore.MaxBatchOps {
		end := i + docstore.MaxBatchOps
		if end > len(cities) {
			end = len(cities)
		}
		batch := store.NewBatch()
		for _, c := range cities[i:end] {
			batch.Set(collection, DocID(c.Name), c.ToMap())
		}

		if err := commitWithTimeout(ctx, batch, commitTimeout); err != nil {
			return written, fmt.Errorf("committing cities %d-%d: %w", i+1, end, err)
		}
		written += batch.Len()
		log.Infof("Wrote %d cities to %s", batch.Len(), collection)
	}
	return written, nil
}

func commitWithTimeout(ctx context.Context, b docstore.Batch, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = defaultCommitTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return b.Commit(ctx)
}
