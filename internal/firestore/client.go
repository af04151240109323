package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/genproto/googleapis/type/latlng"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cityapp-admin/internal/docstore"
	"cityapp-admin/internal/model"
)

// Client wraps the Firestore client and implements docstore.Store.
type Client struct {
	client *firestore.Client
}

// New creates a new Firestore client. An empty database selects the default
// database. When credentialsFile is set it is used as the service-account key;
// otherwise Application Default Credentials apply.
func New(ctx context.Context, projectID, database, credentialsFile string) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	if database == "" {
		database = firestore.DefaultDatabaseID
	}
	client, err := firestore.NewClientWithDatabase(ctx, projectID, database, opts...)
	if err != nil {
		return nil, docstore.Wrap("creating firestore client", err)
	}
	return &Client{client: client}, nil
}

// Close closes the Firestore client.
func (c *Client) Close() error {
	return c.client.Close()
}

// ListDocuments retrieves every document in a collection.
func (c *Client) ListDocuments(ctx context.Context, collection string) ([]model.Document, error) {
	docs := []model.Document{}

	iter := c.client.Collection(collection).Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, docstore.Wrap("listing "+collection, fmt.Errorf("iterating documents: %w", err))
		}
		docs = append(docs, toDocument(doc))
	}

	return docs, nil
}

// GetDocument retrieves a single document.
func (c *Client) GetDocument(ctx context.Context, collection, id string) (model.Document, error) {
	op := fmt.Sprintf("getting %s/%s", collection, id)
	doc, err := c.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return model.Document{}, &docstore.Error{Kind: docstore.NotFound, Op: op, Err: err}
		}
		return model.Document{}, docstore.Wrap(op, err)
	}
	return toDocument(doc), nil
}

// NewBatch starts a Firestore write batch.
func (c *Client) NewBatch() docstore.Batch {
	return &batch{client: c.client, wb: c.client.Batch()}
}

type batch struct {
	client *firestore.Client
	wb     *firestore.WriteBatch
	n      int
}

// RemoveFields queues an update setting each field to firestore.Delete.
// Deleting a field the document doesn't have is a no-op on the server.
func (b *batch) RemoveFields(collection, id string, fields []string) {
	updates := make([]firestore.Update, 0, len(fields))
	for _, f := range fields {
		// FieldPath keeps names containing dots from being split.
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{f}, Value: firestore.Delete})
	}
	b.wb.Update(b.client.Collection(collection).Doc(id), updates)
	b.n++
}

func (b *batch) Set(collection, id string, data map[string]any) {
	b.wb.Set(b.client.Collection(collection).Doc(id), data)
	b.n++
}

func (b *batch) Len() int {
	return b.n
}

func (b *batch) Commit(ctx context.Context) error {
	if b.n > docstore.MaxBatchOps {
		return &docstore.Error{
			Kind: docstore.BatchLimit,
			Op:   "committing batch",
			Err:  fmt.Errorf("%d writes, limit is %d", b.n, docstore.MaxBatchOps),
		}
	}
	if b.n == 0 {
		return nil
	}
	if _, err := b.wb.Commit(ctx); err != nil {
		return docstore.Wrap("committing batch", err)
	}
	return nil
}

func toDocument(doc *firestore.DocumentSnapshot) model.Document {
	return model.Document{
		ID:     doc.Ref.ID,
		Fields: normalizeMap(doc.Data()),
	}
}

func normalizeMap(m map[string]interface{}) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

// normalizeValue converts Firestore-specific value types into plain values.
func normalizeValue(v interface{}) any {
	switch t := v.(type) {
	case map[string]interface{}:
		return normalizeMap(t)
	case []interface{}:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}
		return out
	case *firestore.DocumentRef:
		if t == nil {
			return nil
		}
		return t.Path
	case *latlng.LatLng:
		if t == nil {
			return nil
		}
		return map[string]any{"latitude": t.GetLatitude(), "longitude": t.GetLongitude()}
	case time.Time:
		return t.UTC()
	default:
		return v
	}
}
