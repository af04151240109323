package cmdutil

import (
	"context"

	"go.uber.org/zap"

	"cityapp-admin/internal/config"
	"cityapp-admin/internal/firestore"
	"cityapp-admin/internal/store"
)

// OpenFirestore connects to the configured Firestore database.
func OpenFirestore(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (*firestore.Client, error) {
	client, err := firestore.New(ctx, cfg.ProjectID, cfg.Database, cfg.CredentialsFile)
	if err != nil {
		return nil, err
	}
	db := cfg.Database
	if db == "" {
		db = "(default)"
	}
	log.Infof("Firestore: project %s, database %s", cfg.ProjectID, db)
	return client, nil
}

// OpenSink returns the GCS bucket sink when EXPORT_BUCKET is set, otherwise a
// local directory. The returned func releases it.
func OpenSink(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (store.Store, func(), error) {
	if cfg.ExportBucket != "" {
		gcs, err := store.NewGCS(ctx, cfg.ExportBucket, "debug-exports")
		if err != nil {
			return nil, nil, err
		}
		log.Infof("Store: GCS bucket %s", cfg.ExportBucket)
		return gcs, func() { gcs.Close() }, nil
	}
	local, err := store.NewLocal(cfg.ExportDir)
	if err != nil {
		return nil, nil, err
	}
	log.Infof("Store: local directory %s", cfg.ExportDir)
	return local, func() {}, nil
}
