// Deletes the deprecated role and scope fields from every user document.
//
// Usage: GCP_PROJECT_ID=... go run ./cmd/cleanup-fields
package main

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"cityapp-admin/internal/cleanup"
	"cityapp-admin/internal/cmdutil"
	"cityapp-admin/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		cmdutil.ExitConfigError(err)
	}
	log := cmdutil.NewLogger(cfg.LogLevel).With("run", uuid.NewString())
	defer log.Sync()

	ctx := context.Background()

	client, err := cmdutil.OpenFirestore(ctx, cfg, log)
	if err != nil {
		cmdutil.Exit(log, "Failed to initialize Firestore client", err)
	}
	defer client.Close()

	fields := cleanup.FieldRemovalSet()
	log.Infof("Removing fields [%s] from collection %s",
		strings.Join(fields, ", "), cfg.UsersCollection)

	res, err := cleanup.Run(ctx, client, cleanup.Options{
		Collection:    cfg.UsersCollection,
		Fields:        fields,
		BatchSize:     cfg.CleanupBatchSize,
		ReadTimeout:   cfg.ReadTimeout,
		CommitTimeout: cfg.CommitTimeout,
		Logger:        log,
	})
	if err != nil {
		if res.CommittedDocs > 0 {
			cmdutil.Warn("%d of %d documents were cleaned before the failure; re-run to finish",
				res.CommittedDocs, res.Scanned)
		}
		client.Close()
		cmdutil.Exit(log, "Field cleanup failed ("+res.FailedIn.String()+" phase)", err)
	}

	log.Infof("Cleanup complete. Documents: %d, batches: %d", res.CommittedDocs, res.CommittedBatches)
	cmdutil.Success("Removed deprecated fields from %d documents in %s", res.CommittedDocs, cfg.UsersCollection)
}
