// Verifies that the configured service account can reach Firestore.
//
// Reads CHECK_COLLECTION/CHECK_DOC and reports whether the credentials work
// and, separately, whether the probe document exists.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	"cityapp-admin/internal/cmdutil"
	"cityapp-admin/internal/config"
	"cityapp-admin/internal/connectivity"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		cmdutil.ExitConfigError(err)
	}
	log := cmdutil.NewLogger(cfg.LogLevel)
	defer log.Sync()

	ctx := context.Background()

	client, err := cmdutil.OpenFirestore(ctx, cfg, log)
	if err != nil {
		cmdutil.Exit(log, "Failed to initialize Firestore client", err)
	}
	defer client.Close()

	r := connectivity.Check(ctx, client, cfg.CheckCollection, cfg.CheckDoc, cfg.ReadTimeout)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Project", "Probe", "Status", "Latency"})
	table.Append([]string{
		cfg.ProjectID,
		r.Collection + "/" + r.DocID,
		r.Status.String(),
		r.Latency.Round(time.Millisecond).String(),
	})
	table.Render()

	switch r.Status {
	case connectivity.OK:
		cmdutil.Success("Connected; probe document has %d fields", r.Fields)
	case connectivity.DocumentMissing:
		cmdutil.Success("Connected")
		cmdutil.Warn("Probe document %s/%s does not exist", r.Collection, r.DocID)
	default:
		client.Close()
		cmdutil.Exit(log, fmt.Sprintf("Connectivity check failed (%s)", r.Status), r.Err)
	}
}
