// Exports a document's contents to a text file for debugging.
//
// Usage: go run ./cmd/export-doc -collection config -doc app [-label config]
//
// The file goes to EXPORT_DIR, or to EXPORT_BUCKET when set.
package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"cityapp-admin/internal/cmdutil"
	"cityapp-admin/internal/config"
	"cityapp-admin/internal/debugexport"
)

func main() {
	collection := flag.String("collection", "config", "Firestore collection name")
	docID := flag.String("doc", "", "Document ID to export")
	label := flag.String("label", "", "Label for the export header (defaults to the document ID)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		cmdutil.ExitConfigError(err)
	}
	log := cmdutil.NewLogger(cfg.LogLevel)
	defer log.Sync()

	if *docID == "" {
		flag.Usage()
		cmdutil.ExitConfigError(errors.New("-doc is required"))
	}
	if *label == "" {
		*label = *docID
	}

	ctx := context.Background()

	client, err := cmdutil.OpenFirestore(ctx, cfg, log)
	if err != nil {
		cmdutil.Exit(log, "Failed to initialize Firestore client", err)
	}
	defer client.Close()

	readCtx, cancel := context.WithTimeout(ctx, cfg.ReadTimeout)
	doc, err := client.GetDocument(readCtx, *collection, *docID)
	cancel()
	if err != nil {
		client.Close()
		cmdutil.Exit(log, "Failed to read document", err)
	}

	sink, closeSink, err := cmdutil.OpenSink(ctx, cfg, log)
	if err != nil {
		client.Close()
		cmdutil.Exit(log, "Failed to initialize export store", err)
	}
	defer closeSink()

	loc, err := debugexport.Export(ctx, sink, *label, doc.Fields, time.Now())
	if err != nil {
		client.Close()
		closeSink()
		cmdutil.Exit(log, "Export failed", err)
	}

	cmdutil.Success("Exported %s/%s to %s", *collection, *docID, loc)
}
