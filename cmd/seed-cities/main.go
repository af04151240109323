// Writes the official city list to Firestore.
//
// Usage: GCP_PROJECT_ID=... go run ./cmd/seed-cities
package main

import (
	"context"
	"os"

	"github.com/olekukonko/tablewriter"

	"cityapp-admin/internal/cmdutil"
	"cityapp-admin/internal/config"
	"cityapp-admin/internal/seed"
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

	n, err := seed.Run(ctx, client, cfg.CitiesCollection, seed.OfficialCities, cfg.CommitTimeout, log)
	if err != nil {
		client.Close()
		cmdutil.Exit(log, "Seeding official cities failed", err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "City", "State", "IBGE"})
	for _, c := range seed.OfficialCities {
		table.Append([]string{seed.DocID(c.Name), c.Name, c.State, c.IBGECode})
	}
	table.Render()

	cmdutil.Success("Seeded %d official cities into %s", n, cfg.CitiesCollection)
}
