package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// reloadCmd runs one full reload and exits.
var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Re-index every inventory record once",
	Long: `Reads every record from the inventory store and upserts it into the index.
The reload report is printed as JSON. The command fails when the store could
not be read or any document failed to index.`,
	RunE: runReload,
}

func init() {
	RootCmd.AddCommand(reloadCmd)
}

func runReload(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	p, err := newPipeline(ctx)
	if err != nil {
		return err
	}
	defer p.close()

	report := p.engine.InitializeCache(ctx)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return err
	}

	if report.StoreError != "" {
		return fmt.Errorf("inventory could not be read: %s", report.StoreError)
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d of %d documents failed to index", report.Failed, report.Total)
	}
	return nil
}
