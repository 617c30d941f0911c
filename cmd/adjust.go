package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"inventory-sync/feature/inventory"
	"inventory-sync/feature/inventory/models"

	"github.com/spf13/cobra"
)

var (
	// Flags for the adjust command
	adjustItem  int64
	adjustCount int
	adjustKey   string
)

// adjustCmd applies a single stock adjustment.
var adjustCmd = &cobra.Command{
	Use:   "adjust",
	Short: "Apply one stock adjustment and re-synchronize the index",
	Long: `Decrements an item's stock by --count (negative values add stock) and
re-synchronizes the index, exactly as a stock movement event would.

Examples:
  # Three units of item 42 left the warehouse
  adjust --item 42 --count 3

  # Apply once even if re-run (requires REDIS_ADDR)
  adjust --item 42 --count 3 --key return-8812`,
	RunE: runAdjust,
}

func init() {
	adjustCmd.Flags().Int64Var(&adjustItem, "item", 0, "Item id")
	adjustCmd.Flags().IntVar(&adjustCount, "count", 0, "Units to subtract from stock")
	adjustCmd.Flags().StringVar(&adjustKey, "key", "", "Idempotency key")
	_ = adjustCmd.MarkFlagRequired("item")
	_ = adjustCmd.MarkFlagRequired("count")

	RootCmd.AddCommand(adjustCmd)
}

func runAdjust(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	p, err := newPipeline(ctx)
	if err != nil {
		return err
	}
	defer p.close()

	guard, closeGuard, err := p.guard(ctx)
	if err != nil {
		return err
	}
	defer closeGuard()

	svc := inventory.NewService(p.engine, p.store, guard, p.metrics, p.logger)
	res, err := svc.Adjust(ctx, models.StockAdjustment{ItemID: adjustItem, Count: adjustCount, Key: adjustKey})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return err
	}

	if !res.Found {
		return fmt.Errorf("item %d does not exist", adjustItem)
	}
	return nil
}
