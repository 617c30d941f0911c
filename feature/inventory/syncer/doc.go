// Package syncer is the synchronization engine that mirrors inventory records
// into the search index.
//
// # Operations
//
//   - InitializeCache: reads every record from the store, encodes each one and
//     upserts it into the index on a bounded worker pool. It never fails as a
//     whole: a failed fetch leaves the index untouched, and encode or upsert
//     failures are skipped and counted in the ReloadReport.
//   - ApplyAdjustment: decrements one item's stock, persists it, then
//     re-synchronizes the index. Unknown items are a no-op. Stock is never
//     clamped, so it may go negative.
//
// # Consistency
//
// The store is the authority and the index is an eventually consistent mirror.
// In the default "full" mode every adjustment is followed by a full reload.
// In "targeted" mode only the adjusted document is upserted and a Sweeper
// performs periodic full reloads.
//
// Adjustments to the same item id are serialized, and full reloads never
// overlap, so a reload that read older rows cannot overwrite a newer one.
//
// # Usage
//
//	engine := syncer.NewEngine(store, indexClient, logger, cfg.Sync,
//	    syncer.WithMetrics(m))
//	engine.InitializeCache(ctx)
//
//	res, err := engine.ApplyAdjustment(ctx, models.StockAdjustment{ItemID: 42, Count: 3})
package syncer
