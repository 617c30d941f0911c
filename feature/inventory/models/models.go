package models

// Item is an inventory record owned by the record store.
type Item struct {
	ID    int64  `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Name  string `gorm:"column:name" json:"name"`
	SKU   string `gorm:"column:sku" json:"sku"`
	Stock int    `gorm:"column:stock" json:"stock"` // may go negative, never clamped
}

// TableName overrides the table name.
func (Item) TableName() string {
	return "inventory"
}

// StockAdjustment is a stock-movement event decrementing an item's stock by Count.
type StockAdjustment struct {
	ItemID int64 `json:"itemId"`
	Count  int   `json:"count"`
	// Key identifies the event for de-duplication (Kafka offset or Idempotency-Key header).
	Key string `json:"-"`
}
